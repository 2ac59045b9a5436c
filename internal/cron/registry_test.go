package cron

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type namedJob string

func (j namedJob) Name() string              { return string(j) }
func (j namedJob) Run(context.Context) error { return nil }

func TestRegistryDeduplicatesByName(t *testing.T) {
	sweep := namedJob(SessionSweepJobName)
	other := namedJob("cache-warm")

	registry := NewRegistry(sweep, nil)
	registry.Register(other)
	registry.Register(namedJob(SessionSweepJobName))

	jobs := registry.Jobs()
	require.Len(t, jobs, 2)
	require.Equal(t, []Job{sweep, other}, jobs)

	jobs[0] = nil
	require.NotNil(t, registry.Jobs()[0], "Jobs must return a copy")
}
