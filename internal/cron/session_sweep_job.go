package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/gamevault/storefront-backend/pkg/logger"
	"github.com/gamevault/storefront-backend/pkg/metrics"
)

const SessionSweepJobName = "session-sweep"

// IdlePurger removes sessions that have not been written since cutoff.
type IdlePurger interface {
	PurgeIdle(ctx context.Context, cutoff time.Time) (int64, error)
}

type SessionSweepJobParams struct {
	Logger  *logger.Logger
	Purger  IdlePurger
	Metrics *metrics.JobMetrics
	// TTL is how long a session may sit idle before its entries are removed.
	TTL time.Duration
}

func NewSessionSweepJob(params SessionSweepJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Purger == nil {
		return nil, fmt.Errorf("purger required")
	}
	if params.TTL <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}
	return &sessionSweepJob{
		logg:    params.Logger,
		purger:  params.Purger,
		metrics: params.Metrics,
		ttl:     params.TTL,
		now:     time.Now,
	}, nil
}

type sessionSweepJob struct {
	logg    *logger.Logger
	purger  IdlePurger
	metrics *metrics.JobMetrics
	ttl     time.Duration
	now     func() time.Time
}

func (j *sessionSweepJob) Name() string { return SessionSweepJobName }

func (j *sessionSweepJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC().Add(-j.ttl)
	deleted, err := j.purger.PurgeIdle(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("session sweep: %w", err)
	}
	j.metrics.AddPurged(deleted)
	j.logg.Info(j.logg.WithFields(ctx, map[string]any{
		"cutoff":       cutoff,
		"ttl":          j.ttl.String(),
		"rows_deleted": deleted,
	}), "idle sessions purged")
	return nil
}
