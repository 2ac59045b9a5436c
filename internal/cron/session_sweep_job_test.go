package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gamevault/storefront-backend/pkg/logger"
)

type fakePurger struct {
	lastCutoff time.Time
	deleted    int64
	err        error
	called     int
}

func (f *fakePurger) PurgeIdle(ctx context.Context, cutoff time.Time) (int64, error) {
	f.called++
	f.lastCutoff = cutoff
	if f.err != nil {
		return 0, f.err
	}
	return f.deleted, nil
}

func newSweepJob(t *testing.T, purger *fakePurger, ttl time.Duration) *sessionSweepJob {
	t.Helper()
	jobIface, err := NewSessionSweepJob(SessionSweepJobParams{
		Logger: logger.Nop(),
		Purger: purger,
		TTL:    ttl,
	})
	if err != nil {
		t.Fatalf("NewSessionSweepJob: %v", err)
	}
	job, ok := jobIface.(*sessionSweepJob)
	if !ok {
		t.Fatalf("expected sessionSweepJob, got %T", jobIface)
	}
	return job
}

func TestSessionSweepJobUsesTTLCutoff(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	purger := &fakePurger{deleted: 7}
	job := newSweepJob(t, purger, 720*time.Hour)
	job.now = func() time.Time { return now }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if want := now.Add(-720 * time.Hour); !purger.lastCutoff.Equal(want) {
		t.Fatalf("expected cutoff %s, got %s", want, purger.lastCutoff)
	}
	if purger.called != 1 {
		t.Fatalf("expected purger called once, got %d", purger.called)
	}
	if job.Name() != SessionSweepJobName {
		t.Fatalf("unexpected job name %q", job.Name())
	}
}

func TestSessionSweepJobPropagatesErrors(t *testing.T) {
	job := newSweepJob(t, &fakePurger{err: errors.New("boom")}, time.Hour)
	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestNewSessionSweepJobValidates(t *testing.T) {
	if _, err := NewSessionSweepJob(SessionSweepJobParams{Logger: logger.Nop(), TTL: time.Hour}); err == nil {
		t.Fatal("expected error without purger")
	}
	if _, err := NewSessionSweepJob(SessionSweepJobParams{Logger: logger.Nop(), Purger: &fakePurger{}}); err == nil {
		t.Fatal("expected error without ttl")
	}
}
