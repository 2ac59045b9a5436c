package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestJobMetricsRecordsOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	jobs := NewJobMetrics(reg)

	jobs.ObserveRun("session-sweep", 10*time.Millisecond, nil)
	jobs.ObserveRun("session-sweep", 5*time.Millisecond, errors.New("boom"))
	jobs.AddPurged(4)
	jobs.AddPurged(0)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	runs := findMetricFamily(mfs, "storefront_job_runs_total")
	if runs == nil || len(runs.GetMetric()) != 2 {
		t.Fatalf("expected success and failure series, got %+v", runs)
	}
	for _, m := range runs.GetMetric() {
		if m.GetCounter().GetValue() != 1 {
			t.Fatalf("expected one run per result, got %f", m.GetCounter().GetValue())
		}
	}
	purged := findMetricFamily(mfs, "storefront_session_entries_purged_total")
	if purged == nil || purged.GetMetric()[0].GetCounter().GetValue() != 4 {
		t.Fatalf("expected 4 purged entries, got %+v", purged)
	}
}

func TestJobMetricsNilSafe(t *testing.T) {
	var jobs *JobMetrics
	jobs.ObserveRun("x", time.Second, nil)
	jobs.AddPurged(1)
	NewJobMetrics(nil).ObserveRun("x", time.Second, nil)
}
