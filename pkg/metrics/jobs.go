package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Job outcomes recorded by ObserveRun.
const (
	JobSucceeded = "success"
	JobFailed    = "failure"
)

// JobMetrics records scheduled maintenance runs.
type JobMetrics struct {
	duration *prometheus.HistogramVec
	runs     *prometheus.CounterVec
	purged   prometheus.Counter
}

// NewJobMetrics registers the job collectors on reg.
func NewJobMetrics(reg prometheus.Registerer) *JobMetrics {
	if reg == nil {
		return &JobMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "storefront_job_duration_seconds",
		Help:    "Duration of scheduled jobs in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"job"})
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_job_runs_total",
		Help: "Scheduled job executions by result.",
	}, []string{"job", "result"})
	purged := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "storefront_session_entries_purged_total",
		Help: "Session entries removed by the idle session sweep.",
	})
	reg.MustRegister(duration, runs, purged)
	return &JobMetrics{duration: duration, runs: runs, purged: purged}
}

// ObserveRun records the duration and outcome of one job execution.
func (j *JobMetrics) ObserveRun(job string, duration time.Duration, err error) {
	if j == nil || j.duration == nil {
		return
	}
	job = normalizeLabel(job)
	j.duration.WithLabelValues(job).Observe(duration.Seconds())
	result := JobSucceeded
	if err != nil {
		result = JobFailed
	}
	j.runs.WithLabelValues(job, result).Inc()
}

func (j *JobMetrics) AddPurged(rows int64) {
	if j == nil || j.purged == nil || rows <= 0 {
		return
	}
	j.purged.Add(float64(rows))
}
