package jobs

import "github.com/prometheus/client_golang/prometheus"

// Исходы запуска задачи.
const (
	outcomeOK    = "ok"
	outcomeError = "error"
	outcomePanic = "panic"
)

var (
	jobRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hifz_job_runs_total",
			Help: "Background job runs by outcome (ok, error, panic)",
		},
		[]string{"job", "outcome"},
	)

	jobDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hifz_job_duration_seconds",
			Help:    "Background job duration in seconds",
			Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"job"},
	)

	jobLastSuccess = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "hifz_job_last_success_timestamp_seconds",
			Help: "Unix time of the last successful job run",
		},
		[]string{"job"},
	)
)

func init() {
	prometheus.MustRegister(jobRuns, jobDuration, jobLastSuccess)
}

func observeRun(name, outcome string, seconds float64, at int64) {
	jobRuns.WithLabelValues(name, outcome).Inc()
	jobDuration.WithLabelValues(name).Observe(seconds)
	if outcome == outcomeOK {
		jobLastSuccess.WithLabelValues(name).Set(float64(at))
	}
}
