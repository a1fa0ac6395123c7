package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hifz", Name: "http_requests_total", Help: "Processed HTTP requests",
	}, []string{"method", "route", "code"})
	HandlerErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "hifz", Name: "handler_errors_total", Help: "Handler errors",
	})
	DBPing = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "hifz", Name: "db_ping_seconds", Help: "DB ping latency",
		Buckets: prometheus.DefBuckets,
	})
	EvaluationsSaved = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "hifz", Name: "evaluations_saved_total", Help: "Saved evaluations",
	})
	ImportRows = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hifz", Name: "import_rows_total", Help: "CSV import rows by outcome",
	}, []string{"outcome"})
	CompetitorsDeleted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hifz", Name: "competitors_deleted_total", Help: "Competitor deletions by outcome",
	}, []string{"outcome"})
	LiveProgress = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "hifz", Name: "live_progress_percent", Help: "Evaluated competitors, percent",
	})
)

func init() {
	prometheus.MustRegister(HTTPRequests, HandlerErrors, DBPing, EvaluationsSaved, ImportRows, CompetitorsDeleted, LiveProgress)
}

func Handler() http.Handler { return promhttp.Handler() }

func ObserveDBPing(d time.Duration) { DBPing.Observe(d.Seconds()) }
