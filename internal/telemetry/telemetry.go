// Package telemetry exposes Prometheus metrics for the scrape
// pipeline.
package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "crimewatch"

// Metrics holds the pipeline's Prometheus collectors.
type Metrics struct {
	ArticlesFetched    *prometheus.CounterVec
	ArticlesProcessed  prometheus.Counter
	ProcessingFailures prometheus.Counter
	Decisions          *prometheus.CounterVec
	RecordsSaved       prometheus.Counter
	ProcessingDuration prometheus.Histogram
	RunDuration        prometheus.Histogram
}

// New registers the pipeline metrics with reg (or the default
// registerer when reg is nil) and returns them.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		ArticlesFetched: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "articles_fetched_total",
			Help:      "Raw articles harvested, by site.",
		}, []string{"site"}),
		ArticlesProcessed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "articles_processed_total",
			Help:      "Articles run through the extraction engine.",
		}),
		ProcessingFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "processing_failures_total",
			Help:      "Articles dropped because extraction failed.",
		}),
		Decisions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dedup_decisions_total",
			Help:      "Duplicate policy decisions, by status.",
		}, []string{"status"}),
		RecordsSaved: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_saved_total",
			Help:      "Records appended to the store.",
		}),
		ProcessingDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "processing_duration_seconds",
			Help:      "Per-article extraction plus decision time.",
			Buckets:   prometheus.DefBuckets,
		}),
		RunDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Whole scrape run time.",
			Buckets:   []float64{1, 5, 15, 60, 300, 900, 3600},
		}),
	}
}

// Handler returns the metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
