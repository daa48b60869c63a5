package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Scoring Prometheus metrics.
var (
	ComparisonsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "essaysim",
			Name:      "comparisons_total",
			Help:      "Total number of pairwise comparisons",
		},
		[]string{"method", "status"}, // status: "ok" / "error"
	)

	ComparisonDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "essaysim",
			Name:      "comparison_duration_seconds",
			Help:      "Time spent scoring a single pair",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"method"},
	)

	TasksInflight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "essaysim",
			Name:      "tasks_inflight",
			Help:      "Comparison tasks queued or running in the worker pool",
		},
	)

	LexiconCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "essaysim",
			Name:      "lexicon_cache_total",
			Help:      "Lexicon cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var scoringMetricsOnce sync.Once

// RegisterScoringMetrics registers Prometheus scoring metrics. Safe to call more than once.
func RegisterScoringMetrics() {
	scoringMetricsOnce.Do(func() {
		prometheus.MustRegister(ComparisonsTotal, ComparisonDuration, TasksInflight, LexiconCacheTotal)
	})
}
