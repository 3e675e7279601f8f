package metrics

import "github.com/prometheus/client_golang/prometheus"

// Query Prometheus metrics.
var (
	SearchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "resources_api",
			Name:      "search_duration_seconds",
			Help:      "Search query duration in seconds",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)

	SearchResultsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "resources_api",
			Name:      "search_results_total",
			Help:      "Total number of documents returned by search",
		},
	)

	FilterCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "resources_api",
			Name:      "filter_cache_total",
			Help:      "Filter option lookups served from cache vs live aggregation",
		},
		[]string{"result"}, // "hit" / "fallback"
	)

	BatchPairsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "resources_api",
			Name:      "batch_pairs_total",
			Help:      "Total number of id+version pairs resolved in batches",
		},
	)
)

var queryMetricsRegistered bool

// RegisterQueryMetrics registers Prometheus query metrics. Must be called once from main.
func RegisterQueryMetrics() {
	if queryMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(SearchResultsTotal)
	prometheus.MustRegister(FilterCacheTotal)
	prometheus.MustRegister(BatchPairsTotal)
	queryMetricsRegistered = true
}
