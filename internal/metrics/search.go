package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "searchd",
			Name:      "search_requests_total",
			Help:      "Total number of search requests",
		},
		[]string{"outcome"}, // "ok" / "error"
	)

	SearchCandidatesScoredTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "searchd",
			Name:      "search_candidates_scored_total",
			Help:      "Candidates fetched and scored, by entity kind",
		},
		[]string{"kind"},
	)

	SearchHistoryWriteFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "searchd",
			Name:      "search_history_write_failures_total",
			Help:      "History writes that failed, failing the search with them",
		},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchCandidatesScoredTotal)
	prometheus.MustRegister(SearchHistoryWriteFailuresTotal)
	searchMetricsRegistered = true
}
