// Package metrics holds the Prometheus metrics for both pipelines.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Pipeline Prometheus metrics.
var (
	DiscoveryResultsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "talentscout",
			Name:      "discovery_results_total",
			Help:      "Search oracle URLs by outcome (accepted, rejected, duplicate)",
		},
		[]string{"outcome"},
	)

	ProfilesFetchedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "talentscout",
			Name:      "profiles_fetched_total",
			Help:      "Profile fetch attempts by status",
		},
		[]string{"status"}, // "fetched" / "skipped"
	)

	ProfileFetchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "talentscout",
			Name:      "profile_fetch_duration_seconds",
			Help:      "Profile oracle request duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	EmbeddingRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "talentscout",
			Name:      "embedding_requests_total",
			Help:      "Total number of embedding requests",
		},
		[]string{"model", "status"},
	)

	EmbeddingRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "talentscout",
			Name:      "embedding_request_duration_seconds",
			Help:      "Embedding request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"model"},
	)

	EmbeddingTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "talentscout",
			Name:      "embedding_tokens_total",
			Help:      "Total embedding tokens consumed",
		},
		[]string{"model", "type"},
	)

	EmbeddingCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "talentscout",
			Name:      "embedding_cache_total",
			Help:      "Embedding cache lookups by result",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	ChunksIndexedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "talentscout",
			Name:      "chunks_indexed_total",
			Help:      "Chunks written into vector index namespaces",
		},
	)
)

var registered bool

// Register registers all pipeline metrics. Must be called once from main.
func Register() {
	if registered {
		return
	}
	prometheus.MustRegister(
		DiscoveryResultsTotal,
		ProfilesFetchedTotal,
		ProfileFetchDuration,
		EmbeddingRequestsTotal,
		EmbeddingRequestDuration,
		EmbeddingTokensTotal,
		EmbeddingCacheTotal,
		ChunksIndexedTotal,
	)
	registered = true
}
