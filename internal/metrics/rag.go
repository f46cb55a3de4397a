package metrics

import "github.com/prometheus/client_golang/prometheus"

// Retrieval and generation Prometheus metrics.
var (
	RetrievalRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aipoc",
			Name:      "retrieval_requests_total",
			Help:      "Total number of index provider queries",
		},
		[]string{"status"}, // "success" / "error"
	)

	RetrievalRequestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "aipoc",
			Name:      "retrieval_request_duration_seconds",
			Help:      "Index provider query duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	GenerationRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aipoc",
			Name:      "generation_requests_total",
			Help:      "Total number of generation provider requests",
		},
		[]string{"model", "status"},
	)

	GenerationRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "aipoc",
			Name:      "generation_request_duration_seconds",
			Help:      "Generation provider request duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"model"},
	)

	GenerationTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aipoc",
			Name:      "generation_tokens_total",
			Help:      "Total generation tokens consumed",
		},
		[]string{"model", "type"}, // type: "prompt" / "completion"
	)

	QueryCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aipoc",
			Name:      "query_cache_total",
			Help:      "Retrieval query cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	ChunksIndexedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "aipoc",
			Name:      "chunks_indexed_total",
			Help:      "Total chunks submitted to the index provider",
		},
	)
)

var ragRegistered = false

// RegisterRAGMetrics registers retrieval and generation metrics explicitly (no init()).
// Safe to call multiple times (subsequent calls are no-ops for tests).
func RegisterRAGMetrics() {
	if ragRegistered {
		return
	}
	ragRegistered = true

	prometheus.MustRegister(
		RetrievalRequestsTotal,
		RetrievalRequestDuration,
		GenerationRequestsTotal,
		GenerationRequestDuration,
		GenerationTokensTotal,
		QueryCacheTotal,
		ChunksIndexedTotal,
	)
}
