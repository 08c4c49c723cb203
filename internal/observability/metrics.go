package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "instafeed_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "instafeed_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// InteractionToggles counts server-side like/save toggles.
	InteractionToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "instafeed_interaction_toggles_total",
		Help: "Total number of like/save toggles persisted by the API",
	}, []string{"kind", "state"})

	// ClientToggleRequests counts toggle requests issued by the feed client, by outcome.
	ClientToggleRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "instafeed_client_toggle_requests_total",
		Help: "Total number of toggle requests issued by the feed client",
	}, []string{"kind", "outcome"})

	// ClientToggleFailures counts toggle requests that failed and kept their optimistic state.
	ClientToggleFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "instafeed_client_toggle_failures_total",
		Help: "Total number of failed toggle requests left unreconciled",
	}, []string{"kind"})

	// ClientRequestLatency records feed client round-trip latency.
	ClientRequestLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "instafeed_client_request_latency_seconds",
		Help:    "Feed client request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	// ClientInflightRequests is the number of toggle requests awaiting a response.
	ClientInflightRequests = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "instafeed_client_inflight_requests",
		Help: "Number of toggle requests awaiting a backend response",
	})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}

// TrackClientRequest returns a function that records client latency when called.
func TrackClientRequest(operation string) func() {
	start := time.Now()
	return func() {
		ClientRequestLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}
}

// RecordToggle increments the server-side toggle counter.
func RecordToggle(kind string, on bool) {
	state := "off"
	if on {
		state = "on"
	}
	InteractionToggles.WithLabelValues(kind, state).Inc()
}
