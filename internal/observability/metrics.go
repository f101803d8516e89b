package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "forkful_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// CacheHits counts cache-aside hits by key prefix.
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "forkful_cache_hits_total",
		Help: "Total number of cache hits by key prefix",
	}, []string{"prefix"})

	// CacheMisses counts cache-aside misses by key prefix.
	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "forkful_cache_misses_total",
		Help: "Total number of cache misses by key prefix",
	}, []string{"prefix"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "forkful_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// RecipeLifecycleOps counts recipe lifecycle operations by kind and outcome.
	RecipeLifecycleOps = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "forkful_recipe_lifecycle_ops_total",
		Help: "Total recipe lifecycle operations (create, edit, fork, revert, delete) by outcome",
	}, []string{"op", "outcome"})

	// TokensRevoked counts tokens added to the revocation store.
	TokensRevoked = promauto.NewCounter(prometheus.CounterOpts{
		Name: "forkful_tokens_revoked_total",
		Help: "Total number of JWTs revoked via logout",
	})
)

// ObserveQuery records the latency of a database query since start.
func ObserveQuery(operation, table string, start time.Time) {
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
}

// RecordLifecycleOp increments the lifecycle counter for op with the outcome
// derived from err.
func RecordLifecycleOp(op string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	RecipeLifecycleOps.WithLabelValues(op, outcome).Inc()
}
