package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis command errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campusnet_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// FriendRequestOutcomes counts add-friend attempts by outcome.
	FriendRequestOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campusnet_friend_request_outcomes_total",
		Help: "Total add-friend attempts by outcome (requested, accepted, duplicate, rejected_self)",
	}, []string{"outcome"})

	// FeedBuildLatency records feed assembly latency in seconds.
	FeedBuildLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "campusnet_feed_build_latency_seconds",
		Help:    "Feed query latency in seconds",
		Buckets: prometheus.DefBuckets,
	})
)

var (
	promOnce     sync.Once
	promInstance *fiberprometheus.FiberPrometheus
)

// InitMetrics creates the Prometheus middleware for the given service name.
// The instance is shared because the collectors register with the default
// registry, which rejects duplicates.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		promInstance = fiberprometheus.New(serviceName)
	})
	return promInstance
}

// MetricsMiddleware wraps the fiberprometheus handler as a Fiber middleware.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
