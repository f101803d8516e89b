package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
)

var (
	metricsOnce sync.Once
	metrics     *fiberprometheus.FiberPrometheus
)

// InitMetrics creates the Prometheus HTTP middleware for the given service
// name. fiberprometheus registers collectors in the default registry and
// registering twice panics, so the instance is created once per process.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	metricsOnce.Do(func() {
		metrics = fiberprometheus.New(serviceName)
	})
	return metrics
}

// MetricsMiddleware adapts the Prometheus middleware to a fiber.Handler.
func MetricsMiddleware(p *fiberprometheus.FiberPrometheus) fiber.Handler {
	return p.Middleware
}
