package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTPMetrics records request counts and latencies on its own registry, so
// several apps (one per test, for instance) can coexist in one process.
type HTTPMetrics struct {
	registry *prometheus.Registry

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	seeded   *prometheus.CounterVec
}

// NewHTTPMetrics creates and registers the collectors.
func NewHTTPMetrics() *HTTPMetrics {
	m := &HTTPMetrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		seeded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tenant_seed_batches_total",
				Help: "Number of mock data batches generated for tenants",
			},
			[]string{"kind"},
		),
	}
	m.registry.MustRegister(
		m.requests,
		m.duration,
		m.seeded,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Middleware records metrics for each request.
func (m *HTTPMetrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		// The route template keeps label cardinality bounded.
		path := c.Route().Path
		statusStr := strconv.Itoa(status)

		m.requests.WithLabelValues(c.Method(), path, statusStr).Inc()
		m.duration.WithLabelValues(c.Method(), path, statusStr).Observe(time.Since(start).Seconds())
		return err
	}
}

// SeedObserved counts one generated batch of the given kind.
func (m *HTTPMetrics) SeedObserved(kind string) {
	m.seeded.WithLabelValues(kind).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (m *HTTPMetrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
