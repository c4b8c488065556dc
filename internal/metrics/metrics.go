package metrics

import (
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "storefront"

var (
	// Registry is the dedicated Prometheus registry of the storefront
	Registry = prometheus.NewRegistry()
	// HTTPRequests counts requests by method, route and status
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{
			"method",
			"route",
			"status",
		},
	)
	// HTTPDuration records request durations in seconds
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{
			"method",
			"route",
		},
	)
)

var regOnce sync.Once

// RegisterDefault registers the collectors on Registry; safe to call more
// than once
func RegisterDefault() {
	regOnce.Do(
		func() {
			Registry.MustRegister(HTTPRequests)
			Registry.MustRegister(HTTPDuration)
			Registry.MustRegister(collectors.NewGoCollector())
			Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		},
	)
}

// RouteLabeler maps a request to a low cardinality route label
type RouteLabeler func(method, path string) string

// Middleware records every request passing through it. The status is taken
// from the returned error if there is one, since the error handler runs
// after the middleware chain.
func Middleware(label RouteLabeler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		method := c.Method()
		route := label(method, c.Path())
		err := c.Next()
		status := statusOf(c, err)
		HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		HTTPDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
		return err
	}
}

func statusOf(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}

// NewServer returns a fiber app exposing Registry at path
func NewServer(path string) *fiber.App {
	if path == "" {
		path = "/metrics"
	}
	app := fiber.New(
		fiber.Config{
			DisableStartupMessage: true,
		},
	)
	app.Get(path, adaptor.HTTPHandler(promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})))
	return app
}
