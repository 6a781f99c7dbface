// Package metrics exposes Prometheus instrumentation for the HTTP API.
package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

const namespace = "market"

// HTTPMetrics collects request-level metrics.
type HTTPMetrics struct {
	requestCounter    *prometheus.CounterVec
	errorCounter      *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
	messagesPublished prometheus.Counter
	invoicesIssued    prometheus.Counter
}

// NewHTTPMetrics registers the metric vectors on the default registry.
func NewHTTPMetrics() *HTTPMetrics {
	return &HTTPMetrics{
		requestCounter: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "api_requests_total",
				Help:      "Total number of API requests",
			},
			[]string{"method", "path"},
		),
		errorCounter: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "api_errors_total",
				Help:      "Total number of API error responses",
			},
			[]string{"method", "path", "status"},
		),
		requestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		messagesPublished: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chat_messages_total",
			Help:      "Total number of chat messages accepted",
		}),
		invoicesIssued: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invoices_issued_total",
			Help:      "Total number of invoices issued at checkout",
		}),
	}
}

// Middleware tracks request counts, durations and error responses.
func (m *HTTPMetrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			method := c.Request().Method
			path := c.Path()

			m.requestCounter.WithLabelValues(method, path).Inc()

			err := next(c)

			status := strconv.Itoa(c.Response().Status)
			m.requestDuration.WithLabelValues(method, path, status).
				Observe(time.Since(start).Seconds())

			if c.Response().Status >= 400 {
				m.errorCounter.WithLabelValues(method, path, status).Inc()
			}

			return err
		}
	}
}

// RecordChatMessage counts an accepted chat message.
func (m *HTTPMetrics) RecordChatMessage() {
	m.messagesPublished.Inc()
}

// RecordInvoiceIssued counts a completed checkout.
func (m *HTTPMetrics) RecordInvoiceIssued() {
	m.invoicesIssued.Inc()
}

// HandlerFunc returns the /metrics endpoint handler.
func HandlerFunc() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.Handler())
}

// Module provides the metrics FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewHTTPMetrics),
)
