// Package metrics provides Prometheus instrumentation for the coach client.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels.
const (
	OutcomeOK        = "ok"
	OutcomeHTTPError = "http_error"
	OutcomeTransport = "transport_error"
	OutcomeDecode    = "decode_error"
)

// Metrics holds the collectors recorded by the API client and the companion server.
type Metrics struct {
	registry *prometheus.Registry

	APIRequestsTotal   *prometheus.CounterVec
	APIRequestDuration *prometheus.HistogramVec
	PagesServedTotal   *prometheus.CounterVec
}

// New creates the collectors on a private registry so several instances can
// coexist in one process.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		APIRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coach_api_requests_total",
				Help: "Total number of backend API requests",
			},
			[]string{"operation", "outcome"},
		),
		APIRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "coach_api_request_duration_seconds",
				Help:    "Duration of backend API requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		PagesServedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coach_pages_served_total",
				Help: "Pages rendered by the companion server",
			},
			[]string{"page", "view"},
		),
	}
}

// ObserveAPI records one backend exchange. Safe to call on a nil receiver.
func (m *Metrics) ObserveAPI(operation, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.APIRequestsTotal.WithLabelValues(operation, outcome).Inc()
	m.APIRequestDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// ObservePage records a rendered page and the view it resolved to.
func (m *Metrics) ObservePage(page, view string) {
	if m == nil {
		return
	}
	m.PagesServedTotal.WithLabelValues(page, view).Inc()
}

// Handler exposes the private registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
