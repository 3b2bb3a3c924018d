package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's Prometheus collectors on a private registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec
	httpInflight prometheus.Gauge

	generations       *prometheus.CounterVec
	generationLatency *prometheus.HistogramVec

	registry *prometheus.Registry
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "edugen_http_requests_total",
				Help: "HTTP requests by method, route and status",
			},
			[]string{"method", "route", "status"},
		),
		httpLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "edugen_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		httpInflight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "edugen_http_requests_inflight",
				Help: "HTTP requests currently being served",
			},
		),
		generations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "edugen_generations_total",
				Help: "Engine calls by engine and outcome (ok or an error code)",
			},
			[]string{"engine", "outcome"},
		),
		generationLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "edugen_generation_duration_seconds",
				Help:    "Engine call latency in seconds",
				Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 20, 30, 60, 120},
			},
			[]string{"engine"},
		),
		registry: registry,
	}

	registry.MustRegister(
		m.httpRequests,
		m.httpLatency,
		m.httpInflight,
		m.generations,
		m.generationLatency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) ObserveHTTP(method, route, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, status).Inc()
	m.httpLatency.WithLabelValues(method, route).Observe(d.Seconds())
}

func (m *Metrics) InflightInc() {
	if m != nil {
		m.httpInflight.Inc()
	}
}

func (m *Metrics) InflightDec() {
	if m != nil {
		m.httpInflight.Dec()
	}
}

func (m *Metrics) ObserveGeneration(engine, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.generations.WithLabelValues(engine, outcome).Inc()
	m.generationLatency.WithLabelValues(engine).Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}
