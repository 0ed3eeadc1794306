// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the collectors so each router (and each test) can own a registry.
type Metrics struct {
	registry *prometheus.Registry

	// RequestCounter counts HTTP requests by method, route and status.
	RequestCounter *prometheus.CounterVec
	// RequestDuration records request latency in seconds.
	RequestDuration *prometheus.HistogramVec
	// MRPCalculos counts MRP runs by outcome (ok | invalido | erro).
	MRPCalculos *prometheus.CounterVec
	// ComponentesAComprar is the number of components with a shortfall in the last run.
	ComponentesAComprar prometheus.Gauge
	// SnapshotCache counts stock snapshot cache lookups (hit | miss | erro).
	SnapshotCache *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RequestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		MRPCalculos: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mrp_calculos_total",
				Help: "Total number of MRP runs by outcome",
			},
			[]string{"resultado"},
		),
		ComponentesAComprar: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mrp_componentes_a_comprar",
			Help: "Components with a purchase shortfall in the most recent MRP run",
		}),
		SnapshotCache: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "estoque_snapshot_cache_total",
				Help: "Stock snapshot cache lookups by result",
			},
			[]string{"resultado"},
		),
	}
	m.registry.MustRegister(
		m.RequestCounter,
		m.RequestDuration,
		m.MRPCalculos,
		m.ComponentesAComprar,
		m.SnapshotCache,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
