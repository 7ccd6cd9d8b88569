package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// WorkerMetrics collects clause index rebuild metrics for the worker
// process.
type WorkerMetrics struct {
	registry *prometheus.Registry

	rebuildTotal    *prometheus.CounterVec
	rebuildDuration prometheus.Histogram
	rebuildInFlight prometheus.Gauge
	entriesBuilt    prometheus.Gauge
}

func NewWorkerMetrics() *WorkerMetrics {
	registry := prometheus.NewRegistry()

	m := &WorkerMetrics{
		registry: registry,
		rebuildTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rebuild",
			Name:      "runs_total",
			Help:      "Clause index rebuild runs by outcome.",
		}, []string{"status"}),
		rebuildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "rebuild",
			Name:      "duration_seconds",
			Help:      "Clause index rebuild duration.",
			Buckets:   []float64{0.5, 1, 5, 15, 30, 60, 120, 300, 600},
		}),
		rebuildInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "rebuild",
			Name:      "in_flight",
			Help:      "Rebuilds currently running.",
		}),
		entriesBuilt: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "rebuild",
			Name:      "entries_built",
			Help:      "Clause entries produced by the most recent successful rebuild.",
		}),
	}

	registry.MustRegister(
		m.rebuildTotal,
		m.rebuildDuration,
		m.rebuildInFlight,
		m.entriesBuilt,
	)

	return m
}

// Handler exposes the registry for the worker's /metrics endpoint.
func (m *WorkerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// StartRebuild marks a rebuild as running and returns a finish callback
// that records the outcome.
func (m *WorkerMetrics) StartRebuild() func(entries int, err error) {
	start := time.Now()
	m.rebuildInFlight.Inc()

	return func(entries int, err error) {
		m.rebuildInFlight.Dec()
		m.rebuildDuration.Observe(time.Since(start).Seconds())

		if err != nil {
			m.rebuildTotal.WithLabelValues("error").Inc()
			return
		}
		m.rebuildTotal.WithLabelValues("success").Inc()
		m.entriesBuilt.Set(float64(entries))
	}
}
