package metrics

import (
	"bufio"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "policyret"

// APIServerMetrics collects HTTP-level and retrieval pipeline metrics for
// the API process. Every metric lives in a process-local registry so the
// API and worker never export each other's series.
type APIServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	retrievalTotal    *prometheus.CounterVec
	retrievalDuration *prometheus.HistogramVec
	retrievedResults  prometheus.Histogram

	clauseFastPathTotal   prometheus.Counter
	internetRoutedQueries prometheus.Counter
}

func NewAPIServerMetrics() *APIServerMetrics {
	registry := prometheus.NewRegistry()

	m := &APIServerMetrics{
		registry: registry,
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests by method, path and status code.",
		}, []string{"method", "path", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration by method and path.",
			Buckets:   []float64{0.005, 0.025, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"method", "path"}),
		requestInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "HTTP requests currently being served.",
		}),
		retrievalTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "retrieval",
			Name:      "queries_total",
			Help:      "Retrieval queries by resolved mode.",
		}, []string{"mode"}),
		retrievalDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "retrieval",
			Name:      "duration_seconds",
			Help:      "End-to-end retrieval pipeline duration by mode.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		}, []string{"mode"}),
		retrievedResults: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "retrieval",
			Name:      "results_returned",
			Help:      "Number of results returned per retrieval query.",
			Buckets:   []float64{0, 1, 2, 5, 10, 15, 20, 30, 50},
		}),
		clauseFastPathTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "retrieval",
			Name:      "clause_fast_path_total",
			Help:      "Queries answered through the clause lookup fast path.",
		}),
		internetRoutedQueries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "retrieval",
			Name:      "internet_routed_total",
			Help:      "Queries that included merged internet results.",
		}),
	}

	registry.MustRegister(
		m.requestTotal,
		m.requestDuration,
		m.requestInFlight,
		m.retrievalTotal,
		m.retrievalDuration,
		m.retrievedResults,
		m.clauseFastPathTotal,
		m.internetRoutedQueries,
	)

	return m
}

// Handler exposes the registry for the /metrics endpoint.
func (m *APIServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *APIServerMetrics) ObserveRetrieval(mode string, duration time.Duration, results int) {
	m.retrievalTotal.WithLabelValues(mode).Inc()
	m.retrievalDuration.WithLabelValues(mode).Observe(duration.Seconds())
	m.retrievedResults.Observe(float64(results))
}

func (m *APIServerMetrics) IncClauseFastPath() { m.clauseFastPathTotal.Inc() }
func (m *APIServerMetrics) IncInternetRouted() { m.internetRoutedQueries.Inc() }

// Middleware instruments an HTTP handler with request count, duration and
// in-flight gauges. Paths are normalized so per-document routes do not
// explode label cardinality.
func (m *APIServerMetrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := normalizePath(r.URL.Path)

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(r.Method, path, strconv.Itoa(recorder.status)).Inc()
		m.requestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if h, ok := r.ResponseWriter.(http.Hijacker); ok {
		return h.Hijack()
	}
	return nil, nil, http.ErrNotSupported
}

func (r *statusRecorder) Push(target string, opts *http.PushOptions) error {
	if p, ok := r.ResponseWriter.(http.Pusher); ok {
		return p.Push(target, opts)
	}
	return http.ErrNotSupported
}

func normalizePath(path string) string {
	if strings.HasPrefix(path, "/v1/documents/") && path != "/v1/documents/" {
		return "/v1/documents/{document_id}"
	}
	return path
}
