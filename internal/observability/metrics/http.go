package metrics

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTPServerMetrics owns the API binary's Prometheus registry. Each binary
// registers only its own collectors, so scraping the worker never exposes
// stale API series.
type HTTPServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	generationTotal    *prometheus.CounterVec
	generationChunks   *prometheus.HistogramVec
	generationDuration *prometheus.HistogramVec

	auditTotal    *prometheus.CounterVec
	auditDuration *prometheus.HistogramVec

	governanceDecisionsTotal *prometheus.CounterVec
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bg",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "bg",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "bg",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	generationTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bg",
			Subsystem: "generation",
			Name:      "requests_total",
			Help:      "Total content generation requests by type and status.",
		},
		[]string{"service", "content_type", "status"},
	)
	generationChunks := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "bg",
			Subsystem: "generation",
			Name:      "context_chunks",
			Help:      "Distribution of manual chunks placed in the generation prompt.",
			Buckets:   []float64{0, 1, 2, 3, 4, 5, 6, 8},
		},
		[]string{"service", "content_type"},
	)
	generationDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "bg",
			Subsystem: "generation",
			Name:      "duration_seconds",
			Help:      "End-to-end generation duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "content_type"},
	)
	auditTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bg",
			Subsystem: "audit",
			Name:      "requests_total",
			Help:      "Total image audits by subject kind and final verdict.",
		},
		[]string{"service", "subject", "verdict"},
	)
	auditDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "bg",
			Subsystem: "audit",
			Name:      "duration_seconds",
			Help:      "Image audit duration in seconds, upload included.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "subject"},
	)
	governanceDecisionsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bg",
			Subsystem: "governance",
			Name:      "decisions_total",
			Help:      "Total approval decisions recorded.",
		},
		[]string{"service", "decision"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		generationTotal,
		generationChunks,
		generationDuration,
		auditTotal,
		auditDuration,
		governanceDecisionsTotal,
	)

	return &HTTPServerMetrics{
		registry:                 registry,
		requestTotal:             requestTotal,
		requestDuration:          requestDuration,
		requestInFlight:          requestInFlight,
		generationTotal:          generationTotal,
		generationChunks:         generationChunks,
		generationDuration:       generationDuration,
		auditTotal:               auditTotal,
		auditDuration:            auditDuration,
		governanceDecisionsTotal: governanceDecisionsTotal,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *HTTPServerMetrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := normalizePath(r.URL.Path)
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			service,
			r.Method,
			path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, path).Observe(time.Since(start).Seconds())
	})
}

// normalizePath collapses resource ids so label cardinality stays bounded.
func normalizePath(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 3 || parts[0] != "v1" {
		return path
	}
	switch parts[1] {
	case "brands", "manuals", "content":
		parts[2] = "{id}"
		return "/" + strings.Join(parts, "/")
	case "files":
		return "/v1/files/{path}"
	default:
		return path
	}
}

func (m *HTTPServerMetrics) RecordGeneration(service, contentType, status string, chunks int, duration time.Duration) {
	if contentType == "" {
		contentType = "unknown"
	}
	if status == "" {
		status = "unknown"
	}
	m.generationTotal.WithLabelValues(service, contentType, status).Inc()
	if status == "success" {
		m.generationChunks.WithLabelValues(service, contentType).Observe(float64(chunks))
	}
	m.generationDuration.WithLabelValues(service, contentType).Observe(duration.Seconds())
}

func (m *HTTPServerMetrics) RecordAudit(service, subject, verdict string, duration time.Duration) {
	if subject == "" {
		subject = "unknown"
	}
	if verdict == "" {
		verdict = "error"
	}
	m.auditTotal.WithLabelValues(service, subject, verdict).Inc()
	m.auditDuration.WithLabelValues(service, subject).Observe(duration.Seconds())
}

func (m *HTTPServerMetrics) RecordGovernanceDecision(service, decision string) {
	if decision == "" {
		decision = "unknown"
	}
	m.governanceDecisionsTotal.WithLabelValues(service, decision).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusRecorder) Flush() {
	flusher, ok := w.ResponseWriter.(http.Flusher)
	if ok {
		flusher.Flush()
	}
}

func (w *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not implement http.Hijacker")
	}
	return hijacker.Hijack()
}

func (w *statusRecorder) Push(target string, opts *http.PushOptions) error {
	pusher, ok := w.ResponseWriter.(http.Pusher)
	if !ok {
		return http.ErrNotSupported
	}
	return pusher.Push(target, opts)
}
