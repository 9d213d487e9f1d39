package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// WorkerMetrics covers the manual indexing worker.
type WorkerMetrics struct {
	registry *prometheus.Registry

	indexTotal      *prometheus.CounterVec
	indexDuration   *prometheus.HistogramVec
	indexInFlight   prometheus.Gauge
	chunksPerManual *prometheus.HistogramVec
	queueLag        *prometheus.HistogramVec
}

func NewWorkerMetrics(service string) *WorkerMetrics {
	registry := prometheus.NewRegistry()

	indexTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bg",
			Subsystem: "worker",
			Name:      "manual_index_total",
			Help:      "Total indexed manuals by status.",
		},
		[]string{"service", "status"},
	)
	indexDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "bg",
			Subsystem: "worker",
			Name:      "manual_index_duration_seconds",
			Help:      "Manual indexing duration in seconds by status.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "status"},
	)
	indexInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "bg",
			Subsystem: "worker",
			Name:      "manual_index_in_flight",
			Help:      "Number of manuals currently being indexed.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	chunksPerManual := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "bg",
			Subsystem: "worker",
			Name:      "manual_chunks",
			Help:      "Distribution of chunks produced per indexed manual.",
			Buckets:   []float64{5, 8, 11, 14, 17, 19, 22, 25},
		},
		[]string{"service"},
	)
	queueLag := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "bg",
			Subsystem: "worker",
			Name:      "queue_lag_seconds",
			Help:      "Delay between manual creation and indexing start.",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"service"},
	)

	registry.MustRegister(indexTotal, indexDuration, indexInFlight, chunksPerManual, queueLag)

	return &WorkerMetrics{
		registry:        registry,
		indexTotal:      indexTotal,
		indexDuration:   indexDuration,
		indexInFlight:   indexInFlight,
		chunksPerManual: chunksPerManual,
		queueLag:        queueLag,
	}
}

func (m *WorkerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *WorkerMetrics) StartManual() {
	m.indexInFlight.Inc()
}

func (m *WorkerMetrics) FinishManual(service string, duration time.Duration, chunks int, err error) {
	m.indexInFlight.Dec()

	status := "success"
	if err != nil {
		status = "error"
	}

	m.indexTotal.WithLabelValues(service, status).Inc()
	m.indexDuration.WithLabelValues(service, status).Observe(duration.Seconds())
	if err == nil {
		m.chunksPerManual.WithLabelValues(service).Observe(float64(chunks))
	}
}

func (m *WorkerMetrics) ObserveQueueLag(service string, lag time.Duration) {
	if lag < 0 {
		return
	}
	m.queueLag.WithLabelValues(service).Observe(lag.Seconds())
}
