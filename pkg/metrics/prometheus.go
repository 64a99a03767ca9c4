// Package metrics provides Prometheus metrics for the smokehouse estimator service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the smokehouse service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Estimator
	predictions      *prometheus.CounterVec
	predictionErrors *prometheus.CounterVec
	predictedScore   prometheus.Histogram
	cookHours        prometheus.Histogram

	// Historical sessions
	historySessions     prometheus.Gauge
	historyLoadDuration prometheus.Histogram
	historyQueries      prometheus.Counter
	historyQueryLatency prometheus.Histogram

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorRateByEndpoint *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "smokehouse",
		subsystem:        "estimator",
		histogramBuckets: prometheus.DefBuckets,
		constLabels:      map[string]string{},
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels, Buckets: buckets}
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every metric definition
	auto := promauto.With(m.registry)

	m.predictions = auto.NewCounterVec(
		m.counterOpts("predictions_total", "Total number of estimates served, by meat type"),
		[]string{"meat_type"},
	)
	m.predictionErrors = auto.NewCounterVec(
		m.counterOpts("prediction_errors_total", "Total number of rejected estimate requests, by kind"),
		[]string{"kind"},
	)
	m.predictedScore = auto.NewHistogram(m.histogramOpts(
		"predicted_score", "Distribution of predicted review scores",
		prometheus.LinearBuckets(1, 0.5, 19),
	))
	m.cookHours = auto.NewHistogram(m.histogramOpts(
		"estimated_cook_hours", "Distribution of estimated cook times in hours",
		prometheus.LinearBuckets(1, 2, 13),
	))

	m.historySessions = auto.NewGauge(m.gaugeOpts(
		"history_sessions", "Number of historical sessions loaded",
	))
	m.historyLoadDuration = auto.NewHistogram(m.histogramOpts(
		"history_load_duration_milliseconds", "Time taken to load the historical workbook",
		prometheus.ExponentialBuckets(1, 2, 14),
	))
	m.historyQueries = auto.NewCounter(m.counterOpts(
		"history_queries_total", "Total number of historical session lookups",
	))
	m.historyQueryLatency = auto.NewHistogram(m.histogramOpts(
		"history_query_latency_milliseconds", "Historical session lookup latency in milliseconds",
		m.histogramBuckets,
	))

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.histogramBuckets),
		[]string{"endpoint", "method", "status_code"},
	)
	m.errorRateByEndpoint = auto.NewCounterVec(
		m.counterOpts("errors_by_endpoint_total", "Total number of errors by endpoint"),
		[]string{"endpoint", "method", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts(
		"system_memory_usage_bytes", "System memory usage in bytes",
	))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts(
		"system_goroutine_count", "Number of goroutines",
	))
	m.systemGCPauseTime = auto.NewHistogram(m.histogramOpts(
		"system_gc_pause_time_milliseconds", "GC pause time in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
	))
}

// RecordPrediction records one served estimate.
func RecordPrediction(meatType string, score, cookHours float64) {
	globalManager.predictions.WithLabelValues(meatType).Inc()
	globalManager.predictedScore.Observe(score)
	globalManager.cookHours.Observe(cookHours)
}

// RecordPredictionError increments the rejected estimate counter for kind.
func RecordPredictionError(kind string) {
	globalManager.predictionErrors.WithLabelValues(kind).Inc()
}

// UpdateHistorySessions sets the number of loaded historical sessions.
func UpdateHistorySessions(count int) {
	globalManager.historySessions.Set(float64(count))
}

// RecordHistoryLoadDuration records how long the workbook took to load.
func RecordHistoryLoadDuration(durationMs float64) {
	globalManager.historyLoadDuration.Observe(durationMs)
}

// RecordHistoryQuery records one historical session lookup.
func RecordHistoryQuery(latencyMs float64) {
	globalManager.historyQueries.Inc()
	globalManager.historyQueryLatency.Observe(latencyMs)
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByEndpoint increments the error counter for an endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the current memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the current goroutine count.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records the average GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
