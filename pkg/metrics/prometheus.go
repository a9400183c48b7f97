// Package metrics provides Prometheus metrics for the aura service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the aura service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Engine
	aurasComposed   *prometheus.CounterVec
	composeLatency  prometheus.Histogram
	severityScore   prometheus.Histogram
	weatherTypes    *prometheus.CounterVec
	randomizerPicks *prometheus.CounterVec
	batchSize       prometheus.Histogram
	peaksTracked    prometheus.Gauge

	// Queue
	queueSize        prometheus.Gauge
	queueCapacity    prometheus.Gauge
	queueUtilization prometheus.Gauge
	queueEnqueued    prometheus.Counter
	queueDequeued    prometheus.Counter
	queueRejected    *prometheus.CounterVec

	// Workers
	workerCount   prometheus.Gauge
	jobsProcessed prometheus.Counter
	jobsFailed    prometheus.Counter
	jobLatency    prometheus.Histogram

	// Weather source
	sourceFetches *prometheus.CounterVec
	sourceLatency *prometheus.HistogramVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	errorsByComponent *prometheus.CounterVec

	// Process
	memoryUsage    prometheus.Gauge
	goroutineCount prometheus.Gauge
	gcPauseTime    prometheus.Histogram
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
		namespace:        "aura",
		subsystem:        "engine",
		histogramBuckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100},
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     buckets,
		ConstLabels: m.constLabels,
	}
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // one block per metric
	auto := promauto.With(m.registry)

	m.aurasComposed = auto.NewCounterVec(
		m.counterOpts("auras_composed_total", "Total number of auras composed, by resolved mode"),
		[]string{"mode"},
	)
	m.composeLatency = auto.NewHistogram(
		m.histogramOpts("compose_latency_milliseconds", "Time spent composing one aura in milliseconds", m.histogramBuckets),
	)
	m.severityScore = auto.NewHistogram(
		m.histogramOpts("severity_score", "Distribution of severity scores", prometheus.LinearBuckets(0.1, 0.1, 10)),
	)
	m.weatherTypes = auto.NewCounterVec(
		m.counterOpts("weather_type_total", "Classified weather types"),
		[]string{"type"},
	)
	m.randomizerPicks = auto.NewCounterVec(
		m.counterOpts("randomizer_picks_total", "Modes chosen by the randomizer"),
		[]string{"mode"},
	)
	m.batchSize = auto.NewHistogram(
		m.histogramOpts("batch_size", "Number of items per batch request", prometheus.ExponentialBuckets(1, 2, 10)),
	)

	m.peaksTracked = auto.NewGauge(m.gaugeOpts("peaks_tracked", "Places on the severity peaks board"))

	m.queueSize = auto.NewGauge(m.gaugeOpts("queue_size", "Current number of queued render jobs"))
	m.queueCapacity = auto.NewGauge(m.gaugeOpts("queue_capacity", "Maximum number of queued render jobs"))
	m.queueUtilization = auto.NewGauge(m.gaugeOpts("queue_utilization_ratio", "Queue size divided by capacity"))
	m.queueEnqueued = auto.NewCounter(m.counterOpts("queue_enqueued_total", "Render jobs accepted by the queue"))
	m.queueDequeued = auto.NewCounter(m.counterOpts("queue_dequeued_total", "Render jobs handed to workers"))
	m.queueRejected = auto.NewCounterVec(
		m.counterOpts("queue_rejected_total", "Render jobs refused by the queue, by reason"),
		[]string{"reason"},
	)

	m.workerCount = auto.NewGauge(m.gaugeOpts("worker_count", "Number of render workers"))
	m.jobsProcessed = auto.NewCounter(m.counterOpts("jobs_processed_total", "Render jobs completed"))
	m.jobsFailed = auto.NewCounter(m.counterOpts("jobs_failed_total", "Render jobs that returned an error"))
	m.jobLatency = auto.NewHistogram(
		m.histogramOpts("job_latency_milliseconds", "Time from dequeue to reply in milliseconds", m.histogramBuckets),
	)

	m.sourceFetches = auto.NewCounterVec(
		m.counterOpts("source_fetches_total", "Weather source requests by endpoint and outcome"),
		[]string{"endpoint", "outcome"},
	)
	m.sourceLatency = auto.NewHistogramVec(
		m.histogramOpts("source_latency_milliseconds", "Weather source request latency in milliseconds",
			[]float64{10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000}),
		[]string{"endpoint"},
	)

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_seconds", "HTTP request duration in seconds", prometheus.DefBuckets),
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorsByComponent = auto.NewCounterVec(
		m.counterOpts("errors_total", "Errors by component and type"),
		[]string{"component", "error_type"},
	)

	m.memoryUsage = auto.NewGauge(m.gaugeOpts("memory_usage_bytes", "Heap bytes allocated"))
	m.goroutineCount = auto.NewGauge(m.gaugeOpts("goroutines", "Number of goroutines"))
	m.gcPauseTime = auto.NewHistogram(
		m.histogramOpts("gc_pause_milliseconds", "Average GC pause in milliseconds", []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10}),
	)
}

// RecordAuraComposed counts one composed aura and its latency.
func RecordAuraComposed(mode string, latencyMs float64) {
	globalManager.aurasComposed.WithLabelValues(mode).Inc()
	globalManager.composeLatency.Observe(latencyMs)
}

// RecordSeverity records a severity score and its weather type.
func RecordSeverity(score float64, weatherType string) {
	globalManager.severityScore.Observe(score)
	globalManager.weatherTypes.WithLabelValues(weatherType).Inc()
}

// RecordRandomizerPick counts a mode chosen by the randomizer.
func RecordRandomizerPick(mode string) {
	globalManager.randomizerPicks.WithLabelValues(mode).Inc()
}

// RecordBatchSize records the item count of a batch request.
func RecordBatchSize(n int) {
	globalManager.batchSize.Observe(float64(n))
}

// UpdatePeaksTracked sets the number of places on the peaks board.
func UpdatePeaksTracked(n int) {
	globalManager.peaksTracked.Set(float64(n))
}

// UpdateQueueSize sets the current queue size.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the maximum queue capacity.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// UpdateQueueUtilization sets the queue utilization ratio.
func UpdateQueueUtilization(utilization float64) {
	globalManager.queueUtilization.Set(utilization)
}

// RecordQueueEnqueue counts an accepted job.
func RecordQueueEnqueue() {
	globalManager.queueEnqueued.Inc()
}

// RecordQueueDequeue counts a job handed to a worker.
func RecordQueueDequeue() {
	globalManager.queueDequeued.Inc()
}

// RecordQueueRejected counts a refused job.
func RecordQueueRejected(reason string) {
	globalManager.queueRejected.WithLabelValues(reason).Inc()
}

// UpdateWorkerCount sets the current worker count.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// RecordJobProcessed counts a completed job and its latency.
func RecordJobProcessed(latencyMs float64) {
	globalManager.jobsProcessed.Inc()
	globalManager.jobLatency.Observe(latencyMs)
}

// RecordJobFailed counts a job that returned an error.
func RecordJobFailed() {
	globalManager.jobsFailed.Inc()
}

// RecordSourceFetch records one weather source request.
func RecordSourceFetch(endpoint, outcome string, latencyMs float64) {
	globalManager.sourceFetches.WithLabelValues(endpoint, outcome).Inc()
	globalManager.sourceLatency.WithLabelValues(endpoint).Observe(latencyMs)
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in seconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// UpdateSystemMemoryUsage sets the heap allocation gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.memoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine gauge.
func UpdateSystemGoroutineCount(count int) {
	globalManager.goroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records the average GC pause.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.gcPauseTime.Observe(pauseMs)
}
