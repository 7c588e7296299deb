// Package metrics provides Prometheus metrics for the rollcall reconciliation engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the rollcall engine.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Pipeline metrics - one reconciliation run end to end
	rowsRead           *prometheus.CounterVec
	rowsSkipped        *prometheus.CounterVec
	identitiesResolved prometheus.Counter
	idsAllocated       prometheus.Counter
	eventsFormatted    prometheus.Counter
	summaryCount       prometheus.Gauge
	runDuration        prometheus.Histogram
	lastRunUnix        prometheus.Gauge
	runErrors          *prometheus.CounterVec

	// HTTP metrics for the read API
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "rollcall",
		subsystem:        "engine",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() {
	factory := promauto.With(m.registry)

	m.rowsRead = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rows_read_total",
		Help:      "Raw rows read per source table.",
	}, []string{"source"})

	m.rowsSkipped = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rows_skipped_total",
		Help:      "Rows skipped during formatting, by source and reason.",
	}, []string{"source", "reason"})

	m.identitiesResolved = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "identities_resolved_total",
		Help:      "Identity resolutions performed (existing or newly allocated).",
	})

	m.idsAllocated = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ids_allocated_total",
		Help:      "Fresh numeric identifiers allocated for previously unmapped names.",
	})

	m.eventsFormatted = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_formatted_total",
		Help:      "Canonical attendance events produced by the formatter.",
	})

	m.summaryCount = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "summaries",
		Help:      "Attendance summaries produced by the most recent run.",
	})

	m.runDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "run_duration_seconds",
		Help:      "End-to-end duration of a reconciliation run.",
		Buckets:   m.histogramBuckets,
	})

	m.lastRunUnix = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "last_run_timestamp_seconds",
		Help:      "Unix time of the last completed reconciliation run.",
	})

	m.runErrors = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "run_errors_total",
		Help:      "Fatal run errors by kind.",
	}, []string{"kind"})

	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "HTTP requests served by the read API.",
	}, []string{"endpoint", "method", "status"})

	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method"})
}

// GetRegistry returns the custom Prometheus registry used by the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package-level helpers delegating to the global manager.

// RecordRowRead increments the raw-row counter for a source table.
func RecordRowRead(source string) {
	if globalManager.enabled {
		globalManager.rowsRead.WithLabelValues(source).Inc()
	}
}

// RecordRowSkipped increments the skipped-row counter for a source and reason.
func RecordRowSkipped(source, reason string) {
	if globalManager.enabled {
		globalManager.rowsSkipped.WithLabelValues(source, reason).Inc()
	}
}

// RecordIdentityResolved increments the resolution counter.
func RecordIdentityResolved() {
	if globalManager.enabled {
		globalManager.identitiesResolved.Inc()
	}
}

// RecordIDAllocated increments the fresh-id allocation counter.
func RecordIDAllocated() {
	if globalManager.enabled {
		globalManager.idsAllocated.Inc()
	}
}

// RecordEventFormatted increments the canonical-event counter.
func RecordEventFormatted() {
	if globalManager.enabled {
		globalManager.eventsFormatted.Inc()
	}
}

// UpdateSummaryCount sets the summary gauge after a run.
func UpdateSummaryCount(n int) {
	if globalManager.enabled {
		globalManager.summaryCount.Set(float64(n))
	}
}

// RecordRunDuration observes the duration of a completed run in seconds.
func RecordRunDuration(seconds float64) {
	if globalManager.enabled {
		globalManager.runDuration.Observe(seconds)
	}
}

// UpdateLastRunUnix sets the last-run timestamp gauge.
func UpdateLastRunUnix(unix int64) {
	if globalManager.enabled {
		globalManager.lastRunUnix.Set(float64(unix))
	}
}

// RecordRunError increments the fatal-error counter for an error kind.
func RecordRunError(kind string) {
	if globalManager.enabled {
		globalManager.runErrors.WithLabelValues(kind).Inc()
	}
}

// RecordHTTPRequest records a served HTTP request.
func RecordHTTPRequest(endpoint, method, status string) {
	if globalManager.enabled {
		globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
	}
}

// RecordHTTPRequestDuration observes HTTP request latency in milliseconds.
func RecordHTTPRequestDuration(endpoint, method string, durationMs float64) {
	if globalManager.enabled {
		globalManager.httpRequestDuration.WithLabelValues(endpoint, method).Observe(durationMs)
	}
}
