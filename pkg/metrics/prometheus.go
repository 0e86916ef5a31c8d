// Package metrics provides Prometheus metrics for the wage gap analytics service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Dataset snapshot
	datasetRows      prometheus.Gauge
	datasetCountries prometheus.Gauge
	datasetFallback  prometheus.Gauge
	snapshotVersion  prometheus.Gauge
	snapshotLastUnix prometheus.Gauge
	rowsDropped      prometheus.Counter

	// Loading and reloads
	reloads      *prometheus.CounterVec
	loadDuration prometheus.Histogram

	// Analytics
	queryDuration  *prometheus.HistogramVec
	queryResults   *prometheus.CounterVec
	regressionFits prometheus.Counter

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	rateLimited         prometheus.Counter

	// Errors
	errorRateByType     *prometheus.CounterVec
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
		namespace:        "wagegap",
		subsystem:        "api",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		customLabels:     make(map[string]string),
		metricPrefix:     "",
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) name(n string) string {
	if m.metricPrefix == "" {
		return n
	}
	return m.metricPrefix + "_" + n
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.customLabels)

	m.datasetRows = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name: m.name("dataset_rows"),
		Help: "Observations held by the current snapshot",
	})
	m.datasetCountries = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name: m.name("dataset_countries"),
		Help: "Distinct countries in the current snapshot",
	})
	m.datasetFallback = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name: m.name("dataset_fallback_active"),
		Help: "1 when the snapshot came from the fallback policy instead of the dataset file",
	})
	m.snapshotVersion = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name: m.name("snapshot_version"),
		Help: "Monotonic version of the installed snapshot",
	})
	m.snapshotLastUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name: m.name("snapshot_last_swap_unix"),
		Help: "Unix time of the last snapshot swap",
	})
	m.rowsDropped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name: m.name("dataset_rows_dropped_total"),
		Help: "Rows dropped during load because year or value did not parse",
	})

	m.reloads = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name: m.name("dataset_loads_total"),
		Help: "Dataset load attempts by trigger and result",
	}, []string{"trigger", "result"})
	m.loadDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name:    m.name("dataset_load_duration_milliseconds"),
		Help:    "Dataset load latency in milliseconds",
		Buckets: m.histogramBuckets,
	})

	m.queryDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name:    m.name("query_duration_milliseconds"),
		Help:    "Analytics query latency in milliseconds by operation",
		Buckets: m.histogramBuckets,
	}, []string{"operation"})
	m.queryResults = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name: m.name("query_results_total"),
		Help: "Analytics query outcomes by operation and result",
	}, []string{"operation", "result"})
	m.regressionFits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name: m.name("regression_fits_total"),
		Help: "Ordinary least squares fits computed",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name: m.name("http_requests_total"),
		Help: "Total number of HTTP requests by endpoint and method",
	}, []string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name:    m.name("http_request_duration_milliseconds"),
		Help:    "HTTP request duration in milliseconds",
		Buckets: m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})
	m.rateLimited = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name: m.name("http_rate_limited_total"),
		Help: "Requests rejected by the rate limiter",
	})

	m.errorRateByType = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name: m.name("errors_by_type_total"),
		Help: "Errors by type and severity",
	}, []string{"error_type", "severity"})
	m.errorRateByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name: m.name("errors_by_endpoint_total"),
		Help: "Errors by endpoint, method and type",
	}, []string{"endpoint", "method", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: "system", ConstLabels: labels,
		Name: m.name("memory_usage_bytes"),
		Help: "Current heap allocation in bytes",
	})
	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: "system", ConstLabels: labels,
		Name: m.name("goroutine_count"),
		Help: "Current number of goroutines",
	})
	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: "system", ConstLabels: labels,
		Name:    m.name("gc_pause_milliseconds"),
		Help:    "Average GC pause time in milliseconds",
		Buckets: m.histogramBuckets,
	})
}

// UpdateSnapshot publishes the shape of a freshly installed snapshot.
func (m *Manager) UpdateSnapshot(rows, countries int, fallback bool, version uint64) {
	if !m.enabled {
		return
	}
	m.datasetRows.Set(float64(rows))
	m.datasetCountries.Set(float64(countries))
	if fallback {
		m.datasetFallback.Set(1)
	} else {
		m.datasetFallback.Set(0)
	}
	m.snapshotVersion.Set(float64(version))
	m.snapshotLastUnix.Set(float64(time.Now().Unix()))
}

// RecordLoad records a dataset load attempt.
func (m *Manager) RecordLoad(trigger, result string, durationMs float64, dropped int) {
	if !m.enabled {
		return
	}
	m.reloads.WithLabelValues(trigger, result).Inc()
	m.loadDuration.Observe(durationMs)
	if dropped > 0 {
		m.rowsDropped.Add(float64(dropped))
	}
}

// RecordQuery records an analytics query outcome.
func (m *Manager) RecordQuery(operation, result string, durationMs float64) {
	if !m.enabled {
		return
	}
	m.queryDuration.WithLabelValues(operation).Observe(durationMs)
	m.queryResults.WithLabelValues(operation, result).Inc()
}

// RecordRegressionFit counts one OLS fit.
func (m *Manager) RecordRegressionFit() {
	if m.enabled {
		m.regressionFits.Inc()
	}
}

// RecordHTTPRequest records an HTTP request with its latency.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	if !m.enabled {
		return
	}
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordRateLimited counts one rejected request.
func (m *Manager) RecordRateLimited() {
	if m.enabled {
		m.rateLimited.Inc()
	}
}

// RecordError records an error by type and by endpoint.
func (m *Manager) RecordError(endpoint, method, errorType, severity string) {
	if !m.enabled {
		return
	}
	m.errorRateByType.WithLabelValues(errorType, severity).Inc()
	m.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystem publishes process level gauges.
func (m *Manager) UpdateSystem(memBytes uint64, goroutines int, avgGCPauseMs float64) {
	if !m.enabled {
		return
	}
	m.systemMemoryUsage.Set(float64(memBytes))
	m.systemGoroutineCount.Set(float64(goroutines))
	if avgGCPauseMs > 0 {
		m.systemGCPauseTime.Observe(avgGCPauseMs)
	}
}

// Package-level helpers backed by the global manager.

// UpdateSnapshot publishes snapshot gauges on the global manager.
func UpdateSnapshot(rows, countries int, fallback bool, version uint64) {
	globalManager.UpdateSnapshot(rows, countries, fallback, version)
}

// RecordLoad records a dataset load attempt on the global manager.
func RecordLoad(trigger, result string, durationMs float64, dropped int) {
	globalManager.RecordLoad(trigger, result, durationMs, dropped)
}

// RecordQuery records an analytics query on the global manager.
func RecordQuery(operation, result string, durationMs float64) {
	globalManager.RecordQuery(operation, result, durationMs)
}

// RecordRegressionFit counts one OLS fit on the global manager.
func RecordRegressionFit() { globalManager.RecordRegressionFit() }

// RecordHTTPRequest records an HTTP request on the global manager.
func RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode, durationMs)
}

// RecordRateLimited counts a rejected request on the global manager.
func RecordRateLimited() { globalManager.RecordRateLimited() }

// RecordError records an error on the global manager.
func RecordError(endpoint, method, errorType, severity string) {
	globalManager.RecordError(endpoint, method, errorType, severity)
}

// UpdateSystem publishes process gauges on the global manager.
func UpdateSystem(memBytes uint64, goroutines int, avgGCPauseMs float64) {
	globalManager.UpdateSystem(memBytes, goroutines, avgGCPauseMs)
}

// GetRegistry returns the custom registry served on /metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
