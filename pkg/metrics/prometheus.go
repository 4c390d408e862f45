// Package metrics provides Prometheus metrics for the IPL analysis tool.
package metrics

import (
	"fmt"
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Report run outcomes used as the status label.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Manager owns every metric of a session.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         *prometheus.Registry

	// Reports
	reportsRun        *prometheus.CounterVec
	reportDuration    *prometheus.HistogramVec
	invalidSelections prometheus.Counter
	renderFailures    prometheus.Counter

	// Dataset
	tableRecords    prometheus.Gauge
	unparsedDates   prometheus.Gauge
	unparsedNumbers prometheus.Gauge
	persistedRows   prometheus.Gauge
	loadDuration    prometheus.Histogram

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager. Without WithPrometheusRegistry it
// registers on a fresh private registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "ipl",
		subsystem:        "analysis",
		histogramBuckets: prometheus.DefBuckets,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.reportsRun = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "reports_run_total",
		Help:        "Total number of report runs by report and outcome",
		ConstLabels: m.constLabels,
	}, []string{"report", "status"})

	m.reportDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "report_duration_seconds",
		Help:        "Time spent computing and publishing a report",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, []string{"report"})

	m.invalidSelections = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "invalid_selections_total",
		Help:        "Total number of menu inputs that named no report",
		ConstLabels: m.constLabels,
	})

	m.renderFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "render_failures_total",
		Help:        "Total number of reports that could not be rendered",
		ConstLabels: m.constLabels,
	})

	m.tableRecords = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "table_records",
		Help:        "Number of match records loaded",
		ConstLabels: m.constLabels,
	})

	m.unparsedDates = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "unparsed_dates",
		Help:        "Number of non-empty dates that could not be parsed",
		ConstLabels: m.constLabels,
	})

	m.unparsedNumbers = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "unparsed_numbers",
		Help:        "Number of non-empty numeric cells that could not be parsed",
		ConstLabels: m.constLabels,
	})

	m.persistedRows = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "persisted_rows",
		Help:        "Number of rows written to the store",
		ConstLabels: m.constLabels,
	})

	m.loadDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "load_duration_seconds",
		Help:        "Time spent loading and deriving the match table",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   "system",
		Name:        "memory_usage_bytes",
		Help:        "Heap bytes allocated",
		ConstLabels: m.constLabels,
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   "system",
		Name:        "goroutines",
		Help:        "Number of goroutines",
		ConstLabels: m.constLabels,
	})
}

// RecordReportRun counts one run of report with the given status.
func (m *Manager) RecordReportRun(report, status string) {
	m.reportsRun.WithLabelValues(report, status).Inc()
}

// RecordReportDuration observes the time a report took, in seconds.
func (m *Manager) RecordReportDuration(report string, seconds float64) {
	m.reportDuration.WithLabelValues(report).Observe(seconds)
}

// RecordInvalidSelection counts a rejected menu input.
func (m *Manager) RecordInvalidSelection() { m.invalidSelections.Inc() }

// RecordRenderFailure counts a failed render.
func (m *Manager) RecordRenderFailure() { m.renderFailures.Inc() }

// UpdateTableRecords sets the loaded record count.
func (m *Manager) UpdateTableRecords(n int) { m.tableRecords.Set(float64(n)) }

// UpdateUnparsedDates sets the number of dates that failed to parse.
func (m *Manager) UpdateUnparsedDates(n int) { m.unparsedDates.Set(float64(n)) }

// UpdateUnparsedNumbers sets the number of numeric cells that failed to parse.
func (m *Manager) UpdateUnparsedNumbers(n int) { m.unparsedNumbers.Set(float64(n)) }

// UpdatePersistedRows sets the number of rows written to the store.
func (m *Manager) UpdatePersistedRows(n int64) { m.persistedRows.Set(float64(n)) }

// RecordLoadDuration observes the load time in seconds.
func (m *Manager) RecordLoadDuration(seconds float64) { m.loadDuration.Observe(seconds) }

// UpdateSystemMetrics samples heap usage and goroutine count.
func (m *Manager) UpdateSystemMetrics() {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	m.systemMemoryUsage.Set(float64(ms.Alloc))
	m.systemGoroutineCount.Set(float64(runtime.NumGoroutine()))
}

// Registry returns the registry the manager's metrics live in.
func (m *Manager) Registry() *prometheus.Registry { return m.registry }

// WriteTextfile writes every metric in the text exposition format to path,
// for pickup by a node exporter textfile collector.
func (m *Manager) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrExport, path, err)
	}
	return nil
}

// RecordReportRun counts one run of report with the given status.
func RecordReportRun(report, status string) { globalManager.RecordReportRun(report, status) }

// RecordReportDuration observes the time a report took, in seconds.
func RecordReportDuration(report string, seconds float64) {
	globalManager.RecordReportDuration(report, seconds)
}

// RecordInvalidSelection counts a rejected menu input.
func RecordInvalidSelection() { globalManager.RecordInvalidSelection() }

// RecordRenderFailure counts a failed render.
func RecordRenderFailure() { globalManager.RecordRenderFailure() }

// UpdateTableRecords sets the loaded record count.
func UpdateTableRecords(n int) { globalManager.UpdateTableRecords(n) }

// UpdateUnparsedDates sets the number of dates that failed to parse.
func UpdateUnparsedDates(n int) { globalManager.UpdateUnparsedDates(n) }

// UpdateUnparsedNumbers sets the number of numeric cells that failed to parse.
func UpdateUnparsedNumbers(n int) { globalManager.UpdateUnparsedNumbers(n) }

// UpdatePersistedRows sets the number of rows written to the store.
func UpdatePersistedRows(n int64) { globalManager.UpdatePersistedRows(n) }

// RecordLoadDuration observes the load time in seconds.
func RecordLoadDuration(seconds float64) { globalManager.RecordLoadDuration(seconds) }

// UpdateSystemMetrics samples heap usage and goroutine count.
func UpdateSystemMetrics() { globalManager.UpdateSystemMetrics() }

// WriteTextfile exports the global registry to path.
func WriteTextfile(path string) error { return globalManager.WriteTextfile(path) }

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
