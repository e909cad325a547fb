// Package obsmetrics collects Prometheus metrics for the scanning
// engine: cache hit-rate, scan counts, signals emitted, plugin registry
// sizes. Grounded on the teacher's internal/metrics package (field-per-
// metric struct, NewXMetrics(registry, logger) constructor,
// registry.MustRegister of every field).
package obsmetrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Metrics is the engine's full collector set.
type Metrics struct {
	cacheHits      prometheus.Counter
	cacheMisses    prometheus.Counter
	cacheEvictions prometheus.Counter

	scansTotal      prometheus.Counter
	scanErrorsTotal prometheus.Counter
	scanDuration    prometheus.Histogram

	signalsEmittedTotal *prometheus.CounterVec
	signalsRejectedTotal *prometheus.CounterVec

	pluginRegistrySize *prometheus.GaugeVec

	logger *zap.Logger
}

// New builds a Metrics collector set and registers every metric on
// registry.
func New(registry prometheus.Registerer, logger *zap.Logger) *Metrics {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Metrics{
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arbscan_cache_hits_total",
			Help: "Total number of TTLCache hits.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arbscan_cache_misses_total",
			Help: "Total number of TTLCache misses.",
		}),
		cacheEvictions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arbscan_cache_evictions_total",
			Help: "Total number of TTLCache evictions.",
		}),
		scansTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arbscan_scans_total",
			Help: "Total number of securities scanned through ChainExecutor.",
		}),
		scanErrorsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arbscan_scan_errors_total",
			Help: "Total number of scans that ended in a provider error.",
		}),
		scanDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "arbscan_scan_duration_seconds",
			Help:    "Duration of one ChainExecutor.Execute call.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10), // 1ms to ~1s
		}),
		signalsEmittedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "arbscan_signals_emitted_total",
			Help: "Total number of trading signals emitted, by confidence level.",
		}, []string{"confidence"}),
		signalsRejectedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "arbscan_signals_rejected_total",
			Help: "Total number of scans that ended in no signal, by reason.",
		}, []string{"reason"}),
		pluginRegistrySize: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "arbscan_plugin_registry_size",
			Help: "Number of entries currently registered in a plugin registry.",
		}, []string{"registry"}),
		logger: logger,
	}

	registry.MustRegister(
		m.cacheHits,
		m.cacheMisses,
		m.cacheEvictions,
		m.scansTotal,
		m.scanErrorsTotal,
		m.scanDuration,
		m.signalsEmittedTotal,
		m.signalsRejectedTotal,
		m.pluginRegistrySize,
	)

	return m
}

// RecordCacheHit increments the cache-hit counter.
func (m *Metrics) RecordCacheHit() { m.cacheHits.Inc() }

// RecordCacheMiss increments the cache-miss counter.
func (m *Metrics) RecordCacheMiss() { m.cacheMisses.Inc() }

// RecordCacheEviction increments the cache-eviction counter.
func (m *Metrics) RecordCacheEviction() { m.cacheEvictions.Inc() }

// RecordScan increments the scan counter and observes its duration.
func (m *Metrics) RecordScan(durationSeconds float64) {
	m.scansTotal.Inc()
	m.scanDuration.Observe(durationSeconds)
}

// RecordScanError increments the scan-error counter.
func (m *Metrics) RecordScanError() { m.scanErrorsTotal.Inc() }

// RecordSignalEmitted increments the emitted-signal counter for confidence.
func (m *Metrics) RecordSignalEmitted(confidence string) {
	m.signalsEmittedTotal.WithLabelValues(confidence).Inc()
}

// RecordSignalRejected increments the rejected-scan counter for reason.
func (m *Metrics) RecordSignalRejected(reason string) {
	m.signalsRejectedTotal.WithLabelValues(reason).Inc()
}

// SetPluginRegistrySize sets the current entry count for a named registry.
func (m *Metrics) SetPluginRegistrySize(registryName string, size int) {
	m.pluginRegistrySize.WithLabelValues(registryName).Set(float64(size))
}
