package obsmetrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordCacheHitIncrementsCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg, nil)

	m.RecordCacheHit()
	m.RecordCacheHit()
	m.RecordCacheMiss()

	assert.Equal(t, float64(2), testutil.ToFloat64(m.cacheHits))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.cacheMisses))
}

func TestRecordScanObservesDurationAndCount(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg, nil)

	m.RecordScan(0.01)
	m.RecordScan(0.02)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.scansTotal))
}

func TestRecordSignalEmittedLabelsByConfidence(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg, nil)

	m.RecordSignalEmitted("high")
	m.RecordSignalEmitted("high")
	m.RecordSignalEmitted("low")

	assert.Equal(t, float64(2), testutil.ToFloat64(m.signalsEmittedTotal.WithLabelValues("high")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.signalsEmittedTotal.WithLabelValues("low")))
}

func TestSetPluginRegistrySizeTracksPerRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg, nil)

	m.SetPluginRegistrySize("filters", 3)
	m.SetPluginRegistrySize("selectors", 1)

	assert.Equal(t, float64(3), testutil.ToFloat64(m.pluginRegistrySize.WithLabelValues("filters")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.pluginRegistrySize.WithLabelValues("selectors")))
}

func TestDuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg, nil)

	assert.Panics(t, func() {
		New(reg, nil)
	})
}
