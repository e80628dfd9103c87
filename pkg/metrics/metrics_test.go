package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalysisMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewAnalysisMetrics(reg)
	require.NoError(t, err)

	m.ObserveClassification("Healthy")
	m.ObserveClassification("Healthy")
	m.ObserveAlert("high")
	m.ObserveDecodeFailure()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Classifications.WithLabelValues("Healthy")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AlertsRaised.WithLabelValues("high")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DecodeFailures))
}

func TestAnalysisMetrics_DoubleRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewAnalysisMetrics(reg)
	require.NoError(t, err)
	_, err = NewAnalysisMetrics(reg)
	assert.Error(t, err)
}

func TestAnalysisMetrics_NilSafe(t *testing.T) {
	var m *AnalysisMetrics
	assert.NotPanics(t, func() {
		m.ObserveClassification("Stressed")
		m.ObserveAlert("medium")
		m.ObserveDecodeFailure()
	})
}
