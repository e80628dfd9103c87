// Package metrics exposes Prometheus counters for image analysis and alerting.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// AnalysisMetrics counts classifier runs and the alerts they raise.
type AnalysisMetrics struct {
	Classifications *prometheus.CounterVec
	AlertsRaised    *prometheus.CounterVec
	DecodeFailures  prometheus.Counter
}

// NewAnalysisMetrics creates the collectors and registers them on registry.
func NewAnalysisMetrics(registry prometheus.Registerer) (*AnalysisMetrics, error) {
	m := &AnalysisMetrics{
		Classifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fieldwatch_image_classifications_total",
			Help: "Images classified, by resulting health condition",
		}, []string{"health"}),
		AlertsRaised: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fieldwatch_stress_alerts_total",
			Help: "Stress alerts raised from image indices, by severity",
		}, []string{"severity"}),
		DecodeFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fieldwatch_image_decode_failures_total",
			Help: "Uploaded images that could not be decoded",
		}),
	}
	for _, c := range []prometheus.Collector{m.Classifications, m.AlertsRaised, m.DecodeFailures} {
		if err := registry.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register analysis metrics: %w", err)
		}
	}
	return m, nil
}

// The methods below tolerate a nil receiver so callers can run without metrics.

func (m *AnalysisMetrics) ObserveClassification(health string) {
	if m == nil {
		return
	}
	m.Classifications.WithLabelValues(health).Inc()
}

func (m *AnalysisMetrics) ObserveAlert(severity string) {
	if m == nil {
		return
	}
	m.AlertsRaised.WithLabelValues(severity).Inc()
}

func (m *AnalysisMetrics) ObserveDecodeFailure() {
	if m == nil {
		return
	}
	m.DecodeFailures.Inc()
}
