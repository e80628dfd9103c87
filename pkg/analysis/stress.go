package analysis

import "math"

const (
	StressAlertTitle       = "Potential Plant Stress Detected"
	StressAlertDescription = "Automated analysis suggests stress indicators. Review field conditions and consider action."
	stressAffectedArea     = 0.5
)

// StressDecision is the outcome of the upload alert rule.
type StressDecision struct {
	Raise        bool
	Severity     string // medium|high
	Confidence   float64
	AffectedArea float64
}

// EvaluateStress decides whether an uploaded image's indices warrant an alert.
// ndvi is the approximate vegetation index (the green ratio), dryness the dry ratio.
func EvaluateStress(ndvi, dryness float64) StressDecision {
	if !(dryness > 0.4 || ndvi < 0.3) {
		return StressDecision{}
	}
	sev := "medium"
	if dryness > 0.6 || ndvi < 0.2 {
		sev = "high"
	}
	return StressDecision{
		Raise:        true,
		Severity:     sev,
		Confidence:   math.Min(0.95, math.Max(0.5, 1-ndvi+dryness)),
		AffectedArea: stressAffectedArea,
	}
}

// RoundIndex rounds to three decimals, the precision indices are stored at.
func RoundIndex(v float64) float64 {
	return math.Round(v*1000) / 1000
}
