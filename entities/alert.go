package entities

import "time"

type AlertSeverity string

const (
	SeverityLow      AlertSeverity = "low"
	SeverityMedium   AlertSeverity = "medium"
	SeverityHigh     AlertSeverity = "high"
	SeverityCritical AlertSeverity = "critical"
)

func (s AlertSeverity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

type AlertType string

const (
	AlertPestRisk         AlertType = "pest_risk"
	AlertDiseaseDetected  AlertType = "disease_detected"
	AlertIrrigationNeeded AlertType = "irrigation_needed"
	AlertHarvestReady     AlertType = "harvest_ready"
	AlertWeatherWarning   AlertType = "weather_warning"
)

func (t AlertType) Valid() bool {
	switch t {
	case AlertPestRisk, AlertDiseaseDetected, AlertIrrigationNeeded, AlertHarvestReady, AlertWeatherWarning:
		return true
	}
	return false
}

type Alert struct {
	AlertID        uint          `gorm:"primaryKey" json:"alert_id"`
	FieldID        uint          `gorm:"index" json:"field_id"`
	UserID         string        `gorm:"index" json:"user_id"`
	Severity       AlertSeverity `gorm:"index" json:"severity"`
	Type           AlertType     `json:"type"`
	Title          string        `json:"title"`
	Description    string        `json:"description"`
	Lat            *float64      `json:"lat,omitempty"`
	Lng            *float64      `json:"lng,omitempty"`
	AcknowledgedAt *time.Time    `json:"acknowledged_at,omitempty"`
	AcknowledgedBy *string       `json:"acknowledged_by,omitempty"`
	Confidence     *float64      `json:"confidence,omitempty"`
	AffectedArea   *float64      `json:"affected_area,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
