package service

import (
	"context"

	"fieldwatch/entities"
	"fieldwatch/pkg/alert/repository"
)

type AlertInput struct {
	FieldID      uint                   `json:"field_id"`
	Severity     entities.AlertSeverity `json:"severity"`
	Type         entities.AlertType     `json:"type"`
	Title        string                 `json:"title"`
	Description  string                 `json:"description"`
	Lat          *float64               `json:"lat"`
	Lng          *float64               `json:"lng"`
	Confidence   *float64               `json:"confidence"`
	AffectedArea *float64               `json:"affected_area"`
}

type AlertService interface {
	Create(ctx context.Context, uid string, in AlertInput) (*entities.Alert, error)
	ListForUser(ctx context.Context, uid string, f repository.AlertFilter) ([]entities.Alert, error)
	ListForField(ctx context.Context, uid string, fieldID uint) ([]entities.Alert, error)
	// Acknowledge stamps the alert for uid. Acknowledging twice overwrites the first stamp.
	Acknowledge(ctx context.Context, uid string, alertID uint) (*entities.Alert, error)
}
