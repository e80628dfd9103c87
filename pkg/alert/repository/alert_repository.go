package repository

import (
	"context"
	"time"

	"fieldwatch/entities"
)

type AlertFilter struct {
	FieldID      *uint
	Acknowledged *bool
}

type AlertRepository interface {
	Create(ctx context.Context, a *entities.Alert) error
	FindByID(ctx context.Context, id uint, uid string) (*entities.Alert, error)
	// ListByUser returns newest first.
	ListByUser(ctx context.Context, uid string, f AlertFilter) ([]entities.Alert, error)
	// ListByField returns newest first.
	ListByField(ctx context.Context, fieldID uint) ([]entities.Alert, error)
	Acknowledge(ctx context.Context, id uint, by string, at time.Time) error
}
