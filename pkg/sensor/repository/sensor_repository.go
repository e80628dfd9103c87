package repository

import (
	"context"
	"time"

	"fieldwatch/entities"
)

// ReadingQuery bounds are inclusive; nil means unbounded.
type ReadingQuery struct {
	FieldID uint
	Type    *entities.SensorType
	Start   *time.Time
	End     *time.Time
}

type SensorRepository interface {
	Create(ctx context.Context, r *entities.SensorReading) error
	CreateBatch(ctx context.Context, rs []entities.SensorReading) error
	// Query returns newest first.
	Query(ctx context.Context, q ReadingQuery) ([]entities.SensorReading, error)
	Newest(ctx context.Context, fieldID uint, limit int) ([]entities.SensorReading, error)
}
