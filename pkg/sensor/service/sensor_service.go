package service

import (
	"context"
	"time"

	"fieldwatch/entities"
	"fieldwatch/pkg/sensor/repository"
)

type ReadingInput struct {
	FieldID    uint                `json:"field_id"`
	SensorID   string              `json:"sensor_id"`
	SensorType entities.SensorType `json:"sensor_type"`
	Value      float64             `json:"value"`
	Unit       string              `json:"unit"`
	Timestamp  *time.Time          `json:"timestamp"`
	Lat        *float64            `json:"lat"`
	Lng        *float64            `json:"lng"`
}

type SensorService interface {
	Add(ctx context.Context, uid string, in ReadingInput) (*entities.SensorReading, error)
	Query(ctx context.Context, uid string, q repository.ReadingQuery) ([]entities.SensorReading, error)
	// Latest picks the first reading per sensor type among the field's newest
	// LatestWindow readings.
	Latest(ctx context.Context, uid string, fieldID uint) ([]entities.SensorReading, error)
}

const LatestWindow = 100
