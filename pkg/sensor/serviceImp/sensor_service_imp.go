package serviceImp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fieldwatch/entities"
	"fieldwatch/pkg/apperr"
	fieldsvc "fieldwatch/pkg/field/service"
	repo "fieldwatch/pkg/sensor/repository"
	"fieldwatch/pkg/sensor/service"
)

type sensorSvc struct {
	r      repo.SensorRepository
	fields fieldsvc.FieldService
	now    func() time.Time
}

func NewSensorService(r repo.SensorRepository, fields fieldsvc.FieldService) service.SensorService {
	return &sensorSvc{r: r, fields: fields, now: time.Now}
}

func (s *sensorSvc) Add(ctx context.Context, uid string, in service.ReadingInput) (*entities.SensorReading, error) {
	if _, err := s.fields.Owned(ctx, uid, in.FieldID); err != nil {
		return nil, err
	}
	if !in.SensorType.Valid() {
		return nil, apperr.Invalid("unknown sensor type %q", in.SensorType)
	}
	if strings.TrimSpace(in.SensorID) == "" {
		return nil, apperr.Invalid("sensor_id is required")
	}
	ts := s.now()
	if in.Timestamp != nil {
		ts = *in.Timestamp
	}
	ts = ts.UTC()
	m := &entities.SensorReading{
		FieldID:    in.FieldID,
		SensorID:   in.SensorID,
		SensorType: in.SensorType,
		Value:      in.Value,
		Unit:       in.Unit,
		Timestamp:  ts,
		Lat:        in.Lat,
		Lng:        in.Lng,
	}
	if err := s.r.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("add reading: %w", err)
	}
	return m, nil
}

// owns turns the ownership gate into (false, nil) for the list operations,
// which answer an empty list rather than an error.
func (s *sensorSvc) owns(ctx context.Context, uid string, fieldID uint) (bool, error) {
	_, err := s.fields.Owned(ctx, uid, fieldID)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, apperr.ErrUnauthenticated), errors.Is(err, apperr.ErrNotFoundOrForbidden):
		return false, nil
	default:
		return false, err
	}
}

func (s *sensorSvc) Query(ctx context.Context, uid string, q repo.ReadingQuery) ([]entities.SensorReading, error) {
	if q.Type != nil && !q.Type.Valid() {
		return nil, apperr.Invalid("unknown sensor type %q", *q.Type)
	}
	ok, err := s.owns(ctx, uid, q.FieldID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []entities.SensorReading{}, nil
	}
	out, err := s.r.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query readings: %w", err)
	}
	return out, nil
}

func (s *sensorSvc) Latest(ctx context.Context, uid string, fieldID uint) ([]entities.SensorReading, error) {
	ok, err := s.owns(ctx, uid, fieldID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []entities.SensorReading{}, nil
	}
	recent, err := s.r.Newest(ctx, fieldID, service.LatestWindow)
	if err != nil {
		return nil, fmt.Errorf("latest readings: %w", err)
	}
	seen := make(map[entities.SensorType]bool)
	out := []entities.SensorReading{}
	for _, m := range recent {
		if seen[m.SensorType] {
			continue
		}
		seen[m.SensorType] = true
		out = append(out, m)
	}
	return out, nil
}
