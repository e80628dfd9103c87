package serviceImp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"fieldwatch/entities"
	repo "fieldwatch/pkg/alert/repository"
	"fieldwatch/pkg/alert/service"
	"fieldwatch/pkg/apperr"
	fieldsvc "fieldwatch/pkg/field/service"
)

type alertSvc struct {
	r      repo.AlertRepository
	fields fieldsvc.FieldService
	log    *zap.Logger
	now    func() time.Time
}

func NewAlertService(r repo.AlertRepository, fields fieldsvc.FieldService, log *zap.Logger) service.AlertService {
	return &alertSvc{r: r, fields: fields, log: log.Named("alert"), now: time.Now}
}

func (s *alertSvc) Create(ctx context.Context, uid string, in service.AlertInput) (*entities.Alert, error) {
	if _, err := s.fields.Owned(ctx, uid, in.FieldID); err != nil {
		return nil, err
	}
	if !in.Severity.Valid() {
		return nil, apperr.Invalid("unknown severity %q", in.Severity)
	}
	if !in.Type.Valid() {
		return nil, apperr.Invalid("unknown alert type %q", in.Type)
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, apperr.Invalid("title is required")
	}
	a := &entities.Alert{
		FieldID:      in.FieldID,
		UserID:       uid,
		Severity:     in.Severity,
		Type:         in.Type,
		Title:        title,
		Description:  in.Description,
		Lat:          in.Lat,
		Lng:          in.Lng,
		Confidence:   in.Confidence,
		AffectedArea: in.AffectedArea,
	}
	if err := s.r.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("create alert: %w", err)
	}
	s.log.Info("alert raised",
		zap.Uint("alert_id", a.AlertID),
		zap.Uint("field_id", a.FieldID),
		zap.String("severity", string(a.Severity)),
		zap.String("type", string(a.Type)))
	return a, nil
}

func (s *alertSvc) ListForUser(ctx context.Context, uid string, f repo.AlertFilter) ([]entities.Alert, error) {
	if uid == "" {
		return []entities.Alert{}, nil
	}
	out, err := s.r.ListByUser(ctx, uid, f)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	return out, nil
}

func (s *alertSvc) ListForField(ctx context.Context, uid string, fieldID uint) ([]entities.Alert, error) {
	if _, err := s.fields.Owned(ctx, uid, fieldID); err != nil {
		if errors.Is(err, apperr.ErrUnauthenticated) || errors.Is(err, apperr.ErrNotFoundOrForbidden) {
			return []entities.Alert{}, nil
		}
		return nil, err
	}
	out, err := s.r.ListByField(ctx, fieldID)
	if err != nil {
		return nil, fmt.Errorf("list field alerts: %w", err)
	}
	return out, nil
}

func (s *alertSvc) Acknowledge(ctx context.Context, uid string, alertID uint) (*entities.Alert, error) {
	if uid == "" {
		return nil, apperr.ErrUnauthenticated
	}
	if _, err := s.r.FindByID(ctx, alertID, uid); err != nil {
		return nil, apperr.FromLookup(err)
	}
	if err := s.r.Acknowledge(ctx, alertID, uid, s.now()); err != nil {
		return nil, fmt.Errorf("acknowledge alert: %w", err)
	}
	a, err := s.r.FindByID(ctx, alertID, uid)
	if err != nil {
		return nil, apperr.FromLookup(err)
	}
	return a, nil
}
