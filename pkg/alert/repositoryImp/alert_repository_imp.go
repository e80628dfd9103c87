package repositoryImp

import (
	"context"
	"time"

	"gorm.io/gorm"

	"fieldwatch/entities"
	"fieldwatch/pkg/alert/repository"
)

type alertRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.AlertRepository { return &alertRepo{db} }

func (r *alertRepo) Create(ctx context.Context, a *entities.Alert) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *alertRepo) FindByID(ctx context.Context, id uint, uid string) (*entities.Alert, error) {
	var a entities.Alert
	if err := r.db.WithContext(ctx).Where("alert_id = ? AND user_id = ?", id, uid).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *alertRepo) ListByUser(ctx context.Context, uid string, f repository.AlertFilter) ([]entities.Alert, error) {
	q := r.db.WithContext(ctx).Model(&entities.Alert{}).Where("user_id = ?", uid)
	if f.FieldID != nil {
		q = q.Where("field_id = ?", *f.FieldID)
	}
	if f.Acknowledged != nil {
		if *f.Acknowledged {
			q = q.Where("acknowledged_at IS NOT NULL")
		} else {
			q = q.Where("acknowledged_at IS NULL")
		}
	}
	var out []entities.Alert
	return out, q.Order("created_at desc, alert_id desc").Find(&out).Error
}

func (r *alertRepo) ListByField(ctx context.Context, fieldID uint) ([]entities.Alert, error) {
	var out []entities.Alert
	err := r.db.WithContext(ctx).Where("field_id = ?", fieldID).Order("created_at desc, alert_id desc").Find(&out).Error
	return out, err
}

func (r *alertRepo) Acknowledge(ctx context.Context, id uint, by string, at time.Time) error {
	return r.db.WithContext(ctx).Model(&entities.Alert{}).Where("alert_id = ?", id).
		Updates(map[string]any{"acknowledged_at": at.UTC(), "acknowledged_by": by}).Error
}
