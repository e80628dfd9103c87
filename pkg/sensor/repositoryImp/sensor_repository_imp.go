package repositoryImp

import (
	"context"

	"gorm.io/gorm"

	"fieldwatch/entities"
	"fieldwatch/pkg/sensor/repository"
)

type sensorRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.SensorRepository { return &sensorRepo{db} }

func (r *sensorRepo) Create(ctx context.Context, m *entities.SensorReading) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *sensorRepo) CreateBatch(ctx context.Context, rs []entities.SensorReading) error {
	if len(rs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(rs, 200).Error
}

func (r *sensorRepo) Query(ctx context.Context, q repository.ReadingQuery) ([]entities.SensorReading, error) {
	tx := r.db.WithContext(ctx).Where("field_id = ?", q.FieldID)
	if q.Type != nil {
		tx = tx.Where("sensor_type = ?", *q.Type)
	}
	if q.Start != nil {
		tx = tx.Where("timestamp >= ?", q.Start.UTC())
	}
	if q.End != nil {
		tx = tx.Where("timestamp <= ?", q.End.UTC())
	}
	var out []entities.SensorReading
	if err := tx.Order("timestamp desc, reading_id desc").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *sensorRepo) Newest(ctx context.Context, fieldID uint, limit int) ([]entities.SensorReading, error) {
	var out []entities.SensorReading
	err := r.db.WithContext(ctx).Where("field_id = ?", fieldID).
		Order("timestamp desc, reading_id desc").Limit(limit).Find(&out).Error
	return out, err
}
