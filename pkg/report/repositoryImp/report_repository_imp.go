package repositoryImp

import (
	"context"

	"gorm.io/gorm"

	"fieldwatch/entities"
	"fieldwatch/pkg/report/repository"
)

type reportRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.ReportRepository { return &reportRepo{db} }

func (r *reportRepo) Create(ctx context.Context, rep *entities.Report) error {
	return r.db.WithContext(ctx).Create(rep).Error
}

func (r *reportRepo) FindByID(ctx context.Context, id uint, uid string) (*entities.Report, error) {
	var rep entities.Report
	if err := r.db.WithContext(ctx).Where("report_id = ? AND user_id = ?", id, uid).First(&rep).Error; err != nil {
		return nil, err
	}
	return &rep, nil
}

func (r *reportRepo) ListByUser(ctx context.Context, uid string) ([]entities.Report, error) {
	var out []entities.Report
	err := r.db.WithContext(ctx).Where("user_id = ?", uid).Order("generated_at desc, report_id desc").Find(&out).Error
	return out, err
}
