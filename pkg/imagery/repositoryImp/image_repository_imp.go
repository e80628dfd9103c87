package repositoryImp

import (
	"context"

	"gorm.io/gorm"

	"fieldwatch/entities"
	"fieldwatch/pkg/imagery/repository"
)

type imageRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.ImageRepository { return &imageRepo{db} }

func (r *imageRepo) Create(ctx context.Context, img *entities.Image) error {
	return r.db.WithContext(ctx).Create(img).Error
}

func (r *imageRepo) ListByField(ctx context.Context, fieldID uint) ([]entities.Image, error) {
	var out []entities.Image
	err := r.db.WithContext(ctx).Where("field_id = ?", fieldID).
		Order("capture_date desc, image_id desc").Find(&out).Error
	return out, err
}
