package repositoryImp

import (
	"context"

	"gorm.io/gorm"

	"fieldwatch/entities"
	"fieldwatch/pkg/field/repository"
)

type fieldRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.FieldRepository { return &fieldRepo{db} }

func (r *fieldRepo) Create(ctx context.Context, f *entities.Field) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *fieldRepo) FindByID(ctx context.Context, id uint, uid string) (*entities.Field, error) {
	var f entities.Field
	if err := r.db.WithContext(ctx).Where("field_id = ? AND owner_id = ?", id, uid).First(&f).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *fieldRepo) ListByOwner(ctx context.Context, uid string) ([]entities.Field, error) {
	var out []entities.Field
	if err := r.db.WithContext(ctx).Where("owner_id = ?", uid).Order("field_id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *fieldRepo) Update(ctx context.Context, f *entities.Field) error {
	return r.db.WithContext(ctx).Save(f).Error
}
