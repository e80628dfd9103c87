package repository

import (
	"context"

	"fieldwatch/entities"
)

type FieldRepository interface {
	Create(ctx context.Context, f *entities.Field) error
	// FindByID only matches fields owned by uid.
	FindByID(ctx context.Context, id uint, uid string) (*entities.Field, error)
	ListByOwner(ctx context.Context, uid string) ([]entities.Field, error)
	Update(ctx context.Context, f *entities.Field) error
}
