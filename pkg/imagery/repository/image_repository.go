package repository

import (
	"context"

	"fieldwatch/entities"
)

type ImageRepository interface {
	Create(ctx context.Context, img *entities.Image) error
	// ListByField returns the newest capture first.
	ListByField(ctx context.Context, fieldID uint) ([]entities.Image, error)
}
