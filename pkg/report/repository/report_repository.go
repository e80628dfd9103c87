package repository

import (
	"context"

	"fieldwatch/entities"
)

type ReportRepository interface {
	Create(ctx context.Context, r *entities.Report) error
	FindByID(ctx context.Context, id uint, uid string) (*entities.Report, error)
	// ListByUser returns the newest report first.
	ListByUser(ctx context.Context, uid string) ([]entities.Report, error)
}
