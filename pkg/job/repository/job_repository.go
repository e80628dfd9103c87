package repository

import (
	"context"

	"fieldwatch/entities"
)

type JobRepository interface {
	Create(ctx context.Context, j *entities.ProcessingJob) error
	FindByID(ctx context.Context, id uint, uid string) (*entities.ProcessingJob, error)
	// ListByUser returns the most recently started jobs first.
	ListByUser(ctx context.Context, uid string, status *entities.JobStatus) ([]entities.ProcessingJob, error)
	Save(ctx context.Context, j *entities.ProcessingJob) error
}
