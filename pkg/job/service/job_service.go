package service

import (
	"context"

	"fieldwatch/entities"
)

type JobInput struct {
	JobType entities.JobType `json:"job_type"`
	FieldID *uint            `json:"field_id"`
	ImageID *uint            `json:"image_id"`
}

// JobPatch applies only the non-nil members. Logs are appended.
type JobPatch struct {
	Status       *entities.JobStatus `json:"status"`
	Progress     *float64            `json:"progress"`
	ErrorMessage *string             `json:"error_message"`
	ResultKey    *string             `json:"result_key"`
	ImageID      *uint               `json:"image_id"`
	Logs         []string            `json:"logs"`
}

type JobService interface {
	Create(ctx context.Context, uid string, in JobInput) (*entities.ProcessingJob, error)
	UpdateProgress(ctx context.Context, uid string, id uint, p JobPatch) (*entities.ProcessingJob, error)
	List(ctx context.Context, uid string, status *entities.JobStatus) ([]entities.ProcessingJob, error)
	Get(ctx context.Context, uid string, id uint) (*entities.ProcessingJob, error)
}
