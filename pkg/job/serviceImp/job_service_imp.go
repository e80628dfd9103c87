package serviceImp

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"fieldwatch/entities"
	"fieldwatch/pkg/apperr"
	fieldsvc "fieldwatch/pkg/field/service"
	repo "fieldwatch/pkg/job/repository"
	"fieldwatch/pkg/job/service"
)

type jobSvc struct {
	r      repo.JobRepository
	fields fieldsvc.FieldService
	log    *zap.Logger
	now    func() time.Time
}

func NewJobService(r repo.JobRepository, fields fieldsvc.FieldService, log *zap.Logger) service.JobService {
	return &jobSvc{r: r, fields: fields, log: log.Named("job"), now: time.Now}
}

func (s *jobSvc) Create(ctx context.Context, uid string, in service.JobInput) (*entities.ProcessingJob, error) {
	if uid == "" {
		return nil, apperr.ErrUnauthenticated
	}
	if !in.JobType.Valid() {
		return nil, apperr.Invalid("unknown job type %q", in.JobType)
	}
	if in.FieldID != nil {
		if _, err := s.fields.Owned(ctx, uid, *in.FieldID); err != nil {
			return nil, err
		}
	}
	j := &entities.ProcessingJob{
		UserID:    uid,
		FieldID:   in.FieldID,
		ImageID:   in.ImageID,
		JobType:   in.JobType,
		Status:    entities.JobPending,
		Progress:  0,
		StartedAt: s.now(),
		Logs:      []string{},
	}
	if err := s.r.Create(ctx, j); err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}
	s.log.Debug("job created", zap.Uint("job_id", j.JobID), zap.String("type", string(j.JobType)))
	return j, nil
}

func (s *jobSvc) UpdateProgress(ctx context.Context, uid string, id uint, p service.JobPatch) (*entities.ProcessingJob, error) {
	j, err := s.Get(ctx, uid, id)
	if err != nil {
		return nil, err
	}
	if p.Progress != nil {
		if *p.Progress < 0 || *p.Progress > 100 {
			return nil, apperr.Invalid("progress must be within 0..100")
		}
		j.Progress = *p.Progress
	}
	if p.Status != nil {
		if !p.Status.Valid() {
			return nil, apperr.Invalid("unknown job status %q", *p.Status)
		}
		if p.Status.Terminal() && !j.Status.Terminal() {
			at := s.now()
			j.CompletedAt = &at
		}
		j.Status = *p.Status
	}
	if p.ErrorMessage != nil {
		j.ErrorMessage = p.ErrorMessage
	}
	if p.ResultKey != nil {
		j.ResultKey = p.ResultKey
	}
	if p.ImageID != nil {
		j.ImageID = p.ImageID
	}
	j.Logs = append(j.Logs, p.Logs...)

	if err := s.r.Save(ctx, j); err != nil {
		return nil, fmt.Errorf("update job: %w", err)
	}
	if j.Status == entities.JobFailed {
		s.log.Warn("job failed", zap.Uint("job_id", j.JobID), zap.Stringp("error", j.ErrorMessage))
	}
	return j, nil
}

func (s *jobSvc) List(ctx context.Context, uid string, status *entities.JobStatus) ([]entities.ProcessingJob, error) {
	if uid == "" {
		return []entities.ProcessingJob{}, nil
	}
	if status != nil && !status.Valid() {
		return nil, apperr.Invalid("unknown job status %q", *status)
	}
	out, err := s.r.ListByUser(ctx, uid, status)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return out, nil
}

func (s *jobSvc) Get(ctx context.Context, uid string, id uint) (*entities.ProcessingJob, error) {
	if uid == "" {
		return nil, apperr.ErrUnauthenticated
	}
	j, err := s.r.FindByID(ctx, id, uid)
	if err != nil {
		return nil, apperr.FromLookup(err)
	}
	return j, nil
}
