package repositoryImp

import (
	"context"

	"gorm.io/gorm"

	"fieldwatch/entities"
	"fieldwatch/pkg/job/repository"
)

type jobRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.JobRepository { return &jobRepo{db} }

func (r *jobRepo) Create(ctx context.Context, j *entities.ProcessingJob) error {
	return r.db.WithContext(ctx).Create(j).Error
}

func (r *jobRepo) FindByID(ctx context.Context, id uint, uid string) (*entities.ProcessingJob, error) {
	var j entities.ProcessingJob
	if err := r.db.WithContext(ctx).Where("job_id = ? AND user_id = ?", id, uid).First(&j).Error; err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *jobRepo) ListByUser(ctx context.Context, uid string, status *entities.JobStatus) ([]entities.ProcessingJob, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", uid)
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	var out []entities.ProcessingJob
	if err := q.Order("started_at desc, job_id desc").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *jobRepo) Save(ctx context.Context, j *entities.ProcessingJob) error {
	return r.db.WithContext(ctx).Save(j).Error
}
