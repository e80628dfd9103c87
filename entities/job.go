package entities

import "time"

type JobType string

const (
	JobImageProcessing  JobType = "image_processing"
	JobIndexCalculation JobType = "index_calculation"
	JobMLInference      JobType = "ml_inference"
	JobReportGeneration JobType = "report_generation"
)

func (t JobType) Valid() bool {
	switch t {
	case JobImageProcessing, JobIndexCalculation, JobMLInference, JobReportGeneration:
		return true
	}
	return false
}

type JobStatus string

const (
	JobPending    JobStatus = "pending"
	JobProcessing JobStatus = "processing"
	JobCompleted  JobStatus = "completed"
	JobFailed     JobStatus = "failed"
)

func (s JobStatus) Valid() bool {
	switch s {
	case JobPending, JobProcessing, JobCompleted, JobFailed:
		return true
	}
	return false
}

// Terminal reports whether reaching s stamps CompletedAt.
func (s JobStatus) Terminal() bool { return s == JobCompleted || s == JobFailed }

type ProcessingJob struct {
	JobID        uint       `gorm:"primaryKey" json:"job_id"`
	UserID       string     `gorm:"index" json:"user_id"`
	FieldID      *uint      `json:"field_id,omitempty"`
	ImageID      *uint      `json:"image_id,omitempty"`
	JobType      JobType    `json:"job_type"`
	Status       JobStatus  `gorm:"index" json:"status"`
	Progress     float64    `json:"progress"` // 0-100
	StartedAt    time.Time  `json:"started_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	ErrorMessage *string    `json:"error_message,omitempty"`
	ResultKey    *string    `json:"result_key,omitempty"`
	Logs         []string   `gorm:"serializer:json" json:"logs,omitempty"`
}
