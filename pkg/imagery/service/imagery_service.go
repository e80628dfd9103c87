package service

import (
	"context"

	"fieldwatch/entities"
	"fieldwatch/pkg/analysis"
)

// IndexUpload records an image whose indices were computed elsewhere.
// Missing indices count as 0 for the stress rule.
type IndexUpload struct {
	FieldID    uint     `json:"field_id"`
	Filename   string   `json:"filename"`
	FileSize   int64    `json:"file_size"`
	NDVIApprox *float64 `json:"ndvi_approx"`
	Dryness    *float64 `json:"dryness"`
	// ObjectKey defaults to Filename.
	ObjectKey string `json:"-"`
}

type IngestResult struct {
	ImageID uint    `json:"image_id"`
	NDVI    float64 `json:"ndvi"`
	Dryness float64 `json:"dryness"`
	AlertID *uint   `json:"alert_id,omitempty"`
}

// ImageUpload carries raw image bytes. Without a FieldID the image is only classified.
type ImageUpload struct {
	FieldID  *uint
	Filename string
	Body     []byte
}

type AnalysisResult struct {
	Analysis analysis.Result `json:"analysis"`
	Format   string          `json:"format"`
	Width    int             `json:"width"`
	Height   int             `json:"height"`
	JobID    *uint           `json:"job_id,omitempty"`
	Image    *IngestResult   `json:"image,omitempty"`
}

type ImageryService interface {
	AddWithAnalysis(ctx context.Context, uid string, in IndexUpload) (*IngestResult, error)
	Analyze(ctx context.Context, uid string, in ImageUpload) (*AnalysisResult, error)
	ListForField(ctx context.Context, uid string, fieldID uint) ([]entities.Image, error)
}
