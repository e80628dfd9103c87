package service

import (
	"context"
	"time"

	"fieldwatch/entities"
)

// ReportRequest defaults: csv format, the 30 days up to now, a title built from the field.
type ReportRequest struct {
	FieldID    uint                  `json:"field_id"`
	Title      string                `json:"title"`
	ReportType entities.ReportType   `json:"report_type"`
	Format     entities.ReportFormat `json:"format"`
	Start      *time.Time            `json:"start"`
	End        *time.Time            `json:"end"`
}

// Document is a stored report body ready to be served.
type Document struct {
	Report      *entities.Report
	ContentType string
	Filename    string
	Body        []byte
}

type ReportService interface {
	Generate(ctx context.Context, uid string, req ReportRequest) (*entities.Report, error)
	List(ctx context.Context, uid string) ([]entities.Report, error)
	Download(ctx context.Context, uid string, id uint) (*Document, error)
}
