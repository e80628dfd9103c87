package entities

import "time"

type ReportType string

const (
	ReportFieldHealth      ReportType = "field_health"
	ReportYieldPrediction  ReportType = "yield_prediction"
	ReportPestAnalysis     ReportType = "pest_analysis"
	ReportIrrigationReport ReportType = "irrigation_report"
)

func (t ReportType) Valid() bool {
	switch t {
	case ReportFieldHealth, ReportYieldPrediction, ReportPestAnalysis, ReportIrrigationReport:
		return true
	}
	return false
}

type ReportFormat string

const (
	FormatCSV  ReportFormat = "csv"
	FormatXLSX ReportFormat = "xlsx"
)

type Report struct {
	ReportID    uint         `gorm:"primaryKey" json:"report_id"`
	UserID      string       `gorm:"index" json:"user_id"`
	FieldID     uint         `gorm:"index" json:"field_id"`
	Title       string       `json:"title"`
	ReportType  ReportType   `json:"report_type"`
	RangeStart  time.Time    `json:"range_start"`
	RangeEnd    time.Time    `json:"range_end"`
	ObjectKey   string       `json:"object_key"`
	Format      ReportFormat `json:"format"`
	SizeBytes   int64        `json:"size_bytes"`
	GeneratedAt time.Time    `json:"generated_at"`
}
