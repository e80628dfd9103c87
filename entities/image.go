package entities

import "time"

type Image struct {
	ImageID          uint      `gorm:"primaryKey" json:"image_id"`
	FieldID          uint      `gorm:"index" json:"field_id"`
	UploadedBy       string    `json:"uploaded_by"`
	Filename         string    `json:"filename"`
	ObjectKey        string    `json:"object_key"`
	FileSize         int64     `json:"file_size"`
	CaptureDate      time.Time `json:"capture_date"`
	ProcessingStatus JobStatus `json:"processing_status"`
	NDVI             *float64  `json:"ndvi,omitempty"`
	Dryness          *float64  `json:"dryness,omitempty"`
}
