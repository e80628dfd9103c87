package entities

import (
	"time"

	"gorm.io/gorm"
)

// SQLite keeps times as text, so range filters and ORDER BY only compare
// instants correctly when every stored value shares one offset. All rows are
// written in UTC.

func utc(t *time.Time) {
	if !t.IsZero() {
		*t = t.UTC()
	}
}

func utcPtr(t *time.Time) {
	if t != nil {
		utc(t)
	}
}

func (f *Field) BeforeSave(*gorm.DB) error {
	utc(&f.CreatedAt)
	utc(&f.UpdatedAt)
	utcPtr(f.PlantingDate)
	utcPtr(f.HarvestDate)
	return nil
}

func (a *Alert) BeforeSave(*gorm.DB) error {
	utc(&a.CreatedAt)
	utcPtr(a.AcknowledgedAt)
	return nil
}

func (m *SensorReading) BeforeSave(*gorm.DB) error {
	utc(&m.Timestamp)
	return nil
}

func (j *ProcessingJob) BeforeSave(*gorm.DB) error {
	utc(&j.StartedAt)
	utcPtr(j.CompletedAt)
	return nil
}

func (i *Image) BeforeSave(*gorm.DB) error {
	utc(&i.CaptureDate)
	return nil
}

func (r *Report) BeforeSave(*gorm.DB) error {
	utc(&r.RangeStart)
	utc(&r.RangeEnd)
	utc(&r.GeneratedAt)
	return nil
}
