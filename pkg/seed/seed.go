// Package seed loads a demo farm for a user: two fields with a month of
// sensor history, a pair of alerts and a finished processing job.
package seed

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"fieldwatch/entities"
	alertImp "fieldwatch/pkg/alert/repositoryImp"
	"fieldwatch/pkg/apperr"
	fieldImp "fieldwatch/pkg/field/repositoryImp"
	jobImp "fieldwatch/pkg/job/repositoryImp"
	sensorImp "fieldwatch/pkg/sensor/repositoryImp"
)

const days = 30

type Counts struct {
	Fields   int `json:"fields_created"`
	Readings int `json:"sensor_readings_created"`
	Alerts   int `json:"alerts_created"`
	Jobs     int `json:"jobs_created"`
}

type sensorSpec struct {
	typ      entities.SensorType
	unit     string
	min, max float64
}

var sensors = []sensorSpec{
	{entities.SensorSoilMoisture, "%", 45, 75},
	{entities.SensorAirTemperature, "°C", 18, 33},
	{entities.SensorHumidity, "%", 40, 80},
	{entities.SensorLeafWetness, "%", 0, 100},
}

type Seeder struct {
	db   *gorm.DB
	log  *zap.Logger
	seed uint64
}

// New returns a Seeder whose random readings are reproducible for a given seed.
func New(db *gorm.DB, log *zap.Logger, seed uint64) *Seeder {
	return &Seeder{db: db, log: log.Named("seed"), seed: seed}
}

func f64(v float64) *float64 { return &v }
func str(v string) *string   { return &v }

func ring(west, south, east, north float64) [][]float64 {
	return [][]float64{{west, south}, {east, south}, {east, north}, {west, north}, {west, south}}
}

// Seed writes everything in one transaction.
func (s *Seeder) Seed(ctx context.Context, uid string, now time.Time) (Counts, error) {
	if uid == "" {
		return Counts{}, apperr.ErrUnauthenticated
	}
	rng := rand.New(rand.NewPCG(s.seed, s.seed^0x9e3779b97f4a7c15))
	var c Counts

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fields := fieldImp.New(tx)
		readings := sensorImp.New(tx)
		alerts := alertImp.New(tx)
		jobs := jobImp.New(tx)

		north := &entities.Field{
			OwnerID: uid, Name: "North Field", CropType: "Corn", AreaHa: 25.5,
			Coordinates: ring(-122.4194, 37.7749, -122.4094, 37.7849),
			CenterLat:   37.7799, CenterLng: -122.4144,
			SoilType: str("Loamy"), PlantingDate: timep(now.AddDate(0, 0, -90)),
		}
		south := &entities.Field{
			OwnerID: uid, Name: "South Field", CropType: "Wheat", AreaHa: 18.2,
			Coordinates: ring(-122.4294, 37.7649, -122.4194, 37.7749),
			CenterLat:   37.7699, CenterLng: -122.4244,
			SoilType: str("Clay"), PlantingDate: timep(now.AddDate(0, 0, -75)),
		}
		for _, f := range []*entities.Field{north, south} {
			if err := fields.Create(ctx, f); err != nil {
				return fmt.Errorf("seed field: %w", err)
			}
			c.Fields++

			batch := make([]entities.SensorReading, 0, days*len(sensors))
			for d := 0; d < days; d++ {
				ts := now.AddDate(0, 0, -d)
				for _, sp := range sensors {
					v := sp.min + rng.Float64()*(sp.max-sp.min)
					batch = append(batch, entities.SensorReading{
						FieldID:    f.FieldID,
						SensorID:   fmt.Sprintf("sensor_%s_%d", sp.typ, f.FieldID),
						SensorType: sp.typ,
						Value:      math.Round(v*100) / 100,
						Unit:       sp.unit,
						Timestamp:  ts,
					})
				}
			}
			if err := readings.CreateBatch(ctx, batch); err != nil {
				return fmt.Errorf("seed readings: %w", err)
			}
			c.Readings += len(batch)
		}

		for _, a := range []*entities.Alert{
			{
				FieldID: north.FieldID, UserID: uid, Severity: entities.SeverityMedium, Type: entities.AlertIrrigationNeeded,
				Title:       "Irrigation Recommended",
				Description: "Soil moisture levels have dropped below optimal range in the north section of the field.",
				Lat:         f64(north.CenterLat), Lng: f64(north.CenterLng),
				Confidence: f64(0.85), AffectedArea: f64(2.5),
			},
			{
				FieldID: south.FieldID, UserID: uid, Severity: entities.SeverityHigh, Type: entities.AlertPestRisk,
				Title:       "Pest Activity Detected",
				Description: "Increased pest activity detected in wheat field. Consider applying targeted treatment.",
				Lat:         f64(south.CenterLat), Lng: f64(south.CenterLng),
				Confidence: f64(0.92), AffectedArea: f64(1.8),
			},
		} {
			if err := alerts.Create(ctx, a); err != nil {
				return fmt.Errorf("seed alert: %w", err)
			}
			c.Alerts++
		}

		job := &entities.ProcessingJob{
			UserID:      uid,
			FieldID:     &north.FieldID,
			JobType:     entities.JobIndexCalculation,
			Status:      entities.JobCompleted,
			Progress:    100,
			StartedAt:   now.Add(-2 * time.Hour),
			CompletedAt: timep(now.Add(-time.Hour)),
			Logs: []string{
				"Starting NDVI calculation...",
				"Processing hyperspectral data...",
				"Calculating vegetation indices...",
				"NDVI calculation completed successfully",
			},
		}
		if err := jobs.Create(ctx, job); err != nil {
			return fmt.Errorf("seed job: %w", err)
		}
		c.Jobs++
		return nil
	})
	if err != nil {
		return Counts{}, err
	}
	s.log.Info("demo data created", zap.String("uid", uid),
		zap.Int("fields", c.Fields), zap.Int("readings", c.Readings))
	return c, nil
}

func timep(t time.Time) *time.Time { return &t }
