package entities

import "time"

type SensorType string

const (
	SensorSoilMoisture   SensorType = "soil_moisture"
	SensorAirTemperature SensorType = "air_temperature"
	SensorHumidity       SensorType = "humidity"
	SensorLeafWetness    SensorType = "leaf_wetness"
	SensorPH             SensorType = "ph"
	SensorLightIntensity SensorType = "light_intensity"
)

func (t SensorType) Valid() bool {
	switch t {
	case SensorSoilMoisture, SensorAirTemperature, SensorHumidity, SensorLeafWetness, SensorPH, SensorLightIntensity:
		return true
	}
	return false
}

// SensorReading is append-only.
type SensorReading struct {
	ReadingID  uint       `gorm:"primaryKey" json:"reading_id"`
	FieldID    uint       `gorm:"index:idx_reading_field_type;index:idx_reading_field_ts" json:"field_id"`
	SensorID   string     `json:"sensor_id"`
	SensorType SensorType `gorm:"index:idx_reading_field_type" json:"sensor_type"`
	Value      float64    `json:"value"`
	Unit       string     `json:"unit"`
	Timestamp  time.Time  `gorm:"index:idx_reading_field_ts" json:"timestamp"`
	Lat        *float64   `json:"lat,omitempty"`
	Lng        *float64   `json:"lng,omitempty"`
}
