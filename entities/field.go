package entities

import "time"

type Field struct {
	FieldID      uint        `gorm:"primaryKey" json:"field_id"`
	OwnerID      string      `json:"owner_id" gorm:"index"`
	Name         string      `json:"name"`
	CropType     string      `json:"crop_type"`
	AreaHa       float64     `json:"area_ha"`
	Coordinates  [][]float64 `json:"coordinates" gorm:"serializer:json"` // closed ring of [lng, lat]
	CenterLat    float64     `json:"center_lat"`
	CenterLng    float64     `json:"center_lng"`
	SoilType     *string     `json:"soil_type,omitempty"`
	PlantingDate *time.Time  `json:"planting_date,omitempty"`
	HarvestDate  *time.Time  `json:"harvest_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
