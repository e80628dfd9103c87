package service

import (
	"context"
	"time"

	"fieldwatch/entities"
)

type FieldInput struct {
	Name         string      `json:"name"`
	CropType     string      `json:"crop_type"`
	AreaHa       float64     `json:"area_ha"`
	Coordinates  [][]float64 `json:"coordinates"`
	CenterLat    float64     `json:"center_lat"`
	CenterLng    float64     `json:"center_lng"`
	SoilType     *string     `json:"soil_type"`
	PlantingDate *time.Time  `json:"planting_date"`
}

// FieldPatch applies only the non-nil members.
type FieldPatch struct {
	Name         *string    `json:"name"`
	CropType     *string    `json:"crop_type"`
	AreaHa       *float64   `json:"area_ha"`
	SoilType     *string    `json:"soil_type"`
	PlantingDate *time.Time `json:"planting_date"`
	HarvestDate  *time.Time `json:"harvest_date"`
}

type FieldService interface {
	Create(ctx context.Context, uid string, in FieldInput) (*entities.Field, error)
	List(ctx context.Context, uid string) ([]entities.Field, error)
	Get(ctx context.Context, uid string, id uint) (*entities.Field, error)
	Update(ctx context.Context, uid string, id uint, p FieldPatch) (*entities.Field, error)
	// Owned is the ownership gate the alert, sensor, job, imagery and report
	// services share. It fails with apperr.ErrUnauthenticated or
	// apperr.ErrNotFoundOrForbidden.
	Owned(ctx context.Context, uid string, id uint) (*entities.Field, error)
}
