package serviceImp

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"fieldwatch/entities"
	"fieldwatch/pkg/apperr"
	repo "fieldwatch/pkg/field/repository"
	"fieldwatch/pkg/field/service"
)

type fieldSvc struct {
	r   repo.FieldRepository
	log *zap.Logger
}

func NewFieldService(r repo.FieldRepository, log *zap.Logger) service.FieldService {
	return &fieldSvc{r: r, log: log.Named("field")}
}

func (s *fieldSvc) Create(ctx context.Context, uid string, in service.FieldInput) (*entities.Field, error) {
	if uid == "" {
		return nil, apperr.ErrUnauthenticated
	}
	name, crop := strings.TrimSpace(in.Name), strings.TrimSpace(in.CropType)
	if name == "" {
		return nil, apperr.Invalid("name is required")
	}
	if crop == "" {
		return nil, apperr.Invalid("crop_type is required")
	}
	if in.AreaHa < 0 {
		return nil, apperr.Invalid("area_ha must be >= 0")
	}

	ring, poly, err := normalizeRing(in.Coordinates)
	if err != nil {
		return nil, err
	}
	lat, lng := in.CenterLat, in.CenterLng
	if lat == 0 && lng == 0 && poly != nil {
		if lat, lng, err = centroid(poly); err != nil {
			return nil, apperr.Invalid("polygon centroid: %v", err)
		}
	}

	f := &entities.Field{
		OwnerID:      uid,
		Name:         name,
		CropType:     crop,
		AreaHa:       in.AreaHa,
		Coordinates:  ring,
		CenterLat:    lat,
		CenterLng:    lng,
		SoilType:     in.SoilType,
		PlantingDate: in.PlantingDate,
	}
	if err := s.r.Create(ctx, f); err != nil {
		return nil, fmt.Errorf("create field: %w", err)
	}
	s.log.Info("field created", zap.Uint("field_id", f.FieldID), zap.String("owner", uid))
	return f, nil
}

func (s *fieldSvc) List(ctx context.Context, uid string) ([]entities.Field, error) {
	if uid == "" {
		return []entities.Field{}, nil
	}
	out, err := s.r.ListByOwner(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("list fields: %w", err)
	}
	return out, nil
}

func (s *fieldSvc) Get(ctx context.Context, uid string, id uint) (*entities.Field, error) {
	return s.Owned(ctx, uid, id)
}

func (s *fieldSvc) Owned(ctx context.Context, uid string, id uint) (*entities.Field, error) {
	if uid == "" {
		return nil, apperr.ErrUnauthenticated
	}
	f, err := s.r.FindByID(ctx, id, uid)
	if err != nil {
		return nil, apperr.FromLookup(err)
	}
	return f, nil
}

func (s *fieldSvc) Update(ctx context.Context, uid string, id uint, p service.FieldPatch) (*entities.Field, error) {
	cur, err := s.Get(ctx, uid, id)
	if err != nil {
		return nil, err
	}
	if p.Name != nil {
		if strings.TrimSpace(*p.Name) == "" {
			return nil, apperr.Invalid("name must not be empty")
		}
		cur.Name = strings.TrimSpace(*p.Name)
	}
	if p.CropType != nil {
		if strings.TrimSpace(*p.CropType) == "" {
			return nil, apperr.Invalid("crop_type must not be empty")
		}
		cur.CropType = strings.TrimSpace(*p.CropType)
	}
	if p.AreaHa != nil {
		if *p.AreaHa < 0 {
			return nil, apperr.Invalid("area_ha must be >= 0")
		}
		cur.AreaHa = *p.AreaHa
	}
	if p.SoilType != nil {
		cur.SoilType = p.SoilType
	}
	if p.PlantingDate != nil {
		cur.PlantingDate = p.PlantingDate
	}
	if p.HarvestDate != nil {
		cur.HarvestDate = p.HarvestDate
	}
	if err := s.r.Update(ctx, cur); err != nil {
		return nil, fmt.Errorf("update field: %w", err)
	}
	return cur, nil
}
