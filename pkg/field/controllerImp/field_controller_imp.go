package controllerImp

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"fieldwatch/pkg/apperr"
	"fieldwatch/pkg/field/service"
	"fieldwatch/pkg/httpx"
	"fieldwatch/pkg/middleware"
)

type FieldCtrl struct{ svc service.FieldService }

func New(svc service.FieldService) *FieldCtrl { return &FieldCtrl{svc} }

type createReq struct {
	Name         string      `json:"name"`
	CropType     string      `json:"crop_type"`
	AreaHa       float64     `json:"area_ha"`
	Coordinates  [][]float64 `json:"coordinates"`
	CenterLat    float64     `json:"center_lat"`
	CenterLng    float64     `json:"center_lng"`
	SoilType     *string     `json:"soil_type"`
	PlantingDate string      `json:"planting_date"`
}

type patchReq struct {
	Name         *string  `json:"name"`
	CropType     *string  `json:"crop_type"`
	AreaHa       *float64 `json:"area_ha"`
	SoilType     *string  `json:"soil_type"`
	PlantingDate *string  `json:"planting_date"`
	HarvestDate  *string  `json:"harvest_date"`
}

func optDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := httpx.ParseTime(*s)
	if err != nil {
		return nil, apperr.Invalid("invalid date %q", *s)
	}
	return &t, nil
}

func (h *FieldCtrl) Create(c echo.Context) error {
	var req createReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bad json"})
	}
	pd, err := optDate(&req.PlantingDate)
	if err != nil {
		return httpx.Fail(c, err)
	}
	f, err := h.svc.Create(c.Request().Context(), middleware.UserID(c), service.FieldInput{
		Name: req.Name, CropType: req.CropType, AreaHa: req.AreaHa,
		Coordinates: req.Coordinates, CenterLat: req.CenterLat, CenterLng: req.CenterLng,
		SoilType: req.SoilType, PlantingDate: pd,
	})
	if err != nil {
		return httpx.Fail(c, err)
	}
	return c.JSON(http.StatusCreated, f)
}

func (h *FieldCtrl) List(c echo.Context) error {
	out, err := h.svc.List(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return httpx.Fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *FieldCtrl) Get(c echo.Context) error {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		return httpx.Fail(c, err)
	}
	f, err := h.svc.Get(c.Request().Context(), middleware.UserID(c), id)
	if err != nil {
		return httpx.Fail(c, err)
	}
	return c.JSON(http.StatusOK, f)
}

func (h *FieldCtrl) Patch(c echo.Context) error {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		return httpx.Fail(c, err)
	}
	var req patchReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bad json"})
	}
	pd, err := optDate(req.PlantingDate)
	if err != nil {
		return httpx.Fail(c, err)
	}
	hd, err := optDate(req.HarvestDate)
	if err != nil {
		return httpx.Fail(c, err)
	}
	f, err := h.svc.Update(c.Request().Context(), middleware.UserID(c), id, service.FieldPatch{
		Name: req.Name, CropType: req.CropType, AreaHa: req.AreaHa,
		SoilType: req.SoilType, PlantingDate: pd, HarvestDate: hd,
	})
	if err != nil {
		return httpx.Fail(c, err)
	}
	return c.JSON(http.StatusOK, f)
}
