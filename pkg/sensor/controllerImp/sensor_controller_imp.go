package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"fieldwatch/entities"
	"fieldwatch/pkg/httpx"
	"fieldwatch/pkg/middleware"
	"fieldwatch/pkg/sensor/repository"
	"fieldwatch/pkg/sensor/service"
)

type SensorCtrl struct{ svc service.SensorService }

func New(svc service.SensorService) *SensorCtrl { return &SensorCtrl{svc} }

func (h *SensorCtrl) Add(c echo.Context) error {
	var in service.ReadingInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bad json"})
	}
	m, err := h.svc.Add(c.Request().Context(), middleware.UserID(c), in)
	if err != nil {
		return httpx.Fail(c, err)
	}
	return c.JSON(http.StatusCreated, m)
}

// Query handles GET /fields/:id/readings?type=&start=&end=
func (h *SensorCtrl) Query(c echo.Context) error {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		return httpx.Fail(c, err)
	}
	q := repository.ReadingQuery{FieldID: id}
	if v := c.QueryParam("type"); v != "" {
		typ := entities.SensorType(v)
		q.Type = &typ
	}
	if q.Start, err = httpx.QueryTime(c, "start"); err != nil {
		return httpx.Fail(c, err)
	}
	if q.End, err = httpx.QueryTime(c, "end"); err != nil {
		return httpx.Fail(c, err)
	}
	out, err := h.svc.Query(c.Request().Context(), middleware.UserID(c), q)
	if err != nil {
		return httpx.Fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *SensorCtrl) Latest(c echo.Context) error {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		return httpx.Fail(c, err)
	}
	out, err := h.svc.Latest(c.Request().Context(), middleware.UserID(c), id)
	if err != nil {
		return httpx.Fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
