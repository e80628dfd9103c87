package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"fieldwatch/pkg/alert/repository"
	"fieldwatch/pkg/alert/service"
	"fieldwatch/pkg/httpx"
	"fieldwatch/pkg/middleware"
)

type AlertCtrl struct{ svc service.AlertService }

func New(svc service.AlertService) *AlertCtrl { return &AlertCtrl{svc} }

func (h *AlertCtrl) Create(c echo.Context) error {
	var in service.AlertInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bad json"})
	}
	a, err := h.svc.Create(c.Request().Context(), middleware.UserID(c), in)
	if err != nil {
		return httpx.Fail(c, err)
	}
	return c.JSON(http.StatusCreated, a)
}

// List handles GET /alerts?field_id=&acknowledged=
func (h *AlertCtrl) List(c echo.Context) error {
	var f repository.AlertFilter
	if c.QueryParam("field_id") != "" {
		id, err := httpx.QueryID(c, "field_id")
		if err != nil {
			return httpx.Fail(c, err)
		}
		f.FieldID = &id
	}
	ack, err := httpx.QueryBool(c, "acknowledged")
	if err != nil {
		return httpx.Fail(c, err)
	}
	f.Acknowledged = ack

	out, err := h.svc.ListForUser(c.Request().Context(), middleware.UserID(c), f)
	if err != nil {
		return httpx.Fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AlertCtrl) ListForField(c echo.Context) error {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		return httpx.Fail(c, err)
	}
	out, err := h.svc.ListForField(c.Request().Context(), middleware.UserID(c), id)
	if err != nil {
		return httpx.Fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AlertCtrl) Acknowledge(c echo.Context) error {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		return httpx.Fail(c, err)
	}
	a, err := h.svc.Acknowledge(c.Request().Context(), middleware.UserID(c), id)
	if err != nil {
		return httpx.Fail(c, err)
	}
	return c.JSON(http.StatusOK, a)
}
