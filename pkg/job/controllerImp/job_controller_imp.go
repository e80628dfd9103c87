package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"fieldwatch/entities"
	"fieldwatch/pkg/httpx"
	"fieldwatch/pkg/job/service"
	"fieldwatch/pkg/middleware"
)

type JobCtrl struct{ svc service.JobService }

func New(svc service.JobService) *JobCtrl { return &JobCtrl{svc} }

func (h *JobCtrl) Create(c echo.Context) error {
	var in service.JobInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bad json"})
	}
	j, err := h.svc.Create(c.Request().Context(), middleware.UserID(c), in)
	if err != nil {
		return httpx.Fail(c, err)
	}
	return c.JSON(http.StatusCreated, j)
}

func (h *JobCtrl) List(c echo.Context) error {
	var status *entities.JobStatus
	if v := c.QueryParam("status"); v != "" {
		st := entities.JobStatus(v)
		status = &st
	}
	out, err := h.svc.List(c.Request().Context(), middleware.UserID(c), status)
	if err != nil {
		return httpx.Fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *JobCtrl) Get(c echo.Context) error {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		return httpx.Fail(c, err)
	}
	j, err := h.svc.Get(c.Request().Context(), middleware.UserID(c), id)
	if err != nil {
		return httpx.Fail(c, err)
	}
	return c.JSON(http.StatusOK, j)
}

// Patch handles PATCH /jobs/:id with a JobPatch body.
func (h *JobCtrl) Patch(c echo.Context) error {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		return httpx.Fail(c, err)
	}
	var p service.JobPatch
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bad json"})
	}
	j, err := h.svc.UpdateProgress(c.Request().Context(), middleware.UserID(c), id, p)
	if err != nil {
		return httpx.Fail(c, err)
	}
	return c.JSON(http.StatusOK, j)
}
