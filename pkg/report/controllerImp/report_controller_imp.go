package controllerImp

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"fieldwatch/entities"
	"fieldwatch/pkg/apperr"
	"fieldwatch/pkg/httpx"
	"fieldwatch/pkg/middleware"
	"fieldwatch/pkg/report/service"
)

type ReportCtrl struct{ svc service.ReportService }

func New(svc service.ReportService) *ReportCtrl { return &ReportCtrl{svc} }

type generateReq struct {
	Title      string `json:"title"`
	ReportType string `json:"report_type"`
	Format     string `json:"format"`
	Start      string `json:"start"`
	End        string `json:"end"`
}

func optTime(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := httpx.ParseTime(v)
	if err != nil {
		return nil, apperr.Invalid("invalid date %q", v)
	}
	return &t, nil
}

// Generate handles POST /fields/:id/reports.
func (h *ReportCtrl) Generate(c echo.Context) error {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		return httpx.Fail(c, err)
	}
	var req generateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bad json"})
	}
	in := service.ReportRequest{
		FieldID:    id,
		Title:      req.Title,
		ReportType: entities.ReportType(req.ReportType),
		Format:     entities.ReportFormat(req.Format),
	}
	if in.Start, err = optTime(req.Start); err != nil {
		return httpx.Fail(c, err)
	}
	if in.End, err = optTime(req.End); err != nil {
		return httpx.Fail(c, err)
	}
	rep, err := h.svc.Generate(c.Request().Context(), middleware.UserID(c), in)
	if err != nil {
		return httpx.Fail(c, err)
	}
	return c.JSON(http.StatusCreated, rep)
}

func (h *ReportCtrl) List(c echo.Context) error {
	out, err := h.svc.List(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return httpx.Fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ReportCtrl) Download(c echo.Context) error {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		return httpx.Fail(c, err)
	}
	doc, err := h.svc.Download(c.Request().Context(), middleware.UserID(c), id)
	if err != nil {
		return httpx.Fail(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", doc.Filename))
	return c.Blob(http.StatusOK, doc.ContentType, doc.Body)
}
