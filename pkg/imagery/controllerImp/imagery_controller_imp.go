package controllerImp

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"fieldwatch/pkg/apperr"
	"fieldwatch/pkg/httpx"
	"fieldwatch/pkg/imagery/service"
	"fieldwatch/pkg/middleware"
)

type ImageryCtrl struct {
	svc      service.ImageryService
	maxBytes int64
}

func New(svc service.ImageryService, maxBytes int64) *ImageryCtrl {
	return &ImageryCtrl{svc: svc, maxBytes: maxBytes}
}

// multipartSlack covers the form envelope around the image part.
const multipartSlack = 64 << 10

// UploadLimit caps the request body before the multipart form is parsed.
func (h *ImageryCtrl) UploadLimit() echo.MiddlewareFunc {
	if h.maxBytes <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return echoMiddleware.BodyLimit(fmt.Sprintf("%dB", h.maxBytes+multipartSlack))
}

// Analyze handles a multipart upload: "image" file plus optional "field_id".
func (h *ImageryCtrl) Analyze(c echo.Context) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return httpx.Fail(c, apperr.Invalid("image file is required"))
	}
	if h.maxBytes > 0 && fh.Size > h.maxBytes {
		return c.JSON(http.StatusRequestEntityTooLarge, echo.Map{"error": "image too large"})
	}
	src, err := fh.Open()
	if err != nil {
		return httpx.Fail(c, err)
	}
	defer src.Close()
	body, err := io.ReadAll(src)
	if err != nil {
		return httpx.Fail(c, err)
	}

	in := service.ImageUpload{Filename: fh.Filename, Body: body}
	if v := c.FormValue("field_id"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil || n == 0 {
			return httpx.Fail(c, apperr.Invalid("invalid field_id"))
		}
		id := uint(n)
		in.FieldID = &id
	}

	res, err := h.svc.Analyze(c.Request().Context(), middleware.UserID(c), in)
	if err != nil {
		return httpx.Fail(c, err)
	}
	status := http.StatusOK
	if res.Image != nil {
		status = http.StatusCreated
	}
	return c.JSON(status, res)
}

// AddIndices handles POST /fields/:id/images with precomputed indices.
func (h *ImageryCtrl) AddIndices(c echo.Context) error {
	id, err := httpx.ParamID(c, "id")
	if err != nil {
		return httpx.Fail(c, err)
	}
	var in service.IndexUpload
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bad json"})
	}
	in.FieldID = id
	res, err := h.svc.AddWithAnalysis(c.Request().Context(), middleware.UserID(c), in)
	if err != nil {
		return httpx.Fail(c, err)
	}
	return c.JSON(http.StatusCreated, res)
}

func (h *ImageryCtrl) List(c echo.Context) error {
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
