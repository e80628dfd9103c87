package controllerImp

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"fieldwatch/pkg/httpx"
	"fieldwatch/pkg/middleware"
	"fieldwatch/pkg/seed"
)

type SeedCtrl struct{ s *seed.Seeder }

func New(s *seed.Seeder) *SeedCtrl { return &SeedCtrl{s} }

// Create handles POST /seed for the current user.
func (h *SeedCtrl) Create(c echo.Context) error {
	counts, err := h.s.Seed(c.Request().Context(), middleware.UserID(c), time.Now())
	if err != nil {
		return httpx.Fail(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Sample data created successfully",
		"counts":  counts,
	})
}
