package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"fieldwatch/pkg/auth/controller"
	"fieldwatch/pkg/middleware"
)

type authCtrl struct{ mode string }

// NewAuthController reports mode ("dev" or "header") alongside the caller.
func NewAuthController(mode string) controller.AuthController { return &authCtrl{mode: mode} }

// DevLogin answers after the DevLogin middleware has switched the cookie to ?uid=.
func (h *authCtrl) DevLogin(c echo.Context) error {
	if h.mode != "dev" {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "dev login disabled"})
	}
	return c.JSON(http.StatusOK, map[string]string{"uid": middleware.UserID(c)})
}

func (h *authCtrl) WhoAmI(c echo.Context) error {
	uid := middleware.UserID(c)
	return c.JSON(http.StatusOK, echo.Map{
		"uid":           uid,
		"authenticated": uid != "",
		"mode":          h.mode,
	})
}
