package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	uidKey      = "uid"
	uidCookie   = "FW_UID"
	uidHeader   = "X-User-Id"
	DefaultUser = "U_DEV_DEFAULT"
)

// UserID returns the caller resolved by the auth middleware, or "" when there is none.
func UserID(c echo.Context) string {
	uid, _ := c.Get(uidKey).(string)
	return uid
}

// DevLogin trusts a cookie or ?uid= and falls back to DefaultUser. Development only.
func DevLogin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid := ""
			if ck, err := c.Cookie(uidCookie); err == nil {
				uid = ck.Value
			}
			if q := c.QueryParam("uid"); q != "" && q != uid {
				uid = q
				c.SetCookie(&http.Cookie{Name: uidCookie, Value: uid, Path: "/"})
			}
			if uid == "" {
				uid = DefaultUser
				c.SetCookie(&http.Cookie{Name: uidCookie, Value: uid, Path: "/"})
			}
			c.Set(uidKey, uid)
			return next(c)
		}
	}
}

// HeaderAuth reads the identity an upstream gateway put in X-User-Id. A
// missing header leaves the caller anonymous; services decide what that means.
func HeaderAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if uid := c.Request().Header.Get(uidHeader); uid != "" {
				c.Set(uidKey, uid)
			}
			return next(c)
		}
	}
}
