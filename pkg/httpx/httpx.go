// Package httpx holds the small echo helpers every controller shares.
package httpx

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"fieldwatch/pkg/apperr"
)

const DateLayout = "2006-01-02"

// Fail renders err as {"error": "..."} with the status apperr picks for it.
func Fail(c echo.Context, err error) error {
	return c.JSON(apperr.HTTPStatus(err), echo.Map{"error": err.Error()})
}

// ParamID parses a positive integer path parameter.
func ParamID(c echo.Context, name string) (uint, error) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || n == 0 {
		return 0, apperr.Invalid("invalid %s", name)
	}
	return uint(n), nil
}

// QueryID parses a positive integer query parameter.
func QueryID(c echo.Context, name string) (uint, error) {
	n, err := strconv.ParseUint(c.QueryParam(name), 10, 64)
	if err != nil || n == 0 {
		return 0, apperr.Invalid("invalid %s", name)
	}
	return uint(n), nil
}

// QueryTime accepts RFC3339, YYYY-MM-DD or unix milliseconds. Empty means nil.
func QueryTime(c echo.Context, name string) (*time.Time, error) {
	v := c.QueryParam(name)
	if v == "" {
		return nil, nil
	}
	t, err := ParseTime(v)
	if err != nil {
		return nil, apperr.Invalid("invalid %s", name)
	}
	return &t, nil
}

func ParseTime(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	if t, err := time.Parse(DateLayout, v); err == nil {
		return t, nil
	}
	ms, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.UnixMilli(ms), nil
}

// QueryBool returns nil when the parameter is absent.
func QueryBool(c echo.Context, name string) (*bool, error) {
	v := c.QueryParam(name)
	if v == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, apperr.Invalid("invalid %s", name)
	}
	return &b, nil
}
