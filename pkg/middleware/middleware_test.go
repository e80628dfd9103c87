package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func whoami(c echo.Context) error { return c.String(http.StatusOK, UserID(c)) }

func serve(mw echo.MiddlewareFunc, req *http.Request) *httptest.ResponseRecorder {
	e := echo.New()
	e.Use(mw)
	e.GET("/whoami", whoami)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestDevLogin_Default(t *testing.T) {
	rec := serve(DevLogin(), httptest.NewRequest(http.MethodGet, "/whoami", nil))
	assert.Equal(t, DefaultUser, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Set-Cookie"), uidCookie+"="+DefaultUser)
}

func TestDevLogin_QueryOverridesCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/whoami?uid=alice", nil)
	req.AddCookie(&http.Cookie{Name: uidCookie, Value: "bob"})
	rec := serve(DevLogin(), req)
	assert.Equal(t, "alice", rec.Body.String())
}

func TestDevLogin_Cookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: uidCookie, Value: "bob"})
	rec := serve(DevLogin(), req)
	assert.Equal(t, "bob", rec.Body.String())
	assert.Empty(t, rec.Header().Get("Set-Cookie"))
}

func TestHeaderAuth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(uidHeader, "carol")
	assert.Equal(t, "carol", serve(HeaderAuth(), req).Body.String())

	anon := serve(HeaderAuth(), httptest.NewRequest(http.MethodGet, "/whoami", nil))
	assert.Equal(t, "", anon.Body.String())
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	e := echo.New()
	e.Use(RequestLogger(zap.New(core)))
	e.GET("/boom", func(c echo.Context) error { return echo.NewHTTPError(http.StatusTeapot, "no") })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	entries := logs.FilterMessage("request").All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, int64(http.StatusTeapot), entries[0].ContextMap()["status"])
		assert.Equal(t, "/boom", entries[0].ContextMap()["path"])
	}
}
