package httpx

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldwatch/pkg/apperr"
)

func ctx(target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	rec := httptest.NewRecorder()
	return e.NewContext(httptest.NewRequest(http.MethodGet, target, nil), rec), rec
}

func TestFail(t *testing.T) {
	c, rec := ctx("/")
	require.NoError(t, Fail(c, apperr.ErrNotFoundOrForbidden))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"not found or access denied"}`, rec.Body.String())

	c, rec = ctx("/")
	require.NoError(t, Fail(c, errors.New("db down")))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestParamID(t *testing.T) {
	c, _ := ctx("/")
	c.SetParamNames("id")
	c.SetParamValues("42")
	id, err := ParamID(c, "id")
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	for _, bad := range []string{"0", "-1", "abc", ""} {
		c.SetParamValues(bad)
		_, err := ParamID(c, "id")
		assert.ErrorIs(t, err, apperr.ErrValidation, bad)
	}
}

func TestParseTime(t *testing.T) {
	got, err := ParseTime("2024-05-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), got)

	got, err = ParseTime("2024-05-01T10:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, 10, got.Hour())

	got, err = ParseTime("1714557600000")
	require.NoError(t, err)
	assert.Equal(t, int64(1714557600000), got.UnixMilli())

	_, err = ParseTime("yesterday")
	assert.Error(t, err)
}

func TestQueryHelpers(t *testing.T) {
	c, _ := ctx("/?ack=true&from=2024-01-02&bad=zz")

	b, err := QueryBool(c, "ack")
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.True(t, *b)

	b, err = QueryBool(c, "missing")
	require.NoError(t, err)
	assert.Nil(t, b)

	_, err = QueryBool(c, "bad")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	from, err := QueryTime(c, "from")
	require.NoError(t, err)
	require.NotNil(t, from)
	assert.Equal(t, 2, from.Day())

	_, err = QueryTime(c, "bad")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}
