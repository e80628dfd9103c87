package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"fieldwatch/pkg/analysis"
)

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusOK, HTTPStatus(nil))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(ErrUnauthenticated))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(fmt.Errorf("get field: %w", ErrNotFoundOrForbidden)))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(Invalid("area must be >= 0")))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(analysis.ErrInvalidDimensions))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("disk full")))
}

func TestFromLookup(t *testing.T) {
	assert.ErrorIs(t, FromLookup(gorm.ErrRecordNotFound), ErrNotFoundOrForbidden)

	other := errors.New("boom")
	assert.Same(t, other, FromLookup(other))
	assert.NoError(t, FromLookup(nil))
}

func TestInvalid(t *testing.T) {
	err := Invalid("progress %d out of range", 140)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "progress 140 out of range")
}
