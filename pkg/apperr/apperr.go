// Package apperr is the error taxonomy shared by services and controllers.
package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"

	"fieldwatch/pkg/analysis"
)

var (
	ErrUnauthenticated = errors.New("user not authenticated")
	// ErrNotFoundOrForbidden covers both a missing record and one owned by
	// someone else; callers cannot tell the two apart.
	ErrNotFoundOrForbidden = errors.New("not found or access denied")
	ErrValidation          = errors.New("validation failed")
)

// Invalid wraps ErrValidation with a field-specific message.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// FromLookup turns a gorm "record not found" into ErrNotFoundOrForbidden and
// leaves every other error untouched.
func FromLookup(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFoundOrForbidden
	}
	return err
}

// HTTPStatus picks the response code for err.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFoundOrForbidden):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation), errors.Is(err, analysis.ErrInvalidDimensions):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
