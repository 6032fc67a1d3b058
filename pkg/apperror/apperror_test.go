package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorsClassifyWithIs(t *testing.T) {
	assert.ErrorIs(t, NotFound("role", "abc"), ErrNotFound)
	assert.ErrorIs(t, Conflict("duplicate"), ErrConflict)
	assert.ErrorIs(t, Validation("bad input"), ErrValidation)
	assert.ErrorIs(t, Forbidden("no"), ErrForbidden)
	assert.ErrorIs(t, PermissionsNotConfigured("r"), ErrPermissionsNotConfigured)

	// Wrapping keeps classification intact
	wrapped := fmt.Errorf("saving: %w", Conflict("duplicate"))
	assert.ErrorIs(t, wrapped, ErrConflict)
}

func TestStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, Status(NotFound("user", "id")))
	assert.Equal(t, http.StatusConflict, Status(Conflict("x")))
	assert.Equal(t, http.StatusBadRequest, Status(Validation("x")))
	assert.Equal(t, http.StatusForbidden, Status(PermissionsNotConfigured("r")))
	assert.Equal(t, http.StatusInternalServerError, Status(errors.New("plain")))
}

func TestPermissionsNotConfiguredMessage(t *testing.T) {
	err := PermissionsNotConfigured("clerk")
	assert.Contains(t, err.Message, "clerk")
	assert.Contains(t, err.Message, "contact an administrator")
	assert.Equal(t, http.StatusForbidden, err.HTTPStatus)
}
