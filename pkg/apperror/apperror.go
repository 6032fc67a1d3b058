package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel kinds. Services wrap these so callers can classify with errors.Is.
var (
	ErrUnauthorized             = errors.New("unauthorized")
	ErrForbidden                = errors.New("forbidden")
	ErrValidation               = errors.New("validation error")
	ErrNotFound                 = errors.New("not found")
	ErrConflict                 = errors.New("conflict")
	ErrPermissionsNotConfigured = errors.New("permissions not configured")
	ErrInternal                 = errors.New("internal error")
)

// AppError carries a stable error kind alongside a human-readable message
// and the HTTP status the boundary should answer with.
type AppError struct {
	Err        error
	Code       string
	Message    string
	HTTPStatus int
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func Unauthorized(message string) *AppError {
	return &AppError{Err: ErrUnauthorized, Code: "UNAUTHORIZED", Message: message, HTTPStatus: http.StatusUnauthorized}
}

func Forbidden(message string) *AppError {
	return &AppError{Err: ErrForbidden, Code: "FORBIDDEN", Message: message, HTTPStatus: http.StatusForbidden}
}

func Validation(message string) *AppError {
	return &AppError{Err: ErrValidation, Code: "VALIDATION_ERROR", Message: message, HTTPStatus: http.StatusBadRequest}
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:        ErrNotFound,
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s '%s' not found", resource, id),
		HTTPStatus: http.StatusNotFound,
	}
}

func Conflict(message string) *AppError {
	return &AppError{Err: ErrConflict, Code: "CONFLICT", Message: message, HTTPStatus: http.StatusConflict}
}

// PermissionsNotConfigured is distinct from Forbidden: the role has no
// permission rows at all, so the UI should say "contact an administrator"
// instead of a generic access-denied message.
func PermissionsNotConfigured(roleName string) *AppError {
	return &AppError{
		Err:        ErrPermissionsNotConfigured,
		Code:       "PERMISSIONS_NOT_CONFIGURED",
		Message:    fmt.Sprintf("permissions are not configured for role '%s', contact an administrator", roleName),
		HTTPStatus: http.StatusForbidden,
	}
}

func Internal(err error) *AppError {
	return &AppError{Err: err, Code: "INTERNAL_ERROR", Message: "internal server error", HTTPStatus: http.StatusInternalServerError}
}

// Status returns the HTTP status for err, defaulting to 500 for anything
// that is not an *AppError.
func Status(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}
