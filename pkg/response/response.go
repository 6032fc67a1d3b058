package response

import (
	"errors"

	"agriportal/pkg/apperror"
)

// Response represents a standard API response format
type Response struct {
	Status     string      `json:"status"`      // "success" or "error"
	StatusCode int         `json:"status_code"` // HTTP status code
	Data       interface{} `json:"data,omitempty"`
	ErrorCode  string      `json:"error_code,omitempty"` // Stable error kind (e.g. "NOT_FOUND")
	Error      string      `json:"error,omitempty"`
}

// Success returns a standard success response wrapping the data
func Success(statusCode int, data interface{}) Response {
	return Response{
		Status:     "success",
		StatusCode: statusCode,
		Data:       data,
	}
}

// Error returns a standard error response wrapping the error message
func Error(statusCode int, err string) Response {
	return Response{
		Status:     "error",
		StatusCode: statusCode,
		Error:      err,
	}
}

// FromError maps an application error to its response envelope, carrying
// the stable error code through to the client.
func FromError(err error) Response {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return Response{
			Status:     "error",
			StatusCode: appErr.HTTPStatus,
			ErrorCode:  appErr.Code,
			Error:      appErr.Message,
		}
	}
	return Error(apperror.Status(err), err.Error())
}
