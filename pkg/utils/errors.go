package utils

import (
	"errors"
	"net/http"
)

// AppError carries the HTTP status the error page should use. Cause is for
// logs and debug pages only.
type AppError struct {
	Status  int
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Cause }

// NotFound returns a 404 error such as "Genre not found".
func NotFound(resource string) *AppError {
	return &AppError{Status: http.StatusNotFound, Message: resource + " not found"}
}

func Internal(cause error) *AppError {
	return &AppError{Status: http.StatusInternalServerError, Message: "Internal server error", Cause: cause}
}

// AsAppError finds an AppError in err's chain, wrapping anything else as Internal.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}
