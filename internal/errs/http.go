package errs

import (
	"net/http"
)

func newHTTPError(status int, message string) *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(status)),
		Message: message,
		Status:  status,
	}
}

// NewUnauthorizedError creates a 401 Unauthorized HTTPError.
func NewUnauthorizedError(message string) *HTTPError {
	return newHTTPError(http.StatusUnauthorized, message)
}

// NewBadRequestError creates a 400 Bad Request HTTPError.
func NewBadRequestError(message string) *HTTPError {
	return newHTTPError(http.StatusBadRequest, message)
}

// NewNotFoundError creates a 404 Not Found HTTPError.
func NewNotFoundError(message string) *HTTPError {
	return newHTTPError(http.StatusNotFound, message)
}

// NewInternalServerError creates a 500 HTTPError.
//
// The message is what the client sees. An empty message falls back to
// the generic status text so internal details never leak.
func NewInternalServerError(message string) *HTTPError {
	if message == "" {
		message = http.StatusText(http.StatusInternalServerError)
	}
	return newHTTPError(http.StatusInternalServerError, message)
}

