package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewInternalServerError(t *testing.T) {
	err := NewInternalServerError("Failed to fetch dogs")
	assert.Equal(t, http.StatusInternalServerError, err.Status)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", err.Code)
	assert.Equal(t, Response{Error: "Failed to fetch dogs"}, err.Body())

	generic := NewInternalServerError("")
	assert.Equal(t, "Internal Server Error", generic.Message)
}

func TestHTTPError_AsPlainTextCopies(t *testing.T) {
	base := NewUnauthorizedError("Invalid credentials")
	plain := base.AsPlainText()

	assert.True(t, plain.PlainText)
	assert.False(t, base.PlainText)
	assert.Equal(t, base.Message, plain.Message)
	assert.Equal(t, http.StatusUnauthorized, plain.Status)
}

func TestHTTPError_Is(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", NewBadRequestError("bad"))

	assert.True(t, errors.Is(wrapped, &HTTPError{}))

	var httpErr *HTTPError
	assert.True(t, errors.As(wrapped, &httpErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
}

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "BAD_REQUEST", MakeUpperCaseWithUnderscores("Bad Request"))
	assert.Equal(t, "NOT_FOUND", MakeUpperCaseWithUnderscores("not found"))
}
