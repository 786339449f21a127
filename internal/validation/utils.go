// Package validation binds request data into payload types.
package validation

import (
	"errors"
	"net/http"

	"github.com/deppfellow/dogwalk/internal/errs"
	"github.com/labstack/echo/v4"
)

// Validatable is implemented by request payloads. The payloads this API
// accepts are taken as sent, so their Validate methods return nil.
type Validatable interface {
	Validate() error
}

// BindAndValidate binds the request into payload, which must be a
// pointer, then runs its Validate hook. Bind failures become a 400
// unless echo already picked a more specific status (415 for an unknown
// content type).
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		var echoErr *echo.HTTPError
		if errors.As(err, &echoErr) && echoErr.Code != http.StatusBadRequest {
			return err
		}
		return errs.NewBadRequestError("Invalid request body")
	}

	if err := payload.Validate(); err != nil {
		var httpErr *errs.HTTPError
		if errors.As(err, &httpErr) {
			return err
		}
		return errs.NewBadRequestError(err.Error())
	}

	return nil
}
