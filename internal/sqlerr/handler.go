package sqlerr

import (
	"errors"
	"fmt"

	"github.com/deppfellow/dogwalk/internal/errs"
	"github.com/jackc/pgx/v5/pgconn"
)

// HandleError converts a data-layer error into the 500 a route reports.
//
// The client only ever sees message. The returned error still wraps the
// original so the global error handler can log the driver details, and
// its Code carries the SQLSTATE category when one is available.
func HandleError(err error, message string) error {
	return handle(err, errs.NewInternalServerError(message))
}

// HandlePlainTextError is HandleError for routes that answer in text/plain.
func HandlePlainTextError(err error, message string) error {
	return handle(err, errs.NewInternalServerError(message).AsPlainText())
}

func handle(err error, appErr *errs.HTTPError) error {
	if err == nil {
		return nil
	}

	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	wrapped := &Wrapped{httpErr: appErr, cause: err}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		appErr.Code = fmt.Sprintf("DATABASE_%s", pgErr.Code)
		wrapped.dbErr = ConvertPgError(pgErr)
	}

	return wrapped
}

// Wrapped pairs the client-facing HTTPError with the error that caused it.
type Wrapped struct {
	httpErr *errs.HTTPError
	dbErr   *Error
	cause   error
}

func (w *Wrapped) Error() string {
	return fmt.Sprintf("%s: %v", w.httpErr.Message, w.cause)
}

// Unwrap exposes the HTTPError (for errors.As in the error handler), the
// normalized *Error when the driver reported one, and the original cause.
func (w *Wrapped) Unwrap() []error {
	if w.dbErr == nil {
		return []error{w.httpErr, w.cause}
	}
	return []error{w.httpErr, w.dbErr, w.cause}
}
