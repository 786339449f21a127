// Package sqlerr specifically handles database driver errors.
//
// It parses SQLSTATE codes from the pgx driver into a small set of
// categories and converts any data-layer failure into the
// route-specific 500 the API promises its clients.
package sqlerr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Code is a coarse category of database failure.
type Code string

const (
	Other               Code = "other"
	NotNullViolation    Code = "not_null_violation"
	ForeignKeyViolation Code = "foreign_key_violation"
	UniqueViolation     Code = "unique_violation"
	CheckViolation      Code = "check_violation"
	UndefinedTable      Code = "undefined_table"
	InvalidCatalog      Code = "invalid_catalog_name"
	ConnectionFailure   Code = "connection_failure"
	InvalidPassword     Code = "invalid_password"
)

// Severity mirrors the PostgreSQL message severity.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityFatal   Severity = "FATAL"
	SeverityPanic   Severity = "PANIC"
	SeverityWarning Severity = "WARNING"
	SeverityOther   Severity = "OTHER"
)

// Error is a normalized view of a *pgconn.PgError.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string
	Message        string
	TableName      string
	ColumnName     string
	ConstraintName string
	driverErr      error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.driverErr
}

// MapCode converts a SQLSTATE into a Code.
func MapCode(sqlstate string) Code {
	switch sqlstate {
	case "23502":
		return NotNullViolation
	case "23503":
		return ForeignKeyViolation
	case "23505":
		return UniqueViolation
	case "23514":
		return CheckViolation
	case "42P01":
		return UndefinedTable
	case "3D000":
		return InvalidCatalog
	case "28P01":
		return InvalidPassword
	}
	if len(sqlstate) == 5 && sqlstate[:2] == "08" {
		return ConnectionFailure
	}
	return Other
}

// MapSeverity converts the PostgreSQL severity string.
func MapSeverity(severity string) Severity {
	switch Severity(severity) {
	case SeverityError, SeverityFatal, SeverityPanic, SeverityWarning:
		return Severity(severity)
	}
	return SeverityOther
}

// ConvertPgError converts a raw pgconn.PgError into an Error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// AsError finds the normalized database error in err's chain. A raw
// *pgconn.PgError that was never passed through HandleError is converted
// on the fly.
func AsError(err error) (*Error, bool) {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr, true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return ConvertPgError(pgErr), true
	}
	return nil, false
}
