package middleware

import (
	"net/http"

	"github.com/deppfellow/dogwalk/internal/errs"
	"github.com/deppfellow/dogwalk/internal/server"
	"github.com/deppfellow/dogwalk/internal/sqlerr"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// GlobalMiddlewares groups the middleware installed on every route and
// the global error handler.
type GlobalMiddlewares struct {
	server *server.Server
}

func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{
		server: s,
	}
}

func (global *GlobalMiddlewares) CORS() echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     global.server.Config.Server.CORSAllowedOrigins,
		AllowCredentials: !allowsAnyOrigin(global.server.Config.Server.CORSAllowedOrigins),
	})
}

func allowsAnyOrigin(origins []string) bool {
	for _, origin := range origins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// RequestLogger writes one "API" line per request. When the handler
// returned an error the status comes from the error, because the global
// error handler has not written the response yet.
func (global *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogHost:    true,
		LogMethod:  true,
		LogURIPath: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			statusCode := v.Status
			if v.Error != nil {
				statusCode = statusFromError(v.Error, statusCode)
			}

			logger := GetLogger(c)

			var e *zerolog.Event
			switch {
			case statusCode >= 500:
				e = logger.Error().Err(v.Error)
			case statusCode >= 400:
				e = logger.Warn()
			default:
				e = logger.Info()
			}

			if requestID := GetRequestID(c); requestID != "" {
				e = e.Str("request_id", requestID)
			}
			if userID := GetUserID(c); userID != "" {
				e = e.Str("user_id", userID)
			}

			e.
				Dur("latency", v.Latency).
				Int("status", statusCode).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("host", v.Host).
				Str("ip", c.RealIP()).
				Str("user_agent", c.Request().UserAgent()).
				Msg("API")

			return nil
		},
	})
}

func statusFromError(err error, fallback int) int {
	var httpErr *errs.HTTPError
	var echoErr *echo.HTTPError

	switch {
	case errors.As(err, &httpErr):
		return httpErr.Status
	case errors.As(err, &echoErr):
		return echoErr.Code
	default:
		return fallback
	}
}

func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return middleware.Recover()
}

func (global *GlobalMiddlewares) Secure() echo.MiddlewareFunc {
	return middleware.Secure()
}

// toHTTPError maps any error onto the HTTPError that is sent to the
// client. A path served for another method counts as an unknown route.
// Unknown errors become a bare 500 so driver details never leak.
func toHTTPError(err error) *errs.HTTPError {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		switch echoErr.Code {
		case http.StatusNotFound, http.StatusMethodNotAllowed:
			return errs.NewNotFoundError("Route not found")
		case http.StatusBadRequest:
			return errs.NewBadRequestError(echoMessage(echoErr))
		}

		return &errs.HTTPError{
			Code:    errs.MakeUpperCaseWithUnderscores(http.StatusText(echoErr.Code)),
			Message: echoMessage(echoErr),
			Status:  echoErr.Code,
		}
	}

	return errs.NewInternalServerError("")
}

func echoMessage(echoErr *echo.HTTPError) string {
	if msg, ok := echoErr.Message.(string); ok && msg != "" {
		return msg
	}
	return http.StatusText(echoErr.Code)
}

// GlobalErrorHandler is the single place errors are turned into
// responses. The original error is logged, the client gets the
// HTTPError's message as JSON {"error": ...} or as plain text.
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	httpErr := toHTTPError(err)

	logger := GetLogger(c)

	var e *zerolog.Event
	if httpErr.Status >= http.StatusInternalServerError {
		e = logger.Error().Stack()
	} else {
		e = logger.Warn()
	}
	if dbErr, ok := sqlerr.AsError(err); ok {
		e = e.Str("db_error", string(dbErr.Code)).
			Str("db_severity", string(dbErr.Severity))
		if dbErr.TableName != "" {
			e = e.Str("db_table", dbErr.TableName)
		}
		if dbErr.ConstraintName != "" {
			e = e.Str("db_constraint", dbErr.ConstraintName)
		}
	}
	e.Err(err).
		Int("status", httpErr.Status).
		Str("error_code", httpErr.Code).
		Msg(httpErr.Message)

	if c.Response().Committed {
		return
	}

	var writeErr error
	switch {
	case c.Request().Method == http.MethodHead:
		writeErr = c.NoContent(httpErr.Status)
	case httpErr.PlainText:
		writeErr = c.String(httpErr.Status, httpErr.Message)
	default:
		writeErr = c.JSON(httpErr.Status, httpErr.Body())
	}
	if writeErr != nil {
		logger.Error().Err(writeErr).Msg("failed to write error response")
	}
}
