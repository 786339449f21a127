package handler

import (
	"time"

	"github.com/deppfellow/dogwalk/internal/middleware"
	"github.com/deppfellow/dogwalk/internal/server"
	"github.com/deppfellow/dogwalk/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Handler holds the shared application dependencies. Concrete handlers
// embed it.
type Handler struct {
	server *server.Server
}

func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// HandlerFunc is a typed endpoint: it receives the bound and validated
// request and returns the response value.
type HandlerFunc[Req validation.Validatable, Res any] func(c echo.Context, req Req) (Res, error)

// request constrains Req to a pointer so a fresh value can be allocated
// and bound for every request.
type request[T any] interface {
	*T
	validation.Validatable
}

// ResponseHandler writes a successful result.
type ResponseHandler interface {
	Handle(c echo.Context, result any) error
	GetOperation() string
	AddAttributes(txn *newrelic.Transaction, result any)
}

type JSONResponseHandler struct {
	status int
}

func (h JSONResponseHandler) Handle(c echo.Context, result any) error {
	return c.JSON(h.status, result)
}

func (h JSONResponseHandler) GetOperation() string {
	return "handler"
}

func (h JSONResponseHandler) AddAttributes(txn *newrelic.Transaction, result any) {}

// RedirectResponseHandler expects the handler result to be the target
// location.
type RedirectResponseHandler struct {
	status int
}

func (h RedirectResponseHandler) Handle(c echo.Context, result any) error {
	return c.Redirect(h.status, result.(string))
}

func (h RedirectResponseHandler) GetOperation() string {
	return "handler_redirect"
}

func (h RedirectResponseHandler) AddAttributes(txn *newrelic.Transaction, result any) {
	if txn == nil {
		return
	}
	if location, ok := result.(string); ok {
		txn.AddAttribute("redirect.location", location)
	}
}

// handleRequest is the pipeline shared by every typed endpoint: bind and
// validate, run the handler, write the response, with logging and New
// Relic attributes along the way. Errors are returned untouched for the
// global error handler.
func handleRequest[Req validation.Validatable](
	c echo.Context,
	req Req,
	handler func(c echo.Context, req Req) (any, error),
	responseHandler ResponseHandler,
) error {
	start := time.Now()
	route := c.Path()

	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.name", route)
		responseHandler.AddAttributes(txn, nil)
	}

	logger := middleware.GetLogger(c).With().
		Str("operation", responseHandler.GetOperation()).
		Str("route", route).
		Logger()

	logger.Debug().Msg("handling request")

	validationStart := time.Now()
	if err := validation.BindAndValidate(c, req); err != nil {
		validationDuration := time.Since(validationStart)

		logger.Warn().
			Err(err).
			Dur("validation_duration", validationDuration).
			Msg("request validation failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("validation.status", "failed")
			txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
		}
		return err
	}
	validationDuration := time.Since(validationStart)

	if txn != nil {
		txn.AddAttribute("validation.status", "success")
		txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
	}

	handlerStart := time.Now()
	result, err := handler(c, req)
	handlerDuration := time.Since(handlerStart)

	if err != nil {
		logger.Error().
			Err(err).
			Dur("handler_duration", handlerDuration).
			Dur("total_duration", time.Since(start)).
			Msg("handler execution failed")

		if txn != nil {
			txn.AddAttribute("handler.status", "error")
			txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		}
		return err
	}

	if txn != nil {
		txn.AddAttribute("handler.status", "success")
		txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		txn.AddAttribute("total.duration_ms", time.Since(start).Milliseconds())
		responseHandler.AddAttributes(txn, result)
	}

	logger.Info().
		Dur("handler_duration", handlerDuration).
		Dur("validation_duration", validationDuration).
		Dur("total_duration", time.Since(start)).
		Msg("request completed successfully")

	return responseHandler.Handle(c, result)
}

// Handle wraps a typed handler returning a JSON body.
//
//	router.GET("/api/dogs", Handle(h.Handler, h.ListDogs, http.StatusOK))
func Handle[T any, Req request[T], Res any](
	h Handler,
	handler HandlerFunc[Req, Res],
	status int,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(c, Req(new(T)), func(c echo.Context, req Req) (any, error) {
			return handler(c, req)
		}, JSONResponseHandler{status: status})
	}
}

// HandleRedirect wraps a typed handler returning a redirect location.
func HandleRedirect[T any, Req request[T]](
	h Handler,
	handler HandlerFunc[Req, string],
	status int,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(c, Req(new(T)), func(c echo.Context, req Req) (any, error) {
			return handler(c, req)
		}, RedirectResponseHandler{status: status})
	}
}
