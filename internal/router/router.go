// Package router initializes the echo router.
//
// It installs the middleware chain and registers the system routes, the
// API routes and the public static assets.
package router

import (
	"github.com/deppfellow/dogwalk/internal/handler"
	"github.com/deppfellow/dogwalk/internal/middleware"
	"github.com/deppfellow/dogwalk/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter builds the echo instance. Recover wraps the whole chain so a
// panic anywhere still goes through the error handler. The session is
// loaded before the context enhancer so request logs and traces carry
// the user.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middlewares.Global.Recover(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Session.LoadSession(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.Global.RequestLogger(),
	)

	registerSystemRoutes(router, h)
	registerAPIRoutes(router, h)
	registerPublicRoutes(router, s.Config.Static.Dir)

	return router
}
