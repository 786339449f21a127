package router

import (
	"net/http"

	"github.com/deppfellow/dogwalk/internal/handler"
	"github.com/labstack/echo/v4"
)

func registerAPIRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/", handler.Handle(h.Book.Handler, h.Book.ListBooks, http.StatusOK))

	r.POST("/login", handler.HandleRedirect(h.Auth.Handler, h.Auth.Login, http.StatusFound))
	r.GET("/logout", handler.HandleRedirect(h.Auth.Handler, h.Auth.Logout, http.StatusFound))

	api := r.Group("/api")
	api.GET("/dogs", handler.Handle(h.Dog.Handler, h.Dog.ListDogs, http.StatusOK))
	api.GET("/walkrequests/open", handler.Handle(h.Walk.Handler, h.Walk.ListOpenRequests, http.StatusOK))
	api.GET("/walkers/summary", handler.Handle(h.Walk.Handler, h.Walk.WalkerSummaries, http.StatusOK))
}
