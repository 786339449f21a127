package handler

import (
	"github.com/deppfellow/dogwalk/internal/model"
	"github.com/deppfellow/dogwalk/internal/server"
	"github.com/deppfellow/dogwalk/internal/service"
	"github.com/deppfellow/dogwalk/internal/sqlerr"
	"github.com/labstack/echo/v4"
)

type DogHandler struct {
	Handler
	dogs *service.DogService
}

func NewDogHandler(s *server.Server, dogs *service.DogService) *DogHandler {
	return &DogHandler{Handler: NewHandler(s), dogs: dogs}
}

// ListDogs returns every dog with its owner's username.
func (h *DogHandler) ListDogs(c echo.Context, _ *model.NoParams) ([]model.DogWithOwner, error) {
	dogs, err := h.dogs.List(c.Request().Context())
	if err != nil {
		return nil, sqlerr.HandleError(err, "Failed to fetch dogs")
	}
	return dogs, nil
}
