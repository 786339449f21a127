package handler

import (
	"github.com/deppfellow/dogwalk/internal/server"
	"github.com/deppfellow/dogwalk/internal/service"
)

// Handlers groups every HTTP handler so the router receives one value.
type Handlers struct {
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
	Book    *BookHandler
	Auth    *AuthHandler
	Dog     *DogHandler
	Walk    *WalkHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
		Book:    NewBookHandler(s, services.Books),
		Auth:    NewAuthHandler(s, services.Auth),
		Dog:     NewDogHandler(s, services.Dogs),
		Walk:    NewWalkHandler(s, services.Walks),
	}
}
