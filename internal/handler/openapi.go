package handler

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/deppfellow/dogwalk/internal/server"
	"github.com/labstack/echo/v4"
)

// DocsDir holds openapi.html and openapi.json, served under /static.
const DocsDir = "static"

// OpenAPIHandler serves the API docs UI.
type OpenAPIHandler struct {
	Handler
	dir string
}

func NewOpenAPIHandler(s *server.Server) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
		dir:     DocsDir,
	}
}

// ServeOpenAPIUI serves openapi.html uncached so doc edits show up
// immediately.
func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	templateBytes, err := os.ReadFile(filepath.Join(h.dir, "openapi.html"))
	if err != nil {
		return fmt.Errorf("failed to read OpenAPI UI template: %w", err)
	}

	c.Response().Header().Set("Cache-Control", "no-cache")

	if err := c.HTML(http.StatusOK, string(templateBytes)); err != nil {
		return fmt.Errorf("failed to write HTML response: %w", err)
	}
	return nil
}
