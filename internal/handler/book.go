package handler

import (
	"github.com/deppfellow/dogwalk/internal/model"
	"github.com/deppfellow/dogwalk/internal/server"
	"github.com/deppfellow/dogwalk/internal/service"
	"github.com/deppfellow/dogwalk/internal/sqlerr"
	"github.com/labstack/echo/v4"
)

type BookHandler struct {
	Handler
	books *service.BookService
}

func NewBookHandler(s *server.Server, books *service.BookService) *BookHandler {
	return &BookHandler{Handler: NewHandler(s), books: books}
}

func (h *BookHandler) ListBooks(c echo.Context, _ *model.NoParams) ([]model.Book, error) {
	books, err := h.books.List(c.Request().Context())
	if err != nil {
		return nil, sqlerr.HandleError(err, "Failed to fetch books")
	}
	return books, nil
}
