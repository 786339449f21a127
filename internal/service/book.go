package service

import (
	"context"

	"github.com/deppfellow/dogwalk/internal/model"
	"github.com/deppfellow/dogwalk/internal/repository"
)

type BookService struct {
	books repository.BookRepositoryI
}

func NewBookService(books repository.BookRepositoryI) *BookService {
	return &BookService{books: books}
}

func (s *BookService) List(ctx context.Context) ([]model.Book, error) {
	books, err := s.books.List(ctx)
	if err != nil {
		return nil, err
	}
	return nonNil(books), nil
}

// nonNil keeps empty results serializing as [] rather than null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
