package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/dogwalk/internal/database"
	"github.com/deppfellow/dogwalk/internal/model"
	"github.com/jackc/pgx/v5"
)

type BookRepository struct {
	db database.Querier
}

func NewBookRepository(db database.Querier) *BookRepository {
	return &BookRepository{db: db}
}

// List returns every row of the books table.
func (r *BookRepository) List(ctx context.Context) ([]model.Book, error) {
	rows, err := r.db.Query(ctx, `SELECT id, title, author FROM books ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query books: %w", err)
	}

	books, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Book])
	if err != nil {
		return nil, fmt.Errorf("failed to collect books: %w", err)
	}
	return books, nil
}
