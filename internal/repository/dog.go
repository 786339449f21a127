package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/dogwalk/internal/database"
	"github.com/deppfellow/dogwalk/internal/model"
	"github.com/jackc/pgx/v5"
)

type DogRepository struct {
	db database.Querier
}

func NewDogRepository(db database.Querier) *DogRepository {
	return &DogRepository{db: db}
}

// ListWithOwners returns every dog with its owner's username.
func (r *DogRepository) ListWithOwners(ctx context.Context) ([]model.DogWithOwner, error) {
	query := `
		SELECT d.name AS dog_name, d.size, u.username AS owner_username
		FROM dogs d
		JOIN users u ON d.owner_id = u.user_id
		ORDER BY d.dog_id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query dogs: %w", err)
	}

	dogs, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.DogWithOwner])
	if err != nil {
		return nil, fmt.Errorf("failed to collect dogs: %w", err)
	}
	return dogs, nil
}
