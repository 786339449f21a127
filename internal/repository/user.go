package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/dogwalk/internal/database"
	"github.com/deppfellow/dogwalk/internal/model"
	"github.com/jackc/pgx/v5"
)

type UserRepository struct {
	db database.Querier
}

func NewUserRepository(db database.Querier) *UserRepository {
	return &UserRepository{db: db}
}

// FindByCredentials returns the user whose username and stored password
// both match, or nil when none does.
//
// The password is compared as-is against password_hash. No hashing is
// applied here; see DESIGN.md.
func (r *UserRepository) FindByCredentials(ctx context.Context, username, password string) (*model.User, error) {
	query := `
		SELECT user_id, username, email, password_hash, role, created_at
		FROM users
		WHERE username = $1 AND password_hash = $2`

	rows, err := r.db.Query(ctx, query, username, password)
	if err != nil {
		return nil, fmt.Errorf("failed to query user %q: %w", username, err)
	}

	user, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.User])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to collect user %q: %w", username, err)
	}
	return user, nil
}
