package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/dogwalk/internal/database"
	"github.com/deppfellow/dogwalk/internal/model"
	"github.com/jackc/pgx/v5"
)

type WalkerRepository struct {
	db database.Querier
}

func NewWalkerRepository(db database.Querier) *WalkerRepository {
	return &WalkerRepository{db: db}
}

// Summaries returns one row per walker. The outer join keeps walkers
// with no ratings (total 0, average NULL); completed walks are counted
// by a correlated subquery over accepted applications.
func (r *WalkerRepository) Summaries(ctx context.Context) ([]model.WalkerSummary, error) {
	query := `
		SELECT u.username AS walker_username,
		       COUNT(r.rating_id)::int AS total_ratings,
		       ROUND(AVG(r.rating)::numeric, 1)::float8 AS average_rating,
		       (
		           SELECT COUNT(*)::int
		           FROM walk_requests wr
		           JOIN walk_applications wa ON wa.request_id = wr.request_id
		           WHERE wa.walker_id = u.user_id
		             AND wa.status = 'accepted'
		             AND wr.status = 'completed'
		       ) AS completed_walks
		FROM users u
		LEFT JOIN walk_ratings r ON r.walker_id = u.user_id
		WHERE u.role = 'walker'
		GROUP BY u.user_id, u.username
		ORDER BY u.username`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query walker summary: %w", err)
	}

	summaries, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.WalkerSummary])
	if err != nil {
		return nil, fmt.Errorf("failed to collect walker summary: %w", err)
	}
	return summaries, nil
}
