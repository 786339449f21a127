package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/dogwalk/internal/database"
	"github.com/deppfellow/dogwalk/internal/model"
	"github.com/jackc/pgx/v5"
)

// StatusOpen is the walk request status awaiting a walker.
const StatusOpen = "open"

type WalkRequestRepository struct {
	db database.Querier
}

func NewWalkRequestRepository(db database.Querier) *WalkRequestRepository {
	return &WalkRequestRepository{db: db}
}

// ListOpen returns open walk requests with their dog and owner.
func (r *WalkRequestRepository) ListOpen(ctx context.Context) ([]model.OpenWalkRequest, error) {
	query := `
		SELECT wr.request_id, d.name AS dog_name, wr.requested_time,
		       wr.duration_minutes, wr.location, u.username AS owner_username
		FROM walk_requests wr
		JOIN dogs d ON wr.dog_id = d.dog_id
		JOIN users u ON d.owner_id = u.user_id
		WHERE wr.status = $1
		ORDER BY wr.requested_time, wr.request_id`

	rows, err := r.db.Query(ctx, query, StatusOpen)
	if err != nil {
		return nil, fmt.Errorf("failed to query open walk requests: %w", err)
	}

	requests, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.OpenWalkRequest])
	if err != nil {
		return nil, fmt.Errorf("failed to collect open walk requests: %w", err)
	}
	return requests, nil
}
