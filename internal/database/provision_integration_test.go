//go:build integration

package database_test

import (
	"context"
	"testing"

	"github.com/deppfellow/dogwalk/internal/database"
	"github.com/deppfellow/dogwalk/internal/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvision_CreatesDatabaseAndSeedsBooks(t *testing.T) {
	cfg := testutil.StartPostgres(t, "dogwalk_provision")
	logger := zerolog.Nop()
	ctx := context.Background()

	db, err := database.Provision(ctx, cfg, &logger, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rows, err := db.Query(ctx, `SELECT title, author FROM books ORDER BY id`)
	require.NoError(t, err)
	defer rows.Close()

	var got []database.SeedBook
	for rows.Next() {
		var b database.SeedBook
		require.NoError(t, rows.Scan(&b.Title, &b.Author))
		got = append(got, b)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, database.SeedBooks, got)
}

func TestProvision_IsIdempotent(t *testing.T) {
	cfg := testutil.StartPostgres(t, "dogwalk_idempotent")
	cfg.Database.SeedDemo = true
	logger := zerolog.Nop()
	ctx := context.Background()

	first, err := database.Provision(ctx, cfg, &logger, nil)
	require.NoError(t, err)
	_ = first.Close()

	second, err := database.Provision(ctx, cfg, &logger, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })

	var books, users int
	require.NoError(t, second.QueryRow(ctx, `SELECT COUNT(*) FROM books`).Scan(&books))
	require.NoError(t, second.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&users))
	assert.Equal(t, 3, books)
	assert.Equal(t, 5, users)
}

func TestProvision_UnreachableDatabase(t *testing.T) {
	cfg := testutil.StartPostgres(t, "dogwalk_unreachable")
	cfg.Database.Port = 1
	logger := zerolog.Nop()

	db, err := database.Provision(context.Background(), cfg, &logger, nil)
	assert.Error(t, err)
	assert.Nil(t, db)
}
