//go:build integration

package repository_test

import (
	"context"
	"testing"

	"github.com/deppfellow/dogwalk/internal/database"
	"github.com/deppfellow/dogwalk/internal/model"
	"github.com/deppfellow/dogwalk/internal/repository"
	"github.com/deppfellow/dogwalk/internal/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepositories(t *testing.T) (*repository.Repositories, *database.Database) {
	t.Helper()
	cfg := testutil.StartPostgres(t, "dogwalk_repos")
	cfg.Database.SeedDemo = true
	logger := zerolog.Nop()

	db, err := database.Provision(context.Background(), cfg, &logger, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return repository.NewRepositories(db), db
}

func TestRepositories_AgainstPostgres(t *testing.T) {
	repos, db := setupRepositories(t)
	ctx := context.Background()

	t.Run("books", func(t *testing.T) {
		books, err := repos.Books.List(ctx)
		require.NoError(t, err)
		require.Len(t, books, 3)
		assert.Equal(t, "1984", books[0].Title)
		assert.Equal(t, "Aldous Huxley", books[2].Author)
	})

	t.Run("credentials match", func(t *testing.T) {
		_, err := db.Exec(ctx, `INSERT INTO users (username, email, password_hash, role) VALUES ('alice', 'alice@dogwalk.test', 'pw', 'owner')`)
		require.NoError(t, err)

		user, err := repos.Users.FindByCredentials(ctx, "alice", "pw")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, model.RoleOwner, user.Role)
		assert.Equal(t, "pw", user.PasswordHash)
	})

	t.Run("credentials mismatch", func(t *testing.T) {
		user, err := repos.Users.FindByCredentials(ctx, "alice", "wrong")
		require.NoError(t, err)
		assert.Nil(t, user)

		user, err = repos.Users.FindByCredentials(ctx, "nobody", "pw")
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("dogs", func(t *testing.T) {
		dogs, err := repos.Dogs.ListWithOwners(ctx)
		require.NoError(t, err)
		require.Len(t, dogs, 5)
		assert.Contains(t, dogs, model.DogWithOwner{DogName: "Max", Size: "medium", OwnerUsername: "alice123"})
		assert.Contains(t, dogs, model.DogWithOwner{DogName: "Rocky", Size: "large", OwnerUsername: "emilyowner"})
	})

	t.Run("open walk requests", func(t *testing.T) {
		requests, err := repos.WalkRequests.ListOpen(ctx)
		require.NoError(t, err)
		require.Len(t, requests, 2)

		var status string
		for _, r := range requests {
			require.NoError(t, db.QueryRow(ctx, `SELECT status FROM walk_requests WHERE request_id = $1`, r.RequestID).Scan(&status))
			assert.Equal(t, "open", status)
		}
		assert.Equal(t, "Max", requests[0].DogName)
		assert.Equal(t, 30, requests[0].DurationMinutes)
	})

	t.Run("walker summary", func(t *testing.T) {
		summaries, err := repos.Walkers.Summaries(ctx)
		require.NoError(t, err)
		require.Len(t, summaries, 2)

		bob := summaries[0]
		assert.Equal(t, "bobwalker", bob.WalkerUsername)
		assert.Equal(t, 2, bob.TotalRatings)
		require.NotNil(t, bob.AverageRating)
		assert.InDelta(t, 4.5, *bob.AverageRating, 0.001)
		assert.Equal(t, 2, bob.CompletedWalks)

		david := summaries[1]
		assert.Equal(t, "davidwalker", david.WalkerUsername)
		assert.Equal(t, 0, david.TotalRatings)
		assert.Nil(t, david.AverageRating)
		assert.Equal(t, 0, david.CompletedWalks)
	})
}
