//go:build integration

// Package testutil starts throwaway dependencies for integration tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/deppfellow/dogwalk/internal/config"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// StartPostgres runs a PostgreSQL container and returns a config whose
// database block points at it. The application database does not exist
// yet, so provisioning has to create it. The container is terminated
// through t.Cleanup.
func StartPostgres(t *testing.T, dbName string) *config.Config {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("postgres"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start PostgreSQL container: %v", err)
	}
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	host, err := pgContainer.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get container host: %v", err)
	}
	port, err := pgContainer.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("failed to get container port: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	cfg.Primary.Env = "test"
	cfg.Database.Host = host
	cfg.Database.Port = port.Int()
	cfg.Database.User = "testuser"
	cfg.Database.Password = "testpass"
	cfg.Database.Name = dbName
	cfg.Database.MaintenanceDB = "postgres"

	return cfg
}
