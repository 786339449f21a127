package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/deppfellow/dogwalk/internal/config"
	"github.com/jackc/pgx/v5"
	tern "github.com/jackc/tern/v2/migrate"
	"github.com/rs/zerolog"
)

//go:embed migrations/*.sql
var migrations embed.FS

// SchemaVersionTable records the applied migration sequence.
const SchemaVersionTable = "schema_version"

// Migrate brings the schema of cfg.Database.Name to the latest embedded
// migration. It opens its own connection because it runs before the
// pool exists.
func Migrate(ctx context.Context, logger *zerolog.Logger, cfg *config.Config) error {
	conn, err := pgx.Connect(ctx, DSN(cfg.Database, cfg.Database.Name))
	if err != nil {
		return fmt.Errorf("connecting for migrations: %w", err)
	}
	defer conn.Close(ctx)

	migrator, err := tern.NewMigrator(ctx, conn, SchemaVersionTable)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}

	files, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("opening embedded migrations: %w", err)
	}
	if err := migrator.LoadMigrations(files); err != nil {
		return fmt.Errorf("loading migrations: %w", err)
	}

	migrator.OnStart = func(sequence int32, name, direction, _ string) {
		logger.Debug().
			Int32("sequence", sequence).
			Str("migration", name).
			Str("direction", direction).
			Msg("applying migration")
	}

	from, err := migrator.GetCurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	if err := migrator.Migrate(ctx); err != nil {
		return fmt.Errorf("migrating %q: %w", cfg.Database.Name, err)
	}

	latest := int32(len(migrator.Migrations))
	logger.Info().
		Str("database", cfg.Database.Name).
		Int32("from", from).
		Int32("to", latest).
		Bool("changed", from != latest).
		Msg("database schema ready")
	return nil
}
