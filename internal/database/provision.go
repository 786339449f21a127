package database

import (
	"context"
	"fmt"

	"github.com/deppfellow/dogwalk/internal/config"
	loggerConfig "github.com/deppfellow/dogwalk/internal/logger"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// SeedBook is one of the fixed rows inserted into an empty books table.
type SeedBook struct {
	Title  string
	Author string
}

// SeedBooks is the demo data set proving connectivity.
var SeedBooks = []SeedBook{
	{Title: "1984", Author: "George Orwell"},
	{Title: "To Kill a Mockingbird", Author: "Harper Lee"},
	{Title: "Brave New World", Author: "Aldous Huxley"},
}

// Provision brings the data layer up: database, schema, pool and seed
// rows, in that order. Any error aborts provisioning; the caller decides
// how to degrade.
func Provision(ctx context.Context, cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*Database, error) {
	if err := EnsureDatabase(ctx, cfg, logger); err != nil {
		return nil, err
	}

	if err := Migrate(ctx, logger, cfg); err != nil {
		return nil, err
	}

	db, err := New(ctx, cfg, logger, loggerService)
	if err != nil {
		return nil, err
	}

	seeded, err := SeedBooksIfEmpty(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if seeded {
		logger.Info().Int("rows", len(SeedBooks)).Msg("seeded books table")
	}

	if cfg.Database.SeedDemo {
		seeded, err := SeedDemoIfEmpty(ctx, db)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		if seeded {
			logger.Info().Msg("seeded demo marketplace data")
		}
	}

	return db, nil
}

// EnsureDatabase creates cfg.Database.Name when it does not exist,
// connecting through the maintenance database to do so.
func EnsureDatabase(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) error {
	conn, err := pgx.Connect(ctx, DSN(cfg.Database, cfg.Database.MaintenanceDB))
	if err != nil {
		return fmt.Errorf("connecting to maintenance database: %w", err)
	}
	defer conn.Close(ctx)

	var exists bool
	err = conn.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)`, cfg.Database.Name).Scan(&exists)
	if err != nil {
		return fmt.Errorf("checking database %q: %w", cfg.Database.Name, err)
	}
	if exists {
		return nil
	}

	// CREATE DATABASE takes no bind parameters.
	if _, err := conn.Exec(ctx, "CREATE DATABASE "+pgx.Identifier{cfg.Database.Name}.Sanitize()); err != nil {
		return fmt.Errorf("creating database %q: %w", cfg.Database.Name, err)
	}

	logger.Info().Str("database", cfg.Database.Name).Msg("created database")
	return nil
}

// SeedBooksIfEmpty inserts SeedBooks when the books table has no rows.
// It reports whether rows were inserted.
func SeedBooksIfEmpty(ctx context.Context, q Querier) (bool, error) {
	var count int
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM books`).Scan(&count); err != nil {
		return false, fmt.Errorf("counting books: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	for _, book := range SeedBooks {
		if _, err := q.Exec(ctx, `INSERT INTO books (title, author) VALUES ($1, $2)`, book.Title, book.Author); err != nil {
			return false, fmt.Errorf("seeding book %q: %w", book.Title, err)
		}
	}
	return true, nil
}

// demoStatements populate a small marketplace: three owners, two walkers
// (one of them unrated), dogs, open and completed requests, applications
// and ratings. Foreign keys are resolved by username and dog name.
var demoStatements = []string{
	`INSERT INTO users (username, email, password_hash, role) VALUES
		('alice123', 'alice@example.com', 'hashed123', 'owner'),
		('bobwalker', 'bob@example.com', 'hashed456', 'walker'),
		('carol123', 'carol@example.com', 'hashed789', 'owner'),
		('davidwalker', 'david@example.com', 'hashed321', 'walker'),
		('emilyowner', 'emily@example.com', 'hashed654', 'owner')`,

	`INSERT INTO dogs (owner_id, name, size)
		SELECT u.user_id, d.name, d.size
		FROM (VALUES
			('alice123', 'Max', 'medium'),
			('carol123', 'Bella', 'small'),
			('emilyowner', 'Rocky', 'large'),
			('alice123', 'Luna', 'small'),
			('carol123', 'Charlie', 'medium')
		) AS d (username, name, size)
		JOIN users u ON u.username = d.username`,

	`INSERT INTO walk_requests (dog_id, requested_time, duration_minutes, location, status)
		SELECT d.dog_id, r.requested_time::timestamptz, r.duration_minutes, r.location, r.status
		FROM (VALUES
			('Max', '2025-06-10 08:00:00+00', 30, 'Parklands', 'open'),
			('Bella', '2025-06-10 09:30:00+00', 45, 'Beachside Ave', 'accepted'),
			('Rocky', '2025-06-11 07:15:00+00', 60, 'Hilltop Trail', 'completed'),
			('Luna', '2025-06-12 10:00:00+00', 20, 'City Garden', 'open'),
			('Charlie', '2025-06-09 17:45:00+00', 40, 'Riverside Path', 'completed')
		) AS r (dog_name, requested_time, duration_minutes, location, status)
		JOIN dogs d ON d.name = r.dog_name`,

	`INSERT INTO walk_applications (request_id, walker_id, status)
		SELECT wr.request_id, u.user_id, a.status
		FROM (VALUES
			('Bella', 'bobwalker', 'accepted'),
			('Rocky', 'bobwalker', 'accepted'),
			('Charlie', 'bobwalker', 'accepted'),
			('Max', 'davidwalker', 'pending')
		) AS a (dog_name, walker, status)
		JOIN dogs d ON d.name = a.dog_name
		JOIN walk_requests wr ON wr.dog_id = d.dog_id
		JOIN users u ON u.username = a.walker`,

	`INSERT INTO walk_ratings (request_id, walker_id, owner_id, rating, comments)
		SELECT wr.request_id, w.user_id, d.owner_id, r.rating, r.comments
		FROM (VALUES
			('Rocky', 'bobwalker', 5, 'Rocky came home happy'),
			('Charlie', 'bobwalker', 4, 'Great walk, a little late')
		) AS r (dog_name, walker, rating, comments)
		JOIN dogs d ON d.name = r.dog_name
		JOIN walk_requests wr ON wr.dog_id = d.dog_id
		JOIN users w ON w.username = r.walker`,
}

// SeedDemoIfEmpty loads the demo marketplace when the users table is
// empty. It reports whether rows were inserted.
func SeedDemoIfEmpty(ctx context.Context, q Querier) (bool, error) {
	var count int
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return false, fmt.Errorf("counting users: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	for i, stmt := range demoStatements {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return false, fmt.Errorf("seeding demo data (statement %d): %w", i+1, err)
		}
	}
	return true, nil
}
