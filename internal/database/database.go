// Package database contains the logic for establishing
// connections to the PostgreSQL database.
//
// It handles:
//   - building a DSN from config
//   - provisioning the database, schema and seed data on startup
//   - creating a pgx connection pool (pgxpool)
//   - wiring query tracing/logging (pgx tracelog, slow query warnings)
//   - optional New Relic instrumentation (nrpgx5)
//   - the degraded client used when provisioning fails
package database

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/deppfellow/dogwalk/internal/config"
	loggerConfig "github.com/deppfellow/dogwalk/internal/logger"
	pgxzero "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/newrelic/go-agent/v3/integrations/nrpgx5"
	"github.com/rs/zerolog"
)

// ErrUnavailable is wrapped by every call made on a degraded Database.
var ErrUnavailable = errors.New("database unavailable")

// Querier is the subset of pgx used by repositories. *pgxpool.Pool,
// *Database and test doubles all satisfy it.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Database wraps the pgx connection pool and a logger.
//
// A Database built by Unavailable has no pool; every call fails with
// the provisioning error so requests fail one by one instead of the
// process refusing to start.
type Database struct {
	Pool *pgxpool.Pool
	log  *zerolog.Logger
	err  error
}

// multiTracer fans each query out to several tracers, since pgx only has
// one Tracer slot.
type multiTracer struct {
	tracers []pgx.QueryTracer
}

func (mt *multiTracer) TraceQueryStart(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	for _, t := range mt.tracers {
		ctx = t.TraceQueryStart(ctx, conn, data)
	}
	return ctx
}

func (mt *multiTracer) TraceQueryEnd(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryEndData) {
	for _, t := range mt.tracers {
		t.TraceQueryEnd(ctx, conn, data)
	}
}

// DatabasePingTimeout is the number of seconds to wait for a ping
// before considering the database unreachable.
const DatabasePingTimeout = 10

// DSN builds a postgres URL for the named database. The password is
// URL-escaped so characters like '@' do not break the URL.
func DSN(cfg config.DatabaseConfig, name string) string {
	hostPort := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))

	userInfo := url.User(cfg.User)
	if cfg.Password != "" {
		userInfo = url.UserPassword(cfg.User, cfg.Password)
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     userInfo,
		Host:     hostPort,
		Path:     "/" + name,
		RawQuery: "sslmode=" + url.QueryEscape(cfg.SSLMode),
	}
	return u.String()
}

// New creates a PostgreSQL connection pool with instrumentation and
// pings it.
func New(ctx context.Context, cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*Database, error) {
	pgxPoolConfig, err := pgxpool.ParseConfig(DSN(cfg.Database, cfg.Database.Name))
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgx pool config: %w", err)
	}

	pgxPoolConfig.MaxConns = int32(cfg.Database.MaxOpenConns)
	pgxPoolConfig.MinConns = int32(cfg.Database.MaxIdleConns)
	pgxPoolConfig.MaxConnLifetime = time.Duration(cfg.Database.ConnMaxLifetime) * time.Second
	pgxPoolConfig.MaxConnIdleTime = time.Duration(cfg.Database.ConnMaxIdleTime) * time.Second

	var tracers []pgx.QueryTracer
	if loggerService.GetApplication() != nil {
		tracers = append(tracers, nrpgx5.NewTracer())
	}

	// SQL logging is only turned on for local development; it's noisy.
	if cfg.Primary.Env == "local" {
		globalLevel := logger.GetLevel()
		tracers = append(tracers, &tracelog.TraceLog{
			Logger:   pgxzero.NewLogger(loggerConfig.NewPgxLogger(globalLevel)),
			LogLevel: loggerConfig.GetPgxTraceLogLevel(globalLevel),
		})
	}

	if cfg.Observability != nil && cfg.Observability.Logging.SlowQueryThreshold > 0 {
		tracers = append(tracers, NewSlowQueryTracer(cfg.Observability.Logging.SlowQueryThreshold, logger))
	}

	switch len(tracers) {
	case 0:
	case 1:
		pgxPoolConfig.ConnConfig.Tracer = tracers[0]
	default:
		pgxPoolConfig.ConnConfig.Tracer = &multiTracer{tracers: tracers}
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxPoolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, DatabasePingTimeout*time.Second)
	defer cancel()
	if err = pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().Str("database", cfg.Database.Name).Msg("connected to the database")

	return &Database{Pool: pool, log: logger}, nil
}

// Unavailable returns a degraded Database whose calls all fail with cause.
func Unavailable(cause error, logger *zerolog.Logger) *Database {
	if cause == nil {
		cause = ErrUnavailable
	}
	return &Database{log: logger, err: cause}
}

// Err returns the provisioning error of a degraded Database, or nil.
func (db *Database) Err() error {
	return db.err
}

// Available reports whether the Database has a live pool.
func (db *Database) Available() bool {
	return db.Pool != nil && db.err == nil
}

func (db *Database) unavailable() error {
	return fmt.Errorf("%w: %w", ErrUnavailable, db.err)
}

func (db *Database) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if !db.Available() {
		return nil, db.unavailable()
	}
	return db.Pool.Query(ctx, sql, args...)
}

func (db *Database) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if !db.Available() {
		return errRow{err: db.unavailable()}
	}
	return db.Pool.QueryRow(ctx, sql, args...)
}

func (db *Database) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if !db.Available() {
		return pgconn.CommandTag{}, db.unavailable()
	}
	return db.Pool.Exec(ctx, sql, args...)
}

// Ping checks connectivity; a degraded Database reports its cause.
func (db *Database) Ping(ctx context.Context) error {
	if !db.Available() {
		return db.unavailable()
	}
	return db.Pool.Ping(ctx)
}

// Close closes the connection pool, if any.
func (db *Database) Close() error {
	if db.Pool == nil {
		return nil
	}
	db.log.Info().Msg("closing database connection pool")
	db.Pool.Close()
	return nil
}

// errRow is the pgx.Row returned by a degraded Database.
type errRow struct {
	err error
}

func (r errRow) Scan(...any) error {
	return r.err
}
