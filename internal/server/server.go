// Package server defines the Server container that composes the app's
// main dependencies.
//
// It owns the lifecycle of:
//   - configuration
//   - logger + optional New Relic service wrapper
//   - database (live pool or the degraded client)
//   - redis client, when sessions live in Redis
//   - session manager
//   - http.Server
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/dogwalk/internal/config"
	"github.com/deppfellow/dogwalk/internal/database"
	"github.com/deppfellow/dogwalk/internal/session"
	"github.com/newrelic/go-agent/v3/integrations/nrredis-v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	loggerPkg "github.com/deppfellow/dogwalk/internal/logger"
)

// State is the data-layer readiness reported by /status.
type State string

const (
	StateReady    State = "ready"
	StateDegraded State = "degraded"
)

// Server is the application container. It is not the HTTP server
// itself; that one is built by SetupHTTPServer.
type Server struct {
	Config        *config.Config
	Logger        *zerolog.Logger
	LoggerService *loggerPkg.LoggerService
	DB            *database.Database
	Redis         *redis.Client
	Sessions      *session.Manager

	httpServer *http.Server
}

// RedisPingTimeout bounds the start-up Redis check.
const RedisPingTimeout = 5 * time.Second

// New builds the container.
//
// Database provisioning never fails New: its error is logged and the
// server comes up degraded, each data route then failing on its own.
// A session store that cannot be built does fail New.
func New(ctx context.Context, cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	db, err := database.Provision(ctx, cfg, logger, loggerService)
	if err != nil {
		logger.Error().Err(err).Msg("database provisioning failed, starting degraded")
		db = database.Unavailable(err, logger)
	}

	var redisClient *redis.Client
	if cfg.Session.Store == "redis" {
		redisClient = newRedisClient(ctx, cfg.Redis, logger, loggerService)
	}

	store, err := session.NewStore(cfg.Session.Store, redisClient)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create session store: %w", err)
	}

	return &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		DB:            db,
		Redis:         redisClient,
		Sessions:      session.NewManager(cfg.Session, store),
	}, nil
}

// newRedisClient creates the client and pings it. Connections are lazy,
// so a failed ping only logs; the session store reports errors per call.
func newRedisClient(ctx context.Context, cfg config.RedisConfig, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if loggerService.GetApplication() != nil {
		client.AddHook(nrredis.NewHook(client.Options()))
	}

	pingCtx, cancel := context.WithTimeout(ctx, RedisPingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Error().Err(err).Str("address", cfg.Address).Msg("failed to connect to Redis, sessions will fail until it is reachable")
	}

	return client
}

// State reports whether the data layer is usable.
func (s *Server) State() State {
	if s.DB != nil && s.DB.Available() {
		return StateReady
	}
	return StateDegraded
}

// ProvisionErr is the error that put the server in the degraded state.
func (s *Server) ProvisionErr() error {
	if s.DB == nil {
		return database.ErrUnavailable
	}
	return s.DB.Err()
}

// SetupHTTPServer configures the net/http server around handler.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:         ":" + s.Config.Server.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Str("state", string(s.State())).
		Msg("starting server")

	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests, then closes the database pool and
// the Redis client.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown HTTP server: %w", err)
		}
	}

	if s.DB != nil {
		if err := s.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database connection: %w", err)
		}
	}

	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			return fmt.Errorf("failed to close redis client: %w", err)
		}
	}

	return nil
}
