// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file
// when present), loads them into structured Go types, and validates
// that required values are present so they can be reused across the
// application runtime.
//
// Responsibilities:
//   - Provide defaults for every block so a bare `go run` talks to a
//     local PostgreSQL with the stock credentials.
//   - Map DOGWALK_ env vars into the Config struct.
//   - Validate the result so the app fails fast on bad config.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists, it is loaded into the
	// process env before any variable is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Env vars are read with the DOGWALK_ prefix. The prefix is stripped,
	the rest is lowercased and every double underscore becomes a "."
	so nested struct fields can be addressed:

	  DOGWALK_SERVER__PORT            -> server.port
	  DOGWALK_DATABASE__SEED_DEMO     -> database.seed_demo
	  DOGWALK_OBSERVABILITY__LOGGING__LEVEL -> observability.logging.level
*/

// EnvPrefix is the prefix every configuration variable must carry.
const EnvPrefix = "DOGWALK_"

// Config is the root configuration object for the application.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis"`
	Session       SessionConfig        `koanf:"session" validate:"required"`
	Static        StaticConfig         `koanf:"static" validate:"required"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are expressed in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
//
// MaintenanceDB is the database used to issue CREATE DATABASE when Name
// does not exist yet.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password"`
	Name            string `koanf:"name" validate:"required"`
	MaintenanceDB   string `koanf:"maintenance_db" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
	SeedDemo        bool   `koanf:"seed_demo"`
}

// RedisConfig contains Redis connection details.
// Only used when Session.Store is "redis".
type RedisConfig struct {
	Address  string `koanf:"address"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

// SessionConfig controls the server-side session store and cookie.
//
// Secret signs the session cookie. The default mirrors the historical
// hardcoded value; override it anywhere that is not a laptop.
type SessionConfig struct {
	Store      string        `koanf:"store" validate:"required,oneof=memory redis"`
	Secret     string        `koanf:"secret" validate:"required"`
	CookieName string        `koanf:"cookie_name" validate:"required"`
	TTL        time.Duration `koanf:"ttl" validate:"required"`
	Secure     bool          `koanf:"secure"`
}

// StaticConfig points at the directory holding the dashboards and other
// public assets.
type StaticConfig struct {
	Dir string `koanf:"dir" validate:"required"`
}

// Defaults returns the flat key/value defaults loaded before the
// environment, keyed with koanf's "." delimiter.
func Defaults() map[string]any {
	return map[string]any{
		"primary.env": "local",

		"server.port":                 "3000",
		"server.read_timeout":         30,
		"server.write_timeout":        30,
		"server.idle_timeout":         60,
		"server.cors_allowed_origins": []string{"*"},

		"database.host":               "localhost",
		"database.port":               5432,
		"database.user":               "postgres",
		"database.password":           "",
		"database.name":               "testdb",
		"database.maintenance_db":     "postgres",
		"database.ssl_mode":           "disable",
		"database.max_open_conns":     10,
		"database.max_idle_conns":     2,
		"database.conn_max_lifetime":  300,
		"database.conn_max_idle_time": 60,
		"database.seed_demo":          false,

		"redis.address": "localhost:6379",

		"session.store":       "memory",
		"session.secret":      "dogwalksecret",
		"session.cookie_name": "dogwalk.sid",
		"session.ttl":         "24h",
		"session.secure":      false,

		"static.dir": "public",

		"observability.logging.level":                         "info",
		"observability.logging.format":                        "json",
		"observability.logging.slow_query_threshold":          "100ms",
		"observability.new_relic.license_key":                 "",
		"observability.new_relic.app_log_forwarding_enabled":  true,
		"observability.new_relic.distributed_tracing_enabled": true,
		"observability.new_relic.debug_logging":               false,
		"observability.health_checks.enabled":                 true,
		"observability.health_checks.timeout":                 "5s",
	}
}

// envKey converts DOGWALK_DATABASE__SEED_DEMO into database.seed_demo.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// LoadConfig loads defaults, overlays environment variables, unmarshals
// into Config, validates it and fills in the observability block.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("could not load config defaults: %w", err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	// Comma separated origins arrive from the env provider with their
	// surrounding whitespace intact.
	var origins []string
	for _, origin := range mainConfig.Server.CORSAllowedOrigins {
		origins = append(origins, splitList(origin)...)
	}
	mainConfig.Server.CORSAllowedOrigins = origins

	if err := validator.New().Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if mainConfig.Session.Store == "redis" && mainConfig.Redis.Address == "" {
		return nil, fmt.Errorf("redis.address is required when session.store is redis")
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	mainConfig.Observability.ServiceName = "dogwalk"
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
