// Package logger configures the application's logging,
// monitoring, and observability.
//
// It uses *ZeroLog* for logging and optionally integrates with
// *New Relic*, forwarding logs and exposing the application
// instance used by the tracing middleware and database tracer.
package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/deppfellow/dogwalk/internal/config"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/newrelic/go-agent/v3/integrations/logcontext-v2/zerologWriter"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// LoggerService owns the optional New Relic application.
// A nil application means New Relic is disabled.
type LoggerService struct {
	nrApp *newrelic.Application
}

// NewLoggerService starts the New Relic agent when a license key is
// configured. Agent start-up failures are reported on stderr and leave
// the service without an application; logging keeps working.
func NewLoggerService(cfg *config.ObservabilityConfig) *LoggerService {
	service := &LoggerService{}

	if !cfg.NewRelicEnabled() {
		return service
	}

	opts := []newrelic.ConfigOption{
		newrelic.ConfigAppName(cfg.ServiceName),
		newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
		newrelic.ConfigAppLogForwardingEnabled(cfg.NewRelic.AppLogForwardingEnabled),
		newrelic.ConfigDistributedTracerEnabled(cfg.NewRelic.DistributedTracingEnabled),
		newrelic.ConfigEnabled(true),
	}
	if cfg.NewRelic.DebugLogging {
		opts = append(opts, newrelic.ConfigDebugLogger(os.Stdout))
	}

	app, err := newrelic.NewApplication(opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize New Relic: %v\n", err)
		return service
	}

	service.nrApp = app
	return service
}

// GetApplication returns the New Relic application, or nil.
func (ls *LoggerService) GetApplication() *newrelic.Application {
	if ls == nil {
		return nil
	}
	return ls.nrApp
}

// Shutdown flushes pending New Relic data.
func (ls *LoggerService) Shutdown() {
	if app := ls.GetApplication(); app != nil {
		app.Shutdown(10 * time.Second)
	}
}

// NewLogger builds a logger without New Relic forwarding.
func NewLogger(cfg *config.ObservabilityConfig) zerolog.Logger {
	return NewLoggerWithService(cfg, nil)
}

// NewLoggerWithService builds the application logger.
//
// Production always writes JSON. Elsewhere the configured format wins,
// and "console" gets the human friendly writer. When New Relic is
// active, output is wrapped so log lines are forwarded to the agent.
func NewLoggerWithService(cfg *config.ObservabilityConfig, service *LoggerService) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.GetLogLevel())
	if err != nil {
		level = zerolog.InfoLevel
	}

	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	var writer io.Writer = os.Stdout
	if !cfg.IsProduction() && cfg.Logging.Format == "console" {
		writer = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
	}

	if app := service.GetApplication(); app != nil && cfg.NewRelic.AppLogForwardingEnabled {
		writer = zerologWriter.New(writer, app)
	}

	return zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Str("service", cfg.ServiceName).
		Str("environment", cfg.Environment).
		Logger()
}

// WithTraceContext adds New Relic trace and span ids to the logger.
func WithTraceContext(logger zerolog.Logger, txn *newrelic.Transaction) zerolog.Logger {
	if txn == nil {
		return logger
	}

	metadata := txn.GetTraceMetadata()
	return logger.With().
		Str("trace.id", metadata.TraceID).
		Str("span.id", metadata.SpanID).
		Logger()
}

// NewPgxLogger returns the logger handed to the pgx tracelog adapter.
// SQL statements are noisy, so it always writes through the console writer.
func NewPgxLogger(level zerolog.Level) zerolog.Logger {
	writer := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: "15:04:05",
		FormatFieldValue: func(i any) string {
			switch v := i.(type) {
			case string:
				if len(v) > 200 {
					return v[:200] + "..."
				}
				return v
			case []byte:
				return string(v)
			default:
				return fmt.Sprintf("%v", v)
			}
		},
	}

	return zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Str("component", "database").
		Logger()
}

// GetPgxTraceLogLevel maps a zerolog level onto pgx's tracelog level.
func GetPgxTraceLogLevel(level zerolog.Level) tracelog.LogLevel {
	switch level {
	case zerolog.TraceLevel:
		return tracelog.LogLevelTrace
	case zerolog.DebugLevel:
		return tracelog.LogLevelDebug
	case zerolog.InfoLevel:
		return tracelog.LogLevelInfo
	case zerolog.WarnLevel:
		return tracelog.LogLevelWarn
	case zerolog.ErrorLevel:
		return tracelog.LogLevelError
	default:
		return tracelog.LogLevelNone
	}
}
