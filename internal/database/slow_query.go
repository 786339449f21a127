package database

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

type slowQueryKey struct {
	tracer *SlowQueryTracer
}

type slowQueryStart struct {
	sql   string
	start time.Time
}

// SlowQueryTracer logs a warning for every statement that takes at least
// Threshold to complete, whatever the configured log level of pgx.
type SlowQueryTracer struct {
	Threshold time.Duration
	Logger    *zerolog.Logger

	now func() time.Time
}

func NewSlowQueryTracer(threshold time.Duration, logger *zerolog.Logger) *SlowQueryTracer {
	return &SlowQueryTracer{Threshold: threshold, Logger: logger, now: time.Now}
}

func (t *SlowQueryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, slowQueryKey{tracer: t}, slowQueryStart{sql: data.SQL, start: t.now()})
}

func (t *SlowQueryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	started, ok := ctx.Value(slowQueryKey{tracer: t}).(slowQueryStart)
	if !ok {
		return
	}

	elapsed := t.now().Sub(started.start)
	if elapsed < t.Threshold {
		return
	}

	e := t.Logger.Warn().
		Str("sql", started.sql).
		Dur("duration", elapsed).
		Dur("threshold", t.Threshold)
	if data.Err != nil {
		e = e.Err(data.Err)
	}
	e.Msg("slow query")
}
