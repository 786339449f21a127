package database

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClockedTracer(threshold time.Duration, buf *bytes.Buffer, elapsed time.Duration) *SlowQueryTracer {
	logger := zerolog.New(buf)
	tracer := NewSlowQueryTracer(threshold, &logger)

	start := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	calls := 0
	tracer.now = func() time.Time {
		calls++
		if calls == 1 {
			return start
		}
		return start.Add(elapsed)
	}
	return tracer
}

func TestSlowQueryTracer_LogsSlowStatement(t *testing.T) {
	var buf bytes.Buffer
	tracer := newClockedTracer(100*time.Millisecond, &buf, 250*time.Millisecond)

	ctx := tracer.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "SELECT * FROM dogs"})
	tracer.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{Err: errors.New("canceled")})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "slow query", entry["message"])
	assert.Equal(t, "SELECT * FROM dogs", entry["sql"])
	assert.Equal(t, float64(250), entry["duration"])
	assert.Equal(t, "canceled", entry["error"])
}

func TestSlowQueryTracer_IgnoresFastStatement(t *testing.T) {
	var buf bytes.Buffer
	tracer := newClockedTracer(100*time.Millisecond, &buf, 20*time.Millisecond)

	ctx := tracer.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "SELECT 1"})
	tracer.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{})

	assert.Empty(t, buf.String())
}

func TestSlowQueryTracer_EndWithoutStart(t *testing.T) {
	var buf bytes.Buffer
	tracer := newClockedTracer(0, &buf, time.Second)

	tracer.TraceQueryEnd(context.Background(), nil, pgx.TraceQueryEndData{})

	assert.Empty(t, buf.String())
}

func TestMultiTracer_ChainsContexts(t *testing.T) {
	var fast, slow bytes.Buffer
	mt := &multiTracer{tracers: []pgx.QueryTracer{
		newClockedTracer(time.Second, &fast, 300*time.Millisecond),
		newClockedTracer(100*time.Millisecond, &slow, 300*time.Millisecond),
	}}

	ctx := mt.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "SELECT * FROM books"})
	mt.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{})

	assert.Empty(t, fast.String())
	assert.Contains(t, slow.String(), "SELECT * FROM books")
}
