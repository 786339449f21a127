package server

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/deppfellow/dogwalk/internal/config"
	"github.com/deppfellow/dogwalk/internal/database"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_StateDegraded(t *testing.T) {
	logger := zerolog.Nop()
	cause := errors.New("connection refused")

	s := &Server{DB: database.Unavailable(cause, &logger)}

	assert.Equal(t, StateDegraded, s.State())
	assert.ErrorIs(t, s.ProvisionErr(), cause)
}

func TestNew_UnreachableDatabaseStartsDegraded(t *testing.T) {
	t.Setenv("DOGWALK_DATABASE__HOST", "127.0.0.1")
	t.Setenv("DOGWALK_DATABASE__PORT", "1")
	t.Setenv("DOGWALK_SESSION__STORE", "memory")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger := zerolog.Nop()
	s, err := New(ctx, cfg, &logger, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Shutdown(context.Background()) })

	assert.Equal(t, StateDegraded, s.State())
	assert.Error(t, s.ProvisionErr())
	assert.NotNil(t, s.Sessions)
	assert.Nil(t, s.Redis)
}

func TestServer_StateWithoutDatabase(t *testing.T) {
	s := &Server{}
	assert.Equal(t, StateDegraded, s.State())
	assert.ErrorIs(t, s.ProvisionErr(), database.ErrUnavailable)
}

func TestServer_StartWithoutSetup(t *testing.T) {
	logger := zerolog.Nop()
	s := &Server{Logger: &logger, Config: &config.Config{}}
	assert.Error(t, s.Start())
}

func TestServer_ShutdownDegraded(t *testing.T) {
	logger := zerolog.Nop()
	s := &Server{DB: database.Unavailable(nil, &logger)}
	require.NoError(t, s.Shutdown(context.Background()))
}
