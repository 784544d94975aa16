package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestLoadWritesDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	logger := zerolog.Nop()

	cfg, resolved, err := Load(&logger, path)
	require.NoError(t, err)
	require.Equal(t, path, resolved)
	require.Equal(t, Default(), cfg)

	_, statErr := os.Stat(path)
	require.NoError(t, statErr)
}

func TestLoadFileAndEnvPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: \":7000\"\nsend_buffer: 16\nwrite_timeout: 2s\n"), 0o600))

	t.Setenv("TOWNHALL_ADDR", ":9000")

	cfg, _, err := Load(nil, path)
	require.NoError(t, err)
	require.Equal(t, ":9000", cfg.Addr)
	require.Equal(t, 16, cfg.SendBuffer)
	require.Equal(t, 2*time.Second, cfg.WriteTimeout)
	require.Equal(t, Default().ShutdownTimeout, cfg.ShutdownTimeout)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("send_buffer: 0\n"), 0o600))

	_, _, err := Load(nil, path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "SendBuffer")
}

func TestAllowsAnyOrigin(t *testing.T) {
	cfg := Default()
	require.True(t, cfg.AllowsAnyOrigin())

	cfg.AllowedOrigins = []string{"example.com"}
	require.False(t, cfg.AllowsAnyOrigin())

	cfg.AllowedOrigins = nil
	require.True(t, cfg.AllowsAnyOrigin())
}
