package config_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-causality/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "127.0.0.1:8501", cfg.HTTP.Addr)
	assert.Equal(t, "/metrics", cfg.HTTP.MetricsPath)
	assert.Equal(t, 30*time.Second, cfg.HTTP.RequestTimeout)
	assert.InDelta(t, 0.05, cfg.Discovery.Alpha, 0)
	assert.Equal(t, -1, cfg.Discovery.MaxConditioningSize)
	assert.Equal(t, 10*time.Second, cfg.GracefulShutdownTimeout)
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := config.Load(filepath.Join("testdata", "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8501", cfg.HTTP.Addr)
}

func TestLoadFile(t *testing.T) {
	cfg, err := config.Load(filepath.Join("testdata", "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, ":9000", cfg.HTTP.Addr)
	assert.Equal(t, 5*time.Second, cfg.HTTP.RequestTimeout)
	assert.Equal(t, time.Minute, cfg.HTTP.ReadTimeout)
	assert.InDelta(t, 0.01, cfg.Discovery.Alpha, 0)
	assert.Equal(t, 2, cfg.Discovery.Concurrency)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":7000")
	t.Setenv("DISCOVERY_ALPHA", "0.1")

	cfg, err := config.Load(filepath.Join("testdata", "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.HTTP.Addr)
	assert.InDelta(t, 0.1, cfg.Discovery.Alpha, 0)
}
