package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "air", cfg.Defaults.UnitType)
	assert.Equal(t, "table", cfg.Defaults.OutputFormat)
	assert.Zero(t, cfg.Defaults.DegradationCoeff)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `logging:
  level: debug
  format: json
defaults:
  unit_type: water_brine
  degradation_coeff: 0.95
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "water_brine", cfg.Defaults.UnitType)
	assert.Equal(t, 0.95, cfg.Defaults.DegradationCoeff)
	// Unset fields keep their defaults.
	assert.Equal(t, "table", cfg.Defaults.OutputFormat)
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging: [nope"), 0o600))

	_, err := Load(path)
	require.ErrorContains(t, err, "parsing config")
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv(EnvLogLevel, "trace")
	t.Setenv(EnvLogFormat, "json")
	t.Setenv(EnvUnitType, "water_brine")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "trace", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "water_brine", cfg.Defaults.UnitType)
}

func TestContextRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Logging.Level = "debug"

	ctx := WithContext(context.Background(), cfg)
	assert.Equal(t, cfg, FromContext(ctx))

	// Without an attached config the defaults come back.
	assert.Equal(t, Default(), FromContext(context.Background()))
}
