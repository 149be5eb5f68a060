// Package config loads the application configuration: logging settings
// and calculation defaults. Values come from an optional YAML file with
// environment variable overrides on top.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Environment variable overrides.
const (
	EnvLogLevel  = "SCOPCALC_LOG_LEVEL"
	EnvLogFormat = "SCOPCALC_LOG_FORMAT"
	EnvUnitType  = "SCOPCALC_UNIT_TYPE"
)

// LoggingConfig controls logger construction.
type LoggingConfig struct {
	// Level is a zerolog level name. Defaults to info.
	Level string `yaml:"level"`

	// Format is "console" or "json". Defaults to console.
	Format string `yaml:"format"`
}

// DefaultsConfig carries calculation defaults applied when the input
// document leaves them out.
type DefaultsConfig struct {
	// DegradationCoeff is the default Cd. Zero defers to the engine's
	// own default (0.9).
	DegradationCoeff float64 `yaml:"degradation_coeff"`

	// UnitType is "air" or "water_brine". Defaults to air.
	UnitType string `yaml:"unit_type"`

	// OutputFormat is the default output format for the calculate
	// command: "table", "json" or "csv".
	OutputFormat string `yaml:"output_format"`
}

// Config is the root application configuration.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging"`
	Defaults DefaultsConfig `yaml:"defaults"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Logging: LoggingConfig{Level: "info", Format: "console"},
		Defaults: DefaultsConfig{
			UnitType:     "air",
			OutputFormat: "table",
		},
	}
}

// Load reads the configuration file at path, falling back to defaults
// when path is empty or the file does not exist, then applies
// environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// Missing config file is not an error; defaults apply.
		case err != nil:
			return cfg, fmt.Errorf("reading config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

// applyEnv overlays environment variables onto the configuration.
func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv(EnvUnitType); v != "" {
		cfg.Defaults.UnitType = v
	}
}
