// Package config provides configuration management for the quant engine.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/WarenOdhiambo1/lead-magnet/internal/quant"
)

// EnvPrefix is the prefix for environment overrides (QUANT_ENGINE_DATABASE_HOST)
const EnvPrefix = "QUANT_ENGINE"

// DefaultConfigPath is used when no path is given
const DefaultConfigPath = "config/config.yaml"

// Load reads and parses the configuration from file and environment variables
// It expands environment variable placeholders in the YAML file (${VAR_NAME})
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	v := newViper()
	if err := v.ReadConfig(bytes.NewBufferString(os.ExpandEnv(string(data)))); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return unmarshal(v)
}

// LoadWithDefaults loads configuration with default values for optional fields.
// A missing file is not an error: defaults and environment variables apply.
func LoadWithDefaults(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}

	v := newViper()
	setDefaults(v)

	if data, err := os.ReadFile(configPath); err == nil {
		if err := v.ReadConfig(bytes.NewBufferString(os.ExpandEnv(string(data)))); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return unmarshal(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

func unmarshal(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "quant-engine")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "quant_engine")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_connections", 10)

	defaults := quant.DefaultRateParams()
	v.SetDefault("engine.max_goals", quant.DefaultMaxGoals)
	v.SetDefault("engine.rho", quant.DefaultRho)
	v.SetDefault("engine.league_average", defaults.LeagueAverage)
	v.SetDefault("engine.home_advantage", defaults.HomeAdvantage)
	v.SetDefault("engine.min_strength", defaults.MinStrength)
	v.SetDefault("engine.max_strength", defaults.MaxStrength)
	v.SetDefault("engine.min_rate", defaults.MinRate)
	v.SetDefault("engine.min_value_margin", quant.DefaultMinMargin)
	v.SetDefault("engine.model_version", "dixon_coles_v1")
	v.SetDefault("engine.match_status", "Not Started")
	v.SetDefault("engine.batch_size", 500)
	v.SetDefault("engine.adjustments", false)
	v.SetDefault("engine.form_window", quant.FormWindow)

	v.SetDefault("api.port", 8000)
	v.SetDefault("api.rate_limit", 20.0)
	v.SetDefault("api.burst", 40)

	v.SetDefault("cache.ttl_seconds", 300)
	v.SetDefault("cache.max_size", 10000)

	v.SetDefault("schedule.enabled", true)
	v.SetDefault("schedule.predictions", "@every 15m")
	v.SetDefault("schedule.scan", "@every 5m")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}
