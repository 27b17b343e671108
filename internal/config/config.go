// Package config provides configuration management for the quant engine.
package config

import (
	"fmt"
	"time"

	"github.com/WarenOdhiambo1/lead-magnet/internal/quant"
)

// Config represents the complete application configuration
type Config struct {
	App      AppConfig      `mapstructure:"app" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Engine   EngineConfig   `mapstructure:"engine" validate:"required"`
	API      APIConfig      `mapstructure:"api" validate:"required"`
	Cache    CacheConfig    `mapstructure:"cache" validate:"required"`
	Schedule ScheduleConfig `mapstructure:"schedule" validate:"required"`
	Metrics  MetricsConfig  `mapstructure:"metrics" validate:"required"`
	Secrets  SecretsConfig  `mapstructure:"secrets"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Host           string `mapstructure:"host" validate:"required"`
	Port           int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Name           string `mapstructure:"name" validate:"required"`
	User           string `mapstructure:"user" validate:"required"`
	Password       string `mapstructure:"password"`
	SSLMode        string `mapstructure:"ssl_mode" validate:"required,oneof=disable require verify-full"`
	MaxConnections int    `mapstructure:"max_connections" validate:"required,gt=0"`
}

// EngineConfig holds the prediction model parameters
type EngineConfig struct {
	MaxGoals       int     `mapstructure:"max_goals" validate:"required,gt=0,lte=30"`
	Rho            float64 `mapstructure:"rho" validate:"gt=-1,lt=1"`
	LeagueAverage  float64 `mapstructure:"league_average" validate:"required,gt=0"`
	HomeAdvantage  float64 `mapstructure:"home_advantage" validate:"required,gt=0"`
	MinStrength    float64 `mapstructure:"min_strength" validate:"required,gt=0"`
	MaxStrength    float64 `mapstructure:"max_strength" validate:"required,gt=0"`
	MinRate        float64 `mapstructure:"min_rate" validate:"gte=0"`
	MinValueMargin float64 `mapstructure:"min_value_margin" validate:"gte=0"`
	ModelVersion   string  `mapstructure:"model_version" validate:"required"`
	MatchStatus    string  `mapstructure:"match_status" validate:"required"`
	BatchSize      int     `mapstructure:"batch_size" validate:"required,gt=0"`
	Adjustments    bool    `mapstructure:"adjustments"`
	FormWindow     int     `mapstructure:"form_window" validate:"gte=0,lte=38"`
}

// APIConfig represents HTTP API configuration
type APIConfig struct {
	Port      int     `mapstructure:"port" validate:"required,min=1,max=65535"`
	RateLimit float64 `mapstructure:"rate_limit" validate:"required,gt=0"`
	Burst     int     `mapstructure:"burst" validate:"required,gt=0"`
}

// CacheConfig represents prediction cache configuration
type CacheConfig struct {
	TTLSeconds int `mapstructure:"ttl_seconds" validate:"required,gt=0"`
	MaxSize    int `mapstructure:"max_size" validate:"required,gt=0"`
}

// ScheduleConfig represents job scheduling for the API process
type ScheduleConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Predictions string `mapstructure:"predictions" validate:"required,cron"`
	Scan        string `mapstructure:"scan" validate:"required,cron"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path" validate:"required"`
}

// SecretsConfig controls the AWS Secrets Manager overlay
type SecretsConfig struct {
	AWSEnabled bool   `mapstructure:"aws_enabled"`
	Region     string `mapstructure:"region" validate:"required_if=AWSEnabled true"`
	SecretName string `mapstructure:"secret_name" validate:"required_if=AWSEnabled true"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// Predictor returns the score-matrix parameters
func (e EngineConfig) Predictor() quant.Predictor {
	return quant.Predictor{MaxGoals: e.MaxGoals, Rho: e.Rho}
}

// RateParams returns the strength-to-rate parameters
func (e EngineConfig) RateParams() quant.RateParams {
	return quant.RateParams{
		LeagueAverage: e.LeagueAverage,
		HomeAdvantage: e.HomeAdvantage,
		MinStrength:   e.MinStrength,
		MaxStrength:   e.MaxStrength,
		MinRate:       e.MinRate,
	}
}

// TTL returns the cache TTL as a duration
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}
