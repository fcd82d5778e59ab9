// Package config provides configuration management for the matchedge application.
package config

import (
	"fmt"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	App     AppConfig     `mapstructure:"app" validate:"required"`
	Engine  EngineConfig  `mapstructure:"engine" validate:"required"`
	Metrics MetricsConfig `mapstructure:"metrics" validate:"required"`
	Watch   WatchConfig   `mapstructure:"watch" validate:"required"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// EngineConfig controls how evaluations are executed
type EngineConfig struct {
	ProfilePath    string  `mapstructure:"profile_path"`
	FactorWorkers  int     `mapstructure:"factor_workers" validate:"required,gt=0,lte=8"`
	BatchWorkers   int     `mapstructure:"batch_workers" validate:"required,gt=0,lte=64"`
	RatePerSecond  float64 `mapstructure:"rate_per_second" validate:"required,gt=0"`
	RateBurst      int     `mapstructure:"rate_burst" validate:"required,gt=0"`
	MemoTTLSeconds int     `mapstructure:"memo_ttl_seconds" validate:"required,gt=0"`
	MemoMaxEntries int     `mapstructure:"memo_max_entries" validate:"required,gt=0"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// WatchConfig controls the scheduled profile reload and input sweep
type WatchConfig struct {
	InputDir       string `mapstructure:"input_dir"`
	OutputDir      string `mapstructure:"output_dir"`
	SweepSchedule  string `mapstructure:"sweep_schedule" validate:"required,cron"`
	ReloadSchedule string `mapstructure:"reload_schedule" validate:"required,cron"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsStaging checks if the application is running in staging mode
func (c *Config) IsStaging() bool {
	return c.App.Environment == "staging"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// MemoTTL returns the evaluation memo lifetime
func (c *Config) MemoTTL() time.Duration {
	return time.Duration(c.Engine.MemoTTLSeconds) * time.Second
}

// MetricsAddress returns the listen port for the health and metrics server
func (c *Config) MetricsAddress() string {
	return fmt.Sprintf("%d", c.Metrics.Port)
}
