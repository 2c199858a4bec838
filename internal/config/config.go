// Package config provides configuration management for the ekiden tracker.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	App      AppConfig      `mapstructure:"app" validate:"required"`
	Provider ProviderConfig `mapstructure:"provider" validate:"required"`
	Poll     PollConfig     `mapstructure:"poll" validate:"required"`
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Metrics  MetricsConfig  `mapstructure:"metrics" validate:"required"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// ProviderConfig represents the document provider configuration
type ProviderConfig struct {
	Kind              string  `mapstructure:"kind" validate:"required,providerkind"`
	BaseURL           string  `mapstructure:"base_url" validate:"omitempty,url"`
	Dir               string  `mapstructure:"dir"`
	TimeoutSeconds    int     `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	RetryAttempts     int     `mapstructure:"retry_attempts" validate:"gte=0"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second" validate:"required,gt=0"`
	Burst             int     `mapstructure:"burst" validate:"required,gt=0"`
	LiveReportPath    string  `mapstructure:"live_report_path"`
	ResultsPath       string  `mapstructure:"results_path"`
	RaceConfigPath    string  `mapstructure:"race_config_path"`
	LocationsPath     string  `mapstructure:"locations_path"`
	CoursePath        string  `mapstructure:"course_path"`
}

// PollConfig represents the refresh scheduling configuration
type PollConfig struct {
	IntervalSeconds   int    `mapstructure:"interval_seconds" validate:"required,gt=0"`
	CourseRefreshCron string `mapstructure:"course_refresh_cron"`
}

// ServerConfig represents the HTTP API server configuration
type ServerConfig struct {
	Port int `mapstructure:"port" validate:"required,min=1,max=65535"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path" validate:"required"`
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

// ProviderTimeout returns the per-request provider timeout
func (c *Config) ProviderTimeout() time.Duration {
	return time.Duration(c.Provider.TimeoutSeconds) * time.Second
}

// UsesHTTPProvider reports whether documents come from a remote host
func (c *Config) UsesHTTPProvider() bool {
	return strings.EqualFold(c.Provider.Kind, "http")
}

// ServerAddr returns the API server listen address
func (c *Config) ServerAddr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
