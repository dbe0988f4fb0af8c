package config

import (
	"strings"
	"time"
)

// Supported values for DatabaseConfig.Driver.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	CORS     CORSConfig     `mapstructure:"cors"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port        int    `mapstructure:"port"         validate:"required,gt=0,lt=65536"`
	LogLevel    string `mapstructure:"log_level"    validate:"required,oneof=debug info warn error"`
	Env         string `mapstructure:"env"          validate:"required,oneof=development production test"`
	BasePath    string `mapstructure:"base_path"    validate:"required,startswith=/"`
	ServiceName string `mapstructure:"service_name" validate:"required"`

	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds" validate:"gt=0"`
}

// ShutdownTimeout returns the graceful shutdown budget as a duration.
func (c ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

// DatabaseConfig selects and configures the task store backend.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=mongo postgres memory"`
	// URL is the connection string; unused by the memory driver.
	URL string `mapstructure:"url" validate:"required_unless=Driver memory"`
	// Name is the MongoDB database name. Postgres takes the database from URL.
	Name string `mapstructure:"name" validate:"required"`

	ConnectTimeoutSeconds int `mapstructure:"connect_timeout_seconds" validate:"gt=0"`
	QueryTimeoutSeconds   int `mapstructure:"query_timeout_seconds"   validate:"gt=0"`

	// AutoMigrate creates the postgres tasks table at startup when missing.
	AutoMigrate bool `mapstructure:"auto_migrate"`
}

// ConnectTimeout returns the startup connection budget as a duration.
func (c DatabaseConfig) ConnectTimeout() time.Duration {
	return time.Duration(c.ConnectTimeoutSeconds) * time.Second
}

// QueryTimeout returns the per-operation store budget as a duration.
func (c DatabaseConfig) QueryTimeout() time.Duration {
	return time.Duration(c.QueryTimeoutSeconds) * time.Second
}

// CORSConfig controls cross-origin access for browser clients.
type CORSConfig struct {
	// AllowedOrigins is a comma-separated origin list; "*" or empty allows any origin.
	AllowedOrigins string `mapstructure:"allowed_origins"`
}

// Origins splits AllowedOrigins into a clean list. An empty or "*" value
// yields []string{"*"}.
func (c CORSConfig) Origins() []string {
	raw := strings.TrimSpace(c.AllowedOrigins)
	if raw == "" || raw == "*" {
		return []string{"*"}
	}

	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// AllowAnyOrigin reports whether the wildcard origin is configured.
func (c CORSConfig) AllowAnyOrigin() bool {
	for _, o := range c.Origins() {
		if o == "*" {
			return true
		}
	}
	return false
}
