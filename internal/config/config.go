// Package config provides centralized configuration for the promomod server
// and CLI. It loads settings from environment variables with sensible
// defaults and validates everything on startup to fail fast on
// misconfiguration.
package config

import (
	"strconv"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server   ServerConfig
	Source   SourceConfig
	S3       S3Config
	Database DatabaseConfig
	Cache    CacheConfig
	Rate     RateLimitConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" envAlt:"PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading a request (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing a response (default: 30s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 30s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"30s"`
}

// SourceConfig selects where the lookup tables are loaded from.
type SourceConfig struct {
	// URL is a workbook path or a URL whose scheme picks the loader:
	// file path / file:// (xlsx), csv://dir, postgres://, sqlite://path, s3://bucket/key
	URL string `env:"SOURCE_URL" envAlt:"PROMOMOD_SOURCE" default:"data/equivalencias_promo_modalidad.xlsx"`

	// Watch reloads the tables when a file source changes (default: false)
	Watch bool `env:"SOURCE_WATCH" default:"false"`

	// LoadTimeout bounds a single load or reload (default: 30s)
	LoadTimeout time.Duration `env:"SOURCE_LOAD_TIMEOUT" default:"30s"`
}

// S3Config holds object storage credentials for s3:// sources.
type S3Config struct {
	// Endpoint is the S3-compatible host:port (default: s3.amazonaws.com)
	Endpoint string `env:"S3_ENDPOINT" default:"s3.amazonaws.com"`

	AccessKey string `env:"S3_ACCESS_KEY" envAlt:"AWS_ACCESS_KEY_ID"`
	SecretKey string `env:"S3_SECRET_KEY" envAlt:"AWS_SECRET_ACCESS_KEY"`
	Region    string `env:"S3_REGION" envAlt:"AWS_REGION"`

	// UseSSL enables TLS to the endpoint (default: true)
	UseSSL bool `env:"S3_USE_SSL" default:"true"`
}

// DatabaseConfig holds connection pool settings for postgres:// sources.
type DatabaseConfig struct {
	// MaxConns is the maximum number of connections in the pool (default: 4)
	MaxConns int `env:"DB_MAX_CONNS" default:"4"`

	// MinConns is the minimum number of connections to keep open (default: 0)
	MinConns int `env:"DB_MIN_CONNS" default:"0"`

	// MaxConnLifetime is the maximum lifetime of a connection (default: 1h)
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`
}

// CacheConfig holds the resolution cache settings.
type CacheConfig struct {
	// Size is the number of cached outcomes per table snapshot; 0 disables (default: 512)
	Size int `env:"CACHE_SIZE" default:"512"`
}

// RateLimitConfig holds rate limiting settings per time window.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the default rate limit per IP (default: 120)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"120"`

	// ReloadLimit is requests per minute for the reload endpoint (default: 6)
	ReloadLimit int `env:"RATE_LIMIT_RELOAD" default:"6"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`

	// RequireAPIKey protects the admin endpoints with an API key (default: false)
	RequireAPIKey bool `env:"REQUIRE_API_KEY" default:"false"`

	// APIKeys is a comma-separated list of accepted keys
	APIKeys []string `env:"API_KEYS"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
