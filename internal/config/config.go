// Package config loads and validates application configuration.
// The API server is configured from environment variables only; the CLI
// client additionally reads an optional YAML file (see client.go).
package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
)

// ErrConfiguration is wrapped by every error Load and LoadClient return.
// It is fatal at startup: the process must never run partially configured.
var ErrConfiguration = errors.New("configuration error")

// DevCORSOrigins is the fixed allow-list used outside production
// (Vite dev server and a local preview server).
var DevCORSOrigins = []string{"http://localhost:5173", "http://localhost:3000"}

// DefaultMaxBodyBytes caps inbound request bodies at 10 MiB.
const DefaultMaxBodyBytes int64 = 10 << 20

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "3001".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// Env is "development" (default) or "production". Production restricts
	// CORS to FrontendURL and requires TLS to the database by default.
	Env string

	// FrontendURL is the single allowed origin in production. Optional: when
	// unset in production no cross-origin caller is allowed.
	FrontendURL string

	// DB holds the Postgres connection settings. All fields except SSLMode
	// are required and have no defaults.
	DB DBConfig

	// MaxBodyBytes caps request body size. Defaults to DefaultMaxBodyBytes.
	MaxBodyBytes int64

	// AutoMigrate runs the embedded goose migrations at startup when true.
	AutoMigrate bool
}

// DBConfig is the Postgres connection configuration.
type DBConfig struct {
	Host     string
	Port     int
	Name     string
	User     string
	Password string
	SSLMode  string
}

// URL renders the settings as a postgres:// connection string for pgxpool.
func (d DBConfig) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:     "/" + d.Name,
		RawQuery: url.Values{"sslmode": {d.SSLMode}}.Encode(),
	}
	return u.String()
}

// IsProduction reports whether restricted (production) mode is active.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// CORSOrigins returns the origins allowed to call the API.
func (c Config) CORSOrigins() []string {
	if !c.IsProduction() {
		return DevCORSOrigins
	}
	if c.FrontendURL == "" {
		return nil
	}
	return []string{c.FrontendURL}
}

// requiredDBVars are checked in this order so the error lists them predictably.
var requiredDBVars = []string{"DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "DB_PASSWORD"}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing every required variable that is not set.
func Load() (Config, error) {
	cfg := Config{
		Port:        getEnv("API_PORT", "3001"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Env:         getEnv("APP_ENV", "development"),
		FrontendURL: strings.TrimRight(os.Getenv("FRONTEND_URL"), "/"),
	}

	var missing []string
	for _, key := range requiredDBVars {
		if os.Getenv(key) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: required environment variables not set: %s",
			ErrConfiguration, strings.Join(missing, ", "))
	}

	port, err := strconv.Atoi(os.Getenv("DB_PORT"))
	if err != nil || port <= 0 || port > 65535 {
		return Config{}, fmt.Errorf("%w: DB_PORT must be a port number, got %q",
			ErrConfiguration, os.Getenv("DB_PORT"))
	}

	defaultSSL := "disable"
	if cfg.IsProduction() {
		defaultSSL = "require"
	}
	cfg.DB = DBConfig{
		Host:     os.Getenv("DB_HOST"),
		Port:     port,
		Name:     os.Getenv("DB_NAME"),
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		SSLMode:  getEnv("DB_SSLMODE", defaultSSL),
	}

	cfg.MaxBodyBytes = DefaultMaxBodyBytes
	if v := os.Getenv("MAX_BODY_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("%w: MAX_BODY_BYTES must be a positive integer, got %q", ErrConfiguration, v)
		}
		cfg.MaxBodyBytes = n
	}

	if v := os.Getenv("AUTO_MIGRATE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("%w: AUTO_MIGRATE must be a boolean, got %q", ErrConfiguration, v)
		}
		cfg.AutoMigrate = b
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
