// Pulseboard - Demo Analytics Dashboard
// Copyright 2026 Pulseboard Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulsekit/pulseboard

// Package config loads Pulseboard configuration with Koanf v2 using
// layered sources (highest priority wins):
//
//  1. Built-in defaults
//  2. Optional YAML config file (config.yaml, or CONFIG_PATH)
//  3. Environment variables
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched,
// in order. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/pulseboard/config.yaml",
	"/etc/pulseboard/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// Config is the root configuration for the Pulseboard server.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Auth      AuthConfig      `koanf:"auth"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`

	// Environment is "development" or "production". Production turns on
	// the Secure cookie flag and turns off the swagger endpoint.
	Environment string `koanf:"environment"`

	// ShutdownTimeout bounds graceful shutdown of in-flight requests.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// CORSOrigins lists the SPA origins allowed to call the API with
	// credentials.
	CORSOrigins []string `koanf:"cors_origins"`
}

// DatabaseConfig holds DuckDB settings.
type DatabaseConfig struct {
	// Path is the database file. An empty path opens an in-memory
	// database (tests).
	Path string `koanf:"path"`

	MaxMemory string `koanf:"max_memory"`

	// Threads for the DuckDB engine. 0 = runtime.NumCPU().
	Threads int `koanf:"threads"`
}

// AuthConfig holds the authentication subsystem settings.
type AuthConfig struct {
	// DemoEmail is the well-known email of the single demo account.
	DemoEmail string `koanf:"demo_email"`

	// SessionTTL is the fixed absolute session lifetime.
	SessionTTL time.Duration `koanf:"session_ttl"`

	// SweepInterval is how often expired session rows are removed.
	SweepInterval time.Duration `koanf:"sweep_interval"`
}

// RateLimitConfig holds the two request-rate ceilings.
type RateLimitConfig struct {
	// GlobalRequests per GlobalWindow per client IP, across the API.
	GlobalRequests int           `koanf:"global_requests"`
	GlobalWindow   time.Duration `koanf:"global_window"`

	// AuthRequests per AuthWindow per client IP on the login and
	// demo-login endpoints.
	AuthRequests int           `koanf:"auth_requests"`
	AuthWindow   time.Duration `koanf:"auth_window"`

	// Disabled turns rate limiting off entirely (tests only).
	Disabled bool `koanf:"disabled"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            3000,
			Environment:     "development",
			ShutdownTimeout: 10 * time.Second,
			CORSOrigins:     []string{"http://localhost:5173"},
		},
		Database: DatabaseConfig{
			Path:      "data/pulseboard.duckdb",
			MaxMemory: "512MB",
			Threads:   0,
		},
		Auth: AuthConfig{
			DemoEmail:     "demo@pulseboard.app",
			SessionTTL:    24 * time.Hour,
			SweepInterval: time.Hour,
		},
		RateLimit: RateLimitConfig{
			GlobalRequests: 300,
			GlobalWindow:   time.Minute,
			AuthRequests:   10,
			AuthWindow:     time.Minute,
			Disabled:       false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file and
// environment variables.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file path, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envTransformFunc maps environment variable names to koanf config paths.
// Unknown variables are dropped so unrelated process env doesn't leak into
// the config tree.
func envTransformFunc(key string) string {
	mappings := map[string]string{
		"HOST":              "server.host",
		"PORT":              "server.port",
		"APP_ENV":           "server.environment",
		"SHUTDOWN_TIMEOUT":  "server.shutdown_timeout",
		"CORS_ORIGINS":      "server.cors_origins",
		"DATABASE_PATH":     "database.path",
		"DATABASE_MEMORY":   "database.max_memory",
		"DATABASE_THREADS":  "database.threads",
		"DEMO_EMAIL":        "auth.demo_email",
		"SESSION_TTL":       "auth.session_ttl",
		"SWEEP_INTERVAL":    "auth.sweep_interval",
		"RATE_LIMIT_GLOBAL": "rate_limit.global_requests",
		"RATE_LIMIT_AUTH":   "rate_limit.auth_requests",
		"RATE_LIMIT_OFF":    "rate_limit.disabled",
		"LOG_LEVEL":         "logging.level",
		"LOG_FORMAT":        "logging.format",
	}

	if path, ok := mappings[strings.ToUpper(key)]; ok {
		return path
	}
	return ""
}

// sliceConfigPaths lists config paths parsed as comma-separated slices
// when they arrive as env strings.
var sliceConfigPaths = []string{
	"server.cors_origins",
}

// processSliceFields converts comma-separated env strings into slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// Validate checks the configuration for values that would prevent the
// server from operating correctly.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Environment != "development" && c.Server.Environment != "production" {
		return fmt.Errorf("server.environment must be development or production, got %q", c.Server.Environment)
	}
	if c.Auth.DemoEmail == "" || !strings.Contains(c.Auth.DemoEmail, "@") {
		return fmt.Errorf("auth.demo_email must be a valid email, got %q", c.Auth.DemoEmail)
	}
	if c.Auth.SessionTTL <= 0 {
		return fmt.Errorf("auth.session_ttl must be positive, got %s", c.Auth.SessionTTL)
	}
	if c.Auth.SweepInterval <= 0 {
		return fmt.Errorf("auth.sweep_interval must be positive, got %s", c.Auth.SweepInterval)
	}
	if !c.RateLimit.Disabled {
		if c.RateLimit.GlobalRequests <= 0 || c.RateLimit.AuthRequests <= 0 {
			return fmt.Errorf("rate limit request counts must be positive")
		}
		if c.RateLimit.GlobalWindow <= 0 || c.RateLimit.AuthWindow <= 0 {
			return fmt.Errorf("rate limit windows must be positive")
		}
	}
	return nil
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
