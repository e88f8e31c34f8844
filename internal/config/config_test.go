// Pulseboard - Demo Analytics Dashboard
// Copyright 2026 Pulseboard Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulsekit/pulseboard

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("Server.Port = %d, want 3000", cfg.Server.Port)
	}
	if cfg.Server.Environment != "development" {
		t.Errorf("Server.Environment = %q, want development", cfg.Server.Environment)
	}
	if cfg.Auth.SessionTTL != 24*time.Hour {
		t.Errorf("Auth.SessionTTL = %s, want 24h", cfg.Auth.SessionTTL)
	}
	if cfg.Auth.SweepInterval != time.Hour {
		t.Errorf("Auth.SweepInterval = %s, want 1h", cfg.Auth.SweepInterval)
	}
	if cfg.RateLimit.GlobalRequests != 300 {
		t.Errorf("RateLimit.GlobalRequests = %d, want 300", cfg.RateLimit.GlobalRequests)
	}
	if cfg.RateLimit.AuthRequests != 10 {
		t.Errorf("RateLimit.AuthRequests = %d, want 10", cfg.RateLimit.AuthRequests)
	}
	if cfg.Auth.DemoEmail == "" {
		t.Error("Auth.DemoEmail is empty")
	}
	if cfg.IsProduction() {
		t.Error("IsProduction() = true for default config")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("APP_ENV", "production")
	t.Setenv("DEMO_EMAIL", "demo@example.org")
	t.Setenv("SESSION_TTL", "1h")
	t.Setenv("CORS_ORIGINS", "https://app.example.org, https://admin.example.org")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if !cfg.IsProduction() {
		t.Error("IsProduction() = false with APP_ENV=production")
	}
	if cfg.Auth.DemoEmail != "demo@example.org" {
		t.Errorf("Auth.DemoEmail = %q, want demo@example.org", cfg.Auth.DemoEmail)
	}
	if cfg.Auth.SessionTTL != time.Hour {
		t.Errorf("Auth.SessionTTL = %s, want 1h", cfg.Auth.SessionTTL)
	}
	want := []string{"https://app.example.org", "https://admin.example.org"}
	if len(cfg.Server.CORSOrigins) != len(want) {
		t.Fatalf("CORSOrigins = %v, want %v", cfg.Server.CORSOrigins, want)
	}
	for i := range want {
		if cfg.Server.CORSOrigins[i] != want[i] {
			t.Errorf("CORSOrigins[%d] = %q, want %q", i, cfg.Server.CORSOrigins[i], want[i])
		}
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("server:\n  port: 4000\nauth:\n  demo_email: demo@file.test\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 4000 {
		t.Errorf("Server.Port = %d, want 4000 from file", cfg.Server.Port)
	}
	if cfg.Auth.DemoEmail != "demo@file.test" {
		t.Errorf("Auth.DemoEmail = %q, want demo@file.test", cfg.Auth.DemoEmail)
	}
}

func TestEnvBeatsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 4000\n"), 0o600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("PORT", "5000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 5000 {
		t.Errorf("Server.Port = %d, want env override 5000", cfg.Server.Port)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, true},
		{"bad environment", func(c *Config) { c.Server.Environment = "staging" }, true},
		{"demo email without at-sign", func(c *Config) { c.Auth.DemoEmail = "nobody" }, true},
		{"empty demo email", func(c *Config) { c.Auth.DemoEmail = "" }, true},
		{"zero session ttl", func(c *Config) { c.Auth.SessionTTL = 0 }, true},
		{"zero sweep interval", func(c *Config) { c.Auth.SweepInterval = 0 }, true},
		{"zero auth rate", func(c *Config) { c.RateLimit.AuthRequests = 0 }, true},
		{
			"zero rates allowed when disabled",
			func(c *Config) {
				c.RateLimit.Disabled = true
				c.RateLimit.AuthRequests = 0
				c.RateLimit.GlobalRequests = 0
			},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEnvTransformDropsUnknownKeys(t *testing.T) {
	if got := envTransformFunc("PATH"); got != "" {
		t.Errorf("envTransformFunc(PATH) = %q, want empty", got)
	}
	if got := envTransformFunc("port"); got != "server.port" {
		t.Errorf("envTransformFunc(port) = %q, want server.port", got)
	}
}
