// Copyright (c) 2026 GYCODES. All rights reserved.
// Author: dev@gycodes.io

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values. A local .env file is
loaded first when present (never required), so development machines do not need
exported shell variables.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (providers, cache, bridge) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// # Configuration Schema

// Config holds all runtime configuration for the manga-translate API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL) — reading progress persistence
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis). Optional: when empty, resolution results are
	// memoized in-process instead.
	RedisURL string `env:"REDIS_URL"`

	// CacheTTL is how long resolved chapter/page lists stay fresh.
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"10m"`

	// Identity verification (progress endpoints). The server never issues
	// tokens; it only verifies tokens signed by the account service.
	JWTPubKeyPath string `env:"JWT_PUBLIC_KEY_PATH,required"`

	// Content providers
	MangadexBaseURL string `env:"MANGADEX_BASE_URL" envDefault:"https://api.mangadex.org"`
	// MirrorBaseURL points at the scrape-based fallback site. Empty disables
	// the mirror cascade step.
	MirrorBaseURL string `env:"MIRROR_BASE_URL"`
	// CommunityBaseURL points at the community-upload index. Empty disables
	// the community page fallback.
	CommunityBaseURL string `env:"COMMUNITY_BASE_URL"`
	// ProviderRPS throttles outbound requests per provider host.
	ProviderRPS float64 `env:"PROVIDER_RPS" envDefault:"4"`

	// OCR/translation bridge subprocess
	BridgeCommand string        `env:"BRIDGE_COMMAND" envDefault:"python3"`
	BridgeScript  string        `env:"BRIDGE_SCRIPT"  envDefault:"./scripts/translate_bridge.py"`
	BridgeTimeout time.Duration `env:"BRIDGE_TIMEOUT" envDefault:"60s"`

	// OverlayWorkers bounds concurrent bridge invocations for batch overlay.
	OverlayWorkers int `env:"OVERLAY_WORKERS" envDefault:"3"`

	// ProgressDebounce is the collapse window for rapid page-change events.
	ProgressDebounce time.Duration `env:"PROGRESS_DEBOUNCE" envDefault:"800ms"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Best-effort .env loading; absence is the normal production case.
	_ = godotenv.Load()

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// AllowedOrigins returns the extra CORS origins configured via EXTRA_ORIGINS
// (comma-separated). The first-party origin is always allowed separately.
func (c *Config) AllowedOrigins() []string {
	if c.ExtraOrigins == "" {
		return nil
	}

	parts := strings.Split(c.ExtraOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
