// Mythograph - Fantasy World GIS Tile & Style Synthesis Engine
// Copyright 2026 M. Verley (mverley)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mythograph/mythograph

package config

import (
	"fmt"
	"time"

	"github.com/mythograph/mythograph/internal/worldmodel"
)

// Config is the full server configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Tiles    TilesConfig    `koanf:"tiles"`
	Registry RegistryConfig `koanf:"registry"`
	Style    StyleConfig    `koanf:"style"`
	API      APIConfig      `koanf:"api"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Host        string        `koanf:"host"`
	Port        int           `koanf:"port"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"`
}

// TilesConfig controls the tile resolvers.
type TilesConfig struct {
	// Root is the directory local raster pyramids are confined to.
	Root string `koanf:"root"`

	// CacheMaxAge is the Cache-Control max-age for local raster tiles.
	CacheMaxAge time.Duration `koanf:"cache_max_age"`

	// UpstreamTimeout bounds a single remote tile fetch.
	UpstreamTimeout time.Duration `koanf:"upstream_timeout"`

	// UpstreamRateLimit caps upstream fetches per second; 0 disables.
	UpstreamRateLimit float64 `koanf:"upstream_rate_limit"`
	UpstreamBurst     int     `koanf:"upstream_burst"`

	// GeometryTransform selects the world-transform scope for vector
	// tiles: "metadata" (bounds and center only) or "full" (feature
	// coordinates too).
	GeometryTransform string `koanf:"geometry_transform"`
}

// RegistryConfig controls the record store.
type RegistryConfig struct {
	Path     string `koanf:"path"`
	InMemory bool   `koanf:"in_memory"`
}

// StyleConfig controls style synthesis.
type StyleConfig struct {
	GlyphsURL string `koanf:"glyphs_url"`
}

// APIConfig controls the HTTP boundary.
type APIConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig controls the structured logger.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        3857,
			Timeout:     30 * time.Second,
			Environment: "development",
		},
		Tiles: TilesConfig{
			Root:              "/data/tiles",
			CacheMaxAge:       time.Hour,
			UpstreamTimeout:   15 * time.Second,
			UpstreamRateLimit: 0, // Unlimited
			UpstreamBurst:     10,
			GeometryTransform: string(worldmodel.PolicyMetadataOnly),
		},
		Registry: RegistryConfig{
			Path:     "/data/registry",
			InMemory: false,
		},
		Style: StyleConfig{
			GlyphsURL: "", // Empty means the MapLibre demo fonts
		},
		API: APIConfig{
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   100,
			RateLimitWindow: 1 * time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Validate checks the configuration for values that would fail at runtime.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %v", c.Server.Timeout)
	}
	if c.Tiles.Root == "" {
		return fmt.Errorf("tiles.root must not be empty")
	}
	if c.Tiles.UpstreamRateLimit < 0 {
		return fmt.Errorf("tiles.upstream_rate_limit must not be negative")
	}
	if _, err := worldmodel.ParsePolicy(c.Tiles.GeometryTransform); err != nil {
		return fmt.Errorf("tiles.geometry_transform: %w", err)
	}
	if !c.Registry.InMemory && c.Registry.Path == "" {
		return fmt.Errorf("registry.path must be set unless registry.in_memory is true")
	}
	if c.API.RateLimitReqs <= 0 && !c.API.RateLimitDisabled {
		return fmt.Errorf("api.rate_limit_reqs must be positive when rate limiting is enabled")
	}
	return nil
}

// GeometryPolicy returns the parsed geometry-transform policy. Call only
// after Validate.
func (c *Config) GeometryPolicy() worldmodel.GeometryPolicy {
	p, _ := worldmodel.ParsePolicy(c.Tiles.GeometryTransform)
	return p
}

// RegistryPath returns the registry location in the form the store expects:
// empty for in-memory.
func (c *Config) RegistryPath() string {
	if c.Registry.InMemory {
		return ""
	}
	return c.Registry.Path
}
