// Mythograph - Fantasy World GIS Tile & Style Synthesis Engine
// Copyright 2026 M. Verley (mverley)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mythograph/mythograph

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mythograph/mythograph/internal/worldmodel"
)

func TestDefaultsAreValid(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default config failed validation: %v", err)
	}
	if cfg.Server.Port != 3857 {
		t.Errorf("Default port = %d, want 3857", cfg.Server.Port)
	}
	if cfg.GeometryPolicy() != worldmodel.PolicyMetadataOnly {
		t.Errorf("Default geometry policy = %q, want metadata-only", cfg.GeometryPolicy())
	}
}

func TestLoadLayersFileOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  port: 9090
tiles:
  root: /srv/pyramids
  upstream_timeout: 5s
registry:
  in_memory: true
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Port = %d, want 9090 from file", cfg.Server.Port)
	}
	if cfg.Tiles.Root != "/srv/pyramids" {
		t.Errorf("Tiles root = %q", cfg.Tiles.Root)
	}
	if cfg.Tiles.UpstreamTimeout != 5*time.Second {
		t.Errorf("UpstreamTimeout = %v, want 5s", cfg.Tiles.UpstreamTimeout)
	}
	// Untouched settings keep their defaults.
	if cfg.Server.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want default 30s", cfg.Server.Timeout)
	}
	if cfg.RegistryPath() != "" {
		t.Errorf("RegistryPath = %q, want empty for in-memory", cfg.RegistryPath())
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 9090\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("MYTHOGRAPH_SERVER_PORT", "7777")
	t.Setenv("MYTHOGRAPH_LOGGING_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 7777 {
		t.Errorf("Port = %d, want env override 7777", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging level = %q, want debug", cfg.Logging.Level)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	cases := map[string]string{
		"MYTHOGRAPH_TILES_ROOT":              "tiles.root",
		"MYTHOGRAPH_TILES_UPSTREAM_TIMEOUT":  "tiles.upstream_timeout",
		"MYTHOGRAPH_REGISTRY_IN_MEMORY":      "registry.in_memory",
		"MYTHOGRAPH_API_RATE_LIMIT_DISABLED": "api.rate_limit_disabled",
		"HTTP_PORT":                          "server.port",
		"LOG_LEVEL":                          "logging.level",
		"PATH":                               "",
		"MYTHOGRAPH_BOGUS_KEY":               "",
	}
	for in, want := range cases {
		if got := envTransformFunc(in); got != want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port zero", func(c *Config) { c.Server.Port = 0 }},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }},
		{"empty tiles root", func(c *Config) { c.Tiles.Root = "" }},
		{"negative rate limit", func(c *Config) { c.Tiles.UpstreamRateLimit = -1 }},
		{"bad geometry transform", func(c *Config) { c.Tiles.GeometryTransform = "sideways" }},
		{"no registry path", func(c *Config) { c.Registry.Path = "" }},
		{"zero api rate limit", func(c *Config) { c.API.RateLimitReqs = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaultConfig()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}
