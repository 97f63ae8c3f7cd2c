// Mythograph - Fantasy World GIS Tile & Style Synthesis Engine
// Copyright 2026 M. Verley (mverley)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mythograph/mythograph

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found is used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/mythograph/config.yaml",
	"/etc/mythograph/config.yml",
}

// ConfigPathEnvVar is the environment variable that overrides the config
// file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// Load loads the configuration using Koanf v2 with layered sources:
//  1. Defaults: built-in values from defaultConfig
//  2. Config file: optional YAML file (if one exists)
//  3. Environment variables: override any setting
//
// Precedence is ENV > file > defaults.
func Load() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment variables (highest priority)
	// MYTHOGRAPH_TILES_ROOT -> tiles.root, HTTP_PORT -> server.port
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
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

// findConfigFile searches for a config file, honoring CONFIG_PATH first.
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
// Variables with the MYTHOGRAPH_ prefix map section by section:
//
//	MYTHOGRAPH_TILES_ROOT            -> tiles.root
//	MYTHOGRAPH_SERVER_PORT           -> server.port
//	MYTHOGRAPH_REGISTRY_IN_MEMORY    -> registry.in_memory
//	MYTHOGRAPH_LOGGING_LEVEL         -> logging.level
//
// A handful of short legacy names are kept for deployment convenience.
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	legacy := map[string]string{
		"http_host":     "server.host",
		"http_port":     "server.port",
		"environment":   "server.environment",
		"tiles_root":    "tiles.root",
		"registry_path": "registry.path",
		"log_level":     "logging.level",
		"log_format":    "logging.format",
	}
	if path, ok := legacy[key]; ok {
		return path
	}

	if !strings.HasPrefix(key, "mythograph_") {
		// Not ours: drop it so unrelated environment noise never lands
		// in the config tree.
		return ""
	}
	key = strings.TrimPrefix(key, "mythograph_")

	for _, section := range []string{"server", "tiles", "registry", "style", "api", "logging"} {
		if strings.HasPrefix(key, section+"_") {
			return section + "." + strings.TrimPrefix(key, section+"_")
		}
	}
	return ""
}
