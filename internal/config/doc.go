// Mythograph - Fantasy World GIS Tile & Style Synthesis Engine
// Copyright 2026 M. Verley (mverley)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mythograph/mythograph

// Package config loads the server configuration from layered sources:
// built-in defaults, an optional YAML config file, and environment
// variables, in increasing order of precedence.
package config
