// Mythograph - Fantasy World GIS Tile & Style Synthesis Engine
// Copyright 2026 M. Verley (mverley)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mythograph/mythograph

// Package middleware provides HTTP middleware for request ID tracking and
// Prometheus instrumentation. CORS and rate limiting come from the Chi
// ecosystem and are wired directly in the api package.
package middleware
