// Mythograph - Fantasy World GIS Tile & Style Synthesis Engine
// Copyright 2026 M. Verley (mverley)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mythograph/mythograph

// Package metrics defines the Prometheus collectors exported at /metrics.
// Collectors are registered via promauto at package init and shared across
// the resolver, featureset, style and api packages.
package metrics
