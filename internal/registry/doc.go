// Mythograph - Fantasy World GIS Tile & Style Synthesis Engine
// Copyright 2026 M. Verley (mverley)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mythograph/mythograph

// Package registry persists basemap and world-model records in BadgerDB.
// Records are stored as JSON under typed key prefixes; deleting a record
// removes only the record, never the tile files or feature data it points
// at.
package registry
