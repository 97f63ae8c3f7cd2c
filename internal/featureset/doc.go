// Mythograph - Fantasy World GIS Tile & Style Synthesis Engine
// Copyright 2026 M. Verley (mverley)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mythograph/mythograph

// Package featureset loads GeoJSON feature collections and filters them per
// tile.
//
// Collections are cached per source identity: loaded once per process
// lifetime and swapped atomically, so concurrent readers observe either the
// old collection or the fully-loaded new one, never a half-built state.
// There is no automatic invalidation; a changed file on disk is served
// stale until Reload is called. That staleness trade-off is deliberate --
// tile traffic is read-heavy and source files are regenerated out of band.
//
// Filtering is conservative: point features match when they lie inside the
// tile's bounding box (inclusive); line and polygon features match when
// their own bounding box overlaps the tile's. Features that only graze the
// bbox may be over-included, never under-included. Filtering never mutates
// the cached collection; every tile response is a fresh FeatureCollection
// sharing the underlying features.
package featureset
