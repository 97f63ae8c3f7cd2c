// Mythograph - Fantasy World GIS Tile & Style Synthesis Engine
// Copyright 2026 M. Verley (mverley)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mythograph/mythograph

// Package worldmodel applies a world model's coordinate-frame mapping to
// spatial reference values.
//
// Style synthesis scales only basemap metadata (bounds and center) through
// TransformBounds and TransformCenter. Tile pixels and served feature
// geometries are assumed to already be authored in the target frame; this
// asymmetry is deliberate and is controlled by a single GeometryPolicy
// switch rather than left implicit. See PolicyFull for the consistent
// alternative.
//
// TransformPoints backs the coordinate-transform API endpoint and supports
// the full precedence chain: affine matrix, then extent-normalized scaling,
// then plain componentwise scaling.
package worldmodel
