// Mythograph - Fantasy World GIS Tile & Style Synthesis Engine
// Copyright 2026 M. Verley (mverley)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mythograph/mythograph

// Package tile implements slippy-map tile addressing: the pure math that
// converts a (z, x, y) tile index into a geographic bounding box.
//
// Two addressing schemes are supported. XYZ places y=0 at the north pole
// (the OpenStreetMap convention); TMS places y=0 at the south pole. Fantasy
// world pyramids generated with south-up tooling carry the TMS flag on
// their basemap record, and the scheme reversal is a simple index flip
// applied before the bounds formula.
//
// The package has no state and no dependencies beyond orb's geometry types.
package tile
