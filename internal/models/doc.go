// Mythograph - Fantasy World GIS Tile & Style Synthesis Engine
// Copyright 2026 M. Verley (mverley)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mythograph/mythograph

// Package models defines the persistent domain records (Basemap, WorldModel)
// and the shared HTTP response envelope.
//
// A Basemap names a tile layer and carries a TileSource tagged union that
// selects one of three backing-store strategies at registration time:
// remote XYZ endpoint, local raster pyramid, or vector feature set. A
// WorldModel describes a non-Earth coordinate frame shared by zero or more
// basemaps through a weak id reference.
package models
