// Mythograph - Fantasy World GIS Tile & Style Synthesis Engine
// Copyright 2026 M. Verley (mverley)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mythograph/mythograph

// Package style synthesizes MapLibre GL style v8 documents from basemap
// records. Building a style is a pure function of the basemap, its optional
// world model and a summary of the geometry kinds its feature set contains;
// documents are cheap to regenerate and never cached.
package style
