// Mythograph - Fantasy World GIS Tile & Style Synthesis Engine
// Copyright 2026 M. Verley (mverley)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mythograph/mythograph

package featureset

import (
	"context"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/mythograph/mythograph/internal/tile"
)

// FilterTile returns the subset of the source's features that intersect the
// tile at (z, x, y). An empty result is a valid empty FeatureCollection,
// not an error. The returned collection is always a new value; the cached
// collection and its features are never modified.
func (s *Source) FilterTile(ctx context.Context, z, x, y int, scheme tile.Scheme) (*geojson.FeatureCollection, error) {
	bound, err := tile.Bounds(z, x, y, scheme)
	if err != nil {
		return nil, err
	}

	fc, err := s.Collection(ctx)
	if err != nil {
		return nil, err
	}

	out := geojson.NewFeatureCollection()
	for _, f := range fc.Features {
		if f == nil || f.Geometry == nil {
			continue
		}
		if featureIntersects(f.Geometry, bound) {
			out.Append(f)
		}
	}
	return out, nil
}

// featureIntersects tests a geometry against the tile bbox. Points use
// inclusive containment; everything else compares bounding boxes, which
// over-includes features that only graze the bbox but never under-includes.
func featureIntersects(g orb.Geometry, bound orb.Bound) bool {
	if p, ok := g.(orb.Point); ok {
		return bound.Contains(p)
	}
	return bound.Intersects(g.Bound())
}

// GeometrySet reports which geometry kinds a collection contains. It drives
// layer selection in style synthesis: circle layers for points, line layers
// for lines, fill layers for polygons.
type GeometrySet struct {
	Points   bool
	Lines    bool
	Polygons bool
}

// Empty reports whether no geometry kind was observed.
func (g GeometrySet) Empty() bool {
	return !g.Points && !g.Lines && !g.Polygons
}

// Mixed reports whether more than one geometry kind is present.
func (g GeometrySet) Mixed() bool {
	n := 0
	for _, present := range []bool{g.Points, g.Lines, g.Polygons} {
		if present {
			n++
		}
	}
	return n > 1
}

// Summary scans the collection once and reports the geometry kinds present.
func (s *Source) Summary(ctx context.Context) (GeometrySet, error) {
	fc, err := s.Collection(ctx)
	if err != nil {
		return GeometrySet{}, err
	}

	var set GeometrySet
	for _, f := range fc.Features {
		if f == nil || f.Geometry == nil {
			continue
		}
		switch f.Geometry.(type) {
		case orb.Point, orb.MultiPoint:
			set.Points = true
		case orb.LineString, orb.MultiLineString:
			set.Lines = true
		case orb.Polygon, orb.MultiPolygon:
			set.Polygons = true
		}
		if set.Points && set.Lines && set.Polygons {
			break
		}
	}
	return set, nil
}
