// Mythograph - Fantasy World GIS Tile & Style Synthesis Engine
// Copyright 2026 M. Verley (mverley)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mythograph/mythograph

package resolver

import (
	"context"
	"errors"

	"github.com/goccy/go-json"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/mythograph/mythograph/internal/featureset"
	"github.com/mythograph/mythograph/internal/models"
	"github.com/mythograph/mythograph/internal/tile"
	"github.com/mythograph/mythograph/internal/worldmodel"
)

// Vector serves per-tile subsets of a GeoJSON feature collection. It
// delegates the bbox intersection entirely to the featureset package and
// only handles encoding and the optional full-geometry world transform.
type Vector struct {
	features *featureset.Manager
	policy   worldmodel.GeometryPolicy
}

func newVector(cfg Config, features *featureset.Manager) *Vector {
	return &Vector{features: features, policy: cfg.GeometryPolicy}
}

// Resolve filters the basemap's feature set down to the tile bbox and
// encodes the result as GeoJSON. Under the full geometry policy and with a
// linked world model, feature coordinates are scaled into the model's
// frame; under the default metadata-only policy they are served verbatim.
func (v *Vector) Resolve(ctx context.Context, bm *models.Basemap, wm *models.WorldModel, z, x, y int) (*Tile, error) {
	src := v.features.Source(bm.Source.DataPath)

	fc, err := src.FilterTile(ctx, z, x, y, bm.Scheme)
	if err != nil {
		if errors.Is(err, tile.ErrInvalidTileIndex) {
			return nil, err
		}
		return nil, &ResolverError{Op: "vector_filter", Err: err}
	}

	if v.policy == worldmodel.PolicyFull && wm != nil {
		fc, err = scaleCollection(fc, wm)
		if err != nil {
			return nil, &ResolverError{Op: "vector_filter", Err: err}
		}
	}

	body, err := json.Marshal(fc)
	if err != nil {
		return nil, &ResolverError{Op: "vector_filter", Err: err}
	}

	return &Tile{
		Body:         body,
		ContentType:  tile.FormatGeoJSON.ContentType(),
		CacheControl: "public, max-age=60",
	}, nil
}

// scaleCollection returns a deep copy of the collection with every
// coordinate multiplied by the world model's scale factor. The input
// collection is never touched.
func scaleCollection(fc *geojson.FeatureCollection, wm *models.WorldModel) (*geojson.FeatureCollection, error) {
	if wm.ScaleFactor <= 0 {
		return nil, worldmodel.ErrInvalidScaleFactor
	}

	out := geojson.NewFeatureCollection()
	for _, f := range fc.Features {
		nf := geojson.NewFeature(scaleGeometry(f.Geometry, wm.ScaleFactor))
		nf.ID = f.ID
		nf.Properties = f.Properties.Clone()
		out.Append(nf)
	}
	return out, nil
}

func scaleGeometry(g orb.Geometry, s float64) orb.Geometry {
	switch g := g.(type) {
	case orb.Point:
		return orb.Point{g[0] * s, g[1] * s}
	case orb.MultiPoint:
		out := make(orb.MultiPoint, len(g))
		for i, p := range g {
			out[i] = orb.Point{p[0] * s, p[1] * s}
		}
		return out
	case orb.LineString:
		out := make(orb.LineString, len(g))
		for i, p := range g {
			out[i] = orb.Point{p[0] * s, p[1] * s}
		}
		return out
	case orb.MultiLineString:
		out := make(orb.MultiLineString, len(g))
		for i, ls := range g {
			out[i] = scaleGeometry(ls, s).(orb.LineString)
		}
		return out
	case orb.Ring:
		out := make(orb.Ring, len(g))
		for i, p := range g {
			out[i] = orb.Point{p[0] * s, p[1] * s}
		}
		return out
	case orb.Polygon:
		out := make(orb.Polygon, len(g))
		for i, r := range g {
			out[i] = scaleGeometry(r, s).(orb.Ring)
		}
		return out
	case orb.MultiPolygon:
		out := make(orb.MultiPolygon, len(g))
		for i, p := range g {
			out[i] = scaleGeometry(p, s).(orb.Polygon)
		}
		return out
	case orb.Collection:
		out := make(orb.Collection, len(g))
		for i, sub := range g {
			out[i] = scaleGeometry(sub, s)
		}
		return out
	case orb.Bound:
		return orb.Bound{
			Min: orb.Point{g.Min[0] * s, g.Min[1] * s},
			Max: orb.Point{g.Max[0] * s, g.Max[1] * s},
		}
	default:
		return g
	}
}
