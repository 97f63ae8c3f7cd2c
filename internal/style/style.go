// Mythograph - Fantasy World GIS Tile & Style Synthesis Engine
// Copyright 2026 M. Verley (mverley)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mythograph/mythograph

package style

import (
	"fmt"

	"github.com/mythograph/mythograph/internal/featureset"
	"github.com/mythograph/mythograph/internal/metrics"
	"github.com/mythograph/mythograph/internal/models"
	"github.com/mythograph/mythograph/internal/worldmodel"
)

// DefaultGlyphsURL serves the MapLibre demo font stack, enough for label
// layers out of the box.
const DefaultGlyphsURL = "https://demotiles.maplibre.org/font/{fontstack}/{range}.pbf"

// Document is a MapLibre GL style v8 document.
type Document struct {
	Version  int                    `json:"version"`
	Name     string                 `json:"name"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
	Glyphs   string                 `json:"glyphs,omitempty"`
	Sources  map[string]*Source     `json:"sources"`
	Layers   []Layer                `json:"layers"`
	Center   [2]float64             `json:"center"`
	Zoom     float64                `json:"zoom"`
	Bearing  float64                `json:"bearing"`
	Pitch    float64                `json:"pitch"`
}

// Source is one style source entry. Raster sources fill the tiles/zoom
// fields; geojson sources fill Data. MinZoom and MaxZoom are pointers so a
// legitimate minzoom of 0 still serializes.
type Source struct {
	Type        string      `json:"type"`
	Tiles       []string    `json:"tiles,omitempty"`
	TileSize    int         `json:"tileSize,omitempty"`
	MinZoom     *int        `json:"minzoom,omitempty"`
	MaxZoom     *int        `json:"maxzoom,omitempty"`
	Data        string      `json:"data,omitempty"`
	Attribution string      `json:"attribution,omitempty"`
	Bounds      *[4]float64 `json:"bounds,omitempty"`
}

// Layer is one style layer entry referencing a source by id.
type Layer struct {
	ID     string                 `json:"id"`
	Type   string                 `json:"type"`
	Source string                 `json:"source"`
	Filter []interface{}          `json:"filter,omitempty"`
	Layout map[string]interface{} `json:"layout,omitempty"`
	Paint  map[string]interface{} `json:"paint,omitempty"`
}

// Builder synthesizes style documents. The zero value uses the default
// glyphs URL.
type Builder struct {
	glyphsURL string
}

// NewBuilder returns a builder using the given glyphs URL template, or the
// MapLibre demo fonts when empty.
func NewBuilder(glyphsURL string) *Builder {
	if glyphsURL == "" {
		glyphsURL = DefaultGlyphsURL
	}
	return &Builder{glyphsURL: glyphsURL}
}

// Build composes the style document for a basemap. The world model is
// optional; when linked, the basemap's bounds and center pass through the
// world transform before being written out. The geometry summary drives
// layer selection for vector basemaps and is ignored for raster ones.
//
// Center and zoom fall back along basemap, then world-model defaults, then
// ([0, 0], zoom 2).
func (b *Builder) Build(bm *models.Basemap, wm *models.WorldModel, geoms featureset.GeometrySet) (*Document, error) {
	doc := &Document{
		Version: 8,
		Name:    bm.Name,
		Metadata: map[string]interface{}{
			"maplibre:logo":             "https://maplibre.org/",
			"mythograph:custom_basemap": true,
			"mythograph:basemap_id":     bm.ID,
		},
		Glyphs:  b.glyphsURL,
		Sources: make(map[string]*Source),
	}

	var src *Source
	if bm.Source.Kind == models.SourceVectorFeatureSet {
		src = &Source{
			Type:        "geojson",
			Data:        fmt.Sprintf("/basemaps/%s/data", bm.ID),
			Attribution: bm.Attribution,
		}
		doc.Layers = vectorLayers(bm.ID, geoms)
	} else {
		minzoom, maxzoom := bm.MinZoom, bm.MaxZoom
		src = &Source{
			Type:        "raster",
			Tiles:       []string{tileURL(bm)},
			TileSize:    bm.TileSize,
			MinZoom:     &minzoom,
			MaxZoom:     &maxzoom,
			Attribution: bm.Attribution,
		}
		doc.Layers = []Layer{{
			ID:     bm.ID + "-layer",
			Type:   "raster",
			Source: bm.ID,
			Layout: map[string]interface{}{"visibility": "visible"},
			Paint:  map[string]interface{}{},
		}}
	}

	if bm.Bounds != nil {
		bounds := *bm.Bounds
		if wm != nil {
			var err error
			bounds, err = worldmodel.TransformBounds(bounds, wm)
			if err != nil {
				return nil, err
			}
		}
		src.Bounds = &bounds
	}
	doc.Sources[bm.ID] = src

	center, zoom, err := viewDefaults(bm, wm)
	if err != nil {
		return nil, err
	}
	doc.Center = center
	doc.Zoom = zoom

	metrics.StyleBuildsTotal.WithLabelValues(string(bm.Source.Kind)).Inc()
	return doc, nil
}

// tileURL picks the tile URL template for a raster source: remote basemaps
// keep their stored template verbatim, everything else routes back through
// the tile proxy.
func tileURL(bm *models.Basemap) string {
	if bm.Source.Kind == models.SourceRemoteXYZ {
		return bm.Source.URLTemplate
	}
	return fmt.Sprintf("/tiles/%s/%s/{z}/{x}/{y}.%s", bm.Scheme, bm.ID, bm.Format.Ext())
}

// viewDefaults resolves center and zoom along the fallback chain. A center
// taken from the basemap passes through the world transform; world-model
// defaults are already authored in the model's frame and pass through as-is.
func viewDefaults(bm *models.Basemap, wm *models.WorldModel) ([2]float64, float64, error) {
	center := [2]float64{0, 0}
	zoom := 2.0

	switch {
	case bm.Center != nil:
		center = *bm.Center
		if wm != nil {
			var err error
			center, err = worldmodel.TransformCenter(center, wm)
			if err != nil {
				return center, zoom, err
			}
		}
	case wm != nil && wm.DefaultCenter != nil:
		center = *wm.DefaultCenter
	}

	switch {
	case bm.DefaultZoom != nil:
		zoom = float64(*bm.DefaultZoom)
	case wm != nil && wm.DefaultZoom != nil:
		zoom = float64(*wm.DefaultZoom)
	}

	return center, zoom, nil
}

// vectorLayers selects layers from the geometry kinds present: circle for
// points, line for lines, fill for polygons, plus a symbol label layer
// whenever points exist. Each carries a $type filter so mixed collections
// render each kind with the right layer. An empty summary, seen before a
// feature set first loads, falls back to the point layers.
func vectorLayers(id string, geoms featureset.GeometrySet) []Layer {
	if geoms.Empty() {
		geoms.Points = true
	}

	var layers []Layer
	if geoms.Polygons {
		layers = append(layers, Layer{
			ID:     id + "-fills",
			Type:   "fill",
			Source: id,
			Filter: []interface{}{"==", "$type", "Polygon"},
			Paint: map[string]interface{}{
				"fill-color":   "#8a7f6d",
				"fill-opacity": 0.35,
			},
		})
	}
	if geoms.Lines {
		layers = append(layers, Layer{
			ID:     id + "-lines",
			Type:   "line",
			Source: id,
			Filter: []interface{}{"==", "$type", "LineString"},
			Paint: map[string]interface{}{
				"line-color": "#5c544a",
				"line-width": 1.5,
			},
		})
	}
	if geoms.Points {
		layers = append(layers, Layer{
			ID:     id + "-points",
			Type:   "circle",
			Source: id,
			Filter: []interface{}{"==", "$type", "Point"},
			Paint: map[string]interface{}{
				"circle-radius":       5,
				"circle-color":        "#ff0000",
				"circle-stroke-width": 1,
				"circle-stroke-color": "#ffffff",
			},
		})
		layers = append(layers, Layer{
			ID:     id + "-labels",
			Type:   "symbol",
			Source: id,
			Filter: []interface{}{"==", "$type", "Point"},
			Layout: map[string]interface{}{
				"text-field":  []interface{}{"get", "name"},
				"text-size":   12,
				"text-offset": []interface{}{0, 1.5},
				"text-anchor": "top",
			},
			Paint: map[string]interface{}{
				"text-color":      "#000000",
				"text-halo-color": "#ffffff",
				"text-halo-width": 2,
			},
		})
	}
	return layers
}
