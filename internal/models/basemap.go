// Mythograph - Fantasy World GIS Tile & Style Synthesis Engine
// Copyright 2026 M. Verley (mverley)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mythograph/mythograph

package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/mythograph/mythograph/internal/tile"
)

// SourceKind discriminates the TileSource tagged union.
type SourceKind string

const (
	// SourceRemoteXYZ proxies tiles from a remote {z}/{x}/{y} endpoint.
	SourceRemoteXYZ SourceKind = "remote_xyz"
	// SourceLocalRaster reads tiles from a local raster pyramid directory.
	SourceLocalRaster SourceKind = "local_raster"
	// SourceVectorFeatureSet filters a GeoJSON feature collection per tile.
	SourceVectorFeatureSet SourceKind = "vector_featureset"
)

// TileSource is a closed tagged union over the three backing-store
// strategies. The variant is decided once at registration time by
// ParseTileSource; resolvers dispatch on Kind and never re-parse the
// template string.
//
// Exactly one of URLTemplate, PathTemplate and DataPath is populated,
// matching Kind.
type TileSource struct {
	Kind SourceKind `json:"kind" validate:"required,oneof=remote_xyz local_raster vector_featureset"`

	// URLTemplate is the upstream endpoint with {z}/{x}/{y} placeholders.
	// Set only for SourceRemoteXYZ.
	URLTemplate string `json:"url_template,omitempty"`

	// PathTemplate is the pyramid path relative to the configured tiles
	// root, usually with {z}/{x}/{y} placeholders. A template without
	// placeholders names a single preview image served for every index.
	// Set only for SourceLocalRaster.
	PathTemplate string `json:"path_template,omitempty"`

	// DataPath locates the GeoJSON feature collection. Set only for
	// SourceVectorFeatureSet.
	DataPath string `json:"data_path,omitempty"`
}

// ParseTileSource classifies a stored template string into a TileSource.
// The legacy prefixes follow the original registration wire format:
// "file://" for local pyramids, "geojson://" for feature sets, and bare
// http(s) URLs for remote endpoints.
func ParseTileSource(template string) (TileSource, error) {
	switch {
	case strings.HasPrefix(template, "file://"):
		return TileSource{
			Kind:         SourceLocalRaster,
			PathTemplate: strings.TrimPrefix(template, "file://"),
		}, nil
	case strings.HasPrefix(template, "geojson://"):
		return TileSource{
			Kind:     SourceVectorFeatureSet,
			DataPath: strings.TrimPrefix(template, "geojson://"),
		}, nil
	case strings.HasPrefix(template, "http://"), strings.HasPrefix(template, "https://"):
		return TileSource{
			Kind:        SourceRemoteXYZ,
			URLTemplate: template,
		}, nil
	default:
		return TileSource{}, fmt.Errorf("models: unrecognized tile source template %q", template)
	}
}

// Visibility scopes who may request a basemap's tiles and style.
type Visibility string

const (
	VisibilityPublic Visibility = "public"
	VisibilityOwner  Visibility = "owner"
)

// Basemap is a named, addressable map layer source. Records are immutable
// once created except through explicit update calls; deleting a record
// never touches the backing files or upstream data it points at.
type Basemap struct {
	ID          string     `json:"id"`
	Name        string     `json:"name" validate:"required,max=255"`
	Description string     `json:"description,omitempty"`
	Source      TileSource `json:"source"`

	Format tile.Format `json:"tile_format"`
	Scheme tile.Scheme `json:"scheme"`

	MinZoom  int `json:"min_zoom" validate:"min=0,max=24"`
	MaxZoom  int `json:"max_zoom" validate:"min=0,max=24,gtefield=MinZoom"`
	TileSize int `json:"tile_size" validate:"gt=0"`

	Attribution string `json:"attribution,omitempty"`

	// Bounds is (west, south, east, north) in the basemap's own frame.
	// Fantasy frames may exceed +-180/+-90 and west<=east is not enforced.
	Bounds      *[4]float64 `json:"bounds,omitempty"`
	Center      *[2]float64 `json:"center,omitempty"`
	DefaultZoom *int        `json:"default_zoom,omitempty" validate:"omitempty,min=0,max=24"`

	Visibility Visibility `json:"visibility"`
	OwnerID    string     `json:"owner_id,omitempty"`

	// WorldModelRef is a weak reference resolved by id lookup at request
	// time. A dangling reference degrades the basemap to frame-less.
	WorldModelRef string `json:"world_model_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Normalize applies record defaults in place. Called by the registry on
// every Put so stored records are always fully populated.
func (b *Basemap) Normalize() {
	if b.TileSize == 0 {
		b.TileSize = tile.DefaultTileSize
	}
	if b.Scheme == "" {
		b.Scheme = tile.SchemeXYZ
	}
	if b.Format == "" {
		if b.Source.Kind == SourceVectorFeatureSet {
			b.Format = tile.FormatGeoJSON
		} else {
			b.Format = tile.FormatPNG
		}
	}
	if b.Visibility == "" {
		b.Visibility = VisibilityPublic
	}
}

// Validate checks the cross-field invariants a validator tag cannot express.
func (b *Basemap) Validate() error {
	if b.MinZoom > b.MaxZoom {
		return fmt.Errorf("models: min_zoom %d exceeds max_zoom %d", b.MinZoom, b.MaxZoom)
	}
	if b.Source.Kind == SourceVectorFeatureSet && b.Format.Raster() {
		return fmt.Errorf("models: vector sources imply a json-family tile format, got %q", b.Format)
	}
	return nil
}
