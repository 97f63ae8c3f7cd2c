// Mythograph - Fantasy World GIS Tile & Style Synthesis Engine
// Copyright 2026 M. Verley (mverley)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mythograph/mythograph

package models

import (
	"time"
)

// WGS84Radius is Earth's equatorial radius in meters. A world model's
// effective radius is WGS84Radius scaled by its ScaleFactor.
const WGS84Radius = 6378137.0

// WorldModel describes an optional non-Earth coordinate frame shared by
// zero or more basemaps. Its lifecycle is independent of any basemap: a
// basemap referencing a deleted world model is served frame-less.
type WorldModel struct {
	ID          string `json:"id"`
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description,omitempty"`

	// ScaleFactor is the ratio of the model's linear size to Earth's.
	// The registration API accepts 0.1 through 3.5.
	ScaleFactor float64 `json:"scale_factor" validate:"gt=0"`

	// ExtentBounds is (west, south, east, north) of the full addressable
	// extent; it may lie outside standard geographic ranges.
	ExtentBounds *[4]float64 `json:"extent_bounds,omitempty"`

	// TransformationMatrix is an optional 6-parameter affine transform
	// [a b c d e f] applied as x' = a*x + b*y + c, y' = d*x + e*y + f.
	// When present it takes precedence over plain scaling for point
	// transforms.
	TransformationMatrix []float64 `json:"transformation_matrix,omitempty" validate:"omitempty,len=6"`

	CRSDefinition         string `json:"crs_definition,omitempty"`
	CoordinateSystemNotes string `json:"coordinate_system_notes,omitempty"`

	DefaultCenter *[2]float64 `json:"default_center,omitempty"`
	DefaultZoom   *int        `json:"default_zoom,omitempty" validate:"omitempty,min=0,max=24"`

	// EarthRadius is the model's planetary radius in meters. Derived from
	// ScaleFactor at registration time unless explicitly overridden.
	EarthRadius float64 `json:"earth_radius,omitempty"`

	// IsDefault marks at most one world model per owner scope. This is a
	// soft invariant maintained by the registration layer, not enforced
	// here.
	IsDefault bool `json:"is_default"`

	Visibility Visibility `json:"visibility"`
	OwnerID    string     `json:"owner_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Normalize applies record defaults in place.
func (w *WorldModel) Normalize() {
	if w.ScaleFactor == 0 {
		w.ScaleFactor = 1.0
	}
	if w.EarthRadius == 0 {
		w.EarthRadius = WGS84Radius * w.ScaleFactor
	}
	if w.Visibility == "" {
		w.Visibility = VisibilityPublic
	}
}
