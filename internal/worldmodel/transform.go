// Mythograph - Fantasy World GIS Tile & Style Synthesis Engine
// Copyright 2026 M. Verley (mverley)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mythograph/mythograph

package worldmodel

import (
	"errors"
	"fmt"

	"github.com/mythograph/mythograph/internal/models"
)

// ErrInvalidScaleFactor is returned for a world model whose scale factor is
// zero or negative. It surfaces at style-build time, not at registration.
var ErrInvalidScaleFactor = errors.New("worldmodel: scale factor must be positive")

// GeometryPolicy controls whether the world-model transform recurses into
// served feature geometries or stops at basemap metadata.
type GeometryPolicy string

const (
	// PolicyMetadataOnly scales bounds and center in the style document
	// but leaves tile content and feature geometries untouched. This is
	// the historical behavior and the default; it can misalign a basemap
	// against vector data authored in the unscaled frame.
	PolicyMetadataOnly GeometryPolicy = "metadata"

	// PolicyFull additionally scales the coordinates of features served
	// from vector sources, keeping metadata and data in the same frame.
	PolicyFull GeometryPolicy = "full"
)

// ParsePolicy validates a geometry policy string, defaulting to metadata-only.
func ParsePolicy(s string) (GeometryPolicy, error) {
	switch GeometryPolicy(s) {
	case PolicyMetadataOnly, "":
		return PolicyMetadataOnly, nil
	case PolicyFull:
		return PolicyFull, nil
	default:
		return "", fmt.Errorf("worldmodel: unknown geometry policy %q", s)
	}
}

// TransformBounds scales a (west, south, east, north) tuple componentwise
// by the model's scale factor.
func TransformBounds(b [4]float64, wm *models.WorldModel) ([4]float64, error) {
	if err := checkScale(wm); err != nil {
		return [4]float64{}, err
	}
	s := wm.ScaleFactor
	return [4]float64{b[0] * s, b[1] * s, b[2] * s, b[3] * s}, nil
}

// TransformCenter scales a (lng, lat) pair componentwise by the model's
// scale factor.
func TransformCenter(c [2]float64, wm *models.WorldModel) ([2]float64, error) {
	if err := checkScale(wm); err != nil {
		return [2]float64{}, err
	}
	return [2]float64{c[0] * wm.ScaleFactor, c[1] * wm.ScaleFactor}, nil
}

// Scale multiplies a single coordinate pair by the model's scale factor.
// It is the primitive used by the full-geometry policy when rewriting
// served feature coordinates.
func Scale(x, y float64, wm *models.WorldModel) (float64, float64, error) {
	if err := checkScale(wm); err != nil {
		return 0, 0, err
	}
	return x * wm.ScaleFactor, y * wm.ScaleFactor, nil
}

// TransformPoints transforms a batch of coordinate pairs through the full
// precedence chain:
//
//  1. a 6-parameter affine matrix, when the model carries one;
//  2. extent-normalized scaling, when ExtentBounds is set: the point is
//     normalized into [0,1] against the extent and mapped into scaled
//     world space;
//  3. plain componentwise scaling around the origin.
//
// The input slice is never mutated.
func TransformPoints(points [][2]float64, wm *models.WorldModel) ([][2]float64, error) {
	if err := checkScale(wm); err != nil {
		return nil, err
	}

	out := make([][2]float64, len(points))
	for i, p := range points {
		out[i] = transformPoint(p, wm)
	}
	return out, nil
}

func transformPoint(p [2]float64, wm *models.WorldModel) [2]float64 {
	x, y := p[0], p[1]

	if m := wm.TransformationMatrix; len(m) == 6 {
		return [2]float64{
			m[0]*x + m[1]*y + m[2],
			m[3]*x + m[4]*y + m[5],
		}
	}

	s := wm.ScaleFactor
	if eb := wm.ExtentBounds; eb != nil {
		west, south, east, north := eb[0], eb[1], eb[2], eb[3]
		var nx, ny float64
		if east != west {
			nx = (x - west) / (east - west)
		}
		if north != south {
			ny = (y - south) / (north - south)
		}
		return [2]float64{nx*s*360 - 180, ny*s*180 - 90}
	}

	return [2]float64{x * s, y * s}
}

func checkScale(wm *models.WorldModel) error {
	if wm == nil {
		return errors.New("worldmodel: nil world model")
	}
	if wm.ScaleFactor <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidScaleFactor, wm.ScaleFactor)
	}
	return nil
}
