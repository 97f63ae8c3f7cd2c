// Mythograph - Fantasy World GIS Tile & Style Synthesis Engine
// Copyright 2026 M. Verley (mverley)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mythograph/mythograph

package tile

import (
	"errors"
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// WebMercatorMaxLat is the latitude at which the Web Mercator projection
// cuts off: atan(sinh(pi)) in degrees. Bounds for tile (0,0,0) span
// [-WebMercatorMaxLat, WebMercatorMaxLat].
const WebMercatorMaxLat = 85.05112877980659

// MaxZoom is the deepest zoom level a basemap may register.
const MaxZoom = 24

// DefaultTileSize is the edge length in pixels assumed when a basemap does
// not specify one.
const DefaultTileSize = 256

// ErrInvalidTileIndex is returned when a tile index is outside the valid
// range for its zoom level. The HTTP boundary maps it to 400; it is never
// wrapped around or clamped.
var ErrInvalidTileIndex = errors.New("tile: invalid tile index")

// Scheme selects the vertical orientation of the tile grid.
type Scheme string

const (
	// SchemeXYZ is the OSM/Google convention: y=0 at the north pole.
	SchemeXYZ Scheme = "xyz"
	// SchemeTMS is the OSGeo convention: y=0 at the south pole.
	SchemeTMS Scheme = "tms"
)

// ParseScheme validates a scheme string. The empty string defaults to XYZ.
func ParseScheme(s string) (Scheme, error) {
	switch Scheme(s) {
	case SchemeXYZ, "":
		return SchemeXYZ, nil
	case SchemeTMS:
		return SchemeTMS, nil
	default:
		return "", fmt.Errorf("tile: unknown addressing scheme %q", s)
	}
}

// Valid reports whether (z, x, y) addresses a tile that exists on the grid,
// i.e. z >= 0 and 0 <= x, y < 2^z.
func Valid(z, x, y int) bool {
	if z < 0 || z > MaxZoom {
		return false
	}
	n := 1 << uint(z)
	return x >= 0 && x < n && y >= 0 && y < n
}

// Bounds returns the geographic bounding box of the tile at (z, x, y) in
// EPSG:3857-equivalent degrees. For SchemeTMS the y index is flipped to its
// XYZ equivalent before the standard formula is applied.
//
// The returned bound always satisfies west < east and south < north.
func Bounds(z, x, y int, scheme Scheme) (orb.Bound, error) {
	if !Valid(z, x, y) {
		return orb.Bound{}, fmt.Errorf("%w: z=%d x=%d y=%d", ErrInvalidTileIndex, z, x, y)
	}

	n := float64(int(1) << uint(z))
	if scheme == SchemeTMS {
		y = (1 << uint(z)) - 1 - y
	}

	west := float64(x)/n*360.0 - 180.0
	east := float64(x+1)/n*360.0 - 180.0
	north := tileLat(float64(y), n)
	south := tileLat(float64(y+1), n)

	return orb.Bound{
		Min: orb.Point{west, south},
		Max: orb.Point{east, north},
	}, nil
}

// tileLat converts a fractional XYZ row index to latitude in degrees.
func tileLat(y, n float64) float64 {
	return math.Atan(math.Sinh(math.Pi*(1-2*y/n))) * 180.0 / math.Pi
}

// Format identifies the encoding of a tile body.
type Format string

const (
	FormatPNG     Format = "png"
	FormatJPG     Format = "jpg"
	FormatWebP    Format = "webp"
	FormatGeoJSON Format = "geojson"
)

// ParseFormat validates a tile format string. "jpeg" and "json" are
// accepted as aliases for their canonical names.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "png", "":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPG, nil
	case "webp":
		return FormatWebP, nil
	case "geojson", "json":
		return FormatGeoJSON, nil
	default:
		return "", fmt.Errorf("tile: unknown tile format %q", s)
	}
}

// Raster reports whether the format is a raster image encoding.
func (f Format) Raster() bool {
	return f != FormatGeoJSON
}

// Ext returns the file extension used in tile URLs and pyramid paths.
func (f Format) Ext() string {
	if f == FormatGeoJSON {
		return "json"
	}
	return string(f)
}

// ContentType returns the MIME type served with tiles of this format.
func (f Format) ContentType() string {
	switch f {
	case FormatPNG:
		return "image/png"
	case FormatJPG:
		return "image/jpeg"
	case FormatWebP:
		return "image/webp"
	case FormatGeoJSON:
		return "application/geo+json"
	default:
		return "application/octet-stream"
	}
}
