// Mythograph - Fantasy World GIS Tile & Style Synthesis Engine
// Copyright 2026 M. Verley (mverley)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mythograph/mythograph

package resolver

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mythograph/mythograph/internal/featureset"
	"github.com/mythograph/mythograph/internal/metrics"
	"github.com/mythograph/mythograph/internal/models"
	"github.com/mythograph/mythograph/internal/tile"
	"github.com/mythograph/mythograph/internal/worldmodel"
)

// Tile is a resolved tile body ready for the HTTP boundary to write.
type Tile struct {
	Body         []byte
	ContentType  string
	CacheControl string
}

// Config carries the engine's operational settings.
type Config struct {
	// TilesRoot is the directory local raster pyramids live under. The
	// path safety guard confines every resolved path to it.
	TilesRoot string

	// CacheMaxAge is the Cache-Control hint attached to local raster
	// tiles. Pyramid tiles are immutable once generated, so a long
	// max-age is safe; the default is one hour.
	CacheMaxAge time.Duration

	// UpstreamTimeout bounds a single remote tile fetch.
	UpstreamTimeout time.Duration

	// UpstreamRateLimit caps upstream fetches per second; zero disables
	// the limiter.
	UpstreamRateLimit float64
	UpstreamBurst     int

	// GeometryPolicy controls whether world-model scaling recurses into
	// served feature geometries.
	GeometryPolicy worldmodel.GeometryPolicy
}

// Engine dispatches tile requests to the resolver matching the basemap's
// backing-store kind.
type Engine struct {
	remote *Remote
	local  *Local
	vector *Vector
}

// NewEngine builds an engine over the shared feature-source manager.
func NewEngine(cfg Config, features *featureset.Manager) *Engine {
	if cfg.CacheMaxAge <= 0 {
		cfg.CacheMaxAge = time.Hour
	}
	if cfg.UpstreamTimeout <= 0 {
		cfg.UpstreamTimeout = 15 * time.Second
	}
	if cfg.GeometryPolicy == "" {
		cfg.GeometryPolicy = worldmodel.PolicyMetadataOnly
	}
	return &Engine{
		remote: newRemote(cfg),
		local:  newLocal(cfg),
		vector: newVector(cfg, features),
	}
}

// Resolve fetches the tile at (z, x, y) for the basemap. The world model is
// optional and only consulted under the full geometry policy; a nil model
// means the basemap is frame-less.
func (e *Engine) Resolve(ctx context.Context, bm *models.Basemap, wm *models.WorldModel, z, x, y int) (*Tile, error) {
	if !tile.Valid(z, x, y) {
		return nil, fmt.Errorf("%w: z=%d x=%d y=%d", tile.ErrInvalidTileIndex, z, x, y)
	}

	start := time.Now()
	defer func() {
		metrics.TileResolveDuration.WithLabelValues(string(bm.Source.Kind)).Observe(time.Since(start).Seconds())
	}()

	var (
		t   *Tile
		err error
	)
	switch bm.Source.Kind {
	case models.SourceRemoteXYZ:
		t, err = e.remote.Resolve(ctx, bm, z, x, y)
	case models.SourceLocalRaster:
		t, err = e.local.Resolve(ctx, bm, z, x, y)
	case models.SourceVectorFeatureSet:
		t, err = e.vector.Resolve(ctx, bm, wm, z, x, y)
	default:
		return nil, fmt.Errorf("resolver: unknown source kind %q", bm.Source.Kind)
	}
	if err != nil {
		return nil, err
	}

	metrics.TileBytesServed.WithLabelValues(string(bm.Source.Kind)).Add(float64(len(t.Body)))
	return t, nil
}

// substituteTemplate fills {z}, {x} and {y} placeholders in a tile URL or
// path template.
func substituteTemplate(template string, z, x, y int) string {
	s := strings.ReplaceAll(template, "{z}", strconv.Itoa(z))
	s = strings.ReplaceAll(s, "{x}", strconv.Itoa(x))
	s = strings.ReplaceAll(s, "{y}", strconv.Itoa(y))
	return s
}

// hasPlaceholders reports whether the template addresses a pyramid rather
// than a single static image.
func hasPlaceholders(template string) bool {
	return strings.Contains(template, "{z}") &&
		strings.Contains(template, "{x}") &&
		strings.Contains(template, "{y}")
}
