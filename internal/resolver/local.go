// Mythograph - Fantasy World GIS Tile & Style Synthesis Engine
// Copyright 2026 M. Verley (mverley)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mythograph/mythograph

package resolver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mythograph/mythograph/internal/logging"
	"github.com/mythograph/mythograph/internal/models"
)

// Local reads tiles from a raster pyramid directory under the configured
// tiles root. Filesystem access is the only side effect in the resolver
// layer, and every resolved path passes the safety guard first.
type Local struct {
	root         string
	cacheControl string
}

func newLocal(cfg Config) *Local {
	return &Local{
		root:         cfg.TilesRoot,
		cacheControl: fmt.Sprintf("public, max-age=%d", int(cfg.CacheMaxAge/time.Second)),
	}
}

// Resolve substitutes the tile index into the basemap's path template,
// roots it under the tiles directory and reads the file. A template with
// no {z}/{x}/{y} placeholders names a single preview image served for
// every tile index.
//
// A missing file is ErrTileNotFound so callers emit 404 rather than 500;
// a path escaping the root is ErrAccessDenied and is logged.
func (l *Local) Resolve(ctx context.Context, bm *models.Basemap, z, x, y int) (*Tile, error) {
	template := bm.Source.PathTemplate
	rel := template
	if hasPlaceholders(template) {
		rel = substituteTemplate(template, z, x, y)
	}

	candidate := filepath.Join(l.root, filepath.FromSlash(rel))

	ok, err := Contained(candidate, l.root)
	if err != nil {
		return nil, &ResolverError{Op: "local_read", Err: err}
	}
	if !ok {
		logging.Ctx(ctx).Warn().
			Str("basemap", bm.ID).
			Str("path", candidate).
			Msg("Tile path escaped tiles root")
		return nil, ErrAccessDenied
	}

	body, err := os.ReadFile(candidate)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrTileNotFound
		}
		return nil, &ResolverError{Op: "local_read", Err: err}
	}

	return &Tile{
		Body:         body,
		ContentType:  bm.Format.ContentType(),
		CacheControl: l.cacheControl,
	}, nil
}
