// Mythograph - Fantasy World GIS Tile & Style Synthesis Engine
// Copyright 2026 M. Verley (mverley)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mythograph/mythograph

package api

import (
	"context"
	"errors"
	"time"

	"github.com/mythograph/mythograph/internal/featureset"
	"github.com/mythograph/mythograph/internal/models"
	"github.com/mythograph/mythograph/internal/registry"
	"github.com/mythograph/mythograph/internal/resolver"
	"github.com/mythograph/mythograph/internal/style"
)

// Handler holds the engine components the HTTP boundary dispatches into.
type Handler struct {
	store     registry.Store
	engine    *resolver.Engine
	features  *featureset.Manager
	styles    *style.Builder
	startTime time.Time
}

// NewHandler wires the boundary to the resolver engine, feature-source
// manager, style builder and record store.
func NewHandler(store registry.Store, engine *resolver.Engine, features *featureset.Manager, styles *style.Builder) *Handler {
	return &Handler{
		store:     store,
		engine:    engine,
		features:  features,
		styles:    styles,
		startTime: time.Now(),
	}
}

// worldModelFor resolves a basemap's linked world model. No link means no
// model; a dangling reference degrades to no model rather than failing the
// request.
func (h *Handler) worldModelFor(ctx context.Context, bm *models.Basemap) (*models.WorldModel, error) {
	if bm.WorldModelRef == "" {
		return nil, nil
	}
	wm, err := h.store.GetWorldModel(ctx, bm.WorldModelRef)
	if errors.Is(err, registry.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return wm, nil
}
