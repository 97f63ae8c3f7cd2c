// Mythograph - Fantasy World GIS Tile & Style Synthesis Engine
// Copyright 2026 M. Verley (mverley)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mythograph/mythograph

package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mythograph/mythograph/internal/metrics"
	"github.com/mythograph/mythograph/internal/registry"
	"github.com/mythograph/mythograph/internal/resolver"
	"github.com/mythograph/mythograph/internal/tile"
)

// Tile serves GET /tiles/{scheme}/{id}/{z}/{x}/{y}.{ext}.
//
// The route's scheme selects the tile addressing for this request and may
// differ from the basemap's stored default; the y flip for tms happens in
// the tile math, so the same pyramid serves both addressings.
func (h *Handler) Tile(w http.ResponseWriter, r *http.Request) {
	scheme, err := tile.ParseScheme(chi.URLParam(r, "scheme"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "unknown tile scheme", nil)
		return
	}

	z, errZ := strconv.Atoi(chi.URLParam(r, "z"))
	x, errX := strconv.Atoi(chi.URLParam(r, "x"))
	y, errY := strconv.Atoi(chi.URLParam(r, "y"))
	if errZ != nil || errX != nil || errY != nil {
		metrics.RecordTileRequest(string(scheme), "unknown", http.StatusBadRequest)
		respondError(w, http.StatusBadRequest, "INVALID_TILE_INDEX", "tile index must be integer z/x/y", nil)
		return
	}

	if _, err := tile.ParseFormat(chi.URLParam(r, "ext")); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "unknown tile format extension", nil)
		return
	}

	bm, err := h.store.GetBasemap(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, registry.ErrNotFound) {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "basemap not found", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "REGISTRY_ERROR", "failed to load basemap", err)
		return
	}

	wm, err := h.worldModelFor(r.Context(), bm)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "REGISTRY_ERROR", "failed to load world model", err)
		return
	}

	// The request's addressing overrides the stored default.
	req := *bm
	req.Scheme = scheme

	t, err := h.engine.Resolve(r.Context(), &req, wm, z, x, y)
	if err != nil {
		status := tileErrorStatus(err)
		metrics.RecordTileRequest(string(scheme), string(bm.Source.Kind), status)
		switch status {
		case http.StatusBadRequest:
			respondError(w, status, "INVALID_TILE_INDEX", err.Error(), nil)
		case http.StatusNotFound:
			// Missing tiles are expected and frequent; never logged.
			respondError(w, status, "NOT_FOUND", "tile not found", nil)
		case http.StatusForbidden:
			respondError(w, status, "ACCESS_DENIED", "tile path not permitted", err)
		default:
			respondError(w, status, "RESOLVER_ERROR", "backing store failure", err)
		}
		return
	}

	metrics.RecordTileRequest(string(scheme), string(bm.Source.Kind), http.StatusOK)

	w.Header().Set("Content-Type", t.ContentType)
	if t.CacheControl != "" {
		w.Header().Set("Cache-Control", t.CacheControl)
	}
	w.WriteHeader(http.StatusOK)
	w.Write(t.Body)
}

// tileErrorStatus maps resolver errors onto the HTTP taxonomy.
func tileErrorStatus(err error) int {
	switch {
	case errors.Is(err, tile.ErrInvalidTileIndex):
		return http.StatusBadRequest
	case errors.Is(err, resolver.ErrTileNotFound):
		return http.StatusNotFound
	case errors.Is(err, resolver.ErrAccessDenied):
		return http.StatusForbidden
	default:
		return http.StatusBadGateway
	}
}
