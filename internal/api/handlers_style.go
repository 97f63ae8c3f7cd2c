// Mythograph - Fantasy World GIS Tile & Style Synthesis Engine
// Copyright 2026 M. Verley (mverley)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mythograph/mythograph

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/mythograph/mythograph/internal/featureset"
	"github.com/mythograph/mythograph/internal/logging"
	"github.com/mythograph/mythograph/internal/models"
	"github.com/mythograph/mythograph/internal/registry"
	"github.com/mythograph/mythograph/internal/worldmodel"
)

// Style serves GET /api/v1/basemaps/{id}/style.json. The document goes out
// raw, not in the API envelope, because map renderers consume it directly.
func (h *Handler) Style(w http.ResponseWriter, r *http.Request) {
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

	// Layer selection for vector basemaps follows the geometry kinds in
	// the cached collection. A collection that hasn't loaded or fails to
	// load falls back to the default layer set rather than failing the
	// style request.
	var geoms featureset.GeometrySet
	if bm.Source.Kind == models.SourceVectorFeatureSet {
		geoms, err = h.features.Source(bm.Source.DataPath).Summary(r.Context())
		if err != nil {
			logging.Ctx(r.Context()).Warn().
				Str("basemap", bm.ID).
				Err(err).
				Msg("Feature summary unavailable, using default layers")
			geoms = featureset.GeometrySet{}
		}
	}

	doc, err := h.styles.Build(bm, wm, geoms)
	if err != nil {
		if errors.Is(err, worldmodel.ErrInvalidScaleFactor) {
			respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "world model has an invalid scale factor", err)
			return
		}
		respondError(w, http.StatusInternalServerError, "REGISTRY_ERROR", "style synthesis failed", err)
		return
	}

	data, err := json.Marshal(doc)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "REGISTRY_ERROR", "failed to encode style", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// BasemapData serves GET /api/v1/basemaps/{id}/data: the complete GeoJSON
// collection a vector basemap's geojson style source points at.
func (h *Handler) BasemapData(w http.ResponseWriter, r *http.Request) {
	bm, err := h.store.GetBasemap(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, registry.ErrNotFound) {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "basemap not found", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "REGISTRY_ERROR", "failed to load basemap", err)
		return
	}

	if bm.Source.Kind != models.SourceVectorFeatureSet {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "basemap has no feature data", nil)
		return
	}

	fc, err := h.features.Source(bm.Source.DataPath).Collection(r.Context())
	if err != nil {
		respondError(w, http.StatusBadGateway, "RESOLVER_ERROR", "feature source unavailable", err)
		return
	}

	data, err := json.Marshal(fc)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "RESOLVER_ERROR", "failed to encode features", err)
		return
	}

	w.Header().Set("Content-Type", "application/geo+json")
	w.Header().Set("Cache-Control", "public, max-age=60")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
