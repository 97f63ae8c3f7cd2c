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

	"github.com/mythograph/mythograph/internal/models"
	"github.com/mythograph/mythograph/internal/registry"
	"github.com/mythograph/mythograph/internal/tile"
)

// basemapRequest is the registration and update wire format. The template
// string carries the backing-store scheme: https:// for remote endpoints,
// file:// for local pyramids, geojson:// for feature sets.
type basemapRequest struct {
	Name          string      `json:"name" validate:"required,max=255"`
	Description   string      `json:"description" validate:"max=2000"`
	Template      string      `json:"tile_url_template" validate:"required,tilesource"`
	Format        string      `json:"tile_format" validate:"omitempty,tileformat"`
	Scheme        string      `json:"scheme" validate:"omitempty,tilescheme"`
	MinZoom       int         `json:"min_zoom" validate:"min=0,max=24"`
	MaxZoom       int         `json:"max_zoom" validate:"min=0,max=24"`
	TileSize      int         `json:"tile_size" validate:"omitempty,oneof=256 512"`
	Attribution   string      `json:"attribution" validate:"max=512"`
	Bounds        *[4]float64 `json:"bounds"`
	Center        *[2]float64 `json:"center"`
	DefaultZoom   *int        `json:"default_zoom"`
	Visibility    string      `json:"visibility" validate:"omitempty,oneof=public owner"`
	WorldModelRef string      `json:"world_model_ref"`
}

// toModel builds the record; source classification happens once here and
// resolvers dispatch on the resulting kind.
func (req *basemapRequest) toModel() (*models.Basemap, error) {
	source, err := models.ParseTileSource(req.Template)
	if err != nil {
		return nil, err
	}

	bm := &models.Basemap{
		Name:          req.Name,
		Description:   req.Description,
		Source:        source,
		Format:        tile.Format(req.Format),
		Scheme:        tile.Scheme(req.Scheme),
		MinZoom:       req.MinZoom,
		MaxZoom:       req.MaxZoom,
		TileSize:      req.TileSize,
		Attribution:   req.Attribution,
		Bounds:        req.Bounds,
		Center:        req.Center,
		DefaultZoom:   req.DefaultZoom,
		Visibility:    models.Visibility(req.Visibility),
		WorldModelRef: req.WorldModelRef,
	}
	bm.Normalize()
	if err := bm.Validate(); err != nil {
		return nil, err
	}
	return bm, nil
}

// CreateBasemap serves POST /api/v1/basemaps.
func (h *Handler) CreateBasemap(w http.ResponseWriter, r *http.Request) {
	var req basemapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid JSON body", nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	bm, err := req.toModel()
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	if err := h.store.PutBasemap(r.Context(), bm); err != nil {
		respondError(w, http.StatusInternalServerError, "REGISTRY_ERROR", "failed to store basemap", err)
		return
	}
	respondData(w, http.StatusCreated, bm)
}

// GetBasemap serves GET /api/v1/basemaps/{id}.
func (h *Handler) GetBasemap(w http.ResponseWriter, r *http.Request) {
	bm, err := h.store.GetBasemap(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, registry.ErrNotFound) {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "basemap not found", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "REGISTRY_ERROR", "failed to load basemap", err)
		return
	}
	respondData(w, http.StatusOK, bm)
}

// ListBasemaps serves GET /api/v1/basemaps.
func (h *Handler) ListBasemaps(w http.ResponseWriter, r *http.Request) {
	basemaps, err := h.store.ListBasemaps(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "REGISTRY_ERROR", "failed to list basemaps", err)
		return
	}
	if basemaps == nil {
		basemaps = []*models.Basemap{}
	}
	respondData(w, http.StatusOK, basemaps)
}

// UpdateBasemap serves PUT /api/v1/basemaps/{id}. Records are replaced
// whole; the id and creation time survive the update.
func (h *Handler) UpdateBasemap(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	existing, err := h.store.GetBasemap(r.Context(), id)
	if errors.Is(err, registry.ErrNotFound) {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "basemap not found", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "REGISTRY_ERROR", "failed to load basemap", err)
		return
	}

	var req basemapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid JSON body", nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	bm, err := req.toModel()
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}
	bm.ID = existing.ID
	bm.OwnerID = existing.OwnerID
	bm.CreatedAt = existing.CreatedAt

	if err := h.store.PutBasemap(r.Context(), bm); err != nil {
		respondError(w, http.StatusInternalServerError, "REGISTRY_ERROR", "failed to store basemap", err)
		return
	}
	respondData(w, http.StatusOK, bm)
}

// DeleteBasemap serves DELETE /api/v1/basemaps/{id}. Only the record is
// removed; backing tile files and feature data stay untouched.
func (h *Handler) DeleteBasemap(w http.ResponseWriter, r *http.Request) {
	err := h.store.DeleteBasemap(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, registry.ErrNotFound) {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "basemap not found", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "REGISTRY_ERROR", "failed to delete basemap", err)
		return
	}
	respondData(w, http.StatusOK, map[string]string{"deleted": chi.URLParam(r, "id")})
}
