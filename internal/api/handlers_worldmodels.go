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
	"github.com/mythograph/mythograph/internal/worldmodel"
)

// worldModelRequest is the registration and update wire format.
type worldModelRequest struct {
	Name                  string      `json:"name" validate:"required,max=255"`
	Description           string      `json:"description" validate:"max=2000"`
	ScaleFactor           float64     `json:"scale_factor" validate:"omitempty,gt=0"`
	ExtentBounds          *[4]float64 `json:"extent_bounds"`
	TransformationMatrix  []float64   `json:"transformation_matrix" validate:"omitempty,len=6"`
	CRSDefinition         string      `json:"crs_definition"`
	CoordinateSystemNotes string      `json:"coordinate_system_notes"`
	DefaultCenter         *[2]float64 `json:"default_center"`
	DefaultZoom           *int        `json:"default_zoom" validate:"omitempty,min=0,max=24"`
	IsDefault             bool        `json:"is_default"`
	Visibility            string      `json:"visibility" validate:"omitempty,oneof=public owner"`
}

func (req *worldModelRequest) toModel() *models.WorldModel {
	wm := &models.WorldModel{
		Name:                  req.Name,
		Description:           req.Description,
		ScaleFactor:           req.ScaleFactor,
		ExtentBounds:          req.ExtentBounds,
		TransformationMatrix:  req.TransformationMatrix,
		CRSDefinition:         req.CRSDefinition,
		CoordinateSystemNotes: req.CoordinateSystemNotes,
		DefaultCenter:         req.DefaultCenter,
		DefaultZoom:           req.DefaultZoom,
		IsDefault:             req.IsDefault,
		Visibility:            models.Visibility(req.Visibility),
	}
	wm.Normalize()
	return wm
}

// CreateWorldModel serves POST /api/v1/world-models.
func (h *Handler) CreateWorldModel(w http.ResponseWriter, r *http.Request) {
	var req worldModelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid JSON body", nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	wm := req.toModel()
	if err := h.store.PutWorldModel(r.Context(), wm); err != nil {
		respondError(w, http.StatusInternalServerError, "REGISTRY_ERROR", "failed to store world model", err)
		return
	}
	respondData(w, http.StatusCreated, wm)
}

// GetWorldModel serves GET /api/v1/world-models/{id}.
func (h *Handler) GetWorldModel(w http.ResponseWriter, r *http.Request) {
	wm, err := h.store.GetWorldModel(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, registry.ErrNotFound) {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "world model not found", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "REGISTRY_ERROR", "failed to load world model", err)
		return
	}
	respondData(w, http.StatusOK, wm)
}

// ListWorldModels serves GET /api/v1/world-models.
func (h *Handler) ListWorldModels(w http.ResponseWriter, r *http.Request) {
	worlds, err := h.store.ListWorldModels(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "REGISTRY_ERROR", "failed to list world models", err)
		return
	}
	if worlds == nil {
		worlds = []*models.WorldModel{}
	}
	respondData(w, http.StatusOK, worlds)
}

// UpdateWorldModel serves PUT /api/v1/world-models/{id}.
func (h *Handler) UpdateWorldModel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	existing, err := h.store.GetWorldModel(r.Context(), id)
	if errors.Is(err, registry.ErrNotFound) {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "world model not found", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "REGISTRY_ERROR", "failed to load world model", err)
		return
	}

	var req worldModelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid JSON body", nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	wm := req.toModel()
	wm.ID = existing.ID
	wm.OwnerID = existing.OwnerID
	wm.CreatedAt = existing.CreatedAt

	if err := h.store.PutWorldModel(r.Context(), wm); err != nil {
		respondError(w, http.StatusInternalServerError, "REGISTRY_ERROR", "failed to store world model", err)
		return
	}
	respondData(w, http.StatusOK, wm)
}

// DeleteWorldModel serves DELETE /api/v1/world-models/{id}. Basemaps
// referencing the deleted model degrade to frame-less serving.
func (h *Handler) DeleteWorldModel(w http.ResponseWriter, r *http.Request) {
	err := h.store.DeleteWorldModel(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, registry.ErrNotFound) {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "world model not found", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "REGISTRY_ERROR", "failed to delete world model", err)
		return
	}
	respondData(w, http.StatusOK, map[string]string{"deleted": chi.URLParam(r, "id")})
}

// transformRequest carries coordinate pairs for the transform endpoint.
type transformRequest struct {
	Points [][2]float64 `json:"points" validate:"required,min=1,max=10000"`
}

// TransformPoints serves POST /api/v1/world-models/{id}/transform: applies
// the model's coordinate transform to a batch of [x, y] pairs.
func (h *Handler) TransformPoints(w http.ResponseWriter, r *http.Request) {
	wm, err := h.store.GetWorldModel(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, registry.ErrNotFound) {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "world model not found", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "REGISTRY_ERROR", "failed to load world model", err)
		return
	}

	var req transformRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid JSON body", nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	transformed, err := worldmodel.TransformPoints(req.Points, wm)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error(), nil)
		return
	}
	respondData(w, http.StatusOK, map[string]interface{}{
		"world_model_id": wm.ID,
		"points":         transformed,
	})
}
