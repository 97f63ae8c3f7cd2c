// Mythograph - Fantasy World GIS Tile & Style Synthesis Engine
// Copyright 2026 M. Verley (mverley)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mythograph/mythograph

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/mythograph/mythograph/internal/registry"
)

// Health serves GET /api/v1/health: liveness plus uptime.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondData(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(h.startTime).Round(time.Second).String(),
	})
}

// Ready serves GET /api/v1/health/ready: verifies the registry answers. A
// probe for a record that cannot exist must come back ErrNotFound; anything
// else means the store is down.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	_, err := h.store.GetBasemap(r.Context(), "bm-readiness-probe")
	if err != nil && !errors.Is(err, registry.ErrNotFound) {
		respondError(w, http.StatusServiceUnavailable, "REGISTRY_ERROR", "registry unavailable", err)
		return
	}
	respondData(w, http.StatusOK, map[string]string{"status": "ready"})
}
