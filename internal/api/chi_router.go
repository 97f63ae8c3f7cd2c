// Mythograph - Fantasy World GIS Tile & Style Synthesis Engine
// Copyright 2026 M. Verley (mverley)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mythograph/mythograph

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mythograph/mythograph/internal/config"
	"github.com/mythograph/mythograph/internal/middleware"
)

// NewRouter builds the Chi router with the full middleware stack and every
// route the engine serves.
func NewRouter(cfg *config.Config, handler *Handler) http.Handler {
	r := chi.NewRouter()

	// Global middleware stack
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.API.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "ETag"},
		MaxAge:         300,
	}))
	r.Use(middleware.PrometheusMetrics)

	rateLimit := func(next http.Handler) http.Handler { return next }
	if !cfg.API.RateLimitDisabled {
		rateLimit = httprate.LimitByIP(cfg.API.RateLimitReqs, cfg.API.RateLimitWindow)
	}

	// Tile proxy. Unlimited request-level parallelism is safe: resolvers
	// share nothing mutable beyond the atomic feature cache.
	r.Group(func(r chi.Router) {
		r.Use(rateLimit)
		r.Get("/tiles/{scheme}/{id}/{z}/{x}/{y}.{ext}", handler.Tile)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", handler.Health)
		r.Get("/health/ready", handler.Ready)

		r.Group(func(r chi.Router) {
			r.Use(rateLimit)

			r.Route("/basemaps", func(r chi.Router) {
				r.Get("/", handler.ListBasemaps)
				r.Post("/", handler.CreateBasemap)
				r.Get("/{id}", handler.GetBasemap)
				r.Put("/{id}", handler.UpdateBasemap)
				r.Delete("/{id}", handler.DeleteBasemap)
				r.Get("/{id}/style.json", handler.Style)
				r.Get("/{id}/data", handler.BasemapData)
			})

			r.Route("/world-models", func(r chi.Router) {
				r.Get("/", handler.ListWorldModels)
				r.Post("/", handler.CreateWorldModel)
				r.Get("/{id}", handler.GetWorldModel)
				r.Put("/{id}", handler.UpdateWorldModel)
				r.Delete("/{id}", handler.DeleteWorldModel)
				r.Post("/{id}/transform", handler.TransformPoints)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
