// Mythograph - Fantasy World GIS Tile & Style Synthesis Engine
// Copyright 2026 M. Verley (mverley)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mythograph/mythograph

// Command server runs the Mythograph tile and style engine.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mythograph/mythograph/internal/api"
	"github.com/mythograph/mythograph/internal/config"
	"github.com/mythograph/mythograph/internal/featureset"
	"github.com/mythograph/mythograph/internal/logging"
	"github.com/mythograph/mythograph/internal/registry"
	"github.com/mythograph/mythograph/internal/resolver"
	"github.com/mythograph/mythograph/internal/style"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("tiles_root", cfg.Tiles.Root).
		Str("registry", cfg.RegistryPath()).
		Str("geometry_transform", cfg.Tiles.GeometryTransform).
		Str("environment", cfg.Server.Environment).
		Msg("Configuration loaded")

	store, err := registry.Open(cfg.RegistryPath())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open registry")
	}
	defer store.Close()

	features := featureset.NewManager(nil)

	engine := resolver.NewEngine(resolver.Config{
		TilesRoot:         cfg.Tiles.Root,
		CacheMaxAge:       cfg.Tiles.CacheMaxAge,
		UpstreamTimeout:   cfg.Tiles.UpstreamTimeout,
		UpstreamRateLimit: cfg.Tiles.UpstreamRateLimit,
		UpstreamBurst:     cfg.Tiles.UpstreamBurst,
		GeometryPolicy:    cfg.GeometryPolicy(),
	}, features)

	handler := api.NewHandler(store, engine, features, style.NewBuilder(cfg.Style.GlyphsURL))

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      api.NewRouter(cfg, handler),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
	case err := <-errCh:
		logging.Error().Err(err).Msg("HTTP server failed")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("Graceful shutdown failed")
	}
	logging.Info().Msg("Server stopped")
}
