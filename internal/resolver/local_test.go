// Mythograph - Fantasy World GIS Tile & Style Synthesis Engine
// Copyright 2026 M. Verley (mverley)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mythograph/mythograph

package resolver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mythograph/mythograph/internal/models"
	"github.com/mythograph/mythograph/internal/tile"
)

func localBasemap(pathTemplate string) *models.Basemap {
	bm := &models.Basemap{
		ID:   "bm-local",
		Name: "Test Pyramid",
		Source: models.TileSource{
			Kind:         models.SourceLocalRaster,
			PathTemplate: pathTemplate,
		},
	}
	bm.Normalize()
	return bm
}

func TestLocalResolveServesExistingTile(t *testing.T) {
	root := t.TempDir()
	tileDir := filepath.Join(root, "pyramid", "5", "3")
	if err := os.MkdirAll(tileDir, 0o755); err != nil {
		t.Fatal(err)
	}
	payload := []byte("fake png bytes")
	if err := os.WriteFile(filepath.Join(tileDir, "3.png"), payload, 0o644); err != nil {
		t.Fatal(err)
	}

	engine := NewEngine(Config{TilesRoot: root, CacheMaxAge: 2 * time.Hour}, nil)
	got, err := engine.Resolve(context.Background(), localBasemap("pyramid/{z}/{x}/{y}.png"), nil, 5, 3, 3)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if string(got.Body) != string(payload) {
		t.Errorf("Body = %q, want %q", got.Body, payload)
	}
	if got.ContentType != "image/png" {
		t.Errorf("ContentType = %q, want image/png", got.ContentType)
	}
	if got.CacheControl != "public, max-age=7200" {
		t.Errorf("CacheControl = %q, want public, max-age=7200", got.CacheControl)
	}
}

func TestLocalResolveMissingTileIsNotFound(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "pyramid"), 0o755); err != nil {
		t.Fatal(err)
	}

	engine := NewEngine(Config{TilesRoot: root}, nil)
	_, err := engine.Resolve(context.Background(), localBasemap("pyramid/{z}/{x}/{y}.png"), nil, 5, 3, 3)
	if !errors.Is(err, ErrTileNotFound) {
		t.Fatalf("err = %v, want ErrTileNotFound", err)
	}
}

func TestLocalResolveEscapeIsAccessDenied(t *testing.T) {
	// A contained-but-missing path must stay 404; an escaping path must be
	// 403 even when the target exists.
	root := t.TempDir()

	engine := NewEngine(Config{TilesRoot: root}, nil)
	_, err := engine.Resolve(context.Background(), localBasemap("../../etc/passwd"), nil, 0, 0, 0)
	if !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("err = %v, want ErrAccessDenied", err)
	}
}

func TestLocalResolveSingleImageFallback(t *testing.T) {
	// A template without placeholders names one preview image served for
	// every tile index.
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "preview.png"), []byte("preview"), 0o644); err != nil {
		t.Fatal(err)
	}

	engine := NewEngine(Config{TilesRoot: root}, nil)
	for _, idx := range [][3]int{{0, 0, 0}, {4, 7, 11}} {
		got, err := engine.Resolve(context.Background(), localBasemap("preview.png"), nil, idx[0], idx[1], idx[2])
		if err != nil {
			t.Fatalf("Resolve(%v): %v", idx, err)
		}
		if string(got.Body) != "preview" {
			t.Errorf("Resolve(%v) body = %q", idx, got.Body)
		}
	}
}

func TestEngineRejectsInvalidIndexBeforeIO(t *testing.T) {
	engine := NewEngine(Config{TilesRoot: t.TempDir()}, nil)

	cases := [][3]int{
		{-1, 0, 0},
		{2, 4, 0},
		{2, 0, 4},
		{3, -1, 2},
		{tile.MaxZoom + 1, 0, 0},
	}
	for _, c := range cases {
		_, err := engine.Resolve(context.Background(), localBasemap("{z}/{x}/{y}.png"), nil, c[0], c[1], c[2])
		if !errors.Is(err, tile.ErrInvalidTileIndex) {
			t.Errorf("Resolve(%v): err = %v, want ErrInvalidTileIndex", c, err)
		}
	}
}

func TestSubstituteTemplate(t *testing.T) {
	got := substituteTemplate("https://tiles.example.com/{z}/{x}/{y}.png", 3, 5, 2)
	want := "https://tiles.example.com/3/5/2.png"
	if got != want {
		t.Errorf("substituteTemplate = %q, want %q", got, want)
	}

	if !hasPlaceholders("{z}/{x}/{y}.png") {
		t.Error("Expected placeholders to be detected")
	}
	if hasPlaceholders("world-overview.png") {
		t.Error("Expected static image template to have no placeholders")
	}
	if strings.Contains(substituteTemplate("{z}/{x}/{y}", 1, 2, 3), "{") {
		t.Error("Expected all placeholders to be substituted")
	}
}
