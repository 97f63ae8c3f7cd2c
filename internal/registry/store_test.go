// Mythograph - Fantasy World GIS Tile & Style Synthesis Engine
// Copyright 2026 M. Verley (mverley)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mythograph/mythograph

package registry

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mythograph/mythograph/internal/models"
)

func openTestStore(t *testing.T) *BadgerStore {
	t.Helper()
	s, err := Open("")
	if err != nil {
		t.Fatalf("Open in-memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestBasemapRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	bm := &models.Basemap{
		Name: "Aurelia Terrain",
		Source: models.TileSource{
			Kind:        models.SourceRemoteXYZ,
			URLTemplate: "https://tiles.example.com/{z}/{x}/{y}.png",
		},
		MinZoom: 0,
		MaxZoom: 8,
	}
	bm.Normalize()

	if err := s.PutBasemap(ctx, bm); err != nil {
		t.Fatalf("PutBasemap: %v", err)
	}
	if bm.ID == "" || !strings.HasPrefix(bm.ID, "bm-") {
		t.Errorf("ID = %q, want minted bm- prefix", bm.ID)
	}
	if bm.CreatedAt.IsZero() || bm.UpdatedAt.IsZero() {
		t.Error("Expected timestamps to be set on put")
	}

	got, err := s.GetBasemap(ctx, bm.ID)
	if err != nil {
		t.Fatalf("GetBasemap: %v", err)
	}
	if got.Name != "Aurelia Terrain" {
		t.Errorf("Name = %q", got.Name)
	}
	if got.Source.Kind != models.SourceRemoteXYZ {
		t.Errorf("Kind = %q", got.Source.Kind)
	}
	if got.Source.URLTemplate != bm.Source.URLTemplate {
		t.Errorf("URLTemplate = %q", got.Source.URLTemplate)
	}
}

func TestGetBasemapNotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.GetBasemap(context.Background(), "bm-missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteBasemap(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	bm := &models.Basemap{Name: "Doomed", Source: models.TileSource{Kind: models.SourceRemoteXYZ, URLTemplate: "https://t/{z}/{x}/{y}.png"}}
	bm.Normalize()
	if err := s.PutBasemap(ctx, bm); err != nil {
		t.Fatal(err)
	}

	if err := s.DeleteBasemap(ctx, bm.ID); err != nil {
		t.Fatalf("DeleteBasemap: %v", err)
	}
	if _, err := s.GetBasemap(ctx, bm.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after delete = %v, want ErrNotFound", err)
	}
	if err := s.DeleteBasemap(ctx, bm.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Double delete = %v, want ErrNotFound", err)
	}
}

func TestListBasemapsIsolatedFromWorldModels(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"One", "Two", "Three"} {
		bm := &models.Basemap{Name: name, Source: models.TileSource{Kind: models.SourceRemoteXYZ, URLTemplate: "https://t/{z}/{x}/{y}.png"}}
		bm.Normalize()
		if err := s.PutBasemap(ctx, bm); err != nil {
			t.Fatal(err)
		}
	}
	wm := &models.WorldModel{Name: "Aurelia", ScaleFactor: 2}
	wm.Normalize()
	if err := s.PutWorldModel(ctx, wm); err != nil {
		t.Fatal(err)
	}

	basemaps, err := s.ListBasemaps(ctx)
	if err != nil {
		t.Fatalf("ListBasemaps: %v", err)
	}
	if len(basemaps) != 3 {
		t.Errorf("ListBasemaps = %d records, want 3", len(basemaps))
	}

	worlds, err := s.ListWorldModels(ctx)
	if err != nil {
		t.Fatalf("ListWorldModels: %v", err)
	}
	if len(worlds) != 1 {
		t.Errorf("ListWorldModels = %d records, want 1", len(worlds))
	}
}

func TestWorldModelRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	wm := &models.WorldModel{
		Name:        "Aurelia",
		ScaleFactor: 2.5,
		DefaultZoom: func() *int { z := 4; return &z }(),
	}
	wm.Normalize()

	if err := s.PutWorldModel(ctx, wm); err != nil {
		t.Fatalf("PutWorldModel: %v", err)
	}
	if !strings.HasPrefix(wm.ID, "wm-") {
		t.Errorf("ID = %q, want minted wm- prefix", wm.ID)
	}

	got, err := s.GetWorldModel(ctx, wm.ID)
	if err != nil {
		t.Fatalf("GetWorldModel: %v", err)
	}
	if got.ScaleFactor != 2.5 {
		t.Errorf("ScaleFactor = %v", got.ScaleFactor)
	}
	if got.EarthRadius != models.WGS84Radius*2.5 {
		t.Errorf("EarthRadius = %v, want scaled WGS84 radius", got.EarthRadius)
	}
	if got.DefaultZoom == nil || *got.DefaultZoom != 4 {
		t.Errorf("DefaultZoom = %v, want 4", got.DefaultZoom)
	}
}

func TestPutPreservesCreatedAt(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	bm := &models.Basemap{Name: "Stable", Source: models.TileSource{Kind: models.SourceRemoteXYZ, URLTemplate: "https://t/{z}/{x}/{y}.png"}}
	bm.Normalize()
	if err := s.PutBasemap(ctx, bm); err != nil {
		t.Fatal(err)
	}
	created := bm.CreatedAt

	bm.Name = "Renamed"
	if err := s.PutBasemap(ctx, bm); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetBasemap(ctx, bm.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt changed on update: %v -> %v", created, got.CreatedAt)
	}
	if got.Name != "Renamed" {
		t.Errorf("Name = %q, want Renamed", got.Name)
	}
}
