// Mythograph - Fantasy World GIS Tile & Style Synthesis Engine
// Copyright 2026 M. Verley (mverley)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mythograph/mythograph

package featureset

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/goccy/go-json"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/mythograph/mythograph/internal/tile"
)

func writeCollection(t *testing.T, fc *geojson.FeatureCollection) string {
	t.Helper()
	data, err := json.Marshal(fc)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "features.geojson")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func mixedCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	city := geojson.NewFeature(orb.Point{10, 10})
	city.Properties["name"] = "Harborwatch"
	fc.Append(city)

	road := geojson.NewFeature(orb.LineString{{-30, -10}, {-20, -5}})
	road.Properties["name"] = "Old King's Road"
	fc.Append(road)

	realm := geojson.NewFeature(orb.Polygon{{{100, 20}, {140, 20}, {140, 50}, {100, 50}, {100, 20}}})
	realm.Properties["name"] = "The Sundered Realm"
	fc.Append(realm)

	return fc
}

func TestCollectionLoadsOnce(t *testing.T) {
	fc := mixedCollection()
	path := writeCollection(t, fc)

	src := NewManager(nil).Source(path)
	ctx := context.Background()

	first, err := src.Collection(ctx)
	if err != nil {
		t.Fatalf("Collection: %v", err)
	}
	if len(first.Features) != 3 {
		t.Fatalf("Features = %d, want 3", len(first.Features))
	}

	// Deleting the backing file must not matter: later calls hit the cache.
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	second, err := src.Collection(ctx)
	if err != nil {
		t.Fatalf("Collection after remove: %v", err)
	}
	if second != first {
		t.Error("Expected cached collection pointer, got a fresh load")
	}
}

func TestCollectionConcurrentFirstLoad(t *testing.T) {
	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		data, _ := json.Marshal(mixedCollection())
		w.Write(data)
	}))
	defer ts.Close()

	src := NewManager(ts.Client()).Source(ts.URL)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := src.Collection(context.Background()); err != nil {
				t.Errorf("Collection: %v", err)
			}
		}()
	}
	wg.Wait()

	// Singleflight plus the cached-pointer fast path: at most a handful of
	// upstream reads, never one per caller. The common case is exactly one.
	if hits.Load() > 2 {
		t.Errorf("Upstream hit %d times for 16 concurrent callers", hits.Load())
	}
}

func TestReloadSwapsCollection(t *testing.T) {
	path := writeCollection(t, mixedCollection())
	src := NewManager(nil).Source(path)
	ctx := context.Background()

	old, err := src.Collection(ctx)
	if err != nil {
		t.Fatal(err)
	}

	smaller := geojson.NewFeatureCollection()
	smaller.Append(geojson.NewFeature(orb.Point{0, 0}))
	data, _ := json.Marshal(smaller)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	if err := src.Reload(ctx); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	fresh, err := src.Collection(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if fresh == old {
		t.Error("Reload did not swap the cached collection")
	}
	if len(fresh.Features) != 1 {
		t.Errorf("Reloaded features = %d, want 1", len(fresh.Features))
	}
	// The old snapshot is untouched for readers still holding it.
	if len(old.Features) != 3 {
		t.Errorf("Old snapshot features = %d, want 3", len(old.Features))
	}
}

func TestManagerSharesSources(t *testing.T) {
	m := NewManager(nil)
	if m.Source("/data/a.geojson") != m.Source("/data/a.geojson") {
		t.Error("Same identity must return the same Source")
	}
	if m.Source("/data/a.geojson") == m.Source("/data/b.geojson") {
		t.Error("Distinct identities must not share a Source")
	}
}

func TestFilterTileIsIdempotent(t *testing.T) {
	path := writeCollection(t, mixedCollection())
	src := NewManager(nil).Source(path)
	ctx := context.Background()

	a, err := src.FilterTile(ctx, 2, 2, 1, tile.SchemeXYZ)
	if err != nil {
		t.Fatalf("FilterTile: %v", err)
	}
	b, err := src.FilterTile(ctx, 2, 2, 1, tile.SchemeXYZ)
	if err != nil {
		t.Fatalf("FilterTile: %v", err)
	}
	if len(a.Features) != len(b.Features) {
		t.Errorf("Repeated filter differs: %d vs %d features", len(a.Features), len(b.Features))
	}
}

func TestFilterTileCompleteness(t *testing.T) {
	// Every feature must land in at least one tile of a zoom level; the
	// root tile holds everything within the Web Mercator range.
	path := writeCollection(t, mixedCollection())
	src := NewManager(nil).Source(path)

	root, err := src.FilterTile(context.Background(), 0, 0, 0, tile.SchemeXYZ)
	if err != nil {
		t.Fatalf("FilterTile: %v", err)
	}
	if len(root.Features) != 3 {
		t.Errorf("Root tile features = %d, want all 3", len(root.Features))
	}
}

func TestFilterTileInvalidIndex(t *testing.T) {
	path := writeCollection(t, mixedCollection())
	src := NewManager(nil).Source(path)

	if _, err := src.FilterTile(context.Background(), 1, 2, 0, tile.SchemeXYZ); err == nil {
		t.Error("Expected error for x out of range")
	}
}

func TestFilterTileTMSFlip(t *testing.T) {
	// XYZ (z=1, y=0) and TMS (z=1, y=1) address the same northern row.
	path := writeCollection(t, mixedCollection())
	src := NewManager(nil).Source(path)
	ctx := context.Background()

	xyz, err := src.FilterTile(ctx, 1, 0, 0, tile.SchemeXYZ)
	if err != nil {
		t.Fatal(err)
	}
	tms, err := src.FilterTile(ctx, 1, 0, 1, tile.SchemeTMS)
	if err != nil {
		t.Fatal(err)
	}
	if len(xyz.Features) != len(tms.Features) {
		t.Errorf("XYZ row and flipped TMS row differ: %d vs %d", len(xyz.Features), len(tms.Features))
	}
}

func TestSummaryReportsGeometryKinds(t *testing.T) {
	path := writeCollection(t, mixedCollection())
	src := NewManager(nil).Source(path)

	set, err := src.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if !set.Points || !set.Lines || !set.Polygons {
		t.Errorf("Summary = %+v, want all kinds present", set)
	}
	if !set.Mixed() {
		t.Error("Expected Mixed() for a three-kind collection")
	}
	if set.Empty() {
		t.Error("Expected non-empty summary")
	}

	pointsOnly := geojson.NewFeatureCollection()
	pointsOnly.Append(geojson.NewFeature(orb.Point{1, 1}))
	set2, err := NewManager(nil).Source(writeCollection(t, pointsOnly)).Summary(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !set2.Points || set2.Lines || set2.Polygons || set2.Mixed() {
		t.Errorf("Summary = %+v, want points only", set2)
	}
}
