// Mythograph - Fantasy World GIS Tile & Style Synthesis Engine
// Copyright 2026 M. Verley (mverley)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mythograph/mythograph

package resolver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mythograph/mythograph/internal/models"
)

func newRemoteBasemap(urlTemplate string) *models.Basemap {
	bm := &models.Basemap{
		ID:   "bm-remote",
		Name: "Upstream Proxy",
		Source: models.TileSource{
			Kind:        models.SourceRemoteXYZ,
			URLTemplate: urlTemplate,
		},
	}
	bm.Normalize()
	return bm
}

func TestRemoteResolveProxiesUpstream(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/7/42/53.png" {
			t.Errorf("Upstream path = %q, want /7/42/53.png", r.URL.Path)
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("upstream tile"))
	}))
	defer ts.Close()

	engine := NewEngine(Config{}, nil)
	got, err := engine.Resolve(context.Background(), newRemoteBasemap(ts.URL+"/{z}/{x}/{y}.png"), nil, 7, 42, 53)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if string(got.Body) != "upstream tile" {
		t.Errorf("Body = %q", got.Body)
	}
	if got.ContentType != "image/png" {
		t.Errorf("ContentType = %q, want image/png", got.ContentType)
	}
}

func TestRemoteResolveNon2xxIsNotFound(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusInternalServerError, http.StatusBadGateway} {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		engine := NewEngine(Config{}, nil)
		_, err := engine.Resolve(context.Background(), newRemoteBasemap(ts.URL+"/{z}/{x}/{y}.png"), nil, 1, 0, 0)
		ts.Close()

		if !errors.Is(err, ErrTileNotFound) {
			t.Errorf("status %d: err = %v, want ErrTileNotFound", status, err)
		}
	}
}

func TestRemoteResolveMissingContentTypeFallsBackToFormat(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header()["Content-Type"] = nil
		w.Write([]byte{0x89})
	}))
	defer ts.Close()

	engine := NewEngine(Config{}, nil)
	got, err := engine.Resolve(context.Background(), newRemoteBasemap(ts.URL+"/{z}/{x}/{y}.png"), nil, 1, 0, 0)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.ContentType != "image/png" {
		t.Errorf("ContentType = %q, want image/png fallback", got.ContentType)
	}
}

func TestRemoteResolveTransportFailureIsResolverError(t *testing.T) {
	// Closed server: connection refused is a transport failure, not 404.
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close()

	engine := NewEngine(Config{UpstreamTimeout: 2 * time.Second}, nil)
	_, err := engine.Resolve(context.Background(), newRemoteBasemap(ts.URL+"/{z}/{x}/{y}.png"), nil, 1, 0, 0)

	var re *ResolverError
	if !errors.As(err, &re) {
		t.Fatalf("err = %v, want *ResolverError", err)
	}
	if re.Op != "remote_fetch" {
		t.Errorf("Op = %q, want remote_fetch", re.Op)
	}
	if errors.Is(err, ErrTileNotFound) {
		t.Error("Transport failure must not look like a missing tile")
	}
}

func TestRemoteBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close()

	engine := NewEngine(Config{UpstreamTimeout: time.Second}, nil)
	bm := newRemoteBasemap(ts.URL + "/{z}/{x}/{y}.png")

	for i := 0; i < 6; i++ {
		engine.Resolve(context.Background(), bm, nil, 1, 0, 0)
	}

	// The breaker is now open: requests fail fast without touching the
	// network, still surfaced as transient resolver errors.
	start := time.Now()
	_, err := engine.Resolve(context.Background(), bm, nil, 1, 0, 0)
	var re *ResolverError
	if !errors.As(err, &re) {
		t.Fatalf("err = %v, want *ResolverError", err)
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("Open breaker took %v to fail, expected fast rejection", elapsed)
	}
}
