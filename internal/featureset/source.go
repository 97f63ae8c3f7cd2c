// Mythograph - Fantasy World GIS Tile & Style Synthesis Engine
// Copyright 2026 M. Verley (mverley)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mythograph/mythograph

package featureset

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/paulmach/orb/geojson"
	"golang.org/x/sync/singleflight"

	"github.com/mythograph/mythograph/internal/logging"
	"github.com/mythograph/mythograph/internal/metrics"
)

// Manager hands out one Source per feature-set identity so all requests for
// the same basemap share a single cached collection.
type Manager struct {
	mu      sync.Mutex
	sources map[string]*Source
	client  *http.Client
}

// NewManager creates a feature-source manager. The HTTP client is used only
// for sources addressed by http(s) URI; pass nil for a sensible default.
func NewManager(client *http.Client) *Manager {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Manager{
		sources: make(map[string]*Source),
		client:  client,
	}
}

// Source returns the shared Source for the given path or URI, creating it
// on first use.
func (m *Manager) Source(pathOrURI string) *Source {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sources[pathOrURI]; ok {
		return s
	}
	s := &Source{path: pathOrURI, client: m.client}
	m.sources[pathOrURI] = s
	return s
}

// Source is one cached GeoJSON feature collection, identified by its path
// or URI. The zero collection pointer means "not loaded yet".
type Source struct {
	path   string
	client *http.Client

	collection atomic.Pointer[geojson.FeatureCollection]
	loadedAt   atomic.Int64 // unix nanos, 0 until first load
	group      singleflight.Group
}

// Path returns the source identity this Source was created with.
func (s *Source) Path() string { return s.path }

// Collection returns the cached feature collection, loading it on first
// call. Concurrent first calls are deduplicated; later calls are lock-free
// pointer reads.
func (s *Source) Collection(ctx context.Context) (*geojson.FeatureCollection, error) {
	if fc := s.collection.Load(); fc != nil {
		metrics.FeatureCacheHits.Inc()
		return fc, nil
	}
	metrics.FeatureCacheMisses.Inc()

	v, err, _ := s.group.Do("load", func() (interface{}, error) {
		// Another caller may have completed the load while this one was
		// queued behind the flight.
		if fc := s.collection.Load(); fc != nil {
			return fc, nil
		}
		return s.load(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*geojson.FeatureCollection), nil
}

// Reload re-reads the source and swaps the cached collection atomically.
// Readers holding the old pointer keep a consistent snapshot.
func (s *Source) Reload(ctx context.Context) error {
	_, err := s.load(ctx)
	return err
}

// LoadedAt returns when the current collection was loaded, or the zero time
// if the source has never loaded.
func (s *Source) LoadedAt() time.Time {
	ns := s.loadedAt.Load()
	if ns == 0 {
		return time.Time{}
	}
	return time.Unix(0, ns)
}

func (s *Source) load(ctx context.Context) (*geojson.FeatureCollection, error) {
	start := time.Now()

	data, err := s.read(ctx)
	if err != nil {
		return nil, fmt.Errorf("featureset: reading %s: %w", s.path, err)
	}

	fc := geojson.NewFeatureCollection()
	if err := json.Unmarshal(data, fc); err != nil {
		return nil, fmt.Errorf("featureset: parsing %s: %w", s.path, err)
	}

	s.collection.Store(fc)
	s.loadedAt.Store(time.Now().UnixNano())
	metrics.FeatureSourceLoadDuration.Observe(time.Since(start).Seconds())

	logging.Debug().
		Str("source", s.path).
		Int("features", len(fc.Features)).
		Dur("elapsed", time.Since(start)).
		Msg("Feature collection loaded")
	return fc, nil
}

func (s *Source) read(ctx context.Context) ([]byte, error) {
	if strings.HasPrefix(s.path, "http://") || strings.HasPrefix(s.path, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.path, nil)
		if err != nil {
			return nil, err
		}
		resp, err := s.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	}
	return os.ReadFile(s.path)
}
