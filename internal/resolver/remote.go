// Mythograph - Fantasy World GIS Tile & Style Synthesis Engine
// Copyright 2026 M. Verley (mverley)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mythograph/mythograph

package resolver

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/mythograph/mythograph/internal/logging"
	"github.com/mythograph/mythograph/internal/metrics"
	"github.com/mythograph/mythograph/internal/models"
)

// fetchResult carries one upstream response through the circuit breaker.
// Only transport-level failures count against the breaker; a served non-2xx
// is a healthy upstream saying "no such tile".
type fetchResult struct {
	body        []byte
	status      int
	contentType string
}

// Remote proxies tile requests to an upstream {z}/{x}/{y} endpoint. It
// never caches and never retries; it only protects the process from a
// flapping upstream with a circuit breaker and an optional rate limit.
type Remote struct {
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[fetchResult]
	limiter *rate.Limiter
}

func newRemote(cfg Config) *Remote {
	settings := gobreaker.Settings{
		Name:    "tile-upstream",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if to == gobreaker.StateOpen {
				metrics.UpstreamBreakerState.Set(1)
				logging.Warn().Str("breaker", name).Msg("Upstream circuit breaker opened")
			} else {
				metrics.UpstreamBreakerState.Set(0)
			}
		},
	}

	var limiter *rate.Limiter
	if cfg.UpstreamRateLimit > 0 {
		burst := cfg.UpstreamBurst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.UpstreamRateLimit), burst)
	}

	return &Remote{
		client:  &http.Client{Timeout: cfg.UpstreamTimeout},
		breaker: gobreaker.NewCircuitBreaker[fetchResult](settings),
		limiter: limiter,
	}
}

// Resolve substitutes the tile index into the basemap's URL template and
// forwards the request. Any non-2xx upstream response maps to
// ErrTileNotFound; transport failures map to a *ResolverError.
func (r *Remote) Resolve(ctx context.Context, bm *models.Basemap, z, x, y int) (*Tile, error) {
	url := substituteTemplate(bm.Source.URLTemplate, z, x, y)

	if r.limiter != nil {
		if err := r.limiter.Wait(ctx); err != nil {
			return nil, &ResolverError{Op: "remote_fetch", Err: err}
		}
	}

	res, err := r.breaker.Execute(func() (fetchResult, error) {
		return r.fetch(ctx, url)
	})
	if err != nil {
		// Breaker-open and transport failures alike are transient
		// upstream conditions; callers see them uniformly.
		return nil, &ResolverError{Op: "remote_fetch", Err: err}
	}

	if res.status < 200 || res.status > 299 {
		return nil, ErrTileNotFound
	}

	contentType := res.contentType
	if contentType == "" {
		contentType = bm.Format.ContentType()
	}
	return &Tile{Body: res.body, ContentType: contentType}, nil
}

func (r *Remote) fetch(ctx context.Context, url string) (fetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fetchResult{}, err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return fetchResult{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fetchResult{}, err
	}

	return fetchResult{
		body:        body,
		status:      resp.StatusCode,
		contentType: resp.Header.Get("Content-Type"),
	}, nil
}
