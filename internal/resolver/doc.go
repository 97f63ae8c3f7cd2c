// Mythograph - Fantasy World GIS Tile & Style Synthesis Engine
// Copyright 2026 M. Verley (mverley)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mythograph/mythograph

// Package resolver serves individual tiles from a basemap's backing store.
//
// Three interchangeable strategies sit behind one contract, selected by the
// basemap's TileSource kind:
//
//   - Remote proxies an upstream {z}/{x}/{y} endpoint, with a circuit
//     breaker and optional rate limit on the upstream;
//   - Local reads a raster pyramid under the configured tiles root, with
//     every resolved path checked by the path safety guard first;
//   - Vector filters a GeoJSON feature collection down to the tile's
//     bounding box.
//
// All resolvers are stateless and safe under unlimited request-level
// parallelism. Outcomes are typed: ErrTileNotFound is a normal, frequent
// result mapped to 404; ErrAccessDenied is a security event mapped to 403;
// a *ResolverError is a transient backing-store failure the client may
// retry (the engine itself never retries).
package resolver
