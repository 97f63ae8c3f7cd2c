// Mythograph - Fantasy World GIS Tile & Style Synthesis Engine
// Copyright 2026 M. Verley (mverley)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mythograph/mythograph

// Package api provides the HTTP boundary: Chi routing, request validation,
// the JSON response envelope, and the mapping from engine errors to HTTP
// status codes. All tile and style requests are stateless and safe under
// unlimited request-level parallelism.
package api
