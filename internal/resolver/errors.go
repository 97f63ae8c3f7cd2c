// Mythograph - Fantasy World GIS Tile & Style Synthesis Engine
// Copyright 2026 M. Verley (mverley)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mythograph/mythograph

package resolver

import (
	"errors"
	"fmt"
)

// ErrTileNotFound means the request was valid but no tile exists for it:
// a missing pyramid file, a non-2xx upstream response. It is an expected,
// frequent outcome and is never logged as an error.
var ErrTileNotFound = errors.New("resolver: tile not found")

// ErrAccessDenied means a resolved filesystem path escaped the configured
// tiles root. It is kept distinct from ErrTileNotFound so the boundary can
// answer 403 instead of 404, and it is always logged.
var ErrAccessDenied = errors.New("resolver: access denied")

// ResolverError wraps a transient backing-store failure: an unreachable
// upstream, an unreadable-but-present file, a corrupt feature source.
// Retrying is the client's business, not the engine's.
type ResolverError struct {
	Op  string // "remote_fetch", "local_read", "vector_filter"
	Err error
}

func (e *ResolverError) Error() string {
	return fmt.Sprintf("resolver: %s: %v", e.Op, e.Err)
}

func (e *ResolverError) Unwrap() error { return e.Err }
