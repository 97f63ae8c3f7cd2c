// Mythograph - Fantasy World GIS Tile & Style Synthesis Engine
// Copyright 2026 M. Verley (mverley)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mythograph/mythograph

package resolver

import (
	"os"
	"path/filepath"
	"strings"
)

// Contained reports whether candidate stays inside root after both are
// canonicalized (symlinks and ".." segments resolved). The candidate is
// accepted only when its canonical form equals the canonical root or is
// lexically prefixed by it plus a path separator. This guards against
// directory traversal via crafted z/x/y values or malicious path
// templates.
//
// The root must exist; the candidate may not (a missing tile is decided by
// the read that follows, not by the guard).
func Contained(candidate, root string) (bool, error) {
	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return false, err
	}
	rootCanon, err := filepath.EvalSymlinks(rootAbs)
	if err != nil {
		return false, err
	}

	candAbs, err := filepath.Abs(candidate)
	if err != nil {
		return false, err
	}
	candCanon, err := canonicalize(candAbs)
	if err != nil {
		return false, err
	}

	if candCanon == rootCanon {
		return true, nil
	}
	return strings.HasPrefix(candCanon, rootCanon+string(os.PathSeparator)), nil
}

// canonicalize resolves symlinks for the deepest existing ancestor of path
// and rejoins the non-existing remainder, so traversal checks work for
// paths that do not exist yet.
func canonicalize(path string) (string, error) {
	p := filepath.Clean(path)
	suffix := ""
	for {
		resolved, err := filepath.EvalSymlinks(p)
		if err == nil {
			return filepath.Join(resolved, suffix), nil
		}
		if !os.IsNotExist(err) {
			return "", err
		}
		parent := filepath.Dir(p)
		if parent == p {
			return filepath.Join(p, suffix), nil
		}
		suffix = filepath.Join(filepath.Base(p), suffix)
		p = parent
	}
}
