// Copyright 2026 The Deadweight Authors
// SPDX-License-Identifier: MIT

// Package xref is the cross-reference engine: it derives comparable keys for
// candidates and decides which keys occur in a corpus of source text.
//
// Matching is literal substring containment. There is no tokenization, no
// word-boundary check and no regex, so a key "a.png" is found inside
// "banner_a.png". This biases the scanner toward reporting fewer unused
// resources: a false "referenced" is possible, a false "unused" caused by
// odd formatting is not.
package xref

import (
	"path"
	"path/filepath"
)

// Key returns the comparable key of a file candidate: its base name,
// extension included.
func Key(p string) string {
	return path.Base(filepath.ToSlash(p))
}
