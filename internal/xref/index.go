// Copyright 2026 The Deadweight Authors
// SPDX-License-Identifier: MIT

package xref

import (
	"context"
	"strings"
)

// Set is a set of keys confirmed referenced.
type Set map[string]struct{}

// Has reports whether key is in the set.
func (s Set) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// ExcludeFunc reports whether a match of key inside entry must be ignored.
type ExcludeFunc func(key string, e Entry) bool

// ExcludePath ignores matches found in the file at path. It implements the
// rule that a file never references itself.
func ExcludePath(path string) ExcludeFunc {
	return func(_ string, e Entry) bool {
		return e.Path == path
	}
}

// BuildReferenceSet returns the keys that occur as a literal substring in at
// least one corpus entry. Matches for which exclude returns true do not
// count; exclude may be nil. Duplicate keys are allowed and empty keys are
// never reported.
func BuildReferenceSet(corpus Corpus, keys []string, exclude ExcludeFunc) Set {
	set, _ := BuildReferenceSetContext(context.Background(), corpus, keys, exclude)
	return set
}

// BuildReferenceSetContext is BuildReferenceSet with a cancellation check
// between corpus entries.
func BuildReferenceSetContext(ctx context.Context, corpus Corpus, keys []string, exclude ExcludeFunc) (Set, error) {
	set := make(Set)

	pending := make([]string, 0, len(keys))
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		pending = append(pending, k)
	}

	for _, e := range corpus {
		if len(pending) == 0 {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		// Keys confirmed referenced are dropped from pending; a key stays
		// referenced for the rest of the run.
		kept := pending[:0]
		for _, k := range pending {
			if strings.Contains(e.Content, k) && (exclude == nil || !exclude(k, e)) {
				set[k] = struct{}{}
				continue
			}
			kept = append(kept, k)
		}
		pending = kept
	}

	return set, nil
}
