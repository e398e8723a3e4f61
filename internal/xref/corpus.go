// Copyright 2026 The Deadweight Authors
// SPDX-License-Identifier: MIT

package xref

import (
	"context"
	"log/slog"
	"path/filepath"
)

// Entry is one source file held in memory.
type Entry struct {
	// Path is the file path relative to the project root, slash separated.
	Path string

	// Content is the full text of the file.
	Content string
}

// Corpus is the ordered in-memory text of every source file considered by
// one detection pass. It is not modified once built.
type Corpus []Entry

// Reader returns the full content of a file. testable.FileSystem satisfies it.
type Reader interface {
	ReadFile(name string) ([]byte, error)
}

// ReadFailure records a file that could not be loaded into the corpus.
type ReadFailure struct {
	Path string
	Err  error
}

// LoadCorpus reads every path (relative to root, slash separated) into a
// Corpus, preserving order. Files that fail to read are skipped and
// returned as failures: they contribute no references. The only error
// returned is the context's, checked between reads.
func LoadCorpus(ctx context.Context, r Reader, root string, paths []string) (Corpus, []ReadFailure, error) {
	corpus := make(Corpus, 0, len(paths))
	var failures []ReadFailure

	for _, rel := range paths {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		data, err := r.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil {
			slog.Warn("skipping unreadable source file", "path", rel, "error", err)
			failures = append(failures, ReadFailure{Path: rel, Err: err})
			continue
		}
		corpus = append(corpus, Entry{Path: rel, Content: string(data)})
	}

	return corpus, failures, nil
}
