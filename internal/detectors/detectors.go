// Copyright 2026 The Deadweight Authors
// SPDX-License-Identifier: MIT

// Package detectors provides the asset, dependency and dead-file detectors.
// Each detector enumerates its candidates, loads the project's source files
// into memory and keeps the candidates whose key occurs in no source file.
package detectors

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"

	"github.com/davetashner/deadweight/internal/enumerate"
	"github.com/davetashner/deadweight/internal/resource"
	"github.com/davetashner/deadweight/internal/testable"
	"github.com/davetashner/deadweight/internal/xref"
)

// FS is the file system implementation used by this package.
// Override in tests with a testable.MockFileSystem.
var FS testable.FileSystem = testable.DefaultFS

// Metrics holds structured metrics from one detector run.
type Metrics struct {
	Candidates   int    `json:"candidates"`
	Unreferenced int    `json:"unreferenced"`
	SourceFiles  int    `json:"source_files"`
	ReadFailures int    `json:"read_failures"`
	Truncated    bool   `json:"truncated"`
	Manifest     string `json:"manifest,omitempty"`
}

// cleanDir normalises a layout directory to a slash path without a
// trailing separator. "." and "" both mean the project root.
func cleanDir(dir string) string {
	return path.Clean(filepath.ToSlash(dir))
}

// sourceGlob matches every source file under the source root.
func sourceGlob(l resource.Layout) string {
	return path.Join(cleanDir(l.SourceRoot), "**", "*"+l.SourceExtension)
}

// assetGlob matches every file under the assets root.
func assetGlob(l resource.Layout) string {
	return path.Join(cleanDir(l.AssetsRoot), "**")
}

// enumerateFiles lists files matching include, honoring the scan-wide
// limit plus the given excludes. gitignore selects whether .gitignore
// rules apply.
func enumerateFiles(ctx context.Context, cfg resource.ScanConfig, include string, exclude []string, gitignore bool, m *Metrics) ([]string, error) {
	res, err := enumerate.Files(ctx, FS, cfg.ProjectRoot, enumerate.Options{
		Include:   []string{include},
		Exclude:   exclude,
		Limit:     cfg.MaxFiles,
		Gitignore: gitignore,
	})
	if err != nil {
		return nil, fmt.Errorf("enumerating %s: %w", include, err)
	}
	if res.Truncated {
		m.Truncated = true
	}
	return res.Paths, nil
}

// loadSources reads all source files of the project into the corpus and
// returns the source files that may be reported as candidates.
//
// Gitignored files stay in the corpus and are only removed from the
// candidates.
// Unreadable files are left out of the corpus and counted in m.
func loadSources(ctx context.Context, cfg resource.ScanConfig, opts resource.DetectorOpts, m *Metrics) ([]string, xref.Corpus, error) {
	glob := sourceGlob(cfg.Layout)
	all, err := enumerateFiles(ctx, cfg, glob, opts.ExcludePatterns, false, m)
	if err != nil {
		return nil, nil, err
	}
	candidates := all
	if cfg.Gitignore {
		candidates, err = enumerateFiles(ctx, cfg, glob, opts.ExcludePatterns, true, m)
		if err != nil {
			return nil, nil, err
		}
	}

	corpus, failures, err := xref.LoadCorpus(ctx, FS, cfg.ProjectRoot, all)
	if err != nil {
		return nil, nil, err
	}
	m.SourceFiles = len(corpus)
	m.ReadFailures = len(failures)
	return candidates, corpus, nil
}

// progress forwards a note to the scan's progress sink, if any.
func progress(cfg resource.ScanConfig, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	slog.Debug(msg)
	if cfg.ProgressFunc != nil {
		cfg.ProgressFunc(msg)
	}
}
