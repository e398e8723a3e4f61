// Copyright 2026 The Deadweight Authors
// SPDX-License-Identifier: MIT

package detectors

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"path/filepath"
	"strings"

	"github.com/davetashner/deadweight/internal/detector"
	"github.com/davetashner/deadweight/internal/manifest"
	"github.com/davetashner/deadweight/internal/resource"
	"github.com/davetashner/deadweight/internal/xref"
)

func init() {
	detector.Register(&DependencyDetector{})
}

// DependencyDetector reports declared dependencies whose name appears
// nowhere in the source files. The name may occur anywhere in a file, not
// only in an import statement.
type DependencyDetector struct {
	metrics *Metrics
}

// Name returns the detector name used for registration and filtering.
func (d *DependencyDetector) Name() string { return "dependencies" }

// Category returns resource.CategoryDependencies.
func (d *DependencyDetector) Category() resource.Category {
	return resource.CategoryDependencies
}

// ManifestPath returns where the manifest of the given project is expected:
// the parent directory of the source root, unless the layout names an
// absolute path. A source root with no parent inside the project, such as
// ".", puts the manifest at the project root.
func ManifestPath(root string, l resource.Layout) string {
	l = l.WithDefaults()
	if filepath.IsAbs(l.Manifest) {
		return l.Manifest
	}
	dir := path.Dir(cleanDir(l.SourceRoot))
	if dir == ".." || strings.HasPrefix(dir, "../") {
		dir = "."
	}
	return filepath.Join(root, filepath.FromSlash(dir), l.Manifest)
}

// Detect parses the manifest and returns the non-reserved dependencies that
// no source file mentions, in declaration order. A missing manifest yields
// an empty result; a malformed one is an error wrapping
// manifest.ErrMalformed.
func (d *DependencyDetector) Detect(ctx context.Context, cfg resource.ScanConfig, opts resource.DetectorOpts) ([]resource.Candidate, error) {
	cfg.Layout = cfg.Layout.WithDefaults()
	m := &Metrics{}
	d.metrics = m

	manifestPath := ManifestPath(cfg.ProjectRoot, cfg.Layout)
	mf, err := manifest.Load(FS, manifestPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Debug("no manifest, skipping dependency detection", "path", manifestPath)
			return nil, nil
		}
		return nil, fmt.Errorf("manifest %s: %w", manifestPath, err)
	}
	m.Manifest = manifestPath

	reserved := make(map[string]bool, len(cfg.Layout.ReservedDependencies))
	for _, name := range cfg.Layout.ReservedDependencies {
		reserved[name] = true
	}
	var names []string
	for _, name := range mf.Names(cfg.Layout.IncludeDevDependencies) {
		if !reserved[name] {
			names = append(names, name)
		}
	}
	m.Candidates = len(names)
	if len(names) == 0 {
		return nil, nil
	}

	_, corpus, err := loadSources(ctx, cfg, opts, m)
	if err != nil {
		return nil, err
	}
	progress(cfg, "dependencies: %d candidates against %d source files", len(names), len(corpus))

	refs, err := xref.BuildReferenceSetContext(ctx, corpus, names, nil)
	if err != nil {
		return nil, err
	}

	var unreferenced []resource.Candidate
	for _, name := range names {
		if !refs.Has(name) {
			unreferenced = append(unreferenced, resource.Candidate{Key: name})
		}
	}
	m.Unreferenced = len(unreferenced)
	return unreferenced, nil
}

// Metrics returns structured metrics from the last run.
func (d *DependencyDetector) Metrics() any { return d.metrics }

// Compile-time interface checks.
var _ detector.Detector = (*DependencyDetector)(nil)
var _ detector.MetricsProvider = (*DependencyDetector)(nil)
