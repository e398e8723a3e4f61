// Copyright 2026 The Deadweight Authors
// SPDX-License-Identifier: MIT

package detectors

import (
	"context"

	"github.com/davetashner/deadweight/internal/detector"
	"github.com/davetashner/deadweight/internal/resource"
	"github.com/davetashner/deadweight/internal/xref"
)

func init() {
	detector.Register(&DeadFileDetector{})
}

// DeadFileDetector reports source files whose base name appears in no other
// source file. The entry point is never reported.
type DeadFileDetector struct {
	metrics *Metrics
}

// Name returns the detector name used for registration and filtering.
func (d *DeadFileDetector) Name() string { return "files" }

// Category returns resource.CategoryFiles.
func (d *DeadFileDetector) Category() resource.Category { return resource.CategoryFiles }

// Detect returns the source files nobody else mentions, in enumeration
// order.
//
// Each file is judged on its own: the search for its name skips its own
// content, and two files sharing a base name in different folders each
// need a reference from some file other than themselves. A file that could
// not be read is still a candidate; it just references nothing.
func (d *DeadFileDetector) Detect(ctx context.Context, cfg resource.ScanConfig, opts resource.DetectorOpts) ([]resource.Candidate, error) {
	cfg.Layout = cfg.Layout.WithDefaults()
	m := &Metrics{}
	d.metrics = m

	paths, corpus, err := loadSources(ctx, cfg, opts, m)
	if err != nil {
		return nil, err
	}
	progress(cfg, "files: %d candidates", len(paths))

	entryPoint := xref.Key(cfg.Layout.EntryPoint)
	var unreferenced []resource.Candidate
	for _, p := range paths {
		key := xref.Key(p)
		if key == entryPoint {
			continue
		}
		m.Candidates++

		refs, err := xref.BuildReferenceSetContext(ctx, corpus, []string{key}, xref.ExcludePath(p))
		if err != nil {
			return nil, err
		}
		if !refs.Has(key) {
			unreferenced = append(unreferenced, resource.Candidate{Key: key, Path: p})
		}
	}
	m.Unreferenced = len(unreferenced)
	return unreferenced, nil
}

// Metrics returns structured metrics from the last run.
func (d *DeadFileDetector) Metrics() any { return d.metrics }

// Compile-time interface checks.
var _ detector.Detector = (*DeadFileDetector)(nil)
var _ detector.MetricsProvider = (*DeadFileDetector)(nil)
