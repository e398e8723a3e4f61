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
	detector.Register(&AssetDetector{})
}

// AssetDetector reports asset files whose base name appears in no source
// file.
//
// Assets are keyed by base name only. Two assets with the same name in
// different folders share a key, so a reference to either keeps both.
type AssetDetector struct {
	metrics *Metrics
}

// Name returns the detector name used for registration and filtering.
func (d *AssetDetector) Name() string { return "assets" }

// Category returns resource.CategoryAssets.
func (d *AssetDetector) Category() resource.Category { return resource.CategoryAssets }

// Detect enumerates the assets root (minus the layout's asset exclusions),
// reads every source file and returns the assets never mentioned, once per
// file, in enumeration order.
func (d *AssetDetector) Detect(ctx context.Context, cfg resource.ScanConfig, opts resource.DetectorOpts) ([]resource.Candidate, error) {
	cfg.Layout = cfg.Layout.WithDefaults()
	m := &Metrics{}
	d.metrics = m

	exclude := append(append([]string{}, cfg.Layout.AssetsExclude...), opts.ExcludePatterns...)
	assets, err := enumerateFiles(ctx, cfg, assetGlob(cfg.Layout), exclude, cfg.Gitignore, m)
	if err != nil {
		return nil, err
	}
	m.Candidates = len(assets)
	if len(assets) == 0 {
		return nil, nil
	}

	_, corpus, err := loadSources(ctx, cfg, opts, m)
	if err != nil {
		return nil, err
	}
	progress(cfg, "assets: %d candidates against %d source files", len(assets), len(corpus))

	keys := make([]string, len(assets))
	for i, p := range assets {
		keys[i] = xref.Key(p)
	}

	refs, err := xref.BuildReferenceSetContext(ctx, corpus, keys, nil)
	if err != nil {
		return nil, err
	}

	var unreferenced []resource.Candidate
	for i, p := range assets {
		if !refs.Has(keys[i]) {
			unreferenced = append(unreferenced, resource.Candidate{Key: keys[i], Path: p})
		}
	}
	m.Unreferenced = len(unreferenced)
	return unreferenced, nil
}

// Metrics returns structured metrics from the last run.
func (d *AssetDetector) Metrics() any { return d.metrics }

// Compile-time interface checks.
var _ detector.Detector = (*AssetDetector)(nil)
var _ detector.MetricsProvider = (*AssetDetector)(nil)
