// Copyright 2026 The Deadweight Authors
// SPDX-License-Identifier: MIT

package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/davetashner/deadweight/internal/detector"
	"github.com/davetashner/deadweight/internal/resource"
)

// Pipeline orchestrates the execution of detectors and aggregates results.
type Pipeline struct {
	config    resource.ScanConfig
	detectors []detector.Detector
}

// New creates a Pipeline from the given ScanConfig. It resolves detectors
// from the global registry. If config.Detectors is empty, all registered
// detectors are used.
// Returns an error if a requested detector is not found in the registry.
func New(config resource.ScanConfig) (*Pipeline, error) {
	detectors, err := resolveDetectors(config.Detectors)
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		config:    config,
		detectors: detectors,
	}, nil
}

// NewWithDetectors creates a Pipeline with explicitly provided detectors,
// bypassing the global registry. This is primarily useful for testing.
func NewWithDetectors(config resource.ScanConfig, detectors []detector.Detector) *Pipeline {
	return &Pipeline{
		config:    config,
		detectors: detectors,
	}
}

// Run executes all configured detectors concurrently and waits for every one
// of them to finish. Results come back in category order (assets,
// dependencies, files) whatever order the detectors completed in.
//
// A failing detector does not stop the others. Its error is recorded in its
// DetectorResult and its category is reported empty, unless its error mode
// is "fail", in which case Run returns that error once all detectors have
// settled. If ctx is cancelled Run returns the context error and no result.
func (p *Pipeline) Run(ctx context.Context) (*resource.ScanResult, error) {
	start := time.Now()

	results := make([]resource.DetectorResult, len(p.detectors))

	var g errgroup.Group
	for i, d := range p.detectors {
		g.Go(func() error {
			results[i] = p.runDetector(ctx, d)
			return p.settle(&results[i])
		})
	}
	failErr := g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if failErr != nil {
		return nil, failErr
	}

	sortByCategory(results)

	return &resource.ScanResult{
		ProjectRoot:     p.config.ProjectRoot,
		SourceExtension: p.config.Layout.WithDefaults().SourceExtension,
		Results:         results,
		Duration:        time.Since(start),
	}, nil
}

// runDetector executes a single detector and captures its result and timing.
// A panic inside the detector is turned into an error.
func (p *Pipeline) runDetector(ctx context.Context, d detector.Detector) (result resource.DetectorResult) {
	opts := p.config.DetectorOpts[d.Name()]
	start := time.Now()

	result = resource.DetectorResult{
		Detector: d.Name(),
		Category: d.Category(),
	}
	defer func() {
		if r := recover(); r != nil {
			result.Unreferenced = nil
			result.Err = fmt.Errorf("detector panicked: %v", r)
			result.Duration = time.Since(start)
		}
	}()

	candidates, err := d.Detect(ctx, p.config, opts)
	result.Duration = time.Since(start)
	if err != nil {
		result.Err = err
		return result
	}

	if mp, ok := d.(detector.MetricsProvider); ok {
		result.Metrics = mp.Metrics()
	}

	// Validate each candidate, keeping only valid ones.
	for _, c := range candidates {
		if errs := ValidateCandidate(result.Category, c); len(errs) > 0 {
			slog.Warn("skipping invalid candidate", "detector", d.Name(), "key", c.Key, "errors", errs)
			continue
		}
		result.Unreferenced = append(result.Unreferenced, c)
	}
	return result
}

// settle applies the detector's error mode to a finished result. It returns
// a non-nil error only when the failure must abort the scan.
func (p *Pipeline) settle(r *resource.DetectorResult) error {
	if r.Err == nil {
		return nil
	}
	r.Unreferenced = nil

	mode := p.config.DetectorOpts[r.Detector].ErrorMode
	switch mode {
	case resource.ErrorModeFail:
		return fmt.Errorf("detector %q: %w", r.Detector, r.Err)
	case resource.ErrorModeSkip:
		slog.Debug("detector failed, skipping", "detector", r.Detector, "error", r.Err)
	default:
		slog.Warn("detector failed, reporting category as empty", "detector", r.Detector, "error", r.Err)
	}
	return nil
}

// categoryRank orders categories for presentation. Unknown categories sort
// last.
func categoryRank(c resource.Category) int {
	for i, known := range resource.Categories {
		if c == known {
			return i
		}
	}
	return len(resource.Categories)
}

func sortByCategory(results []resource.DetectorResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return categoryRank(results[i].Category) < categoryRank(results[j].Category)
	})
}

// resolveDetectors looks up detectors by name from the global registry.
// If names is empty, all registered detectors are returned in category
// order, ties broken by name.
func resolveDetectors(names []string) ([]detector.Detector, error) {
	if len(names) == 0 {
		allNames := detector.List()
		sort.Strings(allNames)
		detectors := make([]detector.Detector, len(allNames))
		for i, name := range allNames {
			detectors[i] = detector.Get(name)
		}
		sort.SliceStable(detectors, func(i, j int) bool {
			return categoryRank(detectors[i].Category()) < categoryRank(detectors[j].Category())
		})
		return detectors, nil
	}

	detectors := make([]detector.Detector, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		d := detector.Get(name)
		if d == nil {
			return nil, fmt.Errorf("unknown detector: %q", name)
		}
		detectors = append(detectors, d)
	}
	return detectors, nil
}
