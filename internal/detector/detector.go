// Copyright 2026 The Deadweight Authors
// SPDX-License-Identifier: MIT

// Package detector defines the Detector interface and a registry for
// managing available detectors.
package detector

import (
	"context"
	"fmt"
	"sync"

	"github.com/davetashner/deadweight/internal/resource"
)

// Detector finds one category of unreferenced resources in a project.
// Detectors only read the file system and share no mutable state, so the
// pipeline runs them concurrently.
type Detector interface {
	// Name returns the unique name of this detector (e.g., "assets").
	Name() string

	// Category returns the kind of resource the detector reports.
	Category() resource.Category

	// Detect scans the project described by cfg and returns the candidates
	// with no detected reference.
	Detect(ctx context.Context, cfg resource.ScanConfig, opts resource.DetectorOpts) ([]resource.Candidate, error)
}

// MetricsProvider is an optional interface that detectors can implement to
// expose structured metrics from their last run. The pipeline checks for
// this interface after Detect returns and stores the result in
// DetectorResult.
type MetricsProvider interface {
	Metrics() any
}

var (
	mu       sync.RWMutex
	registry = make(map[string]Detector)
)

// Register adds a detector to the global registry.
// It panics if a detector with the same name is already registered.
func Register(d Detector) {
	mu.Lock()
	defer mu.Unlock()
	name := d.Name()
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("detector already registered: %s", name))
	}
	registry[name] = d
}

// Get returns the detector with the given name, or nil if not found.
func Get(name string) Detector {
	mu.RLock()
	defer mu.RUnlock()
	return registry[name]
}

// List returns the names of all registered detectors in no particular order.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}

// resetForTesting clears the registry. Only for use in tests.
func resetForTesting() {
	mu.Lock()
	defer mu.Unlock()
	registry = make(map[string]Detector)
}
