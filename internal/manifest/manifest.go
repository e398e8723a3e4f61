// Copyright 2026 The Deadweight Authors
// SPDX-License-Identifier: MIT

// Package manifest turns a project manifest (pubspec.yaml, go.mod,
// Cargo.toml, package.json) into its list of declared dependencies.
package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/davetashner/deadweight/internal/xref"
)

// ErrMalformed is wrapped by every parse failure.
var ErrMalformed = errors.New("malformed manifest")

// ErrUnsupported is returned for manifest names no parser handles.
var ErrUnsupported = errors.New("unsupported manifest")

// Dependency is one declared package.
type Dependency struct {
	Name       string
	Constraint string
}

// Manifest is the parsed dependency declaration of a project. Both lists
// keep declaration order (or name order where the format has none) and
// hold each name once.
type Manifest struct {
	Dependencies    []Dependency
	DevDependencies []Dependency
}

// Names returns the dependency names, optionally followed by the dev
// dependency names not already present.
func (m *Manifest) Names(includeDev bool) []string {
	if m == nil {
		return nil
	}
	seen := make(map[string]bool)
	var names []string
	add := func(deps []Dependency) {
		for _, d := range deps {
			if !seen[d.Name] {
				seen[d.Name] = true
				names = append(names, d.Name)
			}
		}
	}
	add(m.Dependencies)
	if includeDev {
		add(m.DevDependencies)
	}
	return names
}

// parseFunc parses manifest content.
type parseFunc func(data []byte) (*Manifest, error)

// parsers maps manifest base names to their parser.
var parsers = map[string]parseFunc{
	"pubspec.yaml": parsePubspec,
	"pubspec.yml":  parsePubspec,
	"go.mod":       parseGoMod,
	"Cargo.toml":   parseCargo,
	"package.json": parsePackageJSON,
}

// Supported reports whether name (a path or base name) has a parser.
func Supported(name string) bool {
	_, ok := lookup(name)
	return ok
}

func lookup(name string) (parseFunc, bool) {
	base := xref.Key(name)
	if p, ok := parsers[base]; ok {
		return p, true
	}
	switch strings.ToLower(filepath.Ext(base)) {
	case ".yaml", ".yml":
		return parsePubspec, true
	}
	return nil, false
}

// Parse parses manifest content, choosing the format from the file name.
// Any YAML file is read with the pubspec schema.
func Parse(name string, data []byte) (*Manifest, error) {
	p, ok := lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, xref.Key(name))
	}
	m, err := p(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", xref.Key(name), err)
	}
	return m, nil
}

// Load reads and parses the manifest at path. A missing file is reported
// with an error satisfying errors.Is(err, fs.ErrNotExist).
func Load(r xref.Reader, path string) (*Manifest, error) {
	data, err := r.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(path, data)
}

// malformed wraps err (or a message) in ErrMalformed.
func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformed, fmt.Sprintf(format, args...))
}

// dedup drops repeated names, keeping the first declaration.
func dedup(deps []Dependency) []Dependency {
	seen := make(map[string]bool, len(deps))
	out := deps[:0]
	for _, d := range deps {
		if seen[d.Name] {
			continue
		}
		seen[d.Name] = true
		out = append(out, d)
	}
	return out
}
