// Copyright 2026 The Deadweight Authors
// SPDX-License-Identifier: MIT

// Package project locates the root of the project to scan.
package project

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/davetashner/deadweight/internal/testable"
)

// ErrNoProject is returned when the given path is not an existing
// directory, so there is no project to scan.
var ErrNoProject = errors.New("no project open")

// Resolve turns path into the absolute, symlink-free root of the project
// that contains it. The root is the nearest directory at or above path
// holding any of markers, typically the manifest and the config file names;
// when no ancestor has one, path itself is the root. Empty and absolute
// markers are ignored.
func Resolve(fsys testable.FileSystem, path string, markers ...string) (string, error) {
	abs, err := fsys.Abs(path)
	if err != nil {
		return "", fmt.Errorf("%w: cannot resolve %q: %v", ErrNoProject, path, err)
	}
	abs, err = fsys.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("%w: %q does not exist", ErrNoProject, path)
	}

	info, err := fsys.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("%w: %q does not exist", ErrNoProject, path)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %q is not a directory", ErrNoProject, path)
	}

	var names []string
	for _, m := range markers {
		if m != "" && !filepath.IsAbs(m) {
			names = append(names, m)
		}
	}
	if len(names) == 0 {
		return abs, nil
	}

	for dir := abs; ; {
		for _, name := range names {
			if _, err := fsys.Stat(filepath.Join(dir, name)); err == nil {
				return dir, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return abs, nil
		}
		dir = parent
	}
}
