// Copyright 2026 The Deadweight Authors
// SPDX-License-Identifier: MIT

// Package enumerate lists the files of a project that match include globs,
// minus exclude globs and (optionally) .gitignore rules, up to a ceiling.
package enumerate

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"

	"github.com/davetashner/deadweight/internal/testable"
)

// DefaultLimit is the maximum number of files returned by a single
// enumeration when Options.Limit is zero.
const DefaultLimit = 10_000

// defaultExcludePatterns are always skipped: VCS metadata, tool caches,
// build output and OS folder clutter.
var defaultExcludePatterns = []string{
	".git/**",
	".dart_tool/**",
	"build/**",
	".DS_Store",
	"Thumbs.db",
}

// Options configures a single enumeration.
type Options struct {
	// Include lists globs (relative to root) a file must match.
	Include []string

	// Exclude lists globs (relative to root) that remove files and prune
	// directories. They are added to the built-in defaults.
	Exclude []string

	// Limit caps the number of returned files. Zero means DefaultLimit.
	Limit int

	// Gitignore makes the walk honor .gitignore files found under root.
	Gitignore bool
}

// Result is the outcome of an enumeration.
type Result struct {
	// Paths are root-relative, slash-separated file paths in walk order.
	Paths []string

	// Truncated is set when more files matched than the limit allowed.
	Truncated bool
}

var errLimit = errors.New("enumeration limit reached")

// walker carries the state of one enumeration.
type walker struct {
	fsys     testable.FileSystem
	root     string
	opts     Options
	excludes []string
	ignore   []gitignore.Pattern
	loaded   map[string]bool
	seen     map[string]bool
	result   Result
}

// Files enumerates the files under root matching opts. Missing directories
// yield an empty result. Only the directories that can hold a match are
// walked.
func Files(ctx context.Context, fsys testable.FileSystem, root string, opts Options) (Result, error) {
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}
	w := &walker{
		fsys:     fsys,
		root:     root,
		opts:     opts,
		excludes: append(append([]string{}, defaultExcludePatterns...), opts.Exclude...),
		loaded:   make(map[string]bool),
		seen:     make(map[string]bool),
	}

	for _, start := range startDirs(opts.Include) {
		err := w.walk(ctx, start)
		if errors.Is(err, errLimit) {
			w.result.Truncated = true
			slog.Warn("enumeration limit reached, results truncated", "root", root, "limit", opts.Limit)
			break
		}
		if err != nil {
			return Result{}, err
		}
	}

	return w.result, nil
}

// startDirs returns the distinct static directory prefixes of the include
// patterns. A prefix nested under another one is dropped.
func startDirs(include []string) []string {
	var dirs []string
	for _, p := range include {
		d := staticDir(p)
		dup := false
		for i, existing := range dirs {
			switch {
			case existing == "" || existing == d || strings.HasPrefix(d, existing+"/"):
				dup = true
			case d == "" || strings.HasPrefix(existing, d+"/"):
				dirs[i] = d
				dup = true
			}
			if dup {
				break
			}
		}
		if !dup {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

func (w *walker) walk(ctx context.Context, start string) error {
	if w.opts.Gitignore {
		// Rules from the directories above the start still apply.
		parts := splitRel(start)
		for i := 0; i < len(parts); i++ {
			w.loadGitignore(strings.Join(parts[:i], "/"))
		}
	}

	abs := filepath.Join(w.root, filepath.FromSlash(start))
	return w.fsys.WalkDir(abs, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(w.root, p)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			rel = ""
		}

		if d.IsDir() {
			if rel != "" && (MatchAny(w.excludes, rel) || w.ignored(rel, true)) {
				return filepath.SkipDir
			}
			if w.opts.Gitignore {
				w.loadGitignore(rel)
			}
			return nil
		}

		if !MatchAny(w.opts.Include, rel) || MatchAny(w.excludes, rel) || w.ignored(rel, false) {
			return nil
		}
		if d.Type()&os.ModeSymlink != 0 && !w.insideRoot(p) {
			return nil
		}
		if w.seen[rel] {
			return nil
		}
		if len(w.result.Paths) >= w.opts.Limit {
			return errLimit
		}
		w.seen[rel] = true
		w.result.Paths = append(w.result.Paths, rel)
		return nil
	})
}

// loadGitignore reads the .gitignore of the directory rel (once).
func (w *walker) loadGitignore(rel string) {
	if w.loaded[rel] {
		return
	}
	w.loaded[rel] = true

	data, err := w.fsys.ReadFile(filepath.Join(w.root, filepath.FromSlash(rel), ".gitignore"))
	if err != nil {
		return
	}
	domain := splitRel(rel)
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		w.ignore = append(w.ignore, gitignore.ParsePattern(line, domain))
	}
}

func (w *walker) ignored(rel string, isDir bool) bool {
	if !w.opts.Gitignore || len(w.ignore) == 0 {
		return false
	}
	return gitignore.NewMatcher(w.ignore).Match(splitRel(rel), isDir)
}

// insideRoot reports whether a symlinked file resolves inside the root.
func (w *walker) insideRoot(p string) bool {
	resolved, err := w.fsys.EvalSymlinks(p)
	if err != nil {
		return false
	}
	return resolved == w.root || strings.HasPrefix(resolved, w.root+string(filepath.Separator))
}

func splitRel(rel string) []string {
	if rel == "" {
		return nil
	}
	return strings.Split(rel, "/")
}
