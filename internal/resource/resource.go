// Package resource defines the core domain types for deadweight.
package resource

import (
	"path"
	"path/filepath"
	"strings"
	"time"
)

// Category names one of the three kinds of dead weight deadweight reports.
type Category string

const (
	// CategoryAssets covers files under the assets root.
	CategoryAssets Category = "assets"
	// CategoryDependencies covers packages declared in the project manifest.
	CategoryDependencies Category = "dependencies"
	// CategoryFiles covers source files under the source root.
	CategoryFiles Category = "files"
)

// Categories lists every category in presentation order.
var Categories = []Category{CategoryAssets, CategoryDependencies, CategoryFiles}

// Candidate is something that might be unused.
type Candidate struct {
	// Key is the string searched for in source content: the basename for
	// assets and source files, the declared package name for dependencies.
	Key string `json:"key"`

	// Path is the originating file, relative to the project root with
	// forward slashes. Empty for dependencies.
	Path string `json:"path,omitempty"`
}

// Label returns the string shown to a human: the path when the candidate
// has one, the key otherwise.
func (c Candidate) Label() string {
	if c.Path != "" {
		return c.Path
	}
	return c.Key
}

// ErrorMode controls how a detector failure affects the overall scan.
type ErrorMode string

const (
	// ErrorModeWarn reports the category as empty and logs a warning.
	ErrorModeWarn ErrorMode = "warn"
	// ErrorModeSkip reports the category as empty and logs at debug level.
	ErrorModeSkip ErrorMode = "skip"
	// ErrorModeFail fails the whole scan.
	ErrorModeFail ErrorMode = "fail"
)

// Layout describes where a project keeps its assets, sources and manifest.
// All directory fields are relative to the project root.
type Layout struct {
	// AssetsRoot is the directory holding asset files (default "assets").
	AssetsRoot string

	// AssetsExclude lists globs, relative to the project root, removed from
	// asset enumeration (default "assets/fonts/**").
	AssetsExclude []string

	// SourceRoot is the directory holding source files (default "lib").
	SourceRoot string

	// SourceExtension is the source file extension including the dot
	// (default ".dart").
	SourceExtension string

	// Manifest is the manifest file name. It is looked up in the parent of
	// SourceRoot (default "pubspec.yaml").
	Manifest string

	// EntryPoint is the source file name never reported as dead
	// (default "main" + SourceExtension).
	EntryPoint string

	// ReservedDependencies are never reported as unused
	// (default "flutter", "flutter_test").
	ReservedDependencies []string

	// IncludeDevDependencies adds dev_dependencies to the candidates.
	IncludeDevDependencies bool
}

// DefaultLayout returns the layout of a standard Flutter project.
func DefaultLayout() Layout {
	return Layout{
		AssetsRoot:           "assets",
		AssetsExclude:        []string{"assets/fonts/**"},
		SourceRoot:           "lib",
		SourceExtension:      ".dart",
		Manifest:             "pubspec.yaml",
		EntryPoint:           "main.dart",
		ReservedDependencies: []string{"flutter", "flutter_test"},
	}
}

// WithDefaults fills every empty field from DefaultLayout. An empty
// EntryPoint becomes "main" plus the effective source extension.
func (l Layout) WithDefaults() Layout {
	def := DefaultLayout()
	if l.AssetsRoot == "" {
		l.AssetsRoot = def.AssetsRoot
	}
	if l.AssetsExclude == nil {
		l.AssetsExclude = []string{path.Join(path.Clean(filepath.ToSlash(l.AssetsRoot)), "fonts", "**")}
	}
	if l.SourceRoot == "" {
		l.SourceRoot = def.SourceRoot
	}
	if l.SourceExtension == "" {
		l.SourceExtension = def.SourceExtension
	}
	if l.Manifest == "" {
		l.Manifest = def.Manifest
	}
	if l.EntryPoint == "" {
		l.EntryPoint = "main" + l.SourceExtension
	}
	if l.ReservedDependencies == nil {
		l.ReservedDependencies = def.ReservedDependencies
	}
	return l
}

// DetectorOpts holds per-detector configuration options.
type DetectorOpts struct {
	// ErrorMode decides what a failure of this detector does to the scan.
	// Empty means ErrorModeWarn.
	ErrorMode ErrorMode

	// ExcludePatterns skips files matching these globs (relative to the
	// project root) in addition to the layout's own exclusions.
	ExcludePatterns []string
}

// ScanConfig holds the overall configuration for a scan operation.
type ScanConfig struct {
	// ProjectRoot is the absolute path of the project to scan.
	ProjectRoot string

	// Layout describes the project structure.
	Layout Layout

	// Detectors lists the detector names to run. Empty means all registered.
	Detectors []string

	// OutputFormat specifies the output format ("text", "json", "markdown").
	OutputFormat string

	// MaxFiles caps each enumeration (0 = DefaultMaxFiles).
	MaxFiles int

	// Gitignore makes enumeration honor .gitignore files.
	Gitignore bool

	// DetectorOpts provides per-detector options keyed by detector name.
	DetectorOpts map[string]DetectorOpts

	// ProgressFunc, when set, receives short human-readable progress notes.
	ProgressFunc func(msg string)
}

// DefaultMaxFiles is the enumeration ceiling applied when ScanConfig.MaxFiles
// is zero.
const DefaultMaxFiles = 10_000

// DetectorResult holds the output from a single detector run.
type DetectorResult struct {
	// Detector is the name of the detector that produced these candidates.
	Detector string

	// Category is the kind of dead weight the detector reports.
	Category Category

	// Unreferenced is the verdict list.
	Unreferenced []Candidate

	// Duration is how long the detector took.
	Duration time.Duration

	// Err is any error encountered during detection. When set, Unreferenced
	// is empty.
	Err error

	// Metrics holds optional structured metrics from the detector.
	Metrics any
}

// ScanResult holds the aggregate output of a scan operation.
type ScanResult struct {
	// ProjectRoot is the absolute path that was scanned.
	ProjectRoot string

	// SourceExtension is the source file extension the scan used, for
	// labelling the files category (".dart" reads "dart files").
	SourceExtension string

	// Results is the per-detector breakdown in category order.
	Results []DetectorResult

	// Duration is the total scan duration.
	Duration time.Duration
}

// Unreferenced returns the combined verdict list for a category. Categories
// whose detector failed or did not run yield an empty list.
func (r *ScanResult) Unreferenced(cat Category) []Candidate {
	var out []Candidate
	for _, dr := range r.Results {
		if dr.Category == cat && dr.Err == nil {
			out = append(out, dr.Unreferenced...)
		}
	}
	return out
}

// Failed returns the detector results that ended with an error.
func (r *ScanResult) Failed() []DetectorResult {
	var out []DetectorResult
	for _, dr := range r.Results {
		if dr.Err != nil {
			out = append(out, dr)
		}
	}
	return out
}

// FilesLabel names the files category for humans, e.g. "dart files".
func (r *ScanResult) FilesLabel() string {
	ext := strings.TrimPrefix(r.SourceExtension, ".")
	if ext == "" {
		return "source files"
	}
	return ext + " files"
}

// Empty reports whether no category has any unreferenced candidate.
func (r *ScanResult) Empty() bool {
	for _, dr := range r.Results {
		if dr.Err == nil && len(dr.Unreferenced) > 0 {
			return false
		}
	}
	return true
}
