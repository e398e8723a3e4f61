// Package output defines the Formatter interface for writing scan results
// in various formats.
package output

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/davetashner/deadweight/internal/resource"
)

// Formatter writes a scan result to the given writer in a specific format.
type Formatter interface {
	// Name returns the format name (e.g., "text", "json", "markdown").
	Name() string

	// Format writes the result to w.
	Format(result *resource.ScanResult, w io.Writer) error
}

var (
	fmtMu       sync.RWMutex
	fmtRegistry = make(map[string]Formatter)
)

// RegisterFormatter adds a formatter to the global registry.
func RegisterFormatter(f Formatter) {
	fmtMu.Lock()
	defer fmtMu.Unlock()
	fmtRegistry[f.Name()] = f
}

// GetFormatter returns the formatter with the given name, or an error if not found.
func GetFormatter(name string) (Formatter, error) {
	fmtMu.RLock()
	defer fmtMu.RUnlock()
	f, ok := fmtRegistry[name]
	if !ok {
		return nil, fmt.Errorf("unknown format: %q (available: %s)", name, formatNames())
	}
	return f, nil
}

// FormatNames returns the registered format names in sorted order.
func FormatNames() []string {
	fmtMu.RLock()
	defer fmtMu.RUnlock()
	names := make([]string, 0, len(fmtRegistry))
	for name := range fmtRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// resetFmtForTesting clears the formatter registry. Only for use in tests.
func resetFmtForTesting() {
	fmtMu.Lock()
	defer fmtMu.Unlock()
	fmtRegistry = make(map[string]Formatter)
}

// formatNames returns a comma-separated sorted list of registered format
// names. The caller must hold fmtMu.
func formatNames() string {
	names := make([]string, 0, len(fmtRegistry))
	for name := range fmtRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// section is one category of a scan result as presented to a reader.
type section struct {
	Category resource.Category
	Label    string
	Items    []string
	Failures []resource.DetectorResult
}

// sections returns the categories that at least one detector covered, in
// presentation order. Each item is a file path for assets and files and a
// package name for dependencies.
func sections(result *resource.ScanResult) []section {
	var out []section
	for _, cat := range resource.Categories {
		ran := false
		s := section{Category: cat, Label: categoryLabel(result, cat)}
		for _, dr := range result.Results {
			if dr.Category != cat {
				continue
			}
			ran = true
			if dr.Err != nil {
				s.Failures = append(s.Failures, dr)
			}
		}
		if !ran {
			continue
		}
		for _, c := range result.Unreferenced(cat) {
			s.Items = append(s.Items, c.Label())
		}
		out = append(out, s)
	}
	return out
}

// categoryLabel is the plural noun used in headings: "assets",
// "dependencies" or "<ext> files".
func categoryLabel(result *resource.ScanResult, cat resource.Category) string {
	if cat == resource.CategoryFiles {
		return result.FilesLabel()
	}
	return string(cat)
}
