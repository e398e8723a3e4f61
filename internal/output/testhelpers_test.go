package output

import (
	"errors"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/davetashner/deadweight/internal/resource"
)

// restoreFormatters re-registers the built-in formatters after a test
// cleared the registry.
func restoreFormatters() {
	resetFmtForTesting()
	RegisterFormatter(NewTextFormatter())
	RegisterFormatter(NewJSONFormatter())
	RegisterFormatter(NewMarkdownFormatter())
}

// disableColor turns off ANSI escapes for the duration of the test.
func disableColor(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
}

// sampleResult is a scan of a small Flutter app with one finding per
// category.
func sampleResult() *resource.ScanResult {
	return &resource.ScanResult{
		ProjectRoot:     "/work/app",
		SourceExtension: ".dart",
		Duration:        1500 * time.Millisecond,
		Results: []resource.DetectorResult{
			{
				Detector:     "assets",
				Category:     resource.CategoryAssets,
				Unreferenced: []resource.Candidate{{Key: "unused.png", Path: "assets/unused.png"}},
				Duration:     time.Second,
			},
			{
				Detector:     "dependencies",
				Category:     resource.CategoryDependencies,
				Unreferenced: []resource.Candidate{{Key: "provider"}},
				Duration:     time.Second,
			},
			{
				Detector: "files",
				Category: resource.CategoryFiles,
				Unreferenced: []resource.Candidate{
					{Key: "orphan.dart", Path: "lib/orphan.dart"},
					{Key: "old.dart", Path: "lib/legacy/old.dart"},
				},
				Duration: time.Second,
			},
		},
	}
}

// emptyResult is a scan where every detector ran and found nothing.
func emptyResult() *resource.ScanResult {
	return &resource.ScanResult{
		ProjectRoot:     "/work/app",
		SourceExtension: ".dart",
		Results: []resource.DetectorResult{
			{Detector: "assets", Category: resource.CategoryAssets},
			{Detector: "dependencies", Category: resource.CategoryDependencies},
			{Detector: "files", Category: resource.CategoryFiles},
		},
	}
}

// failedDepsResult is a scan whose dependency detector failed.
func failedDepsResult() *resource.ScanResult {
	r := sampleResult()
	r.Results[1].Unreferenced = nil
	r.Results[1].Err = errors.New("manifest pubspec.yaml: malformed manifest")
	return r
}
