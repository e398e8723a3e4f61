package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/davetashner/deadweight/internal/resource"
)

func init() {
	RegisterFormatter(NewJSONFormatter())
}

// JSONEnvelope is the document written by the JSON output format.
type JSONEnvelope struct {
	ScanID                   string            `json:"scan_id"`
	Project                  string            `json:"project"`
	GeneratedAt              string            `json:"generated_at"`
	Duration                 string            `json:"duration"`
	UnreferencedAssets       []string          `json:"unreferenced_assets"`
	UnreferencedDependencies []string          `json:"unreferenced_dependencies"`
	UnreferencedFiles        []string          `json:"unreferenced_dart_files"`
	Detectors                []JSONDetectorRun `json:"detectors"`
}

// JSONDetectorRun describes one detector's run.
type JSONDetectorRun struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Count    int    `json:"count"`
	Duration string `json:"duration"`
	Error    string `json:"error,omitempty"`
	Metrics  any    `json:"metrics,omitempty"`
}

// JSONFormatter writes the scan result as a single JSON document.
type JSONFormatter struct {
	// Compact controls whether output is compact (single line) or pretty-printed.
	// When false (default), output is indented with two spaces on terminals.
	Compact bool

	// nowFunc and idFunc are used for testing to override the clock and the
	// scan ID generator.
	nowFunc func() time.Time
	idFunc  func() string
}

// Compile-time interface check.
var _ Formatter = (*JSONFormatter)(nil)

// NewJSONFormatter returns a new JSONFormatter with default settings.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Name returns the format name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// Format writes the result as a JSON envelope to w. Every list is present,
// possibly empty; failed detectors carry their error message.
func (f *JSONFormatter) Format(result *resource.ScanResult, w io.Writer) error {
	now := time.Now()
	if f.nowFunc != nil {
		now = f.nowFunc()
	}
	id := uuid.NewString
	if f.idFunc != nil {
		id = f.idFunc
	}

	envelope := JSONEnvelope{
		ScanID:                   id(),
		Project:                  result.ProjectRoot,
		GeneratedAt:              now.UTC().Format("2006-01-02T15:04:05Z"),
		Duration:                 result.Duration.String(),
		UnreferencedAssets:       labels(result.Unreferenced(resource.CategoryAssets)),
		UnreferencedDependencies: labels(result.Unreferenced(resource.CategoryDependencies)),
		UnreferencedFiles:        labels(result.Unreferenced(resource.CategoryFiles)),
		Detectors:                make([]JSONDetectorRun, 0, len(result.Results)),
	}
	for _, dr := range result.Results {
		run := JSONDetectorRun{
			Name:     dr.Detector,
			Category: string(dr.Category),
			Count:    len(dr.Unreferenced),
			Duration: dr.Duration.String(),
			Metrics:  dr.Metrics,
		}
		if dr.Err != nil {
			run.Error = dr.Err.Error()
		}
		envelope.Detectors = append(envelope.Detectors, run)
	}

	var data []byte
	var err error
	if f.shouldCompact(w) {
		data, err = json.Marshal(envelope)
	} else {
		data, err = json.MarshalIndent(envelope, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	if _, err := w.Write([]byte("\n")); err != nil {
		return fmt.Errorf("write json trailing newline: %w", err)
	}

	return nil
}

// shouldCompact determines whether to use compact mode.
// If Compact is explicitly set, use that value.
// Otherwise, auto-detect: pretty-print for TTYs, compact for pipes.
func (f *JSONFormatter) shouldCompact(w io.Writer) bool {
	if f.Compact {
		return true
	}

	if file, ok := w.(*os.File); ok {
		fi, err := file.Stat()
		if err != nil {
			return false // default to pretty on error
		}
		return fi.Mode()&os.ModeCharDevice == 0
	}

	// For non-file writers (e.g., bytes.Buffer in tests), default to pretty.
	return false
}

// labels maps candidates to their display strings, never returning nil so
// the JSON lists are always arrays.
func labels(cands []resource.Candidate) []string {
	out := make([]string, 0, len(cands))
	for _, c := range cands {
		out = append(out, c.Label())
	}
	return out
}
