package output

import (
	"fmt"
	"io"

	"github.com/davetashner/deadweight/internal/resource"
)

func init() {
	RegisterFormatter(NewMarkdownFormatter())
}

// MarkdownFormatter writes the scan result as a Markdown summary, one
// section per category.
type MarkdownFormatter struct{}

// Compile-time interface check.
var _ Formatter = (*MarkdownFormatter)(nil)

// NewMarkdownFormatter returns a new MarkdownFormatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Name returns the format name.
func (m *MarkdownFormatter) Name() string {
	return "markdown"
}

// Format writes the result as a Markdown document to w.
func (m *MarkdownFormatter) Format(result *resource.ScanResult, w io.Writer) error {
	if _, err := fmt.Fprintf(w, "# Deadweight Scan Results\n\n**Project:** `%s`\n\n", result.ProjectRoot); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, s := range sections(result) {
		if err := writeSection(w, s); err != nil {
			return err
		}
	}
	return nil
}

// writeSection writes a single category section.
func writeSection(w io.Writer, s section) error {
	if _, err := fmt.Fprintf(w, "## Unreferenced %s (%d)\n\n", s.Label, len(s.Items)); err != nil {
		return fmt.Errorf("write section heading: %w", err)
	}

	for _, dr := range s.Failures {
		if _, err := fmt.Fprintf(w, "> **Detector `%s` failed:** %v\n\n", dr.Detector, dr.Err); err != nil {
			return fmt.Errorf("write failure note: %w", err)
		}
	}

	if len(s.Items) == 0 {
		if _, err := fmt.Fprint(w, "_None._\n\n"); err != nil {
			return fmt.Errorf("write section body: %w", err)
		}
		return nil
	}

	for _, item := range s.Items {
		if _, err := fmt.Fprintf(w, "- `%s`\n", item); err != nil {
			return fmt.Errorf("write item: %w", err)
		}
	}
	if _, err := fmt.Fprint(w, "\n"); err != nil {
		return fmt.Errorf("write section end: %w", err)
	}
	return nil
}
