// Copyright 2026 The Deadweight Authors
// SPDX-License-Identifier: MIT

package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/davetashner/deadweight/internal/resource"
)

func init() {
	RegisterFormatter(NewTextFormatter())
}

// separator frames every category header.
const separator = "---------------------------------"

// allClearMessage closes the report when no category has anything to show.
const allClearMessage = "No unreferenced assets, files or dependencies !"

// TextFormatter writes a plain-text report meant for a terminal: a framed
// count header per category followed by a numbered list.
type TextFormatter struct{}

// Compile-time interface check.
var _ Formatter = (*TextFormatter)(nil)

// NewTextFormatter returns a new TextFormatter.
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format writes the report to w. Example:
//
//	---------------------------------
//	1 unreferenced assets
//	---------------------------------
//	1. assets/unused.png
//
//	---------------------------------
//	0 unreferenced dependencies
//	---------------------------------
func (f *TextFormatter) Format(result *resource.ScanResult, w io.Writer) error {
	var b strings.Builder

	for i, s := range sections(result) {
		if i > 0 {
			b.WriteString("\n")
		}
		header := fmt.Sprintf("%d unreferenced %s", len(s.Items), s.Label)
		fmt.Fprintf(&b, "%s\n%s\n%s\n", separator, colorCount(len(s.Items), header), separator)
		for j, item := range s.Items {
			fmt.Fprintf(&b, "%d. %s\n", j+1, item)
		}
		for _, dr := range s.Failures {
			b.WriteString(colorRed.Sprintf("(detector failed: %s: %v)", dr.Detector, dr.Err))
			b.WriteString("\n")
		}
	}

	if result.Empty() {
		b.WriteString("\n")
		b.WriteString(colorBold.Sprint(allClearMessage))
		b.WriteString("\n")
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write text report: %w", err)
	}
	return nil
}
