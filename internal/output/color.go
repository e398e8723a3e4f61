// Copyright 2026 The Deadweight Authors
// SPDX-License-Identifier: MIT

package output

import "github.com/fatih/color"

// Shared color printers. fatih/color disables them on its own when stdout
// is not a terminal or color.NoColor is set (--no-color, NO_COLOR).
var (
	colorRed    = color.New(color.FgRed)
	colorYellow = color.New(color.FgYellow)
	colorGreen  = color.New(color.FgGreen)
	colorBold   = color.New(color.Bold)
)

// colorCount renders a count header green when nothing was found and
// yellow otherwise.
func colorCount(n int, text string) string {
	if n == 0 {
		return colorGreen.Sprint(text)
	}
	return colorYellow.Sprint(text)
}
