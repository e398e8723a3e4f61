// Copyright 2026 The Deadweight Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/davetashner/deadweight/internal/config"
	"github.com/davetashner/deadweight/internal/detector"
)

// detectorMeta holds presentation metadata for each detector.
type detectorMeta struct {
	Description string
	Reports     string
	LayoutKeys  []string // config keys from the layout that the detector reads
}

// knownDetectors maps detector names to their metadata.
var knownDetectors = map[string]detectorMeta{
	"assets": {
		Description: "Finds asset files whose file name appears in no source file",
		Reports:     "asset paths relative to the project root",
		LayoutKeys:  []string{"assets_root", "assets_exclude", "source_root", "source_extension"},
	},
	"dependencies": {
		Description: "Finds declared dependencies whose name appears in no source file",
		Reports:     "package names from the manifest",
		LayoutKeys:  []string{"manifest", "reserved_dependencies", "include_dev_dependencies", "source_root", "source_extension"},
	},
	"files": {
		Description: "Finds source files whose file name appears in no other source file",
		Reports:     "source paths relative to the project root",
		LayoutKeys:  []string{"source_root", "source_extension", "entry_point"},
	},
}

// detectorConfigFields apply to every detector.
var detectorConfigFields = []string{"enabled", "error_mode", "exclude_patterns"}

// detectorsCmd is the parent command for detector introspection.
var detectorsCmd = &cobra.Command{
	Use:   "detectors",
	Short: "List and inspect available detectors",
	Long: `Commands for listing and inspecting the detectors registered in deadweight.

Each detector reports one category of dead weight: unused assets, unused
dependencies, or source files nothing refers to.`,
}

// detectorsListCmd shows all registered detectors.
var detectorsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all registered detectors",
	Long: `List all registered detectors with their category, description and
enabled status.

The enabled/disabled status reflects the current .deadweight.yaml config
in the working directory. Detectors are enabled by default unless
explicitly disabled in config.`,
	Args: cobra.NoArgs,
	RunE: runDetectorsList,
}

// detectorsInfoCmd shows detailed info about a specific detector.
var detectorsInfoCmd = &cobra.Command{
	Use:   "info <name>",
	Short: "Show detailed info about a detector",
	Long: `Show detailed information about a specific detector, including what it
reports, the layout settings it reads, and its configuration options with
their current values from .deadweight.yaml.`,
	Args: cobra.ExactArgs(1),
	RunE: runDetectorsInfo,
}

func init() {
	detectorsCmd.AddCommand(detectorsListCmd)
	detectorsCmd.AddCommand(detectorsInfoCmd)
}

func runDetectorsList(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()

	names := detector.List()
	sort.Strings(names)

	cfg, _ := config.LoadLayered(".") // best-effort; zero config if missing
	if cfg == nil {
		cfg = &config.Config{}
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	_, _ = fmt.Fprintln(tw, bold.Sprint("NAME")+"\t"+bold.Sprint("CATEGORY")+"\t"+bold.Sprint("STATUS")+"\t"+bold.Sprint("DESCRIPTION"))

	for _, name := range names {
		status := green.Sprint("enabled")
		if isDisabled(cfg, name) {
			status = red.Sprint("disabled")
		}

		desc := name
		if meta, ok := knownDetectors[name]; ok {
			desc = meta.Description
		}

		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", name, detector.Get(name).Category(), status, desc)
	}

	return tw.Flush()
}

func runDetectorsInfo(cmd *cobra.Command, args []string) error {
	name := args[0]
	w := cmd.OutOrStdout()

	d := detector.Get(name)
	if d == nil {
		registered := detector.List()
		sort.Strings(registered)
		return fmt.Errorf("unknown detector %q; registered detectors: %s",
			name, strings.Join(registered, ", "))
	}

	meta, hasMeta := knownDetectors[name]
	bold := color.New(color.Bold)

	_, _ = fmt.Fprintf(w, "%s %s\n", bold.Sprint("Detector:"), name)
	_, _ = fmt.Fprintf(w, "%s %s\n", bold.Sprint("Category:"), d.Category())
	if hasMeta {
		_, _ = fmt.Fprintf(w, "%s %s\n", bold.Sprint("Description:"), meta.Description)
		_, _ = fmt.Fprintf(w, "%s %s\n", bold.Sprint("Reports:"), meta.Reports)
	}

	cfg, _ := config.LoadLayered(".")
	if cfg == nil {
		cfg = &config.Config{}
	}
	status := "enabled"
	if isDisabled(cfg, name) {
		status = "disabled"
	}
	_, _ = fmt.Fprintf(w, "%s %s\n", bold.Sprint("Status:"), status)

	if hasMeta && len(meta.LayoutKeys) > 0 {
		_, _ = fmt.Fprintf(w, "\n%s\n", bold.Sprint("Layout settings:"))
		printConfigFields(w, *withLayoutDefaults(cfg), meta.LayoutKeys)
	}

	_, _ = fmt.Fprintf(w, "\n%s\n", bold.Sprint("Configuration options:"))
	printConfigFields(w, cfg.Detectors[name], detectorConfigFields)

	return nil
}

func isDisabled(cfg *config.Config, name string) bool {
	dc, ok := cfg.Detectors[name]
	return ok && dc.Enabled != nil && !*dc.Enabled
}

// printConfigFields prints the named yaml fields of a config struct with
// their current values.
func printConfigFields(w io.Writer, v any, fields []string) {
	rv := reflect.ValueOf(v)
	rt := rv.Type()

	// Build yaml tag → field index map.
	tagIdx := make(map[string]int)
	for i := range rt.NumField() {
		tag := rt.Field(i).Tag.Get("yaml")
		if tag == "" || tag == "-" {
			continue
		}
		tagIdx[strings.Split(tag, ",")[0]] = i
	}

	for _, fieldName := range fields {
		idx, ok := tagIdx[fieldName]
		if !ok {
			continue
		}
		_, _ = fmt.Fprintf(w, "  %-28s %s\n", fieldName+":", formatFieldValue(rv.Field(idx)))
	}
}

// formatFieldValue returns a display string for a reflected config field value.
func formatFieldValue(fv reflect.Value) string {
	if fv.Kind() == reflect.Ptr {
		if fv.IsNil() {
			return "(default)"
		}
		return fmt.Sprintf("%v", fv.Elem().Interface())
	}
	if fv.Kind() == reflect.Slice {
		if fv.IsNil() || fv.Len() == 0 {
			return "(none)"
		}
		items := make([]string, fv.Len())
		for i := range fv.Len() {
			items[i] = fmt.Sprintf("%v", fv.Index(i).Interface())
		}
		return strings.Join(items, ", ")
	}
	if fv.IsZero() {
		return "(default)"
	}
	return fmt.Sprintf("%v", fv.Interface())
}
