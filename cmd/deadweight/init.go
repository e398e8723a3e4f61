package main

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/davetashner/deadweight/internal/config"
	"github.com/davetashner/deadweight/internal/detector"
	"github.com/davetashner/deadweight/internal/project"
	"github.com/davetashner/deadweight/internal/resource"
)

// Init-specific flag values.
var initForce bool

// initCmd writes a starter config into a project.
var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Create a starter .deadweight.yaml",
	Long: `Create a .deadweight.yaml in the project root holding the built-in
Flutter layout defaults and one block per detector, ready to be edited.

This command is non-destructive by default: it skips the file if it
already exists. Use --force to regenerate it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite existing .deadweight.yaml")
}

func runInit(cmd *cobra.Command, args []string) error {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}

	manifest := resource.DefaultLayout().Manifest
	root, err := project.Resolve(cmdFS, path, manifest, config.FileName, config.TOMLFileName)
	if err != nil {
		return exitError(ExitInvalidArgs, "deadweight: %v", err)
	}
	slog.Info("initializing deadweight", "path", root)

	w := cmd.OutOrStdout()
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	dim := color.New(color.Faint)

	target := filepath.Join(root, config.FileName)
	exists, err := fileExists(target)
	if err != nil {
		return exitError(ExitInvalidArgs, "deadweight: cannot stat %s (%v)", target, err)
	}

	_, _ = fmt.Fprintln(w)
	_, _ = bold.Fprintln(w, "deadweight init complete")
	_, _ = fmt.Fprintln(w)

	if exists && !initForce {
		_, _ = fmt.Fprintf(w, "%s%-20s %s\n", dim.Sprint("  - "), config.FileName, dim.Sprint("(already exists, use --force to overwrite)"))
		_, _ = fmt.Fprintln(w)
		return nil
	}

	var buf bytes.Buffer
	if err := config.Write(&buf, starterConfig()); err != nil {
		return exitError(ExitTotalFailure, "deadweight: rendering config (%v)", err)
	}
	if err := cmdFS.WriteFile(target, buf.Bytes(), 0o600); err != nil {
		return exitError(ExitTotalFailure, "deadweight: writing %s (%v)", target, err)
	}

	op, prefix := "created", green.Sprint("  + ")
	if exists {
		op, prefix = "overwritten", yellow.Sprint("  ~ ")
	}
	_, _ = fmt.Fprintf(w, "%s%-20s %s\n", prefix, config.FileName, dim.Sprintf("(%s)", op))

	if ok, _ := fileExists(filepath.Join(root, manifest)); !ok {
		_, _ = fmt.Fprintf(w, "\n%s no %s found in %s; set source_root and manifest before scanning\n",
			yellow.Sprint("warning:"), manifest, root)
	}

	_, _ = fmt.Fprintln(w)
	_, _ = bold.Fprintln(w, "Next steps:")
	_, _ = fmt.Fprintf(w, "  1. Review %s and adjust the layout\n", config.FileName)
	_, _ = fmt.Fprintln(w, "  2. Run: deadweight scan .")
	_, _ = fmt.Fprintln(w)
	return nil
}

// starterConfig is the config written by init: every layout default spelled
// out and each registered detector enabled in warn mode.
func starterConfig() *config.Config {
	cfg := withLayoutDefaults(&config.Config{})
	names := detector.List()
	sort.Strings(names)
	cfg.Detectors = make(map[string]config.DetectorConfig, len(names))
	for _, name := range names {
		cfg.Detectors[name] = config.DetectorConfig{
			Enabled:   boolPtr(true),
			ErrorMode: string(resource.ErrorModeWarn),
		}
	}
	return cfg
}

func fileExists(path string) (bool, error) {
	_, err := cmdFS.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}
