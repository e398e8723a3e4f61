// Copyright 2026 The Deadweight Authors
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/davetashner/deadweight/internal/config"
	"github.com/davetashner/deadweight/internal/detector"
	_ "github.com/davetashner/deadweight/internal/detectors"
	"github.com/davetashner/deadweight/internal/output"
	"github.com/davetashner/deadweight/internal/pipeline"
	"github.com/davetashner/deadweight/internal/project"
	"github.com/davetashner/deadweight/internal/resource"
)

// Scan-specific flag values.
var (
	scanDetectors        string
	scanExcludeDetectors string
	scanFormat           string
	scanOutput           string
	scanStrict           bool
	scanDryRun           bool
	scanProgress         bool
	scanAssetsRoot       string
	scanAssetsExclude    []string
	scanSourceRoot       string
	scanSourceExtension  string
	scanManifest         string
	scanEntryPoint       string
	scanReserved         []string
	scanIncludeDev       bool
	scanNoGitignore      bool
	scanMaxFiles         int
	scanExclude          []string
)

// scanCmd is the subcommand for scanning a project.
var scanCmd = &cobra.Command{
	Use:   "scan [path]",
	Short: "Scan a project for unused assets, dependencies and files",
	Long: `Scan a project and list the asset files, declared dependencies and
source files that no source file mentions by name.

The project root is the nearest directory at or above [path] (default ".")
that holds the manifest (pubspec.yaml unless --manifest says otherwise).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVarP(&scanDetectors, "detectors", "d", "", "comma-separated list of detectors to run")
	scanCmd.Flags().StringVarP(&scanExcludeDetectors, "exclude-detectors", "x", "", "comma-separated list of detectors to skip")
	scanCmd.Flags().StringVarP(&scanFormat, "format", "f", "text", "output format (text, json, markdown)")
	scanCmd.Flags().StringVarP(&scanOutput, "output", "o", "", "output file path (default: stdout)")
	scanCmd.Flags().BoolVar(&scanStrict, "strict", false, "exit non-zero when any detector fails")
	scanCmd.Flags().BoolVar(&scanDryRun, "dry-run", false, "print per-detector counts instead of the full report")
	scanCmd.Flags().BoolVar(&scanProgress, "progress", false, "print detector progress to stderr")
	scanCmd.Flags().StringVar(&scanAssetsRoot, "assets-root", "", "assets directory relative to the project root (default \"assets\")")
	scanCmd.Flags().StringSliceVar(&scanAssetsExclude, "assets-exclude", nil, "globs removed from asset enumeration (default \"assets/fonts/**\")")
	scanCmd.Flags().StringVar(&scanSourceRoot, "source-root", "", "source directory relative to the project root (default \"lib\")")
	scanCmd.Flags().StringVar(&scanSourceExtension, "source-extension", "", "source file extension including the dot (default \".dart\")")
	scanCmd.Flags().StringVar(&scanManifest, "manifest", "", "manifest file name (default \"pubspec.yaml\")")
	scanCmd.Flags().StringVar(&scanEntryPoint, "entry-point", "", "source file never reported as dead (default \"main.dart\")")
	scanCmd.Flags().StringSliceVar(&scanReserved, "reserved", nil, "dependencies never reported (default \"flutter,flutter_test\")")
	scanCmd.Flags().BoolVar(&scanIncludeDev, "include-dev-dependencies", false, "also check dev_dependencies")
	scanCmd.Flags().BoolVar(&scanNoGitignore, "no-gitignore", false, "do not honor .gitignore files")
	scanCmd.Flags().IntVar(&scanMaxFiles, "max-files", 0, "cap on files enumerated per pattern (default 10000)")
	scanCmd.Flags().StringSliceVarP(&scanExclude, "exclude", "e", nil, "glob patterns to exclude from every detector (e.g. \"lib/generated/**\")")
}

func runScan(cmd *cobra.Command, args []string) error {
	// 1. Resolve the project root.
	scanPath := "."
	if len(args) > 0 {
		scanPath = args[0]
	}
	root, err := resolveScanPath(scanPath)
	if err != nil {
		return err
	}

	// 2. Load config and merge flags over it.
	scanCfg, err := loadScanConfig(cmd, root)
	if err != nil {
		return err
	}

	// 3. Run the detectors.
	p, err := pipeline.New(scanCfg)
	if err != nil {
		available := detector.List()
		sort.Strings(available)
		return exitError(ExitInvalidArgs, "deadweight: %v (available: %s)", err, strings.Join(available, ", "))
	}

	result, err := p.Run(cmd.Context())
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return exitError(ExitTotalFailure, "deadweight: scan interrupted (%v)", err)
		}
		return exitError(ExitTotalFailure, "deadweight: scan failed (%v)", err)
	}

	for _, dr := range result.Results {
		if dr.Err != nil {
			slog.Error("detector failed", "name", dr.Detector, "error", dr.Err, "duration", dr.Duration)
		} else {
			slog.Info("detector complete", "name", dr.Detector, "unreferenced", len(dr.Unreferenced), "duration", dr.Duration)
		}
	}

	// 4. Exit code from detector outcomes.
	exitCode := computeExitCode(result, scanStrict)

	if scanDryRun {
		return printDryRun(cmd, result, exitCode)
	}

	// 5. Write the report.
	if err := writeScanOutput(cmd, result, scanCfg); err != nil {
		return err
	}

	if exitCode != ExitOK {
		return exitError(exitCode, "")
	}
	return nil
}

// resolveScanPath finds the project root for path: the nearest directory
// holding the manifest named by --manifest (or the default) or a deadweight
// config file. A manifest set only in the config file is read after the
// root is known.
func resolveScanPath(path string) (string, error) {
	manifest := scanManifest
	if manifest == "" {
		manifest = resource.DefaultLayout().Manifest
	}
	root, err := project.Resolve(cmdFS, path, manifest, config.FileName, config.TOMLFileName)
	if err != nil {
		if errors.Is(err, project.ErrNoProject) {
			return "", exitError(ExitInvalidArgs, "deadweight: %v", err)
		}
		return "", exitError(ExitInvalidArgs, "deadweight: cannot resolve path %q (%v)", path, err)
	}
	return root, nil
}

// loadScanConfig builds the effective scan configuration for the project at
// root: global config, then project config, then command-line flags.
func loadScanConfig(cmd *cobra.Command, root string) (resource.ScanConfig, error) {
	if err := validateScanFlags(); err != nil {
		return resource.ScanConfig{}, err
	}

	var detectors []string
	if scanDetectors != "" {
		detectors = splitList(scanDetectors)
	}
	detectors = applyDetectorExclusions(detectors, scanExcludeDetectors)
	if scanExcludeDetectors != "" && len(detectors) == 0 {
		return resource.ScanConfig{}, exitError(ExitInvalidArgs, "deadweight: every detector is excluded")
	}

	fileCfg, err := config.LoadLayered(root)
	if err != nil {
		return resource.ScanConfig{}, exitError(ExitInvalidArgs, "deadweight: failed to load config (%v)", err)
	}
	if err := config.Validate(fileCfg); err != nil {
		return resource.ScanConfig{}, exitError(ExitInvalidArgs, "deadweight: %v", err)
	}

	// Only set OutputFormat when explicitly passed so the file can choose.
	cliFormat := ""
	if cmd.Flags().Changed("format") {
		cliFormat = scanFormat
	}
	scanCfg := resource.ScanConfig{
		ProjectRoot:  root,
		Detectors:    detectors,
		OutputFormat: cliFormat,
		MaxFiles:     scanMaxFiles,
		Gitignore:    !scanNoGitignore,
		Layout: resource.Layout{
			AssetsRoot:             scanAssetsRoot,
			AssetsExclude:          scanAssetsExclude,
			SourceRoot:             scanSourceRoot,
			SourceExtension:        scanSourceExtension,
			Manifest:               scanManifest,
			EntryPoint:             scanEntryPoint,
			ReservedDependencies:   scanReserved,
			IncludeDevDependencies: scanIncludeDev,
		},
	}

	scanCfg = config.Merge(fileCfg, scanCfg)
	if scanCfg.Detectors != nil && len(scanCfg.Detectors) == 0 {
		return resource.ScanConfig{}, exitError(ExitInvalidArgs, "deadweight: every detector is disabled in config")
	}
	scanCfg.Layout = scanCfg.Layout.WithDefaults()

	if scanCfg.OutputFormat == "" {
		scanCfg.OutputFormat = "text"
	}
	if _, err := output.GetFormatter(scanCfg.OutputFormat); err != nil {
		return resource.ScanConfig{}, exitError(ExitInvalidArgs, "deadweight: %v", err)
	}

	applyGlobalExcludes(&scanCfg, scanExclude)
	if scanProgress {
		w := cmd.ErrOrStderr()
		scanCfg.ProgressFunc = func(msg string) {
			_, _ = fmt.Fprintf(w, "deadweight: %s\n", msg)
		}
	}

	return scanCfg, nil
}

// validateScanFlags rejects layout flags that can never describe a project.
func validateScanFlags() error {
	if scanMaxFiles < 0 {
		return exitError(ExitInvalidArgs, "deadweight: --max-files must be >= 0 (got %d)", scanMaxFiles)
	}
	if scanSourceExtension != "" && !strings.HasPrefix(scanSourceExtension, ".") {
		return exitError(ExitInvalidArgs, "deadweight: --source-extension must start with \".\" (got %q)", scanSourceExtension)
	}
	if strings.ContainsAny(scanEntryPoint, `/\`) {
		return exitError(ExitInvalidArgs, "deadweight: --entry-point must be a file name, not a path (got %q)", scanEntryPoint)
	}
	return nil
}

// applyGlobalExcludes adds patterns to the exclusions of every registered
// detector.
func applyGlobalExcludes(cfg *resource.ScanConfig, patterns []string) {
	if len(patterns) == 0 {
		return
	}
	if cfg.DetectorOpts == nil {
		cfg.DetectorOpts = make(map[string]resource.DetectorOpts)
	}
	for _, name := range detector.List() {
		do := cfg.DetectorOpts[name]
		do.ExcludePatterns = append(append([]string(nil), do.ExcludePatterns...), patterns...)
		cfg.DetectorOpts[name] = do
	}
}

func writeScanOutput(cmd *cobra.Command, result *resource.ScanResult, scanCfg resource.ScanConfig) error {
	formatter, _ := output.GetFormatter(scanCfg.OutputFormat) // already validated in loadScanConfig

	w := cmd.OutOrStdout()
	if scanOutput != "" {
		f, err := cmdFS.Create(scanOutput)
		if err != nil {
			return exitError(ExitInvalidArgs, "deadweight: cannot create output file %q (%v)", scanOutput, err)
		}
		defer f.Close() //nolint:errcheck // best-effort close on output file
		w = f
	}

	if err := formatter.Format(result, w); err != nil {
		return exitError(ExitTotalFailure, "deadweight: formatting failed (%v)", err)
	}

	slog.Info("scan complete", "unreferenced", totalUnreferenced(result), "duration", result.Duration)
	return nil
}

// computeExitCode returns the appropriate exit code based on detector results.
// When strict is true, partial failures return ExitPartialFailure instead of ExitOK.
func computeExitCode(result *resource.ScanResult, strict bool) int {
	if len(result.Results) == 0 {
		return ExitOK
	}

	failCount := len(result.Failed())
	switch {
	case failCount == 0:
		return ExitOK
	case failCount == len(result.Results):
		return ExitTotalFailure
	case strict:
		return ExitPartialFailure
	default:
		return ExitOK
	}
}

// printDryRun prints per-detector counts without producing the report.
func printDryRun(cmd *cobra.Command, result *resource.ScanResult, exitCode int) error {
	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(w, "deadweight: dry run, %d unreferenced item(s)\n", totalUnreferenced(result))
	for _, dr := range result.Results {
		status := fmt.Sprintf("%d unreferenced", len(dr.Unreferenced))
		if dr.Err != nil {
			status = fmt.Sprintf("error: %v", dr.Err)
		}
		_, _ = fmt.Fprintf(w, "  %s: %s (%s)\n", dr.Detector, status, dr.Duration.Round(1_000_000))
	}

	if exitCode != ExitOK {
		return exitError(exitCode, "")
	}
	return nil
}

func totalUnreferenced(result *resource.ScanResult) int {
	n := 0
	for _, cat := range resource.Categories {
		n += len(result.Unreferenced(cat))
	}
	return n
}

// applyDetectorExclusions removes excluded detectors from the include list.
// If include is empty, it starts from the full registry.
func applyDetectorExclusions(include []string, exclude string) []string {
	if exclude == "" {
		return include
	}
	skip := make(map[string]bool)
	for _, name := range splitList(exclude) {
		skip[name] = true
	}
	if len(include) == 0 {
		include = detector.List()
		sort.Strings(include)
	}
	var result []string
	for _, name := range include {
		if !skip[name] {
			result = append(result, name)
		}
	}
	return result
}

// splitList splits a comma-separated flag value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
