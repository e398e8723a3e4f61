package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/davetashner/deadweight/internal/detector"
	"github.com/davetashner/deadweight/internal/enumerate"
	"github.com/davetashner/deadweight/internal/output"
	"github.com/davetashner/deadweight/internal/resource"
)

// Validate checks all fields in the config and returns all errors at once.
func Validate(cfg *Config) error {
	var errs []string

	if cfg.OutputFormat != "" {
		if _, err := output.GetFormatter(cfg.OutputFormat); err != nil {
			errs = append(errs, fmt.Sprintf("output_format: %v", err))
		}
	}

	if filepath.IsAbs(cfg.AssetsRoot) {
		errs = append(errs, fmt.Sprintf("assets_root: must be relative to the project root, got %q", cfg.AssetsRoot))
	}
	if filepath.IsAbs(cfg.SourceRoot) {
		errs = append(errs, fmt.Sprintf("source_root: must be relative to the project root, got %q", cfg.SourceRoot))
	}

	if cfg.SourceExtension != "" && !strings.HasPrefix(cfg.SourceExtension, ".") {
		errs = append(errs, fmt.Sprintf("source_extension: must start with a dot, got %q", cfg.SourceExtension))
	}

	if cfg.EntryPoint != "" && strings.ContainsAny(cfg.EntryPoint, `/\`) {
		errs = append(errs, fmt.Sprintf("entry_point: must be a file name, got %q", cfg.EntryPoint))
	}

	if cfg.MaxFiles < 0 {
		errs = append(errs, fmt.Sprintf("max_files: must be non-negative, got %d", cfg.MaxFiles))
	}

	for _, p := range cfg.AssetsExclude {
		if err := enumerate.ValidatePattern(p); err != nil {
			errs = append(errs, fmt.Sprintf("assets_exclude: %v", err))
		}
	}

	for _, name := range cfg.ReservedDependencies {
		if strings.TrimSpace(name) == "" {
			errs = append(errs, "reserved_dependencies: names must not be empty")
			break
		}
	}

	for name, dc := range cfg.Detectors {
		if detector.Get(name) == nil {
			errs = append(errs, fmt.Sprintf("detectors.%s: unknown detector", name))
		}

		if dc.ErrorMode != "" {
			switch resource.ErrorMode(dc.ErrorMode) {
			case resource.ErrorModeWarn, resource.ErrorModeSkip, resource.ErrorModeFail:
				// valid
			default:
				errs = append(errs, fmt.Sprintf("detectors.%s.error_mode: invalid value %q (must be warn, skip, or fail)", name, dc.ErrorMode))
			}
		}

		for _, p := range dc.ExcludePatterns {
			if err := enumerate.ValidatePattern(p); err != nil {
				errs = append(errs, fmt.Sprintf("detectors.%s.exclude_patterns: %v", name, err))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
