package config

import (
	"sort"

	"github.com/davetashner/deadweight/internal/detector"
	"github.com/davetashner/deadweight/internal/resource"
)

// Merge combines file-based config with CLI-provided ScanConfig.
// CLI values take precedence; zero-value CLI fields fall through to file config.
//
// Gitignore handling is on by default, so either side can only turn it off.
// Detectors disabled in the file are dropped when the CLI did not name an
// explicit detector list.
func Merge(fileCfg *Config, cliCfg resource.ScanConfig) resource.ScanConfig {
	result := cliCfg

	// OutputFormat: CLI wins if set.
	if result.OutputFormat == "" && fileCfg.OutputFormat != "" {
		result.OutputFormat = fileCfg.OutputFormat
	}

	result.Layout = mergeLayout(fileCfg, result.Layout)

	// MaxFiles: CLI wins if non-zero.
	if result.MaxFiles == 0 && fileCfg.MaxFiles > 0 {
		result.MaxFiles = fileCfg.MaxFiles
	}

	if fileCfg.Gitignore != nil && !*fileCfg.Gitignore {
		result.Gitignore = false
	}

	// Per-detector opts: merge file config into CLI config.
	if len(fileCfg.Detectors) > 0 {
		if result.DetectorOpts == nil {
			result.DetectorOpts = make(map[string]resource.DetectorOpts)
		}
		for name, fc := range fileCfg.Detectors {
			do := result.DetectorOpts[name]
			if do.ErrorMode == "" && fc.ErrorMode != "" {
				do.ErrorMode = resource.ErrorMode(fc.ErrorMode)
			}
			if len(do.ExcludePatterns) == 0 && len(fc.ExcludePatterns) > 0 {
				do.ExcludePatterns = fc.ExcludePatterns
			}
			result.DetectorOpts[name] = do
		}
	}

	if len(result.Detectors) == 0 {
		result.Detectors = enabledDetectors(fileCfg)
	}

	return result
}

// mergeLayout fills the zero fields of the CLI layout from the file.
func mergeLayout(fileCfg *Config, l resource.Layout) resource.Layout {
	if l.AssetsRoot == "" {
		l.AssetsRoot = fileCfg.AssetsRoot
	}
	if l.AssetsExclude == nil && fileCfg.AssetsExclude != nil {
		l.AssetsExclude = fileCfg.AssetsExclude
	}
	if l.SourceRoot == "" {
		l.SourceRoot = fileCfg.SourceRoot
	}
	if l.SourceExtension == "" {
		l.SourceExtension = fileCfg.SourceExtension
	}
	if l.Manifest == "" {
		l.Manifest = fileCfg.Manifest
	}
	if l.EntryPoint == "" {
		l.EntryPoint = fileCfg.EntryPoint
	}
	if l.ReservedDependencies == nil && fileCfg.ReservedDependencies != nil {
		l.ReservedDependencies = fileCfg.ReservedDependencies
	}
	if !l.IncludeDevDependencies && fileCfg.IncludeDevDependencies != nil {
		l.IncludeDevDependencies = *fileCfg.IncludeDevDependencies
	}
	return l
}

// enabledDetectors returns the registered detectors minus those disabled in
// the file, or nil when nothing is disabled (meaning "all").
func enabledDetectors(fileCfg *Config) []string {
	disabled := false
	for _, dc := range fileCfg.Detectors {
		if dc.Enabled != nil && !*dc.Enabled {
			disabled = true
			break
		}
	}
	if !disabled {
		return nil
	}

	all := detector.List()
	sort.Strings(all)
	names := make([]string, 0, len(all))
	for _, name := range all {
		if dc, ok := fileCfg.Detectors[name]; ok && dc.Enabled != nil && !*dc.Enabled {
			continue
		}
		names = append(names, name)
	}
	return names
}

// Overlay combines a global and a project config. Project values take
// precedence; only non-zero project values override global ones. Detector
// blocks are replaced per detector.
func Overlay(global, project *Config) *Config {
	merged := *global

	if project.OutputFormat != "" {
		merged.OutputFormat = project.OutputFormat
	}
	if project.AssetsRoot != "" {
		merged.AssetsRoot = project.AssetsRoot
	}
	if project.AssetsExclude != nil {
		merged.AssetsExclude = project.AssetsExclude
	}
	if project.SourceRoot != "" {
		merged.SourceRoot = project.SourceRoot
	}
	if project.SourceExtension != "" {
		merged.SourceExtension = project.SourceExtension
	}
	if project.Manifest != "" {
		merged.Manifest = project.Manifest
	}
	if project.EntryPoint != "" {
		merged.EntryPoint = project.EntryPoint
	}
	if project.ReservedDependencies != nil {
		merged.ReservedDependencies = project.ReservedDependencies
	}
	if project.IncludeDevDependencies != nil {
		merged.IncludeDevDependencies = project.IncludeDevDependencies
	}
	if project.MaxFiles != 0 {
		merged.MaxFiles = project.MaxFiles
	}
	if project.Gitignore != nil {
		merged.Gitignore = project.Gitignore
	}

	if len(project.Detectors) > 0 {
		detectors := make(map[string]DetectorConfig, len(global.Detectors)+len(project.Detectors))
		for name, dc := range global.Detectors {
			detectors[name] = dc
		}
		for name, dc := range project.Detectors {
			detectors[name] = dc
		}
		merged.Detectors = detectors
	}

	return &merged
}
