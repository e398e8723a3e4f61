// Package config handles .deadweight.yaml and .deadweight.toml
// configuration files.
package config

// Config represents the contents of a project or global config file.
type Config struct {
	OutputFormat string `yaml:"output_format,omitempty" toml:"output_format,omitempty"`

	// Project layout.
	AssetsRoot             string   `yaml:"assets_root,omitempty" toml:"assets_root,omitempty"`
	AssetsExclude          []string `yaml:"assets_exclude,omitempty" toml:"assets_exclude,omitempty"`
	SourceRoot             string   `yaml:"source_root,omitempty" toml:"source_root,omitempty"`
	SourceExtension        string   `yaml:"source_extension,omitempty" toml:"source_extension,omitempty"`
	Manifest               string   `yaml:"manifest,omitempty" toml:"manifest,omitempty"`
	EntryPoint             string   `yaml:"entry_point,omitempty" toml:"entry_point,omitempty"`
	ReservedDependencies   []string `yaml:"reserved_dependencies,omitempty" toml:"reserved_dependencies,omitempty"`
	IncludeDevDependencies *bool    `yaml:"include_dev_dependencies,omitempty" toml:"include_dev_dependencies,omitempty"`

	// Enumeration.
	MaxFiles  int   `yaml:"max_files,omitempty" toml:"max_files,omitempty"`
	Gitignore *bool `yaml:"gitignore,omitempty" toml:"gitignore,omitempty"`

	Detectors map[string]DetectorConfig `yaml:"detectors,omitempty" toml:"detectors,omitempty"`
}

// DetectorConfig holds per-detector settings in the config file.
type DetectorConfig struct {
	Enabled         *bool    `yaml:"enabled,omitempty" toml:"enabled,omitempty"`
	ErrorMode       string   `yaml:"error_mode,omitempty" toml:"error_mode,omitempty"`
	ExcludePatterns []string `yaml:"exclude_patterns,omitempty" toml:"exclude_patterns,omitempty"`
}

// FileName is the expected config file name in a project root.
const FileName = ".deadweight.yaml"

// TOMLFileName is the alternative config file name. It is read only when
// FileName is absent.
const TOMLFileName = ".deadweight.toml"
