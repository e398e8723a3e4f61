package main

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/davetashner/deadweight/internal/config"
	"github.com/davetashner/deadweight/internal/resource"
)

// Config command flags.
var (
	configGlobal   bool
	configDefaults bool
)

// configCmd is the parent command for config subcommands.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and modify deadweight configuration",
	Long: `View and modify deadweight configuration.

Deadweight reads configuration from .deadweight.yaml (or .deadweight.toml)
in the project root. A global config at ~/.config/deadweight/config.yaml
provides defaults. Project settings override global settings, and scan
flags override both.

Note: config set does a YAML round-trip and will not preserve comments.
If you need to keep comments, edit the file directly.`,
}

// configShowCmd prints the effective configuration.
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long: `Show the configuration a scan of the current directory would use,
combining the global and project config files.

With --defaults, empty layout settings are filled with the built-in
Flutter defaults.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

// configGetCmd retrieves a configuration value by dot-notation key path.
var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long: `Get a configuration value by dot-notation key path.

Examples:
  deadweight config get output_format
  deadweight config get detectors.assets.error_mode
  deadweight config get detectors.dependencies
  deadweight config get --global max_files`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

// configSetCmd sets a configuration value.
var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the config file.

Values are converted to the type of the target field. List fields take a
comma-separated value. By default, writes to .deadweight.yaml in the current directory.
Use --global to write to ~/.config/deadweight/config.yaml.

Note: This does a YAML round-trip and will not preserve comments.

Examples:
  deadweight config set output_format json
  deadweight config set source_root src
  deadweight config set include_dev_dependencies true
  deadweight config set detectors.dependencies.error_mode fail
  deadweight config set --global gitignore false`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

// configListCmd lists all configuration values with their source.
var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configuration values",
	Long: `List all configuration values with their source annotation.

Shows every set configuration value, annotated with whether it comes
from the project config (.deadweight.yaml) or global config
(~/.config/deadweight/config.yaml). Project values override global values.`,
	Args: cobra.NoArgs,
	RunE: runConfigList,
}

func init() {
	configGetCmd.Flags().BoolVar(&configGlobal, "global", false, "use global config (~/.config/deadweight/config.yaml)")
	configSetCmd.Flags().BoolVar(&configGlobal, "global", false, "write to global config (~/.config/deadweight/config.yaml)")
	configShowCmd.Flags().BoolVar(&configDefaults, "defaults", false, "fill unset layout settings with the built-in defaults")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configListCmd)
}

// resetConfigFlags resets config command flags for testing.
func resetConfigFlags() {
	configGlobal = false
	configDefaults = false
	for _, c := range []*cobra.Command{configGetCmd, configSetCmd, configShowCmd} {
		for _, name := range []string{"global", "defaults"} {
			if f := c.Flags().Lookup(name); f != nil {
				_ = f.Value.Set("false")
				f.Changed = false
			}
		}
	}
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadLayered(".")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if configDefaults {
		cfg = withLayoutDefaults(cfg)
	}
	return config.Write(cmd.OutOrStdout(), cfg)
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	keyPath := args[0]

	var cfg *config.Config
	var err error
	if configGlobal {
		cfg, err = config.LoadGlobal()
	} else {
		cfg, err = config.LoadLayered(".")
	}
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	val, err := config.GetValue(cfg, keyPath)
	if err != nil {
		return err
	}

	return printValue(cmd, val)
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	keyPath := args[0]
	rawValue := args[1]

	if err := config.ValidateKeyPath(keyPath); err != nil {
		return err
	}

	targetPath := filepath.Join(".", config.FileName)
	if configGlobal {
		targetPath = config.GlobalConfigPath()
	}

	data, err := config.LoadRaw(targetPath)
	if err != nil {
		return fmt.Errorf("loading config file: %w", err)
	}

	if err := config.SetValue(data, keyPath, rawValue); err != nil {
		return fmt.Errorf("setting value: %w", err)
	}

	// Round-trip validate: unmarshal to Config and validate.
	roundTrip, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	var validCfg config.Config
	if err := yaml.Unmarshal(roundTrip, &validCfg); err != nil {
		return fmt.Errorf("invalid config after set: %w", err)
	}
	if err := config.Validate(&validCfg); err != nil {
		return err
	}

	if err := config.WriteFile(targetPath, data); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", keyPath, rawValue)
	return nil
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()

	globalCfg, err := config.LoadGlobal()
	if err != nil {
		return fmt.Errorf("loading global config: %w", err)
	}
	projectCfg, err := config.Load(".")
	if err != nil {
		return fmt.Errorf("loading project config: %w", err)
	}

	globalMap, err := configToFlatMap(globalCfg)
	if err != nil {
		return err
	}
	projectMap, err := configToFlatMap(projectCfg)
	if err != nil {
		return err
	}

	source := make(map[string]string)
	values := make(map[string]any)
	for k, v := range globalMap {
		values[k], source[k] = v, "global"
	}
	for k, v := range projectMap {
		values[k], source[k] = v, "project"
	}

	if len(values) == 0 {
		_, _ = fmt.Fprintln(w, "No configuration set.")
		_, _ = fmt.Fprintln(w, "Run 'deadweight init' to create a config, or 'deadweight config set <key> <value>' to set values.")
		return nil
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	globalColor := color.New(color.FgCyan)
	projectColor := color.New(color.FgGreen)

	for _, k := range keys {
		_, _ = fmt.Fprintf(w, "%s = %v %s\n", k, values[k], formatSource(source[k], globalColor, projectColor))
	}
	return nil
}

// printValue outputs a value: scalars as plain text, maps/slices as YAML.
func printValue(cmd *cobra.Command, val any) error {
	switch v := val.(type) {
	case map[string]any, []any:
		data, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprint(cmd.OutOrStdout(), string(data))
	default:
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), v)
	}
	return nil
}

// withLayoutDefaults returns a copy of cfg whose unset layout keys carry the
// built-in defaults.
func withLayoutDefaults(cfg *config.Config) *config.Config {
	out := *cfg
	l := resource.Layout{
		AssetsRoot:           cfg.AssetsRoot,
		AssetsExclude:        cfg.AssetsExclude,
		SourceRoot:           cfg.SourceRoot,
		SourceExtension:      cfg.SourceExtension,
		Manifest:             cfg.Manifest,
		EntryPoint:           cfg.EntryPoint,
		ReservedDependencies: cfg.ReservedDependencies,
	}.WithDefaults()

	out.AssetsRoot = l.AssetsRoot
	out.AssetsExclude = l.AssetsExclude
	out.SourceRoot = l.SourceRoot
	out.SourceExtension = l.SourceExtension
	out.Manifest = l.Manifest
	out.EntryPoint = l.EntryPoint
	out.ReservedDependencies = l.ReservedDependencies
	if out.IncludeDevDependencies == nil {
		out.IncludeDevDependencies = boolPtr(false)
	}
	if out.MaxFiles == 0 {
		out.MaxFiles = resource.DefaultMaxFiles
	}
	if out.Gitignore == nil {
		out.Gitignore = boolPtr(true)
	}
	if out.OutputFormat == "" {
		out.OutputFormat = "text"
	}
	return &out
}

func boolPtr(b bool) *bool { return &b }

// configToFlatMap converts a Config to a flat dot-notation map, omitting zero values.
func configToFlatMap(cfg *config.Config) (map[string]any, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if m == nil {
		m = make(map[string]any)
	}
	return config.FlattenMap(m, ""), nil
}

// formatSource returns a colorized source annotation.
func formatSource(source string, globalColor, projectColor *color.Color) string {
	switch source {
	case "global":
		return globalColor.Sprint("(global)")
	case "project":
		return projectColor.Sprint("(project)")
	default:
		return fmt.Sprintf("(%s)", source)
	}
}
