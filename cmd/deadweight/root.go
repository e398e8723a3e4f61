package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	dwlog "github.com/davetashner/deadweight/internal/log"
)

// Global flag values.
var (
	verbose bool
	quiet   bool
	noColor bool
)

// rootCmd is the base command for deadweight.
var rootCmd = &cobra.Command{
	Use:   "deadweight",
	Short: "Find unused assets, dependencies and source files",
	Long: `Deadweight scans a Flutter project (or any project with the same shape)
and reports asset files, declared dependencies and source files that no
source file mentions by name.

Matching is plain substring search over the source text, so a name that
appears in a comment or string literal counts as a reference.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		dwlog.Setup(verbose, quiet)
		if noColor {
			color.NoColor = true
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(detectorsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}
