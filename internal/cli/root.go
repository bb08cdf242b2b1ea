package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRootCommand creates the keydrift command tree
func NewRootCommand() *cobra.Command {
	globalFlags = GlobalFlags{}

	rootCmd := &cobra.Command{
		Use:   "keydrift",
		Short: "Detect keys missing between sibling JSON files",
		Long: `keydrift compares the top-level keys of parallel JSON files, such as
translation files for different locales, and reports which keys each file
is missing compared to its siblings. It is meant to run as a CI step.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add global flags
	AddGlobalFlags(rootCmd)

	// Add commands
	rootCmd.AddCommand(NewCheckCommand())
	rootCmd.AddCommand(NewListCommand())
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}
