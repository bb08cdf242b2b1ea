package cli

import (
	"github.com/spf13/cobra"
)

// GlobalFlags holds global flag values
type GlobalFlags struct {
	ConfigFile string
	Verbose    bool
	Quiet      bool
}

var globalFlags GlobalFlags

// AddGlobalFlags adds global flags to the root command
func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(
		&globalFlags.ConfigFile,
		"config",
		"",
		"config file (default is $HOME/.config/keydrift/config.yaml)",
	)
	cmd.PersistentFlags().BoolVarP(
		&globalFlags.Verbose,
		"verbose",
		"v",
		false,
		"log to stderr",
	)
	cmd.PersistentFlags().BoolVarP(
		&globalFlags.Quiet,
		"quiet",
		"q",
		false,
		"suppress non-error output",
	)
}

// InputFlags holds the flags selecting the files to compare
type InputFlags struct {
	Files         []string
	SearchPath    string
	SearchPattern string
	Exclude       []string
	WorkDir       string
	MaxFileSize   int64
	Parallel      int
}

// addInputFlags binds the input selection flags to a command
func addInputFlags(cmd *cobra.Command, flags *InputFlags) {
	cmd.Flags().StringArrayVarP(&flags.Files, "file", "f", nil, "file to compare (repeatable, takes precedence over --search-path)")
	cmd.Flags().StringVarP(&flags.SearchPath, "search-path", "p", "", "directory scanned for files to compare")
	cmd.Flags().StringVar(&flags.SearchPattern, "search-pattern", "", "regular expression matched against file names (default \\.json$)")
	cmd.Flags().StringSliceVar(&flags.Exclude, "exclude", []string{}, "glob patterns of file names to skip in the search path")
	cmd.Flags().StringVarP(&flags.WorkDir, "workdir", "C", "", "base directory for relative paths")
	cmd.Flags().Int64Var(&flags.MaxFileSize, "max-file-size", 0, "maximum size of a compared file in bytes (0 = unlimited)")
	cmd.Flags().IntVar(&flags.Parallel, "parallel", 1, "number of files read concurrently")
}
