package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sdejongh/keydrift/pkg/config"
	"github.com/sdejongh/keydrift/pkg/logging"
)

// exitFunc terminates the process with the check status
var exitFunc = os.Exit

// lookupEnv reads action inputs from the environment
var lookupEnv config.LookupFunc = os.LookupEnv

// loadConfig loads configuration from file or returns default
func loadConfig() (*config.Config, error) {
	if globalFlags.ConfigFile != "" {
		return config.LoadFromFile(globalFlags.ConfigFile)
	}
	return config.LoadDefault()
}

// resolveConfig builds the effective configuration.
// Precedence: defaults < config file < environment < flags.
func resolveConfig(cmd *cobra.Command, args []string, input *InputFlags) (*config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	config.ApplyEnv(cfg, lookupEnv)
	applyInputFlags(cmd, cfg, args, input)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// applyInputFlags overrides input settings with command-line flags.
// Positional arguments are appended to --file values.
func applyInputFlags(cmd *cobra.Command, cfg *config.Config, args []string, input *InputFlags) {
	files := append(append([]string(nil), input.Files...), args...)
	if len(files) > 0 {
		cfg.Input.Files = strings.Join(files, "\n")
	}

	if cmd.Flags().Changed("search-path") {
		cfg.Input.SearchPath = input.SearchPath
	}
	if cmd.Flags().Changed("search-pattern") {
		cfg.Input.SearchPattern = input.SearchPattern
	}
	if cmd.Flags().Changed("exclude") {
		cfg.Exclude = input.Exclude
	}
	if cmd.Flags().Changed("workdir") {
		cfg.Input.WorkDir = input.WorkDir
	}
	if cmd.Flags().Changed("max-file-size") {
		cfg.Input.MaxFileSize = input.MaxFileSize
	}
	if cmd.Flags().Changed("parallel") {
		cfg.Performance.MaxWorkers = input.Parallel
	}
}

// createLogger creates a logger based on configuration.
// A log file takes precedence over console logging in verbose mode.
func createLogger(cfg config.LoggingConfig, verbose bool) (logging.Logger, error) {
	level := logging.ParseLevel(cfg.Level)

	if cfg.File != "" {
		var format logging.Format
		switch cfg.Format {
		case "json":
			format = logging.FormatJSON
		default:
			format = logging.FormatText
		}

		return logging.NewFileLogger(logging.FileLoggerConfig{
			Path:       cfg.File,
			Format:     format,
			Level:      level,
			MaxSizeMB:  cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			Compress:   cfg.Compress,
		})
	}

	if verbose {
		noColor := !term.IsTerminal(int(os.Stderr.Fd()))
		return logging.NewConsoleLogger(os.Stderr, level, noColor), nil
	}

	return logging.NewNullLogger(), nil
}
