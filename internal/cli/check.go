package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sdejongh/keydrift/pkg/check"
	"github.com/sdejongh/keydrift/pkg/config"
	"github.com/sdejongh/keydrift/pkg/models"
	"github.com/sdejongh/keydrift/pkg/output"
	"github.com/sdejongh/keydrift/pkg/storage"
)

// CheckFlags holds check command flags
type CheckFlags struct {
	InputFlags
	Output     string
	Progress   bool
	DiffReport string
	DiffFormat string
	// Logging flags
	LogFile   string
	LogFormat string
	LogLevel  string
}

var checkFlags CheckFlags

// NewCheckCommand creates the check command
func NewCheckCommand() *cobra.Command {
	checkFlags = CheckFlags{}

	cmd := &cobra.Command{
		Use:   "check [files...]",
		Short: "Report keys missing between JSON files",
		Long: `Compare the top-level keys of two or more JSON files and report, for each
file, the keys found in a sibling file but missing from it.

Files are given as arguments or with --file. Without files, the directory
given by --search-path is scanned and every entry whose name matches
--search-pattern is compared.

Exit status is 0 when all files share the same keys, 1 when differences
are found and 2 when the check could not run.`,
		RunE: runCheck,
	}

	addInputFlags(cmd, &checkFlags.InputFlags)

	cmd.Flags().StringVarP(&checkFlags.Output, "output", "o", "human", "output format: human, json, github")
	cmd.Flags().BoolVar(&checkFlags.Progress, "progress", false, "show a progress bar while loading files")
	cmd.Flags().StringVar(&checkFlags.DiffReport, "diff-report", "", "write differences report to file")
	cmd.Flags().StringVar(&checkFlags.DiffFormat, "diff-format", "human", "differences report format: human, json")

	// Logging flags
	cmd.Flags().StringVar(&checkFlags.LogFile, "log-file", "", "write logs to file (enables logging)")
	cmd.Flags().StringVar(&checkFlags.LogFormat, "log-format", "text", "log format: text, json")
	cmd.Flags().StringVar(&checkFlags.LogLevel, "log-level", "info", "log level: debug, info, warn, error")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := resolveConfig(cmd, args, &checkFlags.InputFlags)
	if err != nil {
		return err
	}
	applyCheckFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Create output formatter
	formatter, err := output.NewFormatter(cfg.Output.Format, cfg.Output.Progress && !cfg.Output.Quiet)
	if err != nil {
		return err
	}

	// Create logger
	logger, err := createLogger(cfg.Logging, globalFlags.Verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	// Create storage backend
	backend, err := storage.NewLocal(cfg.Input.WorkDir)
	if err != nil {
		return fmt.Errorf("failed to create storage backend: %w", err)
	}
	defer backend.Close()

	out := cmd.OutOrStdout()
	if cfg.Output.Quiet {
		out = io.Discard
	}
	setErrorWriter(formatter, cmd)

	// Resolve inputs; failures here are reported like any check failure
	engine, err := check.NewEngine(ctx, backend, formatter, logger, cfg.Operation())
	if err != nil {
		formatter.Error(err)
		logger.Close()
		exitFunc(models.StatusFailed.ExitCode())
		return nil
	}
	engine.SetOutput(out)

	report, err := engine.Run(ctx)
	if err != nil {
		// The engine already reported the error through the formatter
		logger.Close()
		exitFunc(models.StatusFailed.ExitCode())
		return nil
	}

	// Write differences report if requested
	if cfg.Output.DiffReport != "" {
		if err := output.WriteDifferencesReport(report, cfg.Output.DiffReport, cfg.Output.DiffFormat); err != nil {
			return fmt.Errorf("failed to write differences report: %w", err)
		}
	}

	// Exit with appropriate code
	logger.Close()
	exitFunc(report.Status.ExitCode())
	return nil
}

// applyCheckFlags overrides output and logging settings with flags
func applyCheckFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()

	if flags.Changed("output") {
		cfg.Output.Format = checkFlags.Output
	}
	if flags.Changed("progress") {
		cfg.Output.Progress = checkFlags.Progress
	}
	if flags.Changed("diff-report") {
		cfg.Output.DiffReport = checkFlags.DiffReport
	}
	if flags.Changed("diff-format") {
		cfg.Output.DiffFormat = checkFlags.DiffFormat
	}
	if flags.Changed("log-file") {
		cfg.Logging.File = checkFlags.LogFile
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format = checkFlags.LogFormat
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = checkFlags.LogLevel
	}

	// Disable progress in quiet mode
	if globalFlags.Quiet {
		cfg.Output.Progress = false
		cfg.Output.Quiet = true
	}
}

// setErrorWriter sends human-readable errors to stderr and machine
// readable ones to stdout, even in quiet mode
func setErrorWriter(formatter output.Formatter, cmd *cobra.Command) {
	setter, ok := formatter.(output.ErrorWriterSetter)
	if !ok {
		return
	}
	switch formatter.Name() {
	case "human", "progress":
		setter.SetErrorWriter(cmd.ErrOrStderr())
	default:
		setter.SetErrorWriter(cmd.OutOrStdout())
	}
}
