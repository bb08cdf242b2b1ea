package cli

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/sdejongh/keydrift/pkg/resolve"
	"github.com/sdejongh/keydrift/pkg/storage"
)

var (
	listInput  InputFlags
	listFormat string
)

// NewListCommand creates the list command
func NewListCommand() *cobra.Command {
	listInput = InputFlags{}

	cmd := &cobra.Command{
		Use:   "list [files...]",
		Short: "List the files a check would compare",
		Long: `Resolve the input files exactly like check does and print them
in comparison order without reading their content.`,
		RunE: runList,
	}

	addInputFlags(cmd, &listInput)
	cmd.Flags().StringVarP(&listFormat, "output", "o", "human", "output format: human, json")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := resolveConfig(cmd, args, &listInput)
	if err != nil {
		return err
	}

	logger, err := createLogger(cfg.Logging, globalFlags.Verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	backend, err := storage.NewLocal(cfg.Input.WorkDir)
	if err != nil {
		return fmt.Errorf("failed to create storage backend: %w", err)
	}
	defer backend.Close()

	files, err := resolve.NewResolver(backend, logger).Resolve(ctx, cfg.Operation())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch listFormat {
	case "json":
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(files)
	default:
		for _, file := range files {
			fmt.Fprintln(out, file)
		}
	}

	return nil
}
