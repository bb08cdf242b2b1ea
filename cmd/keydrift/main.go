package main

import (
	"fmt"
	"os"

	"github.com/sdejongh/keydrift/internal/cli"
	"github.com/sdejongh/keydrift/pkg/models"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Version, cli.Commit, cli.BuildDate = version, commit, date

	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(models.StatusFailed.ExitCode())
	}
}
