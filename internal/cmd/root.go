// Package cmd implements the disksearch command line.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

const usageArgs = "<pattern> <extension> <root> <dest> <matchers> <copiers>"

// NewRootCommand creates and returns the root cobra command for disksearch
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "disksearch " + usageArgs,
		Short: "Find files by name under a directory tree and copy them",
		Long: `disksearch walks <root>, finds every file whose name contains <pattern>
and ends with <extension>, and copies the matches into <dest>.

One goroutine enumerates subdirectories, <matchers> goroutines search
them, and <copiers> goroutines copy the results. All of them run at the
same time, connected by two bounded queues.

Files placed directly in <root> are only searched with --include-root.
Existing files in <dest> with the same name are replaced.

Tuning values may come from a YAML or TOML file given with --config;
flags override the file.

Examples:
  disksearch report .csv ~/data /tmp/reports 4 2
  disksearch foo .txt . ./out 8 4 --on-copy-error skip-file
  disksearch "" .go ~/src /tmp/go-files 2 2 --config disksearch.yaml`,
		Version:       Version,
		Args:          exactArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runSearch,
	}

	cmd.Flags().String("config", "", "Path to a YAML or TOML tuning file")
	cmd.Flags().Int("dir-queue", 0, "Capacity of the directory queue (default from config: 50)")
	cmd.Flags().Int("results-queue", 0, "Capacity of the results queue (default from config: 50)")
	cmd.Flags().String("on-copy-error", "", "Copier failure policy: stop-worker, skip-file or abort-run")
	cmd.Flags().Bool("include-root", false, "Also search files directly inside <root>")
	cmd.Flags().String("log-level", "", "Log level: debug, info, warn, error")
	cmd.Flags().String("log-format", "", "Log format: console or json")
	cmd.Flags().Bool("summary", true, "Print a summary table when the run ends")
	cmd.Flags().Bool("no-color", false, "Disable coloured output")

	return cmd
}

func exactArgs(cmd *cobra.Command, args []string) error {
	if len(args) != 6 {
		return fmt.Errorf("expected 6 arguments %s, got %d", usageArgs, len(args))
	}
	return nil
}
