package cmd

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/baxromumarov/disksearch"
	"github.com/baxromumarov/disksearch/internal/config"
	"github.com/baxromumarov/disksearch/internal/logging"
)

// runSearch implements the root command. Every argument and setting is
// validated before the pipeline starts.
func runSearch(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	fileCfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := applyFlags(cmd, fileCfg); err != nil {
		return err
	}

	matchers, err := parsePoolSize("matchers", args[4])
	if err != nil {
		return err
	}
	copiers, err := parsePoolSize("copiers", args[5])
	if err != nil {
		return err
	}

	run := disksearch.Config{
		Pattern:   args[0],
		Extension: args[1],
		Root:      args[2],
		Dest:      args[3],
		Matchers:  matchers,
		Copiers:   copiers,
	}
	if err := fileCfg.Apply(&run); err != nil {
		return err
	}
	if err := run.Validate(); err != nil {
		return err
	}

	noColor, _ := cmd.Flags().GetBool("no-color")
	if noColor {
		color.NoColor = true
	}

	logger, err := logging.New(logging.Options{
		Level:   fileCfg.Log.Level,
		Format:  fileCfg.Log.Format,
		Writer:  cmd.ErrOrStderr(),
		NoColor: noColor,
	})
	if err != nil {
		return err
	}
	logger = logger.With("run_id", uuid.NewString())

	stats, runErr := disksearch.Run(cmd.Context(), run,
		disksearch.WithLogger(logger),
		disksearch.WithOnWorkerDone(func(w disksearch.WorkerInfo, err error, d time.Duration) {
			logger.Debug("worker finished",
				"worker", w.Name,
				"stage", w.Stage.String(),
				"duration", d,
				"failed", err != nil,
			)
		}),
	)

	// Nothing ran; a table of zeros would only hide the error.
	if runErr != nil && stats.Workers == 0 {
		return runErr
	}

	if summary, _ := cmd.Flags().GetBool("summary"); summary {
		fmt.Fprintln(cmd.OutOrStdout(), renderSummary(stats))
	}
	printOutcome(cmd, stats, runErr, logger)

	if runErr != nil {
		return fmt.Errorf("search finished with errors: %w", runErr)
	}
	return nil
}

// applyFlags overrides file values with flags the user actually set.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("dir-queue") {
		cfg.Queues.Directories, _ = flags.GetInt("dir-queue")
	}
	if flags.Changed("results-queue") {
		cfg.Queues.Results, _ = flags.GetInt("results-queue")
	}
	if flags.Changed("on-copy-error") {
		cfg.CopyErrors, _ = flags.GetString("on-copy-error")
	}
	if flags.Changed("include-root") {
		cfg.IncludeRoot, _ = flags.GetBool("include-root")
	}
	if flags.Changed("log-level") {
		cfg.Log.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-format") {
		cfg.Log.Format, _ = flags.GetString("log-format")
	}
	return cfg.Validate()
}

func parsePoolSize(name, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer, got %q",
			disksearch.ErrInvalidWorkers, name, value)
	}
	return n, nil
}

func printOutcome(cmd *cobra.Command, stats disksearch.Stats, runErr error, logger *slog.Logger) {
	w := cmd.OutOrStdout()
	if runErr == nil {
		color.New(color.FgGreen).Fprintf(w, "Copied %d of %d matching files\n", stats.Copied, stats.Matched)
		return
	}

	color.New(color.FgRed).Fprintf(w, "Copied %d of %d matching files, %d worker error(s)\n",
		stats.Copied, stats.Matched, len(disksearch.AllWorkerErrors(runErr)))
	for _, we := range disksearch.AllWorkerErrors(runErr) {
		logger.Error("worker failed", "worker", we.Worker.Name, "error", we.Err)
	}
	if failed := disksearch.FailedCopies(runErr); len(failed) > 0 {
		logger.Warn("files not copied", "count", len(failed), "first", failed[0].Src)
	}
}
