package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"filmoteca/internal/history"
	"filmoteca/internal/logging"
	"filmoteca/internal/scrape"
)

func newScrapeCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Refresh movies.json and thumbnails from Emby, TMDb and OMDb",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			opts := []scrape.Option{}
			ledger, err := history.Open(cfg)
			if err != nil {
				logging.WarnWithContext(logger, "history ledger unavailable", "history_open_failed",
					logging.Error(err),
					logging.String(logging.FieldImpact, "run will not be recorded in history"),
				)
			} else {
				defer ledger.Close()
				opts = append(opts, scrape.WithHistory(ledger))
			}

			summary, err := scrape.New(cfg, logger, opts...).Run(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, summary)
			}
			printScrapeSummary(cmd.OutOrStdout(), summary, shouldColorize(cmd.OutOrStdout()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the run summary as JSON")
	return cmd
}

func printScrapeSummary(out io.Writer, summary scrape.Summary, colorize bool) {
	stats := summary.Reconcile
	for _, line := range renderSectionHeader("Scrape "+summary.RunID, colorize) {
		fmt.Fprintln(out, line)
	}
	lines := []string{
		renderStatusLine("Catalog", statusOK, fmt.Sprintf("%d movies written to %s", summary.Records, summary.CatalogPath), colorize),
		renderStatusLine("New movies", statusInfo, strconv.Itoa(stats.New), colorize),
		renderStatusLine("Unchanged", statusInfo, strconv.Itoa(stats.Reused), colorize),
		renderStatusLine("Retained", statusInfo, strconv.Itoa(stats.Retained), colorize),
		renderStatusLine("Invalid items", countKind(stats.Invalid), strconv.Itoa(stats.Invalid), colorize),
		renderStatusLine("Dropped", countKind(stats.Dropped), strconv.Itoa(stats.Dropped), colorize),
		renderStatusLine("Rating updates", statusInfo, strconv.Itoa(stats.RatingRefreshes), colorize),
		renderStatusLine("Rating failures", countKind(stats.RatingFailures), strconv.Itoa(stats.RatingFailures), colorize),
		renderStatusLine("Thumbnails", countKind(summary.Thumbs.Failed), fmt.Sprintf("%d created, %d skipped, %d failed, %d deleted",
			summary.Thumbs.Created, summary.Thumbs.Skipped, summary.Thumbs.Failed, summary.Thumbs.Deleted), colorize),
		renderStatusLine("Elapsed", statusInfo, summary.Elapsed.Round(100*time.Millisecond).String(), colorize),
	}
	for _, line := range lines {
		fmt.Fprintln(out, line)
	}
}
