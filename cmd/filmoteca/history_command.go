package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"filmoteca/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent scrape runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			ledger, err := history.Open(cfg)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer ledger.Close()

			runs, err := ledger.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, listOrEmpty(runs))
			}
			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No scrape runs recorded")
				return nil
			}
			fmt.Fprintln(out, renderHistoryTable(runs))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of runs to list (0 for all)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print runs as JSON")
	return cmd
}

func renderHistoryTable(runs []history.Run) string {
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		status := string(run.Status)
		if run.Error != "" {
			status += ": " + run.Error
		}
		rows = append(rows, []string{
			run.ShortID(),
			run.StartedAt.Local().Format("2006-01-02 15:04"),
			run.Duration().Round(time.Second).String(),
			strconv.Itoa(run.Records),
			strconv.Itoa(run.NewMovies),
			strconv.Itoa(run.DroppedMovies),
			fmt.Sprintf("%d/%d", run.ThumbsCreated, run.ThumbsFailed),
			status,
		})
	}
	return renderTable(
		[]string{"Run", "Started", "Took", "Movies", "New", "Dropped", "Thumbs +/!", "Status"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight, alignLeft},
	)
}
