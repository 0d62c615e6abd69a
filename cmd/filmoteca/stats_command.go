package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"filmoteca/internal/catalog"
)

func newStatsCommand(ctx *commandContext) *cobra.Command {
	var minGenre int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize the catalog by decade and genre",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if minGenre < 0 {
				return fmt.Errorf("--min-genre must not be negative")
			}
			records, err := catalog.NewStore(cfg.Paths.CatalogFile).Load()
			if err != nil {
				return fmt.Errorf("load catalog: %w", err)
			}
			summary := catalog.Summarize(records, minGenre, catalog.NewSorter(cfg.TMDB.Language))
			if jsonOutput {
				return writeJSON(cmd, summary)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Movies: %d\n", summary.Movies)
			fmt.Fprintf(out, "Total runtime: %s\n", durationCell(summary.TotalMinutes))
			if len(summary.Decades) > 0 {
				fmt.Fprintln(out, renderBuckets("Decades", "Decade", summary.Decades))
			}
			if len(summary.Genres) > 0 {
				fmt.Fprintln(out, renderBuckets("Genres", "Genre", summary.Genres))
			} else if summary.Movies > 0 {
				fmt.Fprintf(out, "No genre has %d or more movies\n", minGenre)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&minGenre, "min-genre", catalog.DefaultGenreThreshold, "Only list genres with at least this many movies")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the summary as JSON")
	return cmd
}

func renderBuckets(title, label string, buckets []catalog.Bucket) string {
	rows := make([][]string, 0, len(buckets))
	for _, bucket := range buckets {
		rows = append(rows, []string{bucket.Label, strconv.Itoa(bucket.Count)})
	}
	return renderTableSpec(tableSpec{
		title:   title,
		headers: []string{label, "Movies"},
		aligns:  []columnAlignment{alignLeft, alignRight},
		rows:    rows,
	})
}
