package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"filmoteca/internal/catalog"
	"filmoteca/internal/movie"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var (
		sortFlag   string
		ascending  bool
		descending bool
		latest     int
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "List the movies in the stored catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if ascending && descending {
				return fmt.Errorf("--asc and --desc are mutually exclusive")
			}
			key, err := catalog.ParseSortKey(sortFlag)
			if err != nil {
				return err
			}

			records, err := catalog.NewStore(cfg.Paths.CatalogFile).Load()
			if err != nil {
				return fmt.Errorf("load catalog: %w", err)
			}

			if latest > 0 {
				records = catalog.Latest(records, latest)
			} else {
				order := key.DefaultAscending()
				switch {
				case ascending:
					order = true
				case descending:
					order = false
				}
				records = catalog.NewSorter(cfg.TMDB.Language).Sort(records, key, order)
			}

			if jsonOutput {
				return writeJSON(cmd, listOrEmpty(records))
			}
			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "Catalog is empty; run `filmoteca scrape` first")
				return nil
			}
			fmt.Fprintln(out, renderMovieTable(records))
			return nil
		},
	}

	cmd.Flags().StringVarP(&sortFlag, "sort", "s", string(catalog.SortTitle), "Sort by title, year, critic or audience")
	cmd.Flags().BoolVar(&ascending, "asc", false, "Sort ascending")
	cmd.Flags().BoolVar(&descending, "desc", false, "Sort descending")
	cmd.Flags().IntVar(&latest, "latest", 0, "Show only the N most recently added movies")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print records as JSON")
	return cmd
}

func renderMovieTable(records []movie.Record) string {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			rec.Title,
			yearCell(rec.Year),
			rec.CriticRating.String(),
			audienceCell(rec.AudienceRating),
			durationCell(rec.Duration),
			rec.Studio,
			addedCell(rec.Created),
		})
	}
	return renderTableSpec(tableSpec{
		headers: []string{"Title", "Year", "Critic", "Audience", "Runtime", "Studio", "Added"},
		aligns:  []columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight, alignLeft, alignLeft},
		rows:    rows,
		footer:  []string{fmt.Sprintf("%d movies", len(records))},
	})
}

func yearCell(year int) string {
	if year <= 0 {
		return "–"
	}
	return strconv.Itoa(year)
}

func audienceCell(value float64) string {
	if value < 0 {
		return "–"
	}
	return strconv.FormatFloat(value, 'f', 1, 64)
}

func durationCell(minutes int) string {
	if minutes <= 0 {
		return "–"
	}
	return fmt.Sprintf("%dh%02dm", minutes/60, minutes%60)
}

func addedCell(created int64) string {
	if created <= 0 {
		return "–"
	}
	return time.UnixMilli(created).UTC().Format("2006-01-02")
}
