package catalog_test

import (
	"testing"

	"filmoteca/internal/catalog"
	"filmoteca/internal/movie"
)

func TestSummarizeFillsDecadeGaps(t *testing.T) {
	var records []movie.Record
	for i, year := range []int{1975, 1979, 1994, 2001} {
		rec := titled("m", year, movie.UnknownRating(), int64(i))
		rec.Duration = 100
		records = append(records, rec)
	}

	summary := catalog.Summarize(records, 1, nil)
	if summary.Movies != 4 || summary.TotalMinutes != 400 {
		t.Fatalf("unexpected totals %+v", summary)
	}
	want := []catalog.Bucket{
		{Key: "1970", Label: "1970s", Count: 2},
		{Key: "1980", Label: "1980s", Count: 0},
		{Key: "1990", Label: "1990s", Count: 1},
		{Key: "2000", Label: "2000s", Count: 1},
	}
	if len(summary.Decades) != len(want) {
		t.Fatalf("unexpected decades %+v", summary.Decades)
	}
	for i := range want {
		if summary.Decades[i] != want[i] {
			t.Fatalf("decade %d = %+v, want %+v", i, summary.Decades[i], want[i])
		}
	}
}

func TestSummarizeGenreThreshold(t *testing.T) {
	var records []movie.Record
	for i := range 3 {
		rec := titled("m", 2000, movie.UnknownRating(), int64(i))
		rec.Genres = []string{"Science Fiction", "drama"}
		if i == 0 {
			rec.Genres = append(rec.Genres, "Western")
		}
		records = append(records, rec)
	}
	records[1].Genres = []string{"Science-Fiction", "Drama"}

	summary := catalog.Summarize(records, 2, catalog.NewSorter("en"))
	if len(summary.Genres) != 2 {
		t.Fatalf("expected two genres above threshold, got %+v", summary.Genres)
	}
	if summary.Genres[0].Label != "Drama" || summary.Genres[0].Count != 3 {
		t.Fatalf("unexpected first genre %+v", summary.Genres[0])
	}
	if summary.Genres[1].Key != "science-fiction" || summary.Genres[1].Count != 3 {
		t.Fatalf("unexpected second genre %+v", summary.Genres[1])
	}
}

func TestSummarizeEmptyCatalog(t *testing.T) {
	summary := catalog.Summarize(nil, catalog.DefaultGenreThreshold, nil)
	if summary.Movies != 0 || summary.Decades != nil || len(summary.Genres) != 0 {
		t.Fatalf("unexpected summary %+v", summary)
	}
}
