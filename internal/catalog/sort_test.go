package catalog_test

import (
	"testing"

	"filmoteca/internal/catalog"
	"filmoteca/internal/movie"
)

func titles(records []movie.Record) []string {
	out := make([]string, len(records))
	for i, rec := range records {
		out[i] = rec.Title
	}
	return out
}

func titled(title string, year int, critic movie.Rating, created int64) movie.Record {
	rec := movie.New(title)
	rec.Title = title
	rec.Year = year
	rec.CriticRating = critic
	rec.Created = created
	return rec
}

func TestSortByTitleIgnoresLeadingPunctuation(t *testing.T) {
	records := []movie.Record{
		titled("Zodiac", 2007, movie.UnknownRating(), 1),
		titled("¡Three Amigos!", 1986, movie.UnknownRating(), 2),
		titled("\"Alien\"", 1979, movie.UnknownRating(), 3),
		titled("batman", 1989, movie.UnknownRating(), 4),
	}
	sorter := catalog.NewSorter("en-US")

	got := titles(sorter.Sort(records, catalog.SortTitle, true))
	want := []string{"\"Alien\"", "batman", "¡Three Amigos!", "Zodiac"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected order %q, want %q", got, want)
		}
	}
	if records[0].Title != "Zodiac" {
		t.Fatal("Sort must not reorder its input")
	}
}

func TestSortByCriticPlacesSentinelsLowest(t *testing.T) {
	records := []movie.Record{
		titled("Unknown", 2000, movie.UnknownRating(), 1),
		titled("High", 2000, movie.RatingOf(9.1), 2),
		titled("NoData", 2000, movie.NoDataRating(), 3),
		titled("Low", 2000, movie.RatingOf(2.5), 4),
	}
	got := titles(catalog.NewSorter("").Sort(records, catalog.SortCritic, false))
	want := []string{"High", "Low", "Unknown", "NoData"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected order %q, want %q", got, want)
		}
	}
}

func TestLatestOrdersByCreation(t *testing.T) {
	records := []movie.Record{
		titled("Old", 2000, movie.UnknownRating(), 100),
		titled("Newest", 2000, movie.UnknownRating(), 300),
		titled("Middle", 2000, movie.UnknownRating(), 200),
	}
	got := titles(catalog.Latest(records, 2))
	if len(got) != 2 || got[0] != "Newest" || got[1] != "Middle" {
		t.Fatalf("unexpected latest %q", got)
	}
}

func TestParseSortKey(t *testing.T) {
	if key, err := catalog.ParseSortKey(" Year "); err != nil || key != catalog.SortYear {
		t.Fatalf("unexpected result %q %v", key, err)
	}
	if _, err := catalog.ParseSortKey("runtime"); err == nil {
		t.Fatal("expected error for unknown key")
	}
	if catalog.SortYear.DefaultAscending() || !catalog.SortTitle.DefaultAscending() {
		t.Fatal("unexpected default directions")
	}
}
