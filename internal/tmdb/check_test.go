package tmdb_test

import (
	"slices"
	"testing"

	"filmoteca/internal/movie"
	"filmoteca/internal/testsupport"
	"filmoteca/internal/tmdb"
)

func TestCheckAcceptsCompleteMovie(t *testing.T) {
	m, report := tmdb.Check(testsupport.MustJSON(t, testsupport.TMDbMovie("Interstellar")))
	if !report.Valid() {
		t.Fatalf("expected valid report, got %v", report.Issues)
	}
	if m.Title != "Interstellar" || m.Runtime != 169 {
		t.Fatalf("unexpected movie: %#v", m)
	}
	if report.Label != "Interstellar (2014)" {
		t.Fatalf("unexpected label %q", report.Label)
	}
}

func TestCheckReportsEveryInvalidField(t *testing.T) {
	payload := testsupport.TMDbMovie("Interstellar")
	payload["release_date"] = "soon"
	payload["runtime"] = 0
	payload["overview"] = ""
	delete(payload, "vote_average")
	payload["production_countries"] = []any{map[string]any{"iso_3166_1": "USA"}}
	payload["credits"] = map[string]any{
		"cast": []any{map[string]any{"character": "Cooper"}},
		"crew": []any{map[string]any{"name": "Hans Zimmer", "job": "Original Music Composer"}},
	}

	m, report := tmdb.Check(testsupport.MustJSON(t, payload))
	if m != nil {
		t.Fatal("expected no movie for invalid payload")
	}
	fields := []string{
		"release_date",
		"runtime",
		"overview",
		"vote_average",
		"production_countries.0.iso_3166_1",
		"credits.cast.0.name",
		"credits.crew",
	}
	for _, field := range fields {
		if !report.Has(field) {
			t.Errorf("expected issue for %s, got %v", field, report.Issues)
		}
	}
}

func TestCheckRequiresCredits(t *testing.T) {
	payload := testsupport.TMDbMovie("Heat")
	delete(payload, "credits")

	_, report := tmdb.Check(testsupport.MustJSON(t, payload))
	if !report.Has("credits") {
		t.Fatalf("expected credits issue, got %v", report.Issues)
	}
	if report.Has("credits.crew") {
		t.Fatalf("director check should not run without credits: %v", report.Issues)
	}
}

func TestEnrichCopiesFilmDatabaseFields(t *testing.T) {
	m, report := tmdb.Check(testsupport.MustJSON(t, testsupport.TMDbMovie("Interstellar")))
	if !report.Valid() {
		t.Fatalf("unexpected issues: %v", report.Issues)
	}
	base := movie.New("42")
	base.Title = "Interstellar"

	rec := m.Enrich(base)
	if rec.Year != 2014 {
		t.Fatalf("expected year 2014, got %d", rec.Year)
	}
	if rec.Duration != 169 || rec.AudienceRating != 8.4 {
		t.Fatalf("unexpected duration/audience: %d %v", rec.Duration, rec.AudienceRating)
	}
	if !slices.Equal(rec.Countries, []string{"US", "GB"}) {
		t.Fatalf("unexpected countries %v", rec.Countries)
	}
	if !slices.Equal(rec.Directors, []string{"Christopher Nolan"}) {
		t.Fatalf("unexpected directors %v", rec.Directors)
	}
	if base.Duration != 0 || len(base.Actors) != 0 {
		t.Fatal("Enrich must not modify its input")
	}
}

func TestEnrichCapsCredits(t *testing.T) {
	payload := testsupport.TMDbMovie("Ensemble")
	var cast, crew []any
	for _, name := range []string{"A", "B", "C", "D", "E", "F", "G"} {
		cast = append(cast, map[string]any{"name": "Actor " + name})
		crew = append(crew, map[string]any{"name": "Director " + name, "job": "Director"})
		crew = append(crew, map[string]any{"name": "Writer " + name, "job": "Screenplay"})
	}
	payload["credits"] = map[string]any{"cast": cast, "crew": crew}

	m, report := tmdb.Check(testsupport.MustJSON(t, payload))
	if !report.Valid() {
		t.Fatalf("unexpected issues: %v", report.Issues)
	}
	rec := m.Enrich(movie.New("1"))
	if want := []string{"Actor A", "Actor B", "Actor C", "Actor D", "Actor E"}; !slices.Equal(rec.Actors, want) {
		t.Fatalf("unexpected actors %v", rec.Actors)
	}
	if want := []string{"Director A", "Director B", "Director C", "Director D", "Director E"}; !slices.Equal(rec.Directors, want) {
		t.Fatalf("unexpected directors %v", rec.Directors)
	}
}

func TestYearUsesReleaseDatePrefix(t *testing.T) {
	cases := map[string]int{
		"2014-11-05": 2014,
		"1999":       1999,
		"2001-":      2001,
		"":           0,
	}
	for date, want := range cases {
		if got := (tmdb.Movie{ReleaseDate: date}).Year(); got != want {
			t.Errorf("Year(%q) = %d, want %d", date, got, want)
		}
	}
}
