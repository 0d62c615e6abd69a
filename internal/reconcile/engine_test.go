package reconcile_test

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"slices"
	"testing"
	"time"

	"filmoteca/internal/logging"
	"filmoteca/internal/movie"
	"filmoteca/internal/reconcile"
	"filmoteca/internal/testsupport"
)

type fakeCatalog struct {
	records []movie.Record
	err     error
}

func (f *fakeCatalog) Load() ([]movie.Record, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]movie.Record, 0, len(f.records))
	for _, rec := range f.records {
		out = append(out, rec.Clone())
	}
	return out, nil
}

type fakePrimary struct {
	items []json.RawMessage
	err   error
}

func (f *fakePrimary) ListMovies(context.Context) ([]json.RawMessage, error) {
	return f.items, f.err
}

// fakeLookup serves both the film database and the ratings fakes.
type fakeLookup struct {
	payloads map[string][]byte
	failures map[string]error
	calls    []string
}

func newLookup() *fakeLookup {
	return &fakeLookup{payloads: map[string][]byte{}, failures: map[string]error{}}
}

func (f *fakeLookup) get(id string) ([]byte, error) {
	f.calls = append(f.calls, id)
	if err := f.failures[id]; err != nil {
		return nil, err
	}
	if payload, ok := f.payloads[id]; ok {
		return payload, nil
	}
	return nil, errors.New("status 404")
}

type fakeFilms struct{ *fakeLookup }

func (f fakeFilms) Movie(_ context.Context, id string) ([]byte, error) { return f.get(id) }

type fakeRatings struct{ *fakeLookup }

func (f fakeRatings) Title(_ context.Context, id string) ([]byte, error) { return f.get(id) }

type fixture struct {
	catalog *fakeCatalog
	primary *fakePrimary
	films   *fakeLookup
	ratings *fakeLookup
}

func newFixture() *fixture {
	return &fixture{
		catalog: &fakeCatalog{},
		primary: &fakePrimary{},
		films:   newLookup(),
		ratings: newLookup(),
	}
}

// addMovie registers a movie that every source knows about.
func (f *fixture) addMovie(t *testing.T, id, imdbID, tag, rottenTomatoes string) map[string]any {
	t.Helper()
	item := testsupport.EmbyItem(id, imdbID, tag)
	f.primary.items = append(f.primary.items, testsupport.MustJSON(t, item))
	f.films.payloads[imdbID] = testsupport.MustJSON(t, testsupport.TMDbMovie("Movie "+id))
	f.ratings.payloads[imdbID] = testsupport.MustJSON(t, testsupport.OMDbRatings("Movie "+id, rottenTomatoes))
	return item
}

func (f *fixture) setPrimary(t *testing.T, items ...map[string]any) {
	t.Helper()
	f.primary.items = nil
	for _, item := range items {
		f.primary.items = append(f.primary.items, testsupport.MustJSON(t, item))
	}
}

func (f *fixture) run(t *testing.T) reconcile.Result {
	t.Helper()
	engine := reconcile.NewEngine(f.catalog, f.primary, fakeFilms{f.films}, fakeRatings{f.ratings}, logging.NewNop())
	result, err := engine.Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	return result
}

func TestRunBuildsEnrichedRecord(t *testing.T) {
	f := newFixture()
	f.addMovie(t, "42", "tt000042", "abc", "75%")

	result := f.run(t)
	if len(result.Records) != 1 {
		t.Fatalf("expected one record, got %d", len(result.Records))
	}
	want := movie.Record{
		ID:             "42",
		ExternalID:     "tt000042",
		Title:          "Movie 42",
		OriginalTitle:  "Original 42",
		Duration:       169,
		Year:           2014,
		Studio:         "Warner Bros. Pictures",
		Overview:       "A team travels through a wormhole.",
		CriticRating:   movie.RatingOf(7.5),
		AudienceRating: 8.4,
		Genres:         []string{"Drama", "Crime"},
		Actors:         []string{"Matthew McConaughey", "Anne Hathaway"},
		Directors:      []string{"Christopher Nolan"},
		Countries:      []string{"US", "GB"},
		Image:          movie.StringPtr("abc"),
		VideoFormat:    "1080p H264",
		Created:        time.Date(2020, 1, 2, 3, 4, 5, 123_000_000, time.UTC).UnixMilli(),
	}
	if got := result.Records[0]; !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected record\n got: %+v\nwant: %+v", got, want)
	}
	if result.Stats.New != 1 || result.Stats.RatingsFetched != 1 || len(result.Superseded) != 0 {
		t.Fatalf("unexpected stats %+v superseded %v", result.Stats, result.Superseded)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	f := newFixture()
	f.addMovie(t, "1", "tt1", "a", "90%")
	f.addMovie(t, "2", "tt2", "b", "")

	first := f.run(t)
	f.catalog.records = first.Records
	f.films.calls, f.ratings.calls = nil, nil

	second := f.run(t)
	if !reflect.DeepEqual(first.Records, second.Records) {
		t.Fatalf("second run changed records\nfirst: %+v\nsecond: %+v", first.Records, second.Records)
	}
	if len(second.Superseded) != 0 {
		t.Fatalf("unexpected superseded tags %v", second.Superseded)
	}
	if len(f.films.calls) != 0 || len(f.ratings.calls) != 0 {
		t.Fatalf("expected no enrichment calls, got films=%v ratings=%v", f.films.calls, f.ratings.calls)
	}
	if second.Stats.Reused != 2 || second.Stats.New != 0 {
		t.Fatalf("unexpected stats %+v", second.Stats)
	}
}

func TestRunRefreshesOnlyCriticRating(t *testing.T) {
	f := newFixture()
	item := f.addMovie(t, "1", "tt1", "a", "75%")
	prior := f.run(t).Records[0]
	f.catalog.records = []movie.Record{prior}

	item["CriticRating"] = 75
	f.setPrimary(t, item)
	if got := f.run(t); got.Stats.RatingRefreshes != 0 || !reflect.DeepEqual(got.Records[0], prior) {
		t.Fatalf("equal primary rating must not refresh: %+v", got.Stats)
	}

	item["CriticRating"] = 90
	f.setPrimary(t, item)
	result := f.run(t)
	want := prior.Clone()
	want.CriticRating = movie.RatingOf(9)
	if !reflect.DeepEqual(result.Records[0], want) {
		t.Fatalf("unexpected refreshed record\n got: %+v\nwant: %+v", result.Records[0], want)
	}
	if result.Stats.RatingRefreshes != 1 {
		t.Fatalf("expected one rating refresh, got %+v", result.Stats)
	}
}

func TestRunSupersedesChangedImageOnce(t *testing.T) {
	f := newFixture()
	item := f.addMovie(t, "1", "tt1", "old", "75%")
	f.catalog.records = f.run(t).Records

	item["ImageTags"] = map[string]any{"Primary": "new"}
	f.setPrimary(t, item)
	result := f.run(t)
	if !slices.Equal(result.Superseded, []string{"old"}) {
		t.Fatalf("expected old tag superseded, got %v", result.Superseded)
	}
	if got := result.Records[0].ImageTag(); got != "new" {
		t.Fatalf("expected new image tag, got %q", got)
	}

	f.catalog.records = result.Records
	if again := f.run(t); len(again.Superseded) != 0 {
		t.Fatalf("expected no superseded tags on rerun, got %v", again.Superseded)
	}
}

func TestRunDropsMoviesWithoutFilmDetails(t *testing.T) {
	f := newFixture()
	f.addMovie(t, "1", "tt1", "a", "75%")
	f.addMovie(t, "2", "tt2", "b", "75%")
	f.addMovie(t, "3", "tt3", "c", "75%")
	f.films.failures["tt2"] = errors.New("connection refused")
	details := testsupport.TMDbMovie("Movie 3")
	details["credits"] = map[string]any{"cast": []any{}, "crew": []any{}}
	f.films.payloads["tt3"] = testsupport.MustJSON(t, details)

	result := f.run(t)
	if len(result.Records) != 1 || result.Records[0].ID != "1" {
		t.Fatalf("expected only movie 1, got %+v", result.Records)
	}
	if result.Stats.Dropped != 2 {
		t.Fatalf("expected two dropped movies, got %+v", result.Stats)
	}
	if slices.Contains(f.ratings.calls, "tt2") {
		t.Fatal("dropped movie must not be rated")
	}
}

func TestRunKeepsUnknownRatingOnFetchFailure(t *testing.T) {
	f := newFixture()
	f.addMovie(t, "1", "tt1", "a", "75%")
	f.ratings.failures["tt1"] = errors.New("timeout")

	result := f.run(t)
	rec := result.Records[0]
	if !rec.CriticRating.IsUnknown() || rec.CriticRating.Sentinel() != -1 {
		t.Fatalf("expected unknown rating, got %v", rec.CriticRating)
	}
	if result.Stats.RatingFailures != 1 {
		t.Fatalf("expected one rating failure, got %+v", result.Stats)
	}

	delete(f.ratings.failures, "tt1")
	f.catalog.records = result.Records
	retried := f.run(t)
	if got, ok := retried.Records[0].CriticRating.Value(); !ok || got != 7.5 {
		t.Fatalf("expected rating fetched on retry, got %v", retried.Records[0].CriticRating)
	}
}

func TestRunMarksMissingRatingAsNoData(t *testing.T) {
	f := newFixture()
	f.addMovie(t, "1", "tt1", "a", "")

	result := f.run(t)
	if got := result.Records[0].CriticRating.Sentinel(); got != -2 {
		t.Fatalf("expected no-data sentinel, got %v", got)
	}
	if result.Stats.RatingsNoData != 1 {
		t.Fatalf("unexpected stats %+v", result.Stats)
	}

	f.catalog.records = result.Records
	f.ratings.calls = nil
	f.run(t)
	if len(f.ratings.calls) != 0 {
		t.Fatalf("no-data rating must not be fetched again, got %v", f.ratings.calls)
	}
}

func TestRunRetainsMoviesMissingUpstream(t *testing.T) {
	f := newFixture()
	gone := movie.New("99")
	gone.Title = "Gone"
	gone.CriticRating = movie.RatingOf(5)
	f.catalog.records = []movie.Record{gone}
	f.addMovie(t, "1", "tt1", "a", "75%")

	result := f.run(t)
	ids := []string{}
	for _, rec := range result.Records {
		ids = append(ids, rec.ID)
	}
	if !slices.Equal(ids, []string{"1", "99"}) {
		t.Fatalf("expected primary order then retained records, got %v", ids)
	}
	if result.Stats.Retained != 1 {
		t.Fatalf("unexpected stats %+v", result.Stats)
	}
}

func TestRunSkipsInvalidAndDuplicateItems(t *testing.T) {
	f := newFixture()
	valid := f.addMovie(t, "1", "tt1", "a", "75%")
	broken := testsupport.EmbyItem("2", "tt2", "b")
	delete(broken, "ProviderIds")
	f.setPrimary(t, valid, broken, valid)

	result := f.run(t)
	if len(result.Records) != 1 {
		t.Fatalf("expected one record, got %d", len(result.Records))
	}
	if result.Stats.Primary != 3 || result.Stats.Invalid != 1 || result.Stats.Duplicates != 1 {
		t.Fatalf("unexpected stats %+v", result.Stats)
	}
}

func TestRunTreatsUnreadableCatalogAsEmpty(t *testing.T) {
	f := newFixture()
	f.addMovie(t, "1", "tt1", "a", "75%")
	f.catalog.err = errors.New("unexpected end of JSON input")

	result := f.run(t)
	if result.Stats.New != 1 || len(result.Records) != 1 {
		t.Fatalf("unexpected result %+v", result.Stats)
	}
}

func TestRunAbortsWhenPrimaryUnusable(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*testing.T, *fixture)
		want  error
	}{
		{
			name:  "fetch error",
			setup: func(_ *testing.T, f *fixture) { f.primary.err = errors.New("dial tcp: refused") },
			want:  reconcile.ErrPrimaryUnavailable,
		},
		{
			name:  "empty listing",
			setup: func(*testing.T, *fixture) {},
			want:  reconcile.ErrNoMovies,
		},
		{
			name: "only invalid items",
			setup: func(t *testing.T, f *fixture) {
				item := testsupport.EmbyItem("1", "tt1", "a")
				delete(item, "Name")
				f.setPrimary(t, item)
			},
			want: reconcile.ErrNoMovies,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			tt.setup(t, f)
			engine := reconcile.NewEngine(f.catalog, f.primary, fakeFilms{f.films}, fakeRatings{f.ratings}, logging.NewNop())
			_, err := engine.Run(context.Background())
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestRunStopsWhenCancelled(t *testing.T) {
	f := newFixture()
	f.addMovie(t, "1", "tt1", "a", "75%")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	engine := reconcile.NewEngine(f.catalog, f.primary, fakeFilms{f.films}, fakeRatings{f.ratings}, logging.NewNop())
	if _, err := engine.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
