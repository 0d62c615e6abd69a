package movie_test

import (
	"encoding/json"
	"reflect"
	"testing"

	"filmoteca/internal/movie"
)

func TestCloneIsDeep(t *testing.T) {
	rec := movie.New("1")
	rec.Genres = []string{"Drama"}
	rec.Image = movie.StringPtr("tag-a")

	clone := rec.Clone()
	clone.Genres[0] = "Comedy"
	*clone.Image = "tag-b"

	if rec.Genres[0] != "Drama" {
		t.Fatalf("clone shares genres slice")
	}
	if rec.ImageTag() != "tag-a" {
		t.Fatalf("clone shares image pointer")
	}
}

func TestRecordJSONKeys(t *testing.T) {
	rec := movie.New("42")
	rec.ExternalID = "tt000042"
	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"id", "imdbId", "title", "originalTitle", "duration", "year", "studio", "overview",
		"criticRating", "audienceRating", "genres", "actors", "directors", "countries", "image", "videoFormat", "created"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("missing key %q", key)
		}
	}
	if raw["image"] != nil {
		t.Fatalf("expected null image, got %v", raw["image"])
	}
	if raw["criticRating"] != float64(-1) {
		t.Fatalf("expected -1 critic rating, got %v", raw["criticRating"])
	}

	var back movie.Record
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(back, rec) {
		t.Fatalf("round trip mismatch:\n got %#v\nwant %#v", back, rec)
	}
}

func TestLabel(t *testing.T) {
	if got := movie.Label("Heat", 1995); got != "Heat (1995)" {
		t.Fatalf("got %q", got)
	}
	if got := movie.Label("Heat", 0); got != "Heat" {
		t.Fatalf("got %q", got)
	}
}
