package movie_test

import (
	"encoding/json"
	"testing"

	"filmoteca/internal/movie"
)

func TestRatingSentinelEncoding(t *testing.T) {
	cases := []struct {
		name   string
		rating movie.Rating
		want   string
	}{
		{"unknown", movie.UnknownRating(), "-1"},
		{"no data", movie.NoDataRating(), "-2"},
		{"value", movie.RatingOf(7.5), "7.5"},
		{"zero", movie.RatingOf(0), "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data, err := json.Marshal(tc.rating)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(data) != tc.want {
				t.Fatalf("got %s want %s", data, tc.want)
			}
			var decoded movie.Rating
			if err := json.Unmarshal(data, &decoded); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if !decoded.Equal(tc.rating) {
				t.Fatalf("decoded %v, want %v", decoded, tc.rating)
			}
		})
	}
}

func TestRatingNullDecodesAsUnknown(t *testing.T) {
	var r movie.Rating
	if err := json.Unmarshal([]byte("null"), &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !r.IsUnknown() {
		t.Fatalf("expected unknown, got state %v", r.State())
	}
}

func TestRatingString(t *testing.T) {
	if got := movie.RatingOf(8).String(); got != "8.0" {
		t.Fatalf("got %q", got)
	}
	if got := movie.NoDataRating().String(); got != "–" {
		t.Fatalf("got %q", got)
	}
}
