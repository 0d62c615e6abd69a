package movie_test

import (
	"testing"

	"filmoteca/internal/movie"
)

func TestCanonicalStudio(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Metro-Goldwyn-Mayer (MGM)", "Metro-Goldwyn-Mayer"},
		{"MGM Studios", "Metro-Goldwyn-Mayer"},
		{"Warner Bros. Entertainment", "Warner Bros. Pictures"},
		{"Twentieth Century Fox Film Corporation", "20th Century Studios"},
		{"20th Century Fox", "20th Century Studios"},
		{"A24", "A24"},
		{"warner bros", "warner bros"},
		// MGM rule is checked before the Warner Bros rule.
		{"MGM / Warner Bros", "Metro-Goldwyn-Mayer"},
		// Warner Bros rule is checked before the Fox rule.
		{"Warner Bros / 20th Century Fox", "Warner Bros. Pictures"},
	}
	for _, tc := range cases {
		if got := movie.CanonicalStudio(tc.in); got != tc.want {
			t.Errorf("CanonicalStudio(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCanonicalStudioIsIdempotent(t *testing.T) {
	for _, name := range []string{"Metro-Goldwyn-Mayer", "Warner Bros. Pictures", "20th Century Studios", "Pixar"} {
		once := movie.CanonicalStudio(name)
		if once != name {
			t.Fatalf("canonical name %q changed to %q", name, once)
		}
		if twice := movie.CanonicalStudio(once); twice != once {
			t.Fatalf("second pass changed %q to %q", once, twice)
		}
	}
}
