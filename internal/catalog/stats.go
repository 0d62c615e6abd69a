package catalog

import (
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"filmoteca/internal/movie"
)

// DefaultGenreThreshold hides genres with fewer movies from summaries.
const DefaultGenreThreshold = 10

// Summary aggregates the catalog for the stats view.
type Summary struct {
	Movies       int      `json:"movies"`
	TotalMinutes int      `json:"totalMinutes"`
	Decades      []Bucket `json:"decades"`
	Genres       []Bucket `json:"genres"`
}

// Bucket is one labelled count.
type Bucket struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Summarize counts movies per decade (every decade between the oldest and
// newest, zero-filled) and per genre (only genres reaching minGenre).
func Summarize(records []movie.Record, minGenre int, sorter *Sorter) Summary {
	summary := Summary{Movies: len(records)}
	for _, rec := range records {
		summary.TotalMinutes += rec.Duration
	}
	summary.Decades = decadeBuckets(records)
	summary.Genres = genreBuckets(records, minGenre, sorter)
	return summary
}

// DecadeOf maps a year to the first year of its decade.
func DecadeOf(year int) int {
	return year / 10 * 10
}

func decadeBuckets(records []movie.Record) []Bucket {
	counts := map[int]int{}
	for _, rec := range records {
		if rec.Year <= 0 {
			continue
		}
		counts[DecadeOf(rec.Year)]++
	}
	if len(counts) == 0 {
		return nil
	}
	decades := make([]int, 0, len(counts))
	for decade := range counts {
		decades = append(decades, decade)
	}
	first, last := slices.Min(decades), slices.Max(decades)

	buckets := make([]Bucket, 0, (last-first)/10+1)
	for decade := first; decade <= last; decade += 10 {
		key := strconv.Itoa(decade)
		buckets = append(buckets, Bucket{Key: key, Label: key + "s", Count: counts[decade]})
	}
	return buckets
}

// GenreKey folds the genre spellings the media server emits onto one key.
func GenreKey(genre string) string {
	fields := strings.FieldsFunc(strings.ToLower(genre), func(r rune) bool {
		return r == ' ' || r == '-' || r == '_' || r == '&' || r == '/'
	})
	return strings.Join(fields, "-")
}

func genreBuckets(records []movie.Record, minGenre int, sorter *Sorter) []Bucket {
	titler := cases.Title(language.Und)
	index := map[string]int{}
	var buckets []Bucket
	for _, rec := range records {
		for _, genre := range rec.Genres {
			key := GenreKey(genre)
			if key == "" {
				continue
			}
			pos, ok := index[key]
			if !ok {
				pos = len(buckets)
				index[key] = pos
				buckets = append(buckets, Bucket{Key: key, Label: titler.String(strings.TrimSpace(genre))})
			}
			buckets[pos].Count++
		}
	}
	buckets = slices.DeleteFunc(buckets, func(b Bucket) bool { return b.Count < minGenre })
	if sorter == nil {
		sorter = NewSorter("")
	}
	slices.SortStableFunc(buckets, func(a, b Bucket) int {
		return sorter.CompareStrings(a.Label, b.Label)
	})
	return buckets
}
