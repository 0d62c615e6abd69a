package catalog

import (
	"cmp"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"filmoteca/internal/movie"
)

// SortKey selects the column a listing is ordered by.
type SortKey string

const (
	SortTitle    SortKey = "title"
	SortYear     SortKey = "year"
	SortCritic   SortKey = "critic"
	SortAudience SortKey = "audience"
)

// SortKeys lists the accepted keys in display order.
var SortKeys = []SortKey{SortTitle, SortYear, SortCritic, SortAudience}

// ParseSortKey validates a user supplied sort key.
func ParseSortKey(value string) (SortKey, error) {
	key := SortKey(strings.ToLower(strings.TrimSpace(value)))
	if slices.Contains(SortKeys, key) {
		return key, nil
	}
	return "", fmt.Errorf("unknown sort key %q (want title, year, critic or audience)", value)
}

// DefaultAscending mirrors the display layer: titles ascend, numbers descend.
func (k SortKey) DefaultAscending() bool {
	return k == SortTitle
}

var leadingPunct = regexp.MustCompile(`^[^a-zA-Z0-9]+`)

// Sorter orders records using the collation rules of one language.
type Sorter struct {
	collator *collate.Collator
}

// NewSorter builds a sorter for a BCP 47 tag such as "es-ES". Unknown or
// empty tags fall back to the root collation.
func NewSorter(tag string) *Sorter {
	lang := language.Und
	if parsed, err := language.Parse(strings.TrimSpace(tag)); err == nil {
		lang = parsed
	}
	return &Sorter{collator: collate.New(lang, collate.IgnoreCase)}
}

// Sort returns a sorted copy of records. Sorting is stable so equal keys keep
// document order.
func (s *Sorter) Sort(records []movie.Record, key SortKey, ascending bool) []movie.Record {
	out := slices.Clone(records)
	compare := s.comparator(key)
	slices.SortStableFunc(out, func(a, b movie.Record) int {
		if ascending {
			return compare(a, b)
		}
		return compare(b, a)
	})
	return out
}

func (s *Sorter) comparator(key SortKey) func(a, b movie.Record) int {
	switch key {
	case SortYear:
		return func(a, b movie.Record) int { return cmp.Compare(a.Year, b.Year) }
	case SortCritic:
		return func(a, b movie.Record) int {
			return cmp.Compare(a.CriticRating.Sentinel(), b.CriticRating.Sentinel())
		}
	case SortAudience:
		return func(a, b movie.Record) int { return cmp.Compare(a.AudienceRating, b.AudienceRating) }
	default:
		return func(a, b movie.Record) int {
			return s.collator.CompareString(TitleSortKey(a.Title), TitleSortKey(b.Title))
		}
	}
}

// CompareStrings collates two display strings.
func (s *Sorter) CompareStrings(a, b string) int {
	return s.collator.CompareString(a, b)
}

// TitleSortKey drops leading characters that are not ASCII letters or digits,
// so "¡Three Amigos!" files under T.
func TitleSortKey(title string) string {
	return leadingPunct.ReplaceAllString(title, "")
}

// Latest returns up to n records, newest first by creation time.
func Latest(records []movie.Record, n int) []movie.Record {
	out := slices.Clone(records)
	slices.SortStableFunc(out, func(a, b movie.Record) int {
		return cmp.Compare(b.Created, a.Created)
	})
	if n >= 0 && n < len(out) {
		out = out[:n]
	}
	return out
}
