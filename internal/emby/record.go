package emby

import (
	"fmt"
	"regexp"
	"time"

	"filmoteca/internal/movie"
)

// subMillis matches fractional seconds longer than three digits before the
// UTC marker, e.g. ".1234567Z".
var subMillis = regexp.MustCompile(`(\.\d{3})\d*Z$`)

// Record maps a validated item onto a new canonical record. Enrichment-only
// fields keep their "not yet enriched" defaults.
func (i Item) Record() movie.Record {
	rec := movie.New(i.ID)
	rec.ExternalID = i.ExternalID()
	rec.Title = i.Name
	rec.OriginalTitle = i.OriginalTitle
	rec.Year = i.ProductionYear
	if len(i.Studios) > 0 {
		rec.Studio = movie.CanonicalStudio(i.Studios[0].Name)
	}
	// A reported 0 is a real score, not an absent one.
	if i.CriticRating != nil {
		rec.CriticRating = movie.RatingOf(*i.CriticRating / 10)
	}
	if len(i.Genres) > 0 {
		rec.Genres = append([]string(nil), i.Genres...)
	}
	if tag := i.PrimaryImageTag(); tag != "" {
		rec.Image = movie.StringPtr(tag)
	}
	if stream, ok := i.videoStream(); ok {
		rec.VideoFormat = stream.DisplayTitle
	}
	if created, err := parseCreated(i.DateCreated); err == nil {
		rec.Created = created.UnixMilli()
	}
	return rec
}

// parseCreated truncates sub-millisecond digits and parses the timestamp.
func parseCreated(value string) (time.Time, error) {
	trimmed := subMillis.ReplaceAllString(value, "${1}Z")
	parsed, err := time.Parse(time.RFC3339Nano, trimmed)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse DateCreated %q: %w", value, err)
	}
	return parsed, nil
}
