package movie

import "slices"

// MaxCredits caps the number of actors and directors kept per record.
const MaxCredits = 5

// Record is one normalized movie keyed by its media server id.
type Record struct {
	ID             string   `json:"id"`
	ExternalID     string   `json:"imdbId"`
	Title          string   `json:"title"`
	OriginalTitle  string   `json:"originalTitle"`
	Duration       int      `json:"duration"`
	Year           int      `json:"year"`
	Studio         string   `json:"studio"`
	Overview       string   `json:"overview"`
	CriticRating   Rating   `json:"criticRating"`
	AudienceRating float64  `json:"audienceRating"`
	Genres         []string `json:"genres"`
	Actors         []string `json:"actors"`
	Directors      []string `json:"directors"`
	Countries      []string `json:"countries"`
	Image          *string  `json:"image"`
	VideoFormat    string   `json:"videoFormat"`
	Created        int64    `json:"created"`
}

// New returns a record with the "not yet enriched" defaults applied.
func New(id string) Record {
	return Record{
		ID:             id,
		CriticRating:   UnknownRating(),
		AudienceRating: -1,
		Genres:         []string{},
		Actors:         []string{},
		Directors:      []string{},
		Countries:      []string{},
	}
}

// Clone returns a deep copy so callers can modify the result freely.
func (r Record) Clone() Record {
	out := r
	out.Genres = cloneStrings(r.Genres)
	out.Actors = cloneStrings(r.Actors)
	out.Directors = cloneStrings(r.Directors)
	out.Countries = cloneStrings(r.Countries)
	if r.Image != nil {
		tag := *r.Image
		out.Image = &tag
	}
	return out
}

// ImageTag returns the image tag or "" when the record has none.
func (r Record) ImageTag() string {
	if r.Image == nil {
		return ""
	}
	return *r.Image
}

// Label formats the record for log lines, e.g. "Heat (1995)".
func (r Record) Label() string {
	return Label(r.Title, r.Year)
}

// Enriched reports whether film database enrichment has populated the record.
func (r Record) Enriched() bool {
	return r.Duration > 0
}

// StringPtr is a convenience for building optional image tags.
func StringPtr(value string) *string {
	return &value
}

func cloneStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return slices.Clone(values)
}
