package tmdb

import (
	"strconv"
	"strings"
)

// Movie is the subset of a TMDb movie details response (with credits
// appended) used for enrichment.
type Movie struct {
	Title               string    `json:"title"`
	ReleaseDate         string    `json:"release_date"`
	Runtime             int       `json:"runtime"`
	Overview            string    `json:"overview"`
	VoteAverage         float64   `json:"vote_average"`
	ProductionCountries []Country `json:"production_countries"`
	Credits             Credits   `json:"credits"`
}

// Country is one production country.
type Country struct {
	Code string `json:"iso_3166_1"`
	Name string `json:"name"`
}

// Credits holds the appended cast and crew lists.
type Credits struct {
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

// CastMember is one billed actor.
type CastMember struct {
	Name      string `json:"name"`
	Character string `json:"character,omitempty"`
}

// CrewMember is one crew credit.
type CrewMember struct {
	Name string `json:"name"`
	Job  string `json:"job"`
}

const jobDirector = "Director"

// Year returns the integer prefix of the release date, or 0 when it has none.
func (m Movie) Year() int {
	return releaseYear(m.ReleaseDate)
}

func (m Movie) hasDirector() bool {
	for _, member := range m.Credits.Crew {
		if member.Job == jobDirector {
			return true
		}
	}
	return false
}

func releaseYear(date string) int {
	head, _, _ := strings.Cut(strings.TrimSpace(date), "-")
	end := 0
	for end < len(head) && head[end] >= '0' && head[end] <= '9' {
		end++
	}
	year, err := strconv.Atoi(head[:end])
	if err != nil {
		return 0
	}
	return year
}
