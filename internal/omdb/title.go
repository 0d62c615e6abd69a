package omdb

import (
	"strconv"
	"strings"
)

const sourceRottenTomatoes = "Rotten Tomatoes"

// Title is the subset of an OMDb title response used for enrichment.
type Title struct {
	Title   string   `json:"Title"`
	Year    string   `json:"Year"`
	Ratings []Rating `json:"Ratings"`
}

// Rating is one third-party score as reported by OMDb, e.g. "75%".
type Rating struct {
	Source string `json:"Source"`
	Value  string `json:"Value"`
}

// RottenTomatoes returns the Rotten Tomatoes score on the 0-100 scale.
func (t Title) RottenTomatoes() (int, bool) {
	for _, rating := range t.Ratings {
		if rating.Source != sourceRottenTomatoes {
			continue
		}
		score, ok := leadingInt(rating.Value)
		if !ok || score < 0 || score > 100 {
			return 0, false
		}
		return score, true
	}
	return 0, false
}

// leadingInt parses the integer prefix of value, so "75%" yields 75.
func leadingInt(value string) (int, bool) {
	value = strings.TrimSpace(value)
	end := 0
	if end < len(value) && (value[end] == '-' || value[end] == '+') {
		end++
	}
	digits := end
	for end < len(value) && value[end] >= '0' && value[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(value[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
