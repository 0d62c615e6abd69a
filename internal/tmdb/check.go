package tmdb

import (
	"encoding/json"

	"filmoteca/internal/movie"
	"filmoteca/internal/validation"
)

// SourceName labels TMDb diagnostics.
const SourceName = "tmdb"

var movieSchema = validation.MustCompile(SourceName, `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["title", "release_date", "runtime", "overview", "vote_average", "production_countries", "credits"],
	"properties": {
		"title": {"type": "string", "minLength": 1},
		"release_date": {"type": "string", "pattern": "^\\d{4}"},
		"runtime": {"type": "integer", "exclusiveMinimum": 0},
		"overview": {"type": "string", "minLength": 1},
		"vote_average": {"type": "number", "exclusiveMinimum": 0},
		"production_countries": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["iso_3166_1"],
				"properties": {"iso_3166_1": {"type": "string", "minLength": 2, "maxLength": 2}}
			}
		},
		"credits": {
			"type": "object",
			"required": ["cast", "crew"],
			"properties": {
				"cast": {"type": "array", "items": {"$ref": "#/definitions/named"}},
				"crew": {"type": "array", "items": {"$ref": "#/definitions/named"}}
			}
		}
	},
	"definitions": {
		"named": {
			"type": "object",
			"required": ["name"],
			"properties": {"name": {"type": "string", "minLength": 1}}
		}
	}
}`)

// Check validates a raw movie payload. The decoded movie is returned only
// when the report is valid.
func Check(raw []byte) (*Movie, *validation.Report) {
	report := validation.NewReport(SourceName)
	report.Label = rawLabel(raw)
	movieSchema.Check(raw, report)

	var m Movie
	decodeErr := json.Unmarshal(raw, &m)
	readable := !report.Has("(root)")

	if readable && !report.Has("credits") && !report.Has("credits.crew") && !m.hasDirector() {
		report.Add("credits.crew", `no crew member with job "Director"`)
	}
	if decodeErr != nil && report.Valid() {
		report.Add("(root)", decodeErr.Error())
	}

	if !report.Valid() {
		return nil, report
	}
	return &m, report
}

func rawLabel(raw []byte) string {
	var probe struct {
		Title       any `json:"title"`
		ReleaseDate any `json:"release_date"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return "unreadable movie"
	}
	title, _ := probe.Title.(string)
	date, _ := probe.ReleaseDate.(string)
	return movie.Label(title, releaseYear(date))
}
