package omdb

import (
	"encoding/json"
	"fmt"

	"filmoteca/internal/validation"
)

// SourceName labels OMDb diagnostics.
const SourceName = "omdb"

var titleSchema = validation.MustCompile(SourceName, `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["Title", "Year"],
	"properties": {
		"Title": {"type": "string", "minLength": 1},
		"Year": {"type": "string", "minLength": 1},
		"Ratings": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"Source": {"type": "string"},
					"Value": {"type": "string"}
				}
			}
		}
	}
}`)

// Check validates a raw title payload. A title is only valid when it carries
// a Rotten Tomatoes score between 0 and 100.
func Check(raw []byte) (*Title, *validation.Report) {
	report := validation.NewReport(SourceName)
	var title Title
	decodeErr := json.Unmarshal(raw, &title)
	report.Label = fmt.Sprintf("%s (%s)", orUnknown(title.Title), orUnknown(title.Year))
	titleSchema.Check(raw, report)

	if !report.Has("(root)") && !report.Has("Ratings") {
		if _, ok := title.RottenTomatoes(); !ok {
			report.Add("Ratings", "no Rotten Tomatoes score between 0 and 100")
		}
	}
	if decodeErr != nil && report.Valid() {
		report.Add("(root)", decodeErr.Error())
	}

	if !report.Valid() {
		return nil, report
	}
	return &title, report
}

func orUnknown(value string) string {
	if value == "" {
		return "?"
	}
	return value
}
