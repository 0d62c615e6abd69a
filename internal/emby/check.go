package emby

import (
	"encoding/json"
	"errors"
	"fmt"

	"filmoteca/internal/movie"
	"filmoteca/internal/validation"
)

// SourceName labels Emby diagnostics.
const SourceName = "emby"

var itemSchema = validation.MustCompile(SourceName, `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["Id", "Name", "ProductionYear", "ProviderIds", "OriginalTitle", "Genres", "Studios", "ImageTags", "MediaSources", "DateCreated"],
	"properties": {
		"Id": {"type": "string", "minLength": 1},
		"Name": {"type": "string", "minLength": 1},
		"ProductionYear": {"type": "integer", "exclusiveMinimum": 0},
		"OriginalTitle": {"type": "string", "minLength": 1},
		"ProviderIds": {
			"type": "object",
			"required": ["IMDB"],
			"properties": {"IMDB": {"type": "string", "minLength": 1}}
		},
		"Genres": {"type": "array", "items": {"type": "string"}},
		"Studios": {
			"type": "array",
			"minItems": 1,
			"items": [{
				"type": "object",
				"required": ["Name"],
				"properties": {"Name": {"type": "string", "minLength": 1}}
			}]
		},
		"ImageTags": {
			"type": "object",
			"required": ["Primary"],
			"properties": {"Primary": {"type": "string", "minLength": 1}}
		},
		"MediaSources": {
			"type": "array",
			"minItems": 1,
			"items": [{
				"type": "object",
				"required": ["MediaStreams"],
				"properties": {"MediaStreams": {
					"type": "array",
					"items": {
						"type": "object",
						"properties": {
							"Type": {"type": "string"},
							"DisplayTitle": {"type": "string"}
						}
					}
				}}
			}]
		},
		"CriticRating": {"type": ["number", "null"]},
		"DateCreated": {"type": "string", "minLength": 1}
	}
}`)

// Check validates a raw Emby item. The decoded item is returned only when the
// report is valid.
func Check(raw []byte) (*Item, *validation.Report) {
	report := validation.NewReport(SourceName)
	report.Label = rawLabel(raw)
	itemSchema.Check(raw, report)

	// encoding/json keeps decoding past type mismatches, so the semantic checks
	// below still see every field the schema accepted.
	var item Item
	decodeErr := json.Unmarshal(raw, &item)
	readable := !report.Has("(root)")

	if readable && !report.Has("MediaSources") {
		if stream, ok := item.videoStream(); !ok {
			report.Add("MediaSources.0.MediaStreams", "no stream with Type \"Video\"")
		} else if stream.DisplayTitle == "" {
			report.Add("MediaSources.0.MediaStreams", "video stream has no DisplayTitle")
		}
	}
	if readable && !report.Has("DateCreated") {
		if _, err := parseCreated(item.DateCreated); err != nil {
			report.Add("DateCreated", fmt.Sprintf("unparseable timestamp %q", item.DateCreated))
		}
	}
	// The schema types every field Record reads, so a type mismatch left over
	// here sits in a field nothing reads.
	var typeErr *json.UnmarshalTypeError
	if decodeErr != nil && !errors.As(decodeErr, &typeErr) && report.Valid() {
		report.Add("(root)", decodeErr.Error())
	}

	if !report.Valid() {
		return nil, report
	}
	return &item, report
}

// rawLabel builds a "Name (Year)" label from whatever the payload offers.
func rawLabel(raw []byte) string {
	var probe struct {
		ID             any `json:"Id"`
		Name           any `json:"Name"`
		ProductionYear any `json:"ProductionYear"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return "unreadable item"
	}
	name, _ := probe.Name.(string)
	year, _ := probe.ProductionYear.(float64)
	if name == "" {
		if id, ok := probe.ID.(string); ok && id != "" {
			return "item " + id
		}
		return "unnamed item"
	}
	return movie.Label(name, int(year))
}
