package testsupport

import (
	"encoding/json"
	"testing"
)

// EmbyItem returns a complete Emby movie item that tests can mutate before
// encoding with MustJSON.
func EmbyItem(id, imdbID, imageTag string) map[string]any {
	return map[string]any{
		"Id":             id,
		"Name":           "Movie " + id,
		"ProductionYear": 2001,
		"OriginalTitle":  "Original " + id,
		"ProviderIds":    map[string]any{"IMDB": imdbID},
		"Genres":         []any{"Drama", "Crime"},
		"Studios":        []any{map[string]any{"Name": "Warner Bros. Pictures", "Id": 1042}},
		"ImageTags":      map[string]any{"Primary": imageTag},
		"MediaSources": []any{map[string]any{
			"MediaStreams": []any{
				map[string]any{"Type": "Audio", "DisplayTitle": "English AAC"},
				map[string]any{"Type": "Video", "DisplayTitle": "1080p H264"},
			},
		}},
		"DateCreated": "2020-01-02T03:04:05.1234567Z",
	}
}

// TMDbMovie returns a complete TMDb movie details payload with credits.
func TMDbMovie(title string) map[string]any {
	return map[string]any{
		"title":        title,
		"release_date": "2014-11-05",
		"runtime":      169,
		"overview":     "A team travels through a wormhole.",
		"vote_average": 8.4,
		"production_countries": []any{
			map[string]any{"iso_3166_1": "US", "name": "United States of America"},
			map[string]any{"iso_3166_1": "GB", "name": "United Kingdom"},
		},
		"credits": map[string]any{
			"cast": []any{
				map[string]any{"name": "Matthew McConaughey"},
				map[string]any{"name": "Anne Hathaway"},
			},
			"crew": []any{
				map[string]any{"name": "Hoyte van Hoytema", "job": "Director of Photography"},
				map[string]any{"name": "Christopher Nolan", "job": "Director"},
			},
		},
	}
}

// OMDbRatings returns an OMDb payload carrying a Rotten Tomatoes score.
// An empty score omits the Rotten Tomatoes entry.
func OMDbRatings(title, rottenTomatoes string) map[string]any {
	ratings := []any{map[string]any{"Source": "Internet Movie Database", "Value": "8.7/10"}}
	if rottenTomatoes != "" {
		ratings = append(ratings, map[string]any{"Source": "Rotten Tomatoes", "Value": rottenTomatoes})
	}
	return map[string]any{
		"Title":   title,
		"Year":    "2014",
		"Ratings": ratings,
	}
}

// MustJSON encodes value or fails the test.
func MustJSON(t testing.TB, value any) []byte {
	t.Helper()
	data, err := json.Marshal(value)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return data
}
