package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID identifies one scrape run.
	FieldRunID = "run_id"
	// FieldMovieID is the media server id of the movie being processed.
	FieldMovieID = "movie_id"
	// FieldItem is the human label ("Title (Year)") of the item being processed.
	FieldItem = "item"
	// FieldSource names the upstream source a line refers to (emby, tmdb, omdb).
	FieldSource = "source"
	// FieldEventType is a stable machine-readable name for the event.
	FieldEventType = "event_type"
	// FieldErrorHint tells the operator what to do next.
	FieldErrorHint = "error_hint"
	// FieldImpact is the user-facing consequence of a warning.
	FieldImpact = "impact"
)

// highlightKeys are printed first by the console handler, in this order.
var highlightKeys = []string{
	FieldItem,
	FieldSource,
	FieldEventType,
	"error",
	FieldErrorHint,
	FieldImpact,
}
