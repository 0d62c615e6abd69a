package omdb

import "filmoteca/internal/movie"

// Enrich returns a copy of rec with its critic rating resolved. A nil title
// means the payload failed validation and the rating becomes NoData.
func Enrich(rec movie.Record, title *Title) movie.Record {
	out := rec.Clone()
	if title == nil {
		out.CriticRating = movie.NoDataRating()
		return out
	}
	score, ok := title.RottenTomatoes()
	if !ok {
		out.CriticRating = movie.NoDataRating()
		return out
	}
	out.CriticRating = movie.RatingOf(float64(score) / 10)
	return out
}
