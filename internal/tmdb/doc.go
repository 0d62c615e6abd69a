// Package tmdb enriches new movies with descriptive metadata from The Movie
// Database.
//
// Client fetches a movie with its credits by IMDb id. Check validates the raw
// payload field by field and Movie.Enrich copies year, runtime, overview,
// audience rating, countries and the leading cast and directors onto a record.
package tmdb
