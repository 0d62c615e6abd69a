// Package omdb looks up critic scores in the Open Movie Database. Only the
// Rotten Tomatoes rating is used.
package omdb
