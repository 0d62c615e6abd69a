// Package catalog persists the movie catalog document (movies.json) read by
// the display layer, and derives the sorted and aggregated views the CLI
// prints from it.
package catalog
