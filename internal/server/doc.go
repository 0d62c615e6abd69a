// Package server publishes the scraped catalog over HTTP for the display
// layer: the raw movies.json document, thumbnails by name, and sorted or
// aggregated JSON views of the catalog.
package server
