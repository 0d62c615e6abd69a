// Package scrape runs one full catalog refresh: it checks the required
// settings, takes the single-run lock, reconciles the media server listing
// with the stored catalog, writes movies.json, syncs thumbnails, and records
// the run in the history ledger.
package scrape
