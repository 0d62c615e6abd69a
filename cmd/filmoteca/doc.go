// Package main hosts the filmoteca CLI entrypoint and command graph.
//
// The Cobra command tree resolves configuration once, then hands off to the
// internal packages: scrape refreshes movies.json and the thumbnails, show
// and stats read the stored catalog, history lists past runs from the
// ledger, and serve publishes the catalog over HTTP for the display layer.
//
// Keep this package lean: add behaviour to the internal packages first and
// surface it here through commands or flags.
package main
