// Package movie defines the canonical movie record shared by the scraper,
// the persisted catalog, and the display layer.
//
// Records are plain values. Pipeline stages copy them with Clone and return
// new values instead of mutating shared state. The critic rating is an
// explicit tri-state (Rating) that still serializes to the legacy -1/-2
// sentinels so existing movies.json documents round-trip unchanged.
package movie
