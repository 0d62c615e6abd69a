// Package config loads, normalizes, and validates filmoteca configuration.
//
// It supplies defaults, expands user paths (including tilde shortcuts), reads
// TOML files, and honours the environment variables the scraper has always
// used (EMBY_API_KEY, EMBY_MOVIES_PARENT_ID, TMDB_API_KEY, OMDB_API_KEY,
// LANGUAGE) as fallbacks. Validate checks structure only; the credentials a
// scrape needs are reported by RequiredForScrape so read-only commands work
// without them.
package config
