// Package history keeps a SQLite ledger of scrape runs.
//
// Every scrape, successful or not, appends one row recording when it ran,
// how it ended, and the counters reported by reconciliation and thumbnail
// sync. The ledger is informational; nothing in a scrape reads it back.
//
// The schema lives in schema.sql. When columns change, update it and bump
// schemaVersion; older ledgers are rejected with ErrSchemaMismatch.
package history
