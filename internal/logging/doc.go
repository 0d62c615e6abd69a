// Package logging assembles the structured slog loggers used across filmoteca.
//
// It owns the console and JSON handlers, level and output plumbing, the
// standard field keys, and helpers that keep warning and error lines
// actionable by always carrying an event type, a hint, and an impact. A no-op
// logger is provided for tests and wiring code that cannot fail.
package logging
