// Package thumbs keeps one poster thumbnail per image tag in sync with the
// catalog.
//
// Thumbnails are immutable by tag: a changed tag is a new file, and the file
// of the superseded tag is deleted. Renderer produces the fixed-size cover
// crop, and Backend abstracts where the files live (a local directory or an
// S3-compatible bucket).
package thumbs
