// Package validation gates raw provider payloads before any field is trusted.
//
// Each provider package describes the shape it needs as a JSON Schema document
// and layers semantic checks on top. Failures are collected per field into a
// Report so a single pass surfaces every problem with a payload instead of only
// the first one.
package validation
