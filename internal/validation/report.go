package validation

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"filmoteca/internal/logging"
)

// Issue describes one failing field of a payload.
type Issue struct {
	Field  string
	Reason string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Field, i.Reason)
}

// Report collects the issues found while validating one payload.
type Report struct {
	Source string
	Label  string
	Issues []Issue
}

// NewReport starts an empty report for the named source.
func NewReport(source string) *Report {
	return &Report{Source: source}
}

// Add records a failing field. Only the first reason per field is kept.
func (r *Report) Add(field, reason string) {
	field = strings.TrimSpace(field)
	if field == "" {
		field = rootField
	}
	if r.Has(field) {
		return
	}
	r.Issues = append(r.Issues, Issue{Field: field, Reason: reason})
}

// Has reports whether field already has an issue.
func (r *Report) Has(field string) bool {
	for _, issue := range r.Issues {
		if issue.Field == field {
			return true
		}
	}
	return false
}

// Valid reports whether the payload passed every check.
func (r *Report) Valid() bool {
	return r != nil && len(r.Issues) == 0
}

// Err joins the issues into a single error, or nil when valid.
func (r *Report) Err() error {
	if r.Valid() {
		return nil
	}
	errs := make([]error, 0, len(r.Issues))
	for _, issue := range r.Issues {
		errs = append(errs, errors.New(issue.String()))
	}
	return fmt.Errorf("%s payload %q invalid: %w", r.Source, r.Label, errors.Join(errs...))
}

// Log emits one warning per failing field.
func (r *Report) Log(logger *slog.Logger) {
	if r.Valid() || logger == nil {
		return
	}
	for _, issue := range r.Issues {
		logging.WarnWithContext(logger, "payload field invalid", "payload_invalid",
			logging.String(logging.FieldSource, r.Source),
			logging.String(logging.FieldItem, r.Label),
			logging.String("field", issue.Field),
			logging.String("reason", issue.Reason),
			logging.String(logging.FieldErrorHint, "fix the item metadata at the source and rerun"),
			logging.String(logging.FieldImpact, "item skipped for this stage"),
		)
	}
}
