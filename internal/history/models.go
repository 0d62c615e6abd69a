package history

import (
	"strings"
	"time"
)

// Status is the outcome of a scrape run.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Run is one row of the ledger.
type Run struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	Status     Status
	Error      string

	PrimaryItems    int
	InvalidItems    int
	NewMovies       int
	ReusedMovies    int
	DroppedMovies   int
	RetainedMovies  int
	RatingRefreshes int
	ImageChanges    int
	RatingFailures  int
	Records         int

	ThumbsCreated int
	ThumbsFailed  int
	ThumbsDeleted int
}

// Duration is the wall time the run took.
func (r Run) Duration() time.Duration {
	if r.FinishedAt.Before(r.StartedAt) {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// ShortID is the leading segment of the run id, enough for tables.
func (r Run) ShortID() string {
	if idx := strings.IndexByte(r.ID, '-'); idx > 0 {
		return r.ID[:idx]
	}
	return r.ID
}
