package reconcile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"filmoteca/internal/emby"
	"filmoteca/internal/logging"
	"filmoteca/internal/movie"
	"filmoteca/internal/omdb"
	"filmoteca/internal/tmdb"
)

var (
	// ErrPrimaryUnavailable means the media server listing could not be fetched.
	ErrPrimaryUnavailable = errors.New("primary source unavailable")
	// ErrNoMovies means the listing held no item that passed validation.
	ErrNoMovies = errors.New("no valid movies from primary source")
)

// Catalog provides the records persisted by the previous run.
type Catalog interface {
	Load() ([]movie.Record, error)
}

// Primary lists the raw movie items of the media server.
type Primary interface {
	ListMovies(ctx context.Context) ([]json.RawMessage, error)
}

// FilmDatabase returns the raw film database payload for an IMDb id.
type FilmDatabase interface {
	Movie(ctx context.Context, externalID string) ([]byte, error)
}

// Ratings returns the raw ratings payload for an IMDb id.
type Ratings interface {
	Title(ctx context.Context, externalID string) ([]byte, error)
}

// Stats counts what happened during one run.
type Stats struct {
	Primary         int
	Invalid         int
	Duplicates      int
	Reused          int
	New             int
	Dropped         int
	RatingRefreshes int
	ImageChanges    int
	RatingsFetched  int
	RatingsNoData   int
	RatingFailures  int
	Retained        int
}

// Result is the outcome of a successful run.
type Result struct {
	Records    []movie.Record
	Superseded []string
	Stats      Stats
}

// Engine reconciles the primary listing against the stored catalog.
type Engine struct {
	catalog Catalog
	primary Primary
	films   FilmDatabase
	ratings Ratings
	logger  *slog.Logger
}

// NewEngine wires the engine's collaborators.
func NewEngine(catalog Catalog, primary Primary, films FilmDatabase, ratings Ratings, logger *slog.Logger) *Engine {
	return &Engine{
		catalog: catalog,
		primary: primary,
		films:   films,
		ratings: ratings,
		logger:  logging.NewComponentLogger(logger, "reconcile"),
	}
}

// Run performs one reconciliation pass. It returns ErrPrimaryUnavailable or
// ErrNoMovies when the listing cannot be used, and ctx.Err() when cancelled;
// in every error case nothing should be persisted.
func (e *Engine) Run(ctx context.Context) (Result, error) {
	logger := logging.WithContext(ctx, e.logger)

	previous, order := e.loadPrevious(logger)

	raw, err := e.primary.ListMovies(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Result{}, ctxErr
		}
		return Result{}, fmt.Errorf("%w: %w", ErrPrimaryUnavailable, err)
	}

	var result Result
	result.Stats.Primary = len(raw)

	items := make([]*emby.Item, 0, len(raw))
	for _, payload := range raw {
		item, report := emby.Check(payload)
		if !report.Valid() {
			report.Log(logger)
			result.Stats.Invalid++
			continue
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		return Result{}, ErrNoMovies
	}

	seen := make(map[string]bool, len(items))
	result.Records = make([]movie.Record, 0, len(items)+len(previous))
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		if seen[item.ID] {
			logger.Debug("duplicate primary item ignored",
				logging.String(logging.FieldMovieID, item.ID),
				logging.String(logging.FieldItem, movie.Label(item.Name, item.ProductionYear)),
			)
			result.Stats.Duplicates++
			continue
		}
		seen[item.ID] = true

		incoming := item.Record()
		var rec movie.Record
		if prior, ok := previous[item.ID]; ok {
			rec = e.refresh(logger, prior, incoming, &result)
			result.Stats.Reused++
		} else {
			enriched, ok := e.enrich(ctx, logger, incoming)
			if !ok {
				if err := ctx.Err(); err != nil {
					return Result{}, err
				}
				result.Stats.Dropped++
				continue
			}
			rec = enriched
			result.Stats.New++
		}

		if rec.CriticRating.IsUnknown() {
			rec = e.rate(ctx, logger, rec, &result.Stats)
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
		}
		result.Records = append(result.Records, rec)
	}

	for _, id := range order {
		if seen[id] {
			continue
		}
		result.Records = append(result.Records, previous[id])
		result.Stats.Retained++
	}

	logger.Info("reconciliation complete",
		logging.Int("primary", result.Stats.Primary),
		logging.Int("invalid", result.Stats.Invalid),
		logging.Int("reused", result.Stats.Reused),
		logging.Int("new", result.Stats.New),
		logging.Int("dropped", result.Stats.Dropped),
		logging.Int("rating_refreshes", result.Stats.RatingRefreshes),
		logging.Int("image_changes", result.Stats.ImageChanges),
		logging.Int("ratings_fetched", result.Stats.RatingsFetched),
		logging.Int("ratings_no_data", result.Stats.RatingsNoData),
		logging.Int("rating_failures", result.Stats.RatingFailures),
		logging.Int("retained", result.Stats.Retained),
	)
	return result, nil
}

func (e *Engine) loadPrevious(logger *slog.Logger) (map[string]movie.Record, []string) {
	records, err := e.catalog.Load()
	if err != nil {
		logging.WarnWithContext(logger, "previous catalog unreadable", "catalog_load_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check movies.json; it is rewritten at the end of this run"),
			logging.String(logging.FieldImpact, "every movie is treated as new"),
		)
		return map[string]movie.Record{}, nil
	}
	byID := make(map[string]movie.Record, len(records))
	order := make([]string, 0, len(records))
	for _, rec := range records {
		if rec.ID == "" {
			continue
		}
		if _, dup := byID[rec.ID]; dup {
			continue
		}
		byID[rec.ID] = rec
		order = append(order, rec.ID)
	}
	return byID, order
}

// refresh applies the two mutations a stored record accepts from the primary
// source: a changed critic rating and a changed image tag.
func (e *Engine) refresh(logger *slog.Logger, prior, incoming movie.Record, result *Result) movie.Record {
	rec := prior.Clone()
	attrs := []logging.Attr{
		logging.String(logging.FieldMovieID, rec.ID),
		logging.String(logging.FieldItem, rec.Label()),
	}

	if _, ok := incoming.CriticRating.Value(); ok && !incoming.CriticRating.Equal(rec.CriticRating) {
		logger.Info("critic rating refreshed", logging.Args(append(attrs,
			logging.String("from", rec.CriticRating.String()),
			logging.String("to", incoming.CriticRating.String()),
		)...)...)
		rec.CriticRating = incoming.CriticRating
		result.Stats.RatingRefreshes++
	}

	oldTag, newTag := rec.ImageTag(), incoming.ImageTag()
	if rec.Image != nil && newTag != "" && oldTag != newTag {
		logger.Info("image changed", logging.Args(append(attrs,
			logging.String("from", oldTag),
			logging.String("to", newTag),
		)...)...)
		result.Superseded = append(result.Superseded, oldTag)
		rec.Image = movie.StringPtr(newTag)
		result.Stats.ImageChanges++
	}
	return rec
}

func (e *Engine) enrich(ctx context.Context, logger *slog.Logger, rec movie.Record) (movie.Record, bool) {
	attrs := []logging.Attr{
		logging.String(logging.FieldMovieID, rec.ID),
		logging.String(logging.FieldItem, rec.Label()),
		logging.String(logging.FieldSource, tmdb.SourceName),
	}
	payload, err := e.films.Movie(ctx, rec.ExternalID)
	if err != nil {
		if ctx.Err() != nil {
			return movie.Record{}, false
		}
		logging.WarnWithContext(logger, "film database lookup failed", "enrichment_failed", append(attrs,
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "movie is retried on the next run"),
			logging.String(logging.FieldImpact, "movie left out of this catalog"),
		)...)
		return movie.Record{}, false
	}
	details, report := tmdb.Check(payload)
	if !report.Valid() {
		report.Log(logger)
		return movie.Record{}, false
	}
	logger.Debug("movie enriched", logging.Args(attrs...)...)
	return details.Enrich(rec), true
}

func (e *Engine) rate(ctx context.Context, logger *slog.Logger, rec movie.Record, stats *Stats) movie.Record {
	payload, err := e.ratings.Title(ctx, rec.ExternalID)
	if err != nil {
		if ctx.Err() != nil {
			return rec
		}
		stats.RatingFailures++
		logging.WarnWithContext(logger, "critic rating lookup failed", "rating_failed",
			logging.String(logging.FieldMovieID, rec.ID),
			logging.String(logging.FieldItem, rec.Label()),
			logging.String(logging.FieldSource, omdb.SourceName),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "rating is retried on the next run"),
			logging.String(logging.FieldImpact, "critic rating stays unknown"),
		)
		return rec
	}
	title, report := omdb.Check(payload)
	if !report.Valid() {
		report.Log(logger)
		stats.RatingsNoData++
		return omdb.Enrich(rec, nil)
	}
	stats.RatingsFetched++
	return omdb.Enrich(rec, title)
}
