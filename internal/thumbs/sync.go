package thumbs

import (
	"context"
	"log/slog"

	"filmoteca/internal/logging"
	"filmoteca/internal/movie"
)

// ImageSource downloads the original image revision for a movie.
type ImageSource interface {
	Image(ctx context.Context, itemID, tag string) ([]byte, error)
}

// Summary counts what one Sync call did.
type Summary struct {
	Created int
	Skipped int
	Failed  int
	Deleted int
}

// Syncer creates missing thumbnails and removes superseded ones.
type Syncer struct {
	backend  Backend
	source   ImageSource
	renderer Renderer
	logger   *slog.Logger
}

// NewSyncer wires a backend, the image source, and a renderer.
func NewSyncer(backend Backend, source ImageSource, renderer Renderer, logger *slog.Logger) *Syncer {
	return &Syncer{
		backend:  backend,
		source:   source,
		renderer: renderer,
		logger:   logging.NewComponentLogger(logger, "thumbs"),
	}
}

// Sync renders a thumbnail for every record whose tag is not stored yet, then
// deletes the thumbnails of superseded tags. Per-movie failures are logged
// and counted; only context cancellation stops the pass early.
func (s *Syncer) Sync(ctx context.Context, records []movie.Record, superseded []string) (Summary, error) {
	var summary Summary
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		s.syncOne(ctx, rec, &summary)
	}

	for _, tag := range superseded {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		name := FileName(tag)
		exists, err := s.backend.Exists(ctx, name)
		if err != nil {
			logging.WarnWithContext(s.logger, "superseded thumbnail check failed", "thumbnail_delete_failed",
				logging.String("thumbnail", name),
				logging.Error(err),
				logging.String(logging.FieldImpact, "stale thumbnail left in place"),
			)
			continue
		}
		if !exists {
			continue
		}
		if err := s.backend.Delete(ctx, name); err != nil {
			logging.WarnWithContext(s.logger, "superseded thumbnail not deleted", "thumbnail_delete_failed",
				logging.String("thumbnail", name),
				logging.Error(err),
				logging.String(logging.FieldImpact, "stale thumbnail left in place"),
			)
			continue
		}
		summary.Deleted++
		s.logger.Debug("superseded thumbnail deleted", logging.String("thumbnail", name))
	}

	s.logger.Info("thumbnails synced",
		logging.Int("created", summary.Created),
		logging.Int("skipped", summary.Skipped),
		logging.Int("failed", summary.Failed),
		logging.Int("deleted", summary.Deleted),
	)
	return summary, nil
}

func (s *Syncer) syncOne(ctx context.Context, rec movie.Record, summary *Summary) {
	attrs := []logging.Attr{
		logging.String(logging.FieldItem, rec.Label()),
		logging.String(logging.FieldMovieID, rec.ID),
	}
	tag := rec.ImageTag()
	if tag == "" {
		logging.WarnWithContext(s.logger, "movie has no image", "thumbnail_missing_image",
			append(attrs, logging.String(logging.FieldImpact, "movie shown without a poster"))...)
		summary.Skipped++
		return
	}
	name := FileName(tag)
	attrs = append(attrs, logging.String("thumbnail", name))

	exists, err := s.backend.Exists(ctx, name)
	if err != nil {
		s.fail(summary, "thumbnail lookup failed", err, attrs)
		return
	}
	if exists {
		summary.Skipped++
		return
	}

	original, err := s.source.Image(ctx, rec.ID, tag)
	if err != nil {
		s.fail(summary, "image download failed", err, attrs)
		return
	}
	rendered, err := s.renderer.Render(original)
	if err != nil {
		s.fail(summary, "thumbnail render failed", err, attrs)
		return
	}
	if err := s.backend.Put(ctx, name, rendered); err != nil {
		s.fail(summary, "thumbnail store failed", err, attrs)
		return
	}
	summary.Created++
	s.logger.Info("thumbnail created", logging.Args(attrs...)...)
}

func (s *Syncer) fail(summary *Summary, msg string, err error, attrs []logging.Attr) {
	summary.Failed++
	attrs = append(attrs,
		logging.Error(err),
		logging.String(logging.FieldErrorHint, "the next run retries missing thumbnails"),
		logging.String(logging.FieldImpact, "movie shown without a poster"),
	)
	logging.WarnWithContext(s.logger, msg, "thumbnail_failed", attrs...)
}
