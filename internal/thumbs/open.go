package thumbs

import (
	"context"
	"fmt"

	"filmoteca/internal/config"
)

// OpenBackend returns the storage backend selected by thumbnails.backend.
// The S3 backend creates its bucket when missing.
func OpenBackend(ctx context.Context, cfg *config.Config) (Backend, error) {
	switch cfg.Thumbnails.Backend {
	case config.BackendS3:
		backend, err := NewS3Backend(cfg.S3)
		if err != nil {
			return nil, err
		}
		if err := backend.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return backend, nil
	case config.BackendDir, "":
		return NewDirBackend(cfg.Paths.ThumbsDir)
	default:
		return nil, fmt.Errorf("unknown thumbnail backend %q", cfg.Thumbnails.Backend)
	}
}

// RendererFor builds a renderer from the thumbnail settings.
func RendererFor(cfg config.Thumbnails) Renderer {
	return Renderer{Width: cfg.Width, Height: cfg.Height, Quality: cfg.Quality}
}
