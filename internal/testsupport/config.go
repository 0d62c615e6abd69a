package testsupport

import (
	"path/filepath"
	"testing"

	"filmoteca/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test
// and placeholder credentials for every upstream service.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.CatalogFile = filepath.Join(base, "movies.json")
	cfgVal.Paths.ThumbsDir = filepath.Join(base, "thumbs")
	cfgVal.Emby.APIKey = "emby-key"
	cfgVal.Emby.ParentID = "parent"
	cfgVal.TMDB.APIKey = "tmdb-key"
	cfgVal.TMDB.Language = "en-US"
	cfgVal.OMDB.APIKey = "omdb-key"
	cfgVal.Server.Bind = "127.0.0.1:0"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithUpstreams points the Emby, TMDb, and OMDb clients at test servers.
func WithUpstreams(embyURL, tmdbURL, omdbURL string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Emby.URL = embyURL
		b.cfg.TMDB.BaseURL = tmdbURL
		b.cfg.OMDB.BaseURL = omdbURL
	}
}

// WithThumbnailSize overrides the rendered thumbnail dimensions.
func WithThumbnailSize(width, height int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Thumbnails.Width = width
		b.cfg.Thumbnails.Height = height
	}
}

// WithoutCredentials clears every scrape credential.
func WithoutCredentials() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Emby.APIKey = ""
		b.cfg.Emby.ParentID = ""
		b.cfg.TMDB.APIKey = ""
		b.cfg.TMDB.Language = ""
		b.cfg.OMDB.APIKey = ""
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.CatalogFile)
}
