package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeEmby()
	c.normalizeTMDB()
	c.normalizeOMDB()
	c.normalizeThumbnails()
	c.normalizeS3()
	c.normalizeLogging()
	c.Server.Bind = strings.TrimSpace(c.Server.Bind)
	if c.Server.Bind == "" {
		c.Server.Bind = defaultServerBind
	}
	return nil
}

func (c *Config) normalizePaths() error {
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if strings.TrimSpace(c.Paths.CatalogFile) == "" {
		c.Paths.CatalogFile = defaultCatalogFile
	}
	if strings.TrimSpace(c.Paths.ThumbsDir) == "" {
		c.Paths.ThumbsDir = defaultThumbsDir
	}
	var err error
	if c.Paths.StateDir, err = expandPath(strings.TrimSpace(c.Paths.StateDir)); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if c.Paths.CatalogFile, err = expandPath(strings.TrimSpace(c.Paths.CatalogFile)); err != nil {
		return fmt.Errorf("paths.catalog_file: %w", err)
	}
	if c.Paths.ThumbsDir, err = expandPath(strings.TrimSpace(c.Paths.ThumbsDir)); err != nil {
		return fmt.Errorf("paths.thumbs_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeEmby() {
	// EMBY_API_URL historically pointed at the Items endpoint itself.
	if value, ok := os.LookupEnv(embyURLEnv); ok && strings.TrimSpace(value) != "" && c.Emby.URL == defaultEmbyURL {
		c.Emby.URL = strings.TrimSuffix(strings.TrimRight(strings.TrimSpace(value), "/"), embyItemsSuffix)
	}
	c.Emby.URL = strings.TrimRight(strings.TrimSpace(c.Emby.URL), "/")
	if c.Emby.URL == "" {
		c.Emby.URL = defaultEmbyURL
	}
	c.Emby.APIKey = envFallback(c.Emby.APIKey, embyAPIKeyEnv)
	c.Emby.ParentID = envFallback(c.Emby.ParentID, embyParentIDEnv)
}

func (c *Config) normalizeTMDB() {
	c.TMDB.APIKey = envFallback(c.TMDB.APIKey, tmdbAPIKeyEnv)
	c.TMDB.Language = envFallback(c.TMDB.Language, languageEnv)
	c.TMDB.BaseURL = strings.TrimSpace(c.TMDB.BaseURL)
	if c.TMDB.BaseURL == "" {
		c.TMDB.BaseURL = defaultTMDBBaseURL
	}
}

func (c *Config) normalizeOMDB() {
	c.OMDB.APIKey = envFallback(c.OMDB.APIKey, omdbAPIKeyEnv)
	c.OMDB.BaseURL = strings.TrimSpace(c.OMDB.BaseURL)
	if c.OMDB.BaseURL == "" {
		c.OMDB.BaseURL = defaultOMDBBaseURL
	}
}

func (c *Config) normalizeThumbnails() {
	c.Thumbnails.Backend = strings.ToLower(strings.TrimSpace(c.Thumbnails.Backend))
	if c.Thumbnails.Backend == "" {
		c.Thumbnails.Backend = defaultThumbnailBackend
	}
	if c.Thumbnails.Width == 0 {
		c.Thumbnails.Width = defaultThumbWidth
	}
	if c.Thumbnails.Height == 0 {
		c.Thumbnails.Height = defaultThumbHeight
	}
	if c.Thumbnails.Quality == 0 {
		c.Thumbnails.Quality = defaultThumbQuality
	}
}

func (c *Config) normalizeS3() {
	c.S3.Endpoint = strings.TrimSpace(c.S3.Endpoint)
	c.S3.Bucket = strings.TrimSpace(c.S3.Bucket)
	c.S3.Prefix = strings.Trim(strings.TrimSpace(c.S3.Prefix), "/")
	c.S3.Region = strings.TrimSpace(c.S3.Region)
	c.S3.AccessKey = envFallback(c.S3.AccessKey, s3AccessKeyEnv)
	c.S3.SecretKey = envFallback(c.S3.SecretKey, s3SecretKeyEnv)
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

// envFallback returns the trimmed value, or the environment variable when the
// value is empty.
func envFallback(value, env string) string {
	value = strings.TrimSpace(value)
	if value != "" {
		return value
	}
	if fromEnv, ok := os.LookupEnv(env); ok {
		return strings.TrimSpace(fromEnv)
	}
	return ""
}
