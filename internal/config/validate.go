package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is structurally usable. Credentials are
// checked separately by RequiredForScrape.
func (c *Config) Validate() error {
	if err := c.validateURLs(); err != nil {
		return err
	}
	if err := c.validateThumbnails(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if strings.TrimSpace(c.Paths.CatalogFile) == "" {
		return errors.New("paths.catalog_file must be set")
	}
	return nil
}

func (c *Config) validateURLs() error {
	for key, value := range map[string]string{
		"emby.url":      c.Emby.URL,
		"tmdb.base_url": c.TMDB.BaseURL,
		"omdb.base_url": c.OMDB.BaseURL,
	} {
		parsed, err := url.Parse(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		if parsed.Scheme != "http" && parsed.Scheme != "https" {
			return fmt.Errorf("%s must be an http(s) URL, got %q", key, value)
		}
	}
	return nil
}

func (c *Config) validateThumbnails() error {
	if c.Thumbnails.Width <= 0 || c.Thumbnails.Height <= 0 {
		return errors.New("thumbnails.width and thumbnails.height must be positive")
	}
	if c.Thumbnails.Quality < 1 || c.Thumbnails.Quality > 100 {
		return errors.New("thumbnails.quality must be between 1 and 100")
	}
	switch c.Thumbnails.Backend {
	case BackendDir:
		if c.Paths.ThumbsDir == "" {
			return errors.New("paths.thumbs_dir must be set for the dir backend")
		}
	case BackendS3:
		if c.S3.Endpoint == "" || c.S3.Bucket == "" {
			return errors.New("s3.endpoint and s3.bucket are required for the s3 backend")
		}
	default:
		return fmt.Errorf("thumbnails.backend: unsupported value %q (want %q or %q)", c.Thumbnails.Backend, BackendDir, BackendS3)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
