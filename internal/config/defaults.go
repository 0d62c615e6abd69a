package config

// Thumbnail backends.
const (
	BackendDir = "dir"
	BackendS3  = "s3"
)

const (
	defaultConfigPath       = "~/.config/filmoteca/config.toml"
	defaultStateDir         = "~/.local/share/filmoteca"
	defaultCatalogFile      = "~/.local/share/filmoteca/movies.json"
	defaultThumbsDir        = "~/.local/share/filmoteca/thumbs"
	defaultEmbyURL          = "http://localhost:8096/emby"
	defaultTMDBBaseURL      = "https://api.themoviedb.org/3"
	defaultOMDBBaseURL      = "https://www.omdbapi.com"
	defaultThumbWidth       = 320
	defaultThumbHeight      = 480
	defaultThumbQuality     = 80
	defaultS3Region         = "us-east-1"
	defaultServerBind       = "127.0.0.1:7488"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	embyItemsSuffix         = "/Items"
	embyURLEnv              = "EMBY_API_URL"
	embyAPIKeyEnv           = "EMBY_API_KEY"
	embyParentIDEnv         = "EMBY_MOVIES_PARENT_ID"
	tmdbAPIKeyEnv           = "TMDB_API_KEY"
	omdbAPIKeyEnv           = "OMDB_API_KEY"
	languageEnv             = "LANGUAGE"
	s3AccessKeyEnv          = "AWS_ACCESS_KEY_ID"
	s3SecretKeyEnv          = "AWS_SECRET_ACCESS_KEY"
	defaultThumbnailBackend = BackendDir
)

// Default returns a Config populated with repository defaults. The language
// has no default: it must be chosen explicitly.
func Default() Config {
	return Config{
		Paths: Paths{
			CatalogFile: defaultCatalogFile,
			ThumbsDir:   defaultThumbsDir,
			StateDir:    defaultStateDir,
		},
		Emby: Emby{
			URL: defaultEmbyURL,
		},
		TMDB: TMDB{
			BaseURL: defaultTMDBBaseURL,
		},
		OMDB: OMDB{
			BaseURL: defaultOMDBBaseURL,
		},
		Thumbnails: Thumbnails{
			Width:   defaultThumbWidth,
			Height:  defaultThumbHeight,
			Quality: defaultThumbQuality,
			Backend: defaultThumbnailBackend,
		},
		S3: S3{
			Region: defaultS3Region,
			UseSSL: true,
		},
		Server: Server{
			Bind: defaultServerBind,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
