package config

import "fmt"

// MissingSetting is a credential or identifier a scrape cannot run without.
type MissingSetting struct {
	Key string
	Env string
}

func (m MissingSetting) Error() string {
	return fmt.Sprintf("%s is not set (config key %s or environment variable %s)", m.Env, m.Key, m.Env)
}

// RequiredForScrape returns one error per missing setting, in a stable order.
func (c *Config) RequiredForScrape() []error {
	required := []struct {
		value string
		key   string
		env   string
	}{
		{c.Emby.APIKey, "emby.api_key", embyAPIKeyEnv},
		{c.Emby.ParentID, "emby.parent_id", embyParentIDEnv},
		{c.TMDB.APIKey, "tmdb.api_key", tmdbAPIKeyEnv},
		{c.OMDB.APIKey, "omdb.api_key", omdbAPIKeyEnv},
		{c.TMDB.Language, "tmdb.language", languageEnv},
	}
	var missing []error
	for _, setting := range required {
		if setting.value == "" {
			missing = append(missing, MissingSetting{Key: setting.key, Env: setting.env})
		}
	}
	return missing
}
