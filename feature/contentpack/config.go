package contentpack

import "time"

// Source values for Config.Source.
const (
	SourceHTTP    = "http"
	SourceStorage = "storage"
)

// Config holds configuration for content-pack retrieval.
type Config struct {
	// Host serves /api/content_packs/<id>/raw.json. A bare host implies https.
	Host string `mapstructure:"host" default:"account.altvr.com"`
	// Source selects where packs are read from (http, storage).
	Source string `mapstructure:"source" default:"http"`
	// TimeoutSeconds bounds a single pack fetch.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// CacheTTLSeconds keeps fetched packs for admin and CLI lookups. Zero disables caching.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"300"`
}

// Timeout returns the fetch timeout, defaulting to 30 seconds.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// CacheTTL returns the pack cache lifetime.
func (c Config) CacheTTL() time.Duration {
	if c.CacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.CacheTTLSeconds) * time.Second
}
