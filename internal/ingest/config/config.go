package config

import (
	"time"

	"mc-postgres-db/pkg/config"
)

// Ingest holds ingest-specific configuration.
type Ingest struct {
	MaxBatchSize   int    `mapstructure:"max_batch_size"`
	AssetCacheTTL  string `mapstructure:"asset_cache_ttl"`
	RequestTimeout string `mapstructure:"request_timeout"`
}

// Config holds the full configuration for the ingest service.
type Config struct {
	App      config.App      `mapstructure:"app"`
	Logger   config.Logger   `mapstructure:"logger"`
	Database config.Database `mapstructure:"database"`
	API      config.API      `mapstructure:"api"`
	Ingest   Ingest          `mapstructure:"ingest"`
}

// Load loads the ingest configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// CacheTTL parses AssetCacheTTL, defaulting to five minutes.
func (i Ingest) CacheTTL() (time.Duration, error) {
	return durationOr(i.AssetCacheTTL, 5*time.Minute)
}

// Timeout parses RequestTimeout, defaulting to thirty seconds.
func (i Ingest) Timeout() (time.Duration, error) {
	return durationOr(i.RequestTimeout, 30*time.Second)
}

func durationOr(s string, def time.Duration) (time.Duration, error) {
	if s == "" {
		return def, nil
	}
	return time.ParseDuration(s)
}
