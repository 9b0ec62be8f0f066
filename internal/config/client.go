package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultAPITimeout bounds every remote call made by the API client. It also
// bounds how long a read takes to fall back to the local cache.
const DefaultAPITimeout = 10 * time.Second

// ClientConfig configures folioctl: the API client, the local cache and logging.
type ClientConfig struct {
	API   APIConfig   `yaml:"api"`
	Cache CacheConfig `yaml:"cache"`
	Log   LogConfig   `yaml:"log"`
}

// APIConfig locates the REST API. An empty BaseURL is allowed: the client is
// still constructible but every call fails with client.ErrNotConfigured.
type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// CacheConfig locates the SQLite file holding the local snapshot.
type CacheConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// LoadClient reads an optional YAML file, then applies environment overrides.
// path is typically the --config flag; when empty, FOLIO_CONFIG is consulted.
func LoadClient(path string) (ClientConfig, error) {
	cfg := ClientConfig{
		API:   APIConfig{Timeout: DefaultAPITimeout},
		Cache: CacheConfig{Path: "folio-cache.db"},
		Log:   LogConfig{Level: "warn"},
	}

	if path == "" {
		path = os.Getenv("FOLIO_CONFIG")
	}
	if path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return ClientConfig{}, err
		}
	}

	if v := os.Getenv("API_BASE_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("API_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return ClientConfig{}, fmt.Errorf("%w: invalid API_TIMEOUT: %v", ErrConfiguration, err)
		}
		cfg.API.Timeout = d
	}
	if v := os.Getenv("FOLIO_CACHE_PATH"); v != "" {
		cfg.Cache.Path = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")
	if cfg.API.Timeout <= 0 {
		return ClientConfig{}, fmt.Errorf("%w: api timeout must be positive", ErrConfiguration)
	}
	return cfg, nil
}

func loadFromFile(path string, cfg *ClientConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: read config file: %v", ErrConfiguration, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("%w: parse config file: %v", ErrConfiguration, err)
	}
	return nil
}
