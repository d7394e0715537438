package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Cache backends selectable in config.
const (
	cacheBackendFile  = "file"
	cacheBackendRedis = "redis"
	cacheBackendOff   = "off"
)

// Config is the opckit configuration, read from a TOML file at
// ~/.config/opckit/config.toml (or $XDG_CONFIG_HOME/opckit/config.toml).
// Every field has a working default, so the file is optional.
type Config struct {
	Cache   CacheConfig   `toml:"cache"`
	Catalog CatalogConfig `toml:"catalog"`
	Serve   ServeConfig   `toml:"serve"`
}

// CacheConfig selects and parameterizes the cache backend.
type CacheConfig struct {
	// Backend is "file", "redis", or "off".
	Backend string `toml:"backend"`

	// Dir overrides the file backend's directory (default: XDG cache dir).
	Dir string `toml:"dir"`

	// RedisURL locates the redis backend, e.g. "redis://localhost:6379/0".
	RedisURL string `toml:"redis_url"`

	// TTLHours bounds entry lifetime; 0 means no expiry.
	TTLHours int `toml:"ttl_hours"`
}

// CatalogConfig locates the manifest catalog.
type CatalogConfig struct {
	// MongoURI locates the MongoDB deployment. Empty means the catalog
	// commands are unavailable and serve falls back to an in-memory store.
	MongoURI string `toml:"mongo_uri"`
}

// ServeConfig parameterizes the HTTP API.
type ServeConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `toml:"addr"`

	// MaxUploadMB bounds inspect upload size (default 64).
	MaxUploadMB int `toml:"max_upload_mb"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Cache: CacheConfig{Backend: cacheBackendFile},
		Serve: ServeConfig{Addr: ":8080", MaxUploadMB: 64},
	}
}

// ConfigPath returns the config file location under the XDG config dir.
func ConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// LoadConfig reads and validates the TOML file at path, applying defaults
// for unset fields.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadConfigOrDefault loads the standard config file, returning defaults
// when the file does not exist. A malformed file falls back to defaults
// too; commands surface config problems explicitly when they matter.
func LoadConfigOrDefault() Config {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig()
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return DefaultConfig()
	}
	return cfg
}

func (c Config) validate() error {
	switch c.Cache.Backend {
	case cacheBackendFile, cacheBackendRedis, cacheBackendOff:
	case "":
	default:
		return fmt.Errorf("unknown cache backend %q (want file, redis, or off)", c.Cache.Backend)
	}
	if c.Cache.Backend == cacheBackendRedis && c.Cache.RedisURL == "" {
		return fmt.Errorf("cache backend redis requires redis_url")
	}
	if c.Cache.TTLHours < 0 {
		return fmt.Errorf("ttl_hours must be >= 0")
	}
	if c.Serve.MaxUploadMB < 0 {
		return fmt.Errorf("max_upload_mb must be >= 0")
	}
	return nil
}
