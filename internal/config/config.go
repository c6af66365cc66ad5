// Package config loads lockfile-loader settings from an optional config.yaml,
// a .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// DefaultPath is the config file read when none is given.
const DefaultPath = "config.yaml"

// Config holds all configuration for lockfile-loader.
// Environment variables always override YAML values.
type Config struct {
	// APIURL is the base URL of the catalog REST backend.
	APIURL string `yaml:"api_url" env:"API_URL,VITE_API_URL" env-default:"http://localhost:3000"`

	// HTTPTimeout bounds every request made to the catalog.
	HTTPTimeout time.Duration `yaml:"http_timeout" env:"HTTP_TIMEOUT" env-default:"30s"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`

	// ResolverCacheSize is the number of name -> technology id pairs kept in
	// memory during a run. Zero disables the cache.
	ResolverCacheSize int `yaml:"resolver_cache_size" env:"RESOLVER_CACHE_SIZE" env-default:"1024"`

	Version string `yaml:"-"`
}

// Load reads configuration. path may name a YAML file; when it is empty or
// DefaultPath and the file does not exist, only the environment is used.
// A .env file in the working directory is loaded first without overriding
// variables that are already set.
func Load(path, version string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{Version: version}
	if path == "" {
		path = DefaultPath
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	} else if path != DefaultPath || !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config file %q: %w", path, err)
	} else if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("api_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api_url must be an http(s) URL, got %q", c.APIURL)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http_timeout must be positive, got %s", c.HTTPTimeout)
	}
	if c.ResolverCacheSize < 0 {
		return fmt.Errorf("resolver_cache_size must not be negative, got %d", c.ResolverCacheSize)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be debug, info, warn or error, got %q", c.LogLevel)
	}
	return nil
}
