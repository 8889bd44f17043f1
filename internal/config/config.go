// Package config provides configuration loading and validation for the server and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config is the service configuration. It can be loaded from a JSON, YAML or
// TOML file; every field is optional and falls back to Default.
type Config struct {
	Port                   int      `json:"port,omitempty" yaml:"port,omitempty" toml:"port,omitempty"`
	DatabaseURL            string   `json:"database_url,omitempty" yaml:"database_url,omitempty" toml:"database_url,omitempty"`
	LogLevel               string   `json:"log_level,omitempty" yaml:"log_level,omitempty" toml:"log_level,omitempty"`
	CORSOrigins            []string `json:"cors_origins,omitempty" yaml:"cors_origins,omitempty" toml:"cors_origins,omitempty"`
	ShutdownTimeoutSeconds int      `json:"shutdown_timeout_seconds,omitempty" yaml:"shutdown_timeout_seconds,omitempty" toml:"shutdown_timeout_seconds,omitempty"`

	Fetch FetchConfig `json:"fetch" yaml:"fetch" toml:"fetch"`
}

// FetchConfig controls job posting retrieval. The API only fetches job_url
// values when AllowJobURLs is set.
type FetchConfig struct {
	AllowJobURLs    bool `json:"allow_job_urls,omitempty" yaml:"allow_job_urls,omitempty" toml:"allow_job_urls,omitempty"`
	TimeoutSeconds  int  `json:"timeout_seconds,omitempty" yaml:"timeout_seconds,omitempty" toml:"timeout_seconds,omitempty"`
	UseBrowser      bool `json:"use_browser,omitempty" yaml:"use_browser,omitempty" toml:"use_browser,omitempty"`
	CacheTTLMinutes int  `json:"cache_ttl_minutes,omitempty" yaml:"cache_ttl_minutes,omitempty" toml:"cache_ttl_minutes,omitempty"`
}

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Port:                   8080,
		LogLevel:               "info",
		CORSOrigins:            []string{"*"},
		ShutdownTimeoutSeconds: 10,
		Fetch: FetchConfig{
			TimeoutSeconds:  20,
			CacheTTLMinutes: 15,
		},
	}
}

// LoadConfig loads configuration from a file. The format is chosen by
// extension: .json, .yaml/.yml or .toml.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return &cfg, nil
}

// ApplyEnv overlays PORT, DATABASE_URL, LOG_LEVEL and FETCH_JOB_URLS from getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT: %w", err)
		}
		c.Port = port
	}
	if v := getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if v := getenv("FETCH_JOB_URLS"); v != "" {
		allow, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid FETCH_JOB_URLS: %w", err)
		}
		c.Fetch.AllowJobURLs = allow
	}
	return nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' out of range: %d", c.Port)
	}
	if c.LogLevel != "" && !logLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("config error: unknown 'log_level' %q", c.LogLevel)
	}
	if c.ShutdownTimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'shutdown_timeout_seconds' must be non-negative")
	}
	if c.Fetch.TimeoutSeconds < 0 || c.Fetch.CacheTTLMinutes < 0 {
		return fmt.Errorf("config error: fetch durations must be non-negative")
	}
	return nil
}

// MergeWithDefaults returns a copy of c with zero fields filled from defaults.
// Booleans cannot be told apart from unset and are kept as is.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if len(result.CORSOrigins) == 0 {
		result.CORSOrigins = defaults.CORSOrigins
	}
	if result.ShutdownTimeoutSeconds == 0 {
		result.ShutdownTimeoutSeconds = defaults.ShutdownTimeoutSeconds
	}
	if result.Fetch.TimeoutSeconds == 0 {
		result.Fetch.TimeoutSeconds = defaults.Fetch.TimeoutSeconds
	}
	if result.Fetch.CacheTTLMinutes == 0 {
		result.Fetch.CacheTTLMinutes = defaults.Fetch.CacheTTLMinutes
	}

	return result
}

// Load reads path (optional), merges defaults, overlays the environment and validates.
func Load(path string, getenv func(string) string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	merged := cfg.MergeWithDefaults(Default())
	if err := merged.ApplyEnv(getenv); err != nil {
		return nil, err
	}
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}
