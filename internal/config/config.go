package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/mitchellh/go-homedir"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment overrides: FOLIO_PORT -> port.
const EnvPrefix = "FOLIO_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (FOLIO_*). A leading ~ in site_dir or
// db_path expands to the user's home directory.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	for _, p := range []*string{&cfg.SiteDir, &cfg.DBPath} {
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return nil, fmt.Errorf("expanding %s: %w", *p, err)
		}
		*p = expanded
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validDurableStores = map[DurableStore]bool{
	DurableCookie: true,
	DurableSQLite: true,
}

var validLogLevels = map[string]bool{
	"debug":   true,
	"info":    true,
	"warn":    true,
	"warning": true,
	"error":   true,
	"fatal":   true,
}

var validLogFormats = map[LogFormat]bool{
	LogText: true,
	LogJSON: true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d: must be between 1 and 65535", c.Port)
	}

	if c.SiteDir == "" {
		return fmt.Errorf("site_dir is required")
	}

	if c.ContentURL != "" {
		u, err := url.Parse(c.ContentURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("invalid content_url %q: must be an absolute http(s) URL", c.ContentURL)
		}
	}

	if !validDurableStores[c.DurableStore] {
		return fmt.Errorf("invalid durable_store %q: must be one of cookie, sqlite", c.DurableStore)
	}
	if c.DurableStore == DurableSQLite && c.DBPath == "" {
		return fmt.Errorf("db_path is required when durable_store is sqlite")
	}

	if _, err := c.Window(); err != nil {
		return err
	}

	for _, pattern := range c.Assets {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid asset pattern %q", pattern)
		}
	}

	if c.LogLevel != "" {
		if !validLogLevels[strings.ToLower(c.LogLevel)] {
			return fmt.Errorf("invalid log_level %q: must be one of debug, info, warn, error, fatal", c.LogLevel)
		}
	}
	if c.LogFormat != "" && !validLogFormats[c.LogFormat] {
		return fmt.Errorf("invalid log_format %q: must be one of text, json", c.LogFormat)
	}

	return nil
}

// Window parses AuthWindow. An empty value means the default of one hour.
func (c *Config) Window() (time.Duration, error) {
	if c.AuthWindow == "" {
		return time.Hour, nil
	}
	d, err := time.ParseDuration(c.AuthWindow)
	if err != nil {
		return 0, fmt.Errorf("invalid auth_window %q: %w", c.AuthWindow, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("auth_window must be positive, got %s", d)
	}
	return d, nil
}
