package config

import "github.com/ziadkadry99/folio/internal/site"

// DefaultPath is where the config file is looked for.
const DefaultPath = ".folio.yml"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Port:         8080,
		SiteDir:      ".",
		DurableStore: DurableCookie,
		DBPath:       ".folio/state.db",
		AuthWindow:   "1h",
		Assets:       append([]string(nil), site.DefaultAssetPatterns...),
		LogLevel:     "info",
		LogFormat:    LogText,
	}
}
