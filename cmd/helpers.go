package cmd

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/folio/internal/config"
	"github.com/ziadkadry99/folio/internal/content"
	"github.com/ziadkadry99/folio/internal/logging"
	"github.com/ziadkadry99/folio/internal/page"
	"github.com/ziadkadry99/folio/internal/render"
	"github.com/ziadkadry99/folio/internal/site"
)

// loadConfig loads and validates the config and applies its logging
// settings, providing a user-friendly error.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `folio init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}

	if !cmd.Flags().Changed("loglevel") {
		if err := logging.SetLevel(cfg.LogLevel); err != nil {
			return nil, err
		}
	}
	if err := logging.SetFormat(string(cfg.LogFormat)); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newOrigin returns where content is fetched from: content_url when set,
// the site directory otherwise.
func newOrigin(cfg *config.Config) (content.Origin, error) {
	if cfg.ContentURL == "" {
		return content.DirOrigin{FS: os.DirFS(cfg.SiteDir)}, nil
	}
	base, err := url.Parse(cfg.ContentURL)
	if err != nil {
		return nil, fmt.Errorf("parsing content_url: %w", err)
	}
	return content.HTTPOrigin{Base: base, Client: &http.Client{Timeout: 30 * time.Second}}, nil
}

// newSanitizer returns the body sanitizer, or nil when sanitize_body is off.
func newSanitizer(cfg *config.Config) render.Sanitizer {
	if !cfg.SanitizeBody {
		return nil
	}
	return site.NewSanitizer()
}

func newController(cfg *config.Config) (*page.Controller, error) {
	origin, err := newOrigin(cfg)
	if err != nil {
		return nil, err
	}
	window, err := cfg.Window()
	if err != nil {
		return nil, err
	}
	return page.NewController(origin, page.Config{
		AuthWindow: window,
		Sanitizer:  newSanitizer(cfg),
	}, logging.Log), nil
}
