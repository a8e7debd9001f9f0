package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/manifoldco/promptui"
)

// detectSiteDir looks for a content document in the usual places.
func detectSiteDir() string {
	for _, dir := range []string{".", "site", "public", "www"} {
		if _, err := os.Stat(filepath.Join(dir, "data", "content.json")); err == nil {
			return dir
		}
	}
	return "."
}

// RunWizard runs an interactive configuration wizard and saves the result to
// path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to folio! Let's configure your portfolio.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Site directory.
	sitePrompt := promptui.Prompt{
		Label:   "Site directory (contains index.html and data/content.json)",
		Default: detectSiteDir(),
	}
	siteDir, err := sitePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("site dir: %w", err)
	}
	cfg.SiteDir = siteDir

	// 2. Port.
	portPrompt := promptui.Prompt{
		Label:   "Port",
		Default: strconv.Itoa(cfg.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n < 1 || n > 65535 {
				return fmt.Errorf("enter a port between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(portStr)

	// 3. Durable state.
	storePrompt := promptui.Select{
		Label: "Where should the accent color index be remembered",
		Items: []string{
			"cookie: in the visitor's browser",
			"sqlite: in a local database, keyed by a visitor cookie",
		},
	}
	storeIdx, _, err := storePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("durable store selection: %w", err)
	}
	cfg.DurableStore = []DurableStore{DurableCookie, DurableSQLite}[storeIdx]

	// 4. Unlock window.
	windowPrompt := promptui.Prompt{
		Label:   "How long a password unlock lasts",
		Default: cfg.AuthWindow,
		Validate: func(s string) error {
			c := Config{AuthWindow: s}
			_, err := c.Window()
			return err
		},
	}
	window, err := windowPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("auth window: %w", err)
	}
	cfg.AuthWindow = window

	// 5. Sanitising.
	sanitizePrompt := promptui.Select{
		Label: "Sanitise project body HTML",
		Items: []string{"no", "yes"},
	}
	sanitizeIdx, _, err := sanitizePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("sanitize selection: %w", err)
	}
	cfg.SanitizeBody = sanitizeIdx == 1

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}
