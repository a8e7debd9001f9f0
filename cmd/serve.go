package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/folio/internal/config"
	"github.com/ziadkadry99/folio/internal/content"
	"github.com/ziadkadry99/folio/internal/db"
	"github.com/ziadkadry99/folio/internal/kv"
	"github.com/ziadkadry99/folio/internal/livereload"
	"github.com/ziadkadry99/folio/internal/logging"
	"github.com/ziadkadry99/folio/internal/server"
	"github.com/ziadkadry99/folio/internal/site"
)

var (
	servePort  int
	serveWatch bool
	serveOpen  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the portfolio over HTTP",
	Long: `Serves the homepage, the password page and the project detail pages,
plus the site's static files. With --watch, open pages reload whenever
data/content.json changes.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "port to listen on (overrides config)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "reload open pages when the content document changes")
	serveCmd.Flags().BoolVar(&serveOpen, "open", false, "open the browser once listening")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}
	log := logging.Log

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	controller, err := newController(cfg)
	if err != nil {
		return err
	}

	opts := site.Options{
		Assets: site.NewAssets(os.DirFS(cfg.SiteDir), cfg.Assets),
		States: site.Stores{Secure: cfg.SecureCookies},
	}

	if cfg.DurableStore == config.DurableSQLite {
		database, err := db.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()
		opts.States.DB = database

		n, err := kv.Prune(ctx, database, time.Now().Add(-kv.DurableMaxAge))
		if err != nil {
			log.WithError(err).Warn("Pruning stale visitor state failed")
		} else if n > 0 {
			log.WithField("rows", n).Info("Pruned stale visitor state")
		}
	}

	var routes []server.Routes
	var hub *livereload.Hub
	if serveWatch {
		if cfg.ContentURL != "" {
			return errors.New("--watch needs content served from site_dir, not content_url")
		}
		hub = livereload.NewHub(log)
		opts.LiveReload = livereload.Path

		unwatch, err := livereload.Watch(filepath.Join(cfg.SiteDir, content.ResourceName), hub, log)
		if err != nil {
			return fmt.Errorf("watching content: %w", err)
		}
		defer unwatch()
		routes = append(routes, hub)
	}

	s, err := site.New(controller, opts, log)
	if err != nil {
		return err
	}
	routes = append(routes, s)

	srv := server.New(server.Config{
		Port:     cfg.Port,
		AllowAll: cfg.AllowAllCORS,
	}, log, routes...)

	// Graceful shutdown.
	go func() {
		<-ctx.Done()
		log.Info("Shutting down server...")
		if hub != nil {
			hub.Close()
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	if serveOpen {
		go openBrowser(fmt.Sprintf("http://localhost:%d", cfg.Port))
	}

	log.WithFields(logrus.Fields{
		"version": Version,
		"site":    cfg.SiteDir,
		"durable": cfg.DurableStore,
		"watch":   serveWatch,
	}).Info("folio starting")

	return srv.Start()
}

// openBrowser opens the given URL in the default browser.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	_ = cmd.Start()
}
