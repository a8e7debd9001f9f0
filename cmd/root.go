package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/folio/internal/config"
	"github.com/ziadkadry99/folio/internal/logging"
)

var (
	cfgFile  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "Serve a password-gated portfolio from a JSON content document",
	Long: `folio serves a portfolio site driven by a single content document
(data/content.json): a homepage of project thumbnails, a shared-password gate
in front of selected work, per-project detail pages and an accent color that
rotates once per visit.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("loglevel") {
			return logging.SetLevel(logLevel)
		}
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "loglevel", "", "log level: debug, info, warn, error, fatal (overrides log_level)")
}

