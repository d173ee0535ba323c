package main

import (
	"fmt"
	"os"

	"realty/internal/app"
	"realty/internal/config"
	"realty/internal/logger"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	debug   bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:           "realty",
	Short:         "Property price prediction and market analytics",
	Long:          `realty checks model artifacts, resolves exported datasets, runs price predictions and renders the analytics charts without starting the HTTP server.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
		level := cfg.Logging.Level
		if debug {
			level = "debug"
		}
		logger.InitWriter(os.Stderr, level, "console", "realty-cli")
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./realty.yaml when present)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// newApp builds the full service graph for commands that need the model
func newApp() (*app.App, error) {
	return app.New(cfg)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
