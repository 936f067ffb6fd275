// Package cmd holds the CLI entrypoints.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/projectchronos/chronos/chronos"
	"github.com/projectchronos/chronos/chronos/logger"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "unknown"

	configPath string
)

var rootCmd = &cobra.Command{
	Use:          "chronos",
	Short:        "Collectible card pack allocation and claim service",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.toml", "path to config")
}

func Execute(v, c string) {
	if v != "" {
		version = v
	}
	if c != "" {
		commit = c
	}
	rootCmd.Version = fmt.Sprintf("%s (%s)", version, commit)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the config file and installs the process-wide logger at
// the configured level.
func loadConfig() (*chronos.Config, error) {
	cfg, err := chronos.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", configPath, err)
	}
	slog.SetDefault(slog.New(logger.NewHandler(cfg.Log.Level)))
	return cfg, nil
}
