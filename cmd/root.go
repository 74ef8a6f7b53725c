// Package cmd holds the embark command line.
package cmd

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/embark-app/embark/internal/config"
	"github.com/embark-app/embark/internal/logger"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "unknown"

	configPath string
)

var rootCmd = &cobra.Command{
	Use:           "embark",
	Short:         "Gamified quest tracker API",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.toml", "path to config")
}

// Execute runs the command selected on the command line.
func Execute() {
	slog.SetDefault(slog.New(logger.NewHandler(config.AppName)))
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		logger.LogError("Command failed", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and installs the configured logger.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	setupLogger(cfg.Log)
	return cfg, nil
}

func setupLogger(cfg config.LogConfig) {
	opts := &slog.HandlerOptions{Level: cfg.Level, AddSource: cfg.AddSource}
	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = logger.NewHandlerWithOptions(config.AppName, os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
