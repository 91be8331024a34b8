package main

import (
	"log/slog"
	"os"

	configloader "github.com/gparth254/meet-ai/external/config"
	"github.com/gparth254/meet-ai/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "meetai",
	Short:         "meet-ai meeting and agent backend",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	slog.Info("startup: loading configuration")
	cfg, err := configloader.Load()
	if err != nil {
		return nil, err
	}
	initLogger(cfg)
	slog.Info("startup: configuration loaded", "env", cfg.Env)
	return cfg, nil
}

func initLogger(cfg *config.Config) {
	logLevel := slog.LevelInfo
	if cfg.IsDevelopment() {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))
}
