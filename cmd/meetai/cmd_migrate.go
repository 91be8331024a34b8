package main

import (
	"log/slog"

	repositoryimpl "github.com/gparth254/meet-ai/external/repository"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(migrateCmd)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema and exit",
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := repositoryimpl.Migrate(cmd.Context(), cfg.DatabaseURL); err != nil {
		return err
	}
	slog.Info("migration applied")
	return nil
}
