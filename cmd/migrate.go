package cmd

import (
	"context"
	"time"

	"github.com/embark-app/embark/internal/gateways/database"
	"github.com/embark-app/embark/internal/logger"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create tables and indexes and seed an empty catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
		defer cancel()

		start := time.Now()
		db, err := database.New(ctx, cfg.DB)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.InitializeSchema(ctx); err != nil {
			return err
		}

		logger.LogSystem("Migration completed", "took", time.Since(start))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
