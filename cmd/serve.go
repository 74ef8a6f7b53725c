package cmd

import (
	"context"
	"errors"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/embark-app/embark/internal/app"
	"github.com/embark-app/embark/internal/clock"
	"github.com/embark-app/embark/internal/config"
	"github.com/embark-app/embark/internal/domain/items"
	"github.com/embark-app/embark/internal/gateways/database"
	"github.com/embark-app/embark/internal/gateways/spaces"
	"github.com/embark-app/embark/internal/http/router"
	"github.com/embark-app/embark/internal/logger"
	"github.com/spf13/cobra"
)

var migrateOnStart bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		logger.LogSystem("Starting "+config.AppName, "version", version, "commit", commit)

		dbStart := time.Now()
		db, err := database.New(ctx, cfg.DB)
		if err != nil {
			return err
		}
		defer db.Close()
		logger.LogSystem("Database connected", "database", cfg.DB.Database, "took", time.Since(dbStart))

		if migrateOnStart {
			if err := db.InitializeSchema(ctx); err != nil {
				return err
			}
		}

		var images items.ImageStore
		if cfg.Spaces.Enabled() {
			store, err := spaces.New(ctx, cfg.Spaces)
			if err != nil {
				return err
			}
			images = store
		} else {
			slog.Warn("Spaces is not configured, item image uploads are disabled", slog.String("type", "sys"))
		}

		webApp, err := app.NewWebApp(app.Deps{
			DB:      db.BunDB(),
			Pinger:  db,
			Clock:   clock.System(),
			Images:  images,
			Game:    cfg.Game,
			Version: version,
		})
		if err != nil {
			return err
		}

		server := router.New(cfg.Web, webApp)
		errs := make(chan error, 1)
		go func() {
			logger.LogSystem("Listening", "address", cfg.Web.Addr())
			errs <- server.Listen(cfg.Web.Addr())
		}()

		select {
		case err := <-errs:
			return err
		case <-ctx.Done():
		}

		logger.LogSystem("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()
		if err := server.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		logger.LogSystem("Shutdown complete")
		return nil
	},
}

func init() {
	serveCmd.Flags().BoolVar(&migrateOnStart, "migrate", false, "create the schema and seed the catalog before serving")
	rootCmd.AddCommand(serveCmd)
}
