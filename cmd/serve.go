package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/projectchronos/chronos/chronos"
	"github.com/projectchronos/chronos/chronos/database"
	"github.com/projectchronos/chronos/chronos/server"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		slog.Info("Starting Chronos pack service",
			slog.String("version", version),
			slog.String("commit", commit))

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		dbStartTime := time.Now()
		connectCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
		defer cancel()

		db, err := database.New(connectCtx, cfg.DB)
		if err != nil {
			slog.Error("Database connection failed",
				slog.String("error", err.Error()),
				slog.Duration("attempted_for", time.Since(dbStartTime)))
			return err
		}
		defer db.Close()
		slog.Info("Database connected successfully",
			slog.String("database", cfg.DB.Database),
			slog.Duration("took", time.Since(dbStartTime)))

		if err := db.InitializeSchema(connectCtx); err != nil {
			slog.Error("Failed to initialize database schema", slog.Any("error", err))
			return err
		}

		app := chronos.New(*cfg, version, commit)
		app.DB = db
		app.Setup()

		if err := app.Bootstrap(ctx); err != nil {
			slog.Error("Bootstrap failed", slog.Any("error", err))
			return err
		}

		srv := &http.Server{
			Addr:              cfg.Server.Addr,
			Handler:           server.New(app.PackService, app.ChainGateway, cfg.Packs.DefaultCreateCount).Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			slog.Info("HTTP server listening", slog.String("addr", cfg.Server.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			slog.Info("Shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})

		if err := g.Wait(); err != nil {
			slog.Error("Server exited with error", slog.Any("error", err))
			return err
		}
		slog.Info("Shutdown complete")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
