package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var (
	shutdownTimeout time.Duration
	autoMigrate     bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 30*time.Second, "Grace period for in-flight requests on shutdown")
	serveCmd.Flags().BoolVar(&autoMigrate, "migrate", false, "Apply pending migrations before serving (postgres only)")
}

func runServer(parent context.Context) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(contextOrBackground(parent), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := newApplication(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer app.Close()

	if autoMigrate && app.stores.db != nil {
		if err := migrateDB(ctx, app, "up"); err != nil {
			return err
		}
	}

	limiter, err := app.loginLimiter(ctx)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           app.router(limiter),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "address", addr, "driver", cfg.Database.Driver, "timezone", cfg.Org.Timezone)
		serverErr <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
			return err
		}
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	}

	slog.Info("Server stopped")
	return nil
}

func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
