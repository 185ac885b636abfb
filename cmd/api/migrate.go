package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down|status]",
	Short:     "Run database migrations",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"up", "down", "status"},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.Database.Driver != "postgres" {
			return fmt.Errorf("migrations need DB_DRIVER=postgres, got %q", cfg.Database.Driver)
		}

		app, err := newApplication(cfg, logger)
		if err != nil {
			return err
		}
		defer app.Close()

		return migrateDB(contextOrBackground(cmd.Context()), app, args[0])
	},
}

func migrateDB(ctx context.Context, app *application, direction string) error {
	if err := database.Migrate(ctx, app.stores.db, direction); err != nil {
		return fmt.Errorf("migrate %s: %w", direction, err)
	}
	slog.Info("Migration finished", "direction", direction)
	return nil
}
