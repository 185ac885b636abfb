package database

import (
	"context"
	"embed"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationsDir = "migrations"

// Migrate applies (up) or rolls back the latest (down) embedded migration.
func Migrate(ctx context.Context, db *DB, direction string) error {
	pool, err := db.Pool(ctx)
	if err != nil {
		return err
	}

	sqlDB := stdlib.OpenDBFromPool(pool)
	defer sqlDB.Close()

	goose.SetBaseFS(migrationsFS)
	goose.SetTableName("schema_migrations")
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}

	switch direction {
	case "up":
		err = goose.UpContext(ctx, sqlDB, migrationsDir)
	case "down":
		err = goose.DownContext(ctx, sqlDB, migrationsDir)
	case "status":
		err = goose.StatusContext(ctx, sqlDB, migrationsDir)
	default:
		return fmt.Errorf("unknown migration direction %q", direction)
	}
	if err != nil {
		return fmt.Errorf("goose %s: %w", direction, err)
	}

	slog.Info("Migrations applied", "direction", direction)
	return nil
}
