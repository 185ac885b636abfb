package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/cmlabs-hris/hrms-backend-go/internal/config"
	"github.com/go-chi/httplog/v3"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "hrms",
	Short:         "HRMS backend",
	Long:          `Employee records, attendance, leave and payroll for a single organisation.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedAdminCmd)
	rootCmd.AddCommand(recomputeSalariesCmd)
}

// loadConfig reads configuration and installs the process-wide logger.
func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)
	return cfg, logger, nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       parseLevel(cfg.App.LogLevel),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hrms"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
