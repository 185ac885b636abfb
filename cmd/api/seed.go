package main

import (
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/account"
	"github.com/spf13/cobra"
)

var seedAdminCmd = &cobra.Command{
	Use:   "seed-admin",
	Short: "Create the first administrator",
	Long:  `Create the administrator described by ADMIN_* unless an account with that email exists.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}

		app, err := newApplication(cfg, logger)
		if err != nil {
			return err
		}
		defer app.Close()

		result, err := app.accountService.SeedAdmin(contextOrBackground(cmd.Context()), account.SeedAdminRequest{
			FirstName: cfg.Admin.FirstName,
			LastName:  cfg.Admin.LastName,
			Email:     cfg.Admin.Email,
			Password:  cfg.Admin.Password,
		})
		if err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}

		if result.Created {
			slog.Info("Administrator created", "employee_id", result.EmployeeID, "email", cfg.Admin.Email)
		} else {
			slog.Info("Administrator already exists", "employee_id", result.EmployeeID, "email", cfg.Admin.Email)
		}
		return nil
	},
}
