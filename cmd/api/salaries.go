package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

var recomputeSalariesCmd = &cobra.Command{
	Use:   "recompute-salaries",
	Short: "Re-derive every stored salary breakdown",
	Long:  `Recompute stored salary breakdowns from each wage using the current PAYROLL_* parameters.`,
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

		changed, err := app.accountService.RecomputeSalaries(contextOrBackground(cmd.Context()))
		if err != nil {
			return fmt.Errorf("recompute salaries: %w", err)
		}
		slog.Info("Salaries recomputed", "changed", changed)
		return nil
	},
}
