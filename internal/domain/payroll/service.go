package payroll

import "context"

type PayrollService interface {
	// GetMine returns the caller's stored salary breakdown.
	GetMine(ctx context.Context, accountID string) (SalaryResponse, error)

	// Preview derives a breakdown without persisting anything.
	Preview(ctx context.Context, req PreviewRequest) (SalaryBreakdown, error)

	// Payslip renders the caller's breakdown for a month as a PDF document.
	Payslip(ctx context.Context, accountID string, req PayslipRequest) ([]byte, error)
}
