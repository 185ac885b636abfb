package payroll

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/account"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/payslip"
)

const periodLayout = "2006-01"

type PayrollServiceImpl struct {
	accountRepo account.AccountRepository
	clock       *clock.Clock
	params      payroll.Params
}

func NewPayrollService(
	accountRepo account.AccountRepository,
	clk *clock.Clock,
	params payroll.Params,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		accountRepo: accountRepo,
		clock:       clk,
		params:      params,
	}
}

// GetMine implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetMine(ctx context.Context, accountID string) (payroll.SalaryResponse, error) {
	acc, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return payroll.SalaryResponse{}, err
	}
	if !acc.SalaryDetails.Configured() {
		return payroll.SalaryResponse{}, payroll.ErrSalaryNotConfigured
	}

	return payroll.SalaryResponse{
		EmployeeID: acc.EmployeeIdentifier,
		FullName:   acc.FullName(),
		WageType:   acc.SalaryDetails.WageType,
		Breakdown:  acc.SalaryDetails.Breakdown,
		BankName:   acc.SalaryDetails.BankAccount.BankName,
	}, nil
}

// Preview implements payroll.PayrollService.
func (s *PayrollServiceImpl) Preview(ctx context.Context, req payroll.PreviewRequest) (payroll.SalaryBreakdown, error) {
	if req.Wage < 0 {
		return payroll.SalaryBreakdown{}, payroll.ErrNegativeWage
	}
	if err := req.Validate(); err != nil {
		return payroll.SalaryBreakdown{}, err
	}
	return payroll.Derive(req.Wage, req.ParamsOr(s.params)), nil
}

// Payslip implements payroll.PayrollService.
func (s *PayrollServiceImpl) Payslip(ctx context.Context, accountID string, req payroll.PayslipRequest) ([]byte, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	period := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	if req.Period != "" {
		// already validated
		period, _ = time.Parse(periodLayout, req.Period)
	}

	acc, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !acc.SalaryDetails.Configured() {
		return nil, payroll.ErrSalaryNotConfigured
	}

	doc, err := payslip.Render(payslip.Payslip{
		EmployeeID:    acc.EmployeeIdentifier,
		EmployeeName:  acc.FullName(),
		Email:         acc.Email,
		Designation:   acc.JobDetails.Designation,
		Department:    acc.JobDetails.Department,
		BankName:      acc.SalaryDetails.BankAccount.BankName,
		AccountNumber: acc.SalaryDetails.BankAccount.AccountNumber,
		Period:        period,
		Breakdown:     acc.SalaryDetails.Breakdown,
		GeneratedAt:   now,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to render payslip", "account_id", accountID, "period", period.Format(periodLayout), "error", err)
		return nil, fmt.Errorf("failed to render payslip: %w", err)
	}
	return doc, nil
}
