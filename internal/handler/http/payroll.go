package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hrms-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	Mine(w http.ResponseWriter, r *http.Request)
	Payslip(w http.ResponseWriter, r *http.Request)
	Preview(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// Mine implements PayrollHandler.
func (p *payrollHandlerImpl) Mine(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrUnauthenticated)
		return
	}

	salary, err := p.payrollService.GetMine(r.Context(), principal.AccountID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, salary)
}

// Payslip implements PayrollHandler.
func (p *payrollHandlerImpl) Payslip(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrUnauthenticated)
		return
	}

	req := payroll.PayslipRequest{Period: r.URL.Query().Get("period")}
	pdf, err := p.payrollService.Payslip(r.Context(), principal.AccountID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	period := req.Period
	if period == "" {
		period = "current"
	}
	response.PDF(w, fmt.Sprintf("payslip-%s-%s.pdf", principal.EmployeeIdentifier, period), pdf)
}

// Preview implements PayrollHandler.
func (p *payrollHandlerImpl) Preview(w http.ResponseWriter, r *http.Request) {
	var req payroll.PreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("PayrollPreview decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	breakdown, err := p.payrollService.Preview(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, breakdown)
}
