package payroll

import (
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
)

type PreviewRequest struct {
	Wage              int64  `json:"wage" validate:"gte=0,lte=100000000"`
	PFRatePercent     *int64 `json:"pf_rate,omitempty" validate:"omitempty,gte=0,lte=100"`
	ProfessionalTax   *int64 `json:"professional_tax,omitempty" validate:"omitempty,gte=0"`
	StandardAllowance *int64 `json:"standard_allowance,omitempty" validate:"omitempty,gte=0"`
}

func (r *PreviewRequest) Validate() error {
	return validator.Struct(r).Err()
}

// ParamsOr overlays the request's optional parameters on defaults.
func (r *PreviewRequest) ParamsOr(defaults Params) Params {
	p := defaults
	if r.PFRatePercent != nil {
		p.PFRatePercent = *r.PFRatePercent
	}
	if r.ProfessionalTax != nil {
		p.ProfessionalTax = *r.ProfessionalTax
	}
	if r.StandardAllowance != nil {
		p.StandardAllowance = *r.StandardAllowance
	}
	return p
}

type SalaryResponse struct {
	EmployeeID string          `json:"employee_id"`
	FullName   string          `json:"full_name"`
	WageType   string          `json:"wage_type"`
	Breakdown  SalaryBreakdown `json:"breakdown"`
	BankName   string          `json:"bank_name,omitempty"`
}

type PayslipRequest struct {
	// Period is YYYY-MM; empty means the current month.
	Period string `json:"period"`
}

func (r *PayslipRequest) Validate() error {
	if r.Period == "" {
		return nil
	}
	if _, err := time.Parse("2006-01", r.Period); err != nil {
		return validator.ValidationErrors{{Field: "period", Message: "period must be in YYYY-MM format"}}
	}
	return nil
}
