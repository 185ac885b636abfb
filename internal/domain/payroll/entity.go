package payroll

// Params are the organisation-wide inputs of the salary formula.
type Params struct {
	PFRatePercent     int64 `json:"pf_rate"`
	ProfessionalTax   int64 `json:"professional_tax"`
	StandardAllowance int64 `json:"standard_allowance"`
}

func DefaultParams() Params {
	return Params{
		PFRatePercent:     12,
		ProfessionalTax:   200,
		StandardAllowance: 4167,
	}
}

// SalaryBreakdown is every payroll figure derived from a single monthly wage.
// Amounts are whole currency units.
type SalaryBreakdown struct {
	Wage              int64 `json:"wage"`
	Basic             int64 `json:"basic"`
	HRA               int64 `json:"hra"`
	StandardAllowance int64 `json:"standard_allowance"`
	PerformanceBonus  int64 `json:"performance_bonus"`
	LTA               int64 `json:"lta"`
	FixedAllowance    int64 `json:"fixed_allowance"`
	PFRate            int64 `json:"pf_rate"`
	PFAmount          int64 `json:"pf_amount"`
	ProfessionalTax   int64 `json:"professional_tax"`
	GrossSalary       int64 `json:"gross_salary"`
	TotalDeductions   int64 `json:"total_deductions"`
	NetSalary         int64 `json:"net_salary"`
}

// Subtotal is the sum of the fixed-rule components, before the balancing
// fixed allowance.
func (b SalaryBreakdown) Subtotal() int64 {
	return b.Basic + b.HRA + b.StandardAllowance + b.PerformanceBonus + b.LTA
}

// Components is Subtotal plus the fixed allowance. It equals Wage unless the
// fixed allowance was clamped at zero.
func (b SalaryBreakdown) Components() int64 {
	return b.Subtotal() + b.FixedAllowance
}

func (b SalaryBreakdown) Params() Params {
	return Params{
		PFRatePercent:     b.PFRate,
		ProfessionalTax:   b.ProfessionalTax,
		StandardAllowance: b.StandardAllowance,
	}
}
