package payroll

import "github.com/shopspring/decimal"

var (
	basicRate = decimal.RequireFromString("0.50")
	hraRate   = decimal.RequireFromString("0.50")
	bonusRate = decimal.RequireFromString("0.0833")
	ltaRate   = decimal.RequireFromString("0.08333")
	hundred   = decimal.NewFromInt(100)
)

// Derive computes the salary breakdown of wage. Each step is rounded to a
// whole unit, half away from zero, in formula order. When the fixed-rule
// components exceed the wage, FixedAllowance is 0 and the components no
// longer sum to the wage.
func Derive(wage int64, p Params) SalaryBreakdown {
	w := decimal.NewFromInt(wage)

	basic := w.Mul(basicRate).Round(0)
	hra := basic.Mul(hraRate).Round(0)
	bonus := w.Mul(bonusRate).Round(0)
	lta := w.Mul(ltaRate).Round(0)

	b := SalaryBreakdown{
		Wage:              wage,
		Basic:             basic.IntPart(),
		HRA:               hra.IntPart(),
		StandardAllowance: p.StandardAllowance,
		PerformanceBonus:  bonus.IntPart(),
		LTA:               lta.IntPart(),
		PFRate:            p.PFRatePercent,
		ProfessionalTax:   p.ProfessionalTax,
		GrossSalary:       wage,
	}

	b.FixedAllowance = max(0, wage-b.Subtotal())
	b.PFAmount = basic.Mul(decimal.NewFromInt(p.PFRatePercent)).Div(hundred).Round(0).IntPart()
	b.TotalDeductions = b.PFAmount + b.ProfessionalTax
	b.NetSalary = b.GrossSalary - b.TotalDeductions

	return b
}
