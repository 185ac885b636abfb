// Package payslip renders a monthly salary breakdown as a PDF document.
package payslip

import (
	"bytes"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/payroll"
	"github.com/jung-kurt/gofpdf"
)

type Payslip struct {
	EmployeeID    string
	EmployeeName  string
	Email         string
	Designation   string
	Department    string
	BankName      string
	AccountNumber string
	Period        time.Time
	Breakdown     payroll.SalaryBreakdown
	GeneratedAt   time.Time
}

type line struct {
	label  string
	amount int64
}

// Render returns the PDF bytes of p.
func Render(p Payslip) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Payslip %s %s", p.EmployeeID, p.Period.Format("2006-01")), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	header := []string{
		fmt.Sprintf("Employee: %s (%s)", p.EmployeeName, p.EmployeeID),
		fmt.Sprintf("Email: %s", p.Email),
		fmt.Sprintf("Period: %s", p.Period.Format("January 2006")),
	}
	if p.Designation != "" || p.Department != "" {
		header = append(header, fmt.Sprintf("Position: %s, %s", p.Designation, p.Department))
	}
	if p.BankName != "" {
		header = append(header, fmt.Sprintf("Bank: %s %s", p.BankName, maskAccount(p.AccountNumber)))
	}
	for _, h := range header {
		pdf.Cell(0, 7, h)
		pdf.Ln(7)
	}
	pdf.Ln(4)

	b := p.Breakdown
	table(pdf, "Earnings", []line{
		{"Basic", b.Basic},
		{"House Rent Allowance", b.HRA},
		{"Standard Allowance", b.StandardAllowance},
		{"Performance Bonus", b.PerformanceBonus},
		{"Leave Travel Allowance", b.LTA},
		{"Fixed Allowance", b.FixedAllowance},
	}, line{"Gross Salary", b.GrossSalary})

	table(pdf, "Deductions", []line{
		{fmt.Sprintf("Provident Fund (%d%% of basic)", b.PFRate), b.PFAmount},
		{"Professional Tax", b.ProfessionalTax},
	}, line{"Total Deductions", b.TotalDeductions})

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(120, 9, "Net Salary", "1", 0, "L", false, 0, "")
	pdf.CellFormat(60, 9, amount(b.NetSalary), "1", 1, "R", false, 0, "")

	if !p.GeneratedAt.IsZero() {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.Cell(0, 5, "Generated "+p.GeneratedAt.Format(time.RFC1123))
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render payslip: %w", err)
	}
	return buf.Bytes(), nil
}

func table(pdf *gofpdf.Fpdf, title string, rows []line, total line) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(180, 8, title, "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for _, r := range rows {
		pdf.CellFormat(120, 7, r.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(60, 7, amount(r.amount), "", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(120, 8, total.label, "T", 0, "L", false, 0, "")
	pdf.CellFormat(60, 8, amount(total.amount), "T", 1, "R", false, 0, "")
	pdf.Ln(4)
}

func amount(v int64) string {
	return fmt.Sprintf("%d.00", v)
}

func maskAccount(n string) string {
	if len(n) <= 4 {
		return n
	}
	return "****" + n[len(n)-4:]
}
