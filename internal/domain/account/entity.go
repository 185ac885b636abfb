package account

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/payroll"
)

type Role string

const (
	RoleEmployee Role = "employee"
	RoleAdmin    Role = "admin"
)

func (r Role) IsValid() bool {
	return r == RoleEmployee || r == RoleAdmin
}

const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

const (
	EmploymentFullTime = "Full-time"
	EmploymentPartTime = "Part-time"
	EmploymentContract = "Contract"

	WorkLocationOffice = "Office"
	WorkLocationRemote = "Remote"
	WorkLocationHybrid = "Hybrid"

	WageTypeFixed = "Fixed"
)

const (
	DocumentContract    = "Contract"
	DocumentCertificate = "Certificate"
	DocumentID          = "ID"
	DocumentResume      = "Resume"
	DocumentOther       = "Other"
)

type EmergencyContact struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Relation string `json:"relation"`
}

type JobDetails struct {
	Designation    string `json:"designation"`
	Department     string `json:"department"`
	EmploymentType string `json:"employment_type"`
	WorkLocation   string `json:"work_location"`
	Manager        string `json:"manager"`
}

func DefaultJobDetails() JobDetails {
	return JobDetails{
		EmploymentType: EmploymentFullTime,
		WorkLocation:   WorkLocationOffice,
	}
}

type BankAccount struct {
	AccountNumber string `json:"account_number"`
	BankName      string `json:"bank_name"`
	IFSCCode      string `json:"ifsc_code"`
}

// SalaryDetails is the payroll profile. Breakdown is always
// payroll.Derive(Breakdown.Wage, ...) at the time it was last saved.
type SalaryDetails struct {
	WageType    string                  `json:"wage_type"`
	Breakdown   payroll.SalaryBreakdown `json:"breakdown"`
	BankAccount BankAccount             `json:"bank_account"`
}

// Configured reports whether a wage was ever set.
func (s SalaryDetails) Configured() bool {
	return s.WageType != ""
}

type Document struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"uploaded_at"`
	UploadedBy string    `json:"uploaded_by"`
}

type Account struct {
	ID                 string
	EmployeeIdentifier string
	Email              string
	PasswordHash       string
	FirstName          string
	LastName           string
	Role               Role
	MustChangePassword bool
	JoiningDate        time.Time

	Photo       string
	Phone       string
	Address     string
	City        string
	DateOfBirth *time.Time
	Gender      string

	EmergencyContact EmergencyContact
	JobDetails       JobDetails
	SalaryDetails    SalaryDetails
	Documents        []Document

	CreatedBy *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (a *Account) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// NormalizeEmail is the form emails are stored and compared in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
