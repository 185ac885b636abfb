package account

import (
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
)

// ========================================
// REQUESTS
// ========================================

type EmergencyContactRequest struct {
	Name     string `json:"name" validate:"max=100"`
	Phone    string `json:"phone" validate:"max=32"`
	Relation string `json:"relation" validate:"max=50"`
}

func (r EmergencyContactRequest) toEntity() EmergencyContact {
	return EmergencyContact{Name: r.Name, Phone: r.Phone, Relation: r.Relation}
}

type JobDetailsRequest struct {
	Designation    *string `json:"designation" validate:"omitempty,max=100"`
	Department     *string `json:"department" validate:"omitempty,max=100"`
	EmploymentType *string `json:"employment_type" validate:"omitempty,oneof=Full-time Part-time Contract"`
	WorkLocation   *string `json:"work_location" validate:"omitempty,oneof=Office Remote Hybrid"`
	Manager        *string `json:"manager" validate:"omitempty,max=100"`
}

// Apply overlays the supplied fields on jd.
func (r *JobDetailsRequest) Apply(jd JobDetails) JobDetails {
	if r == nil {
		return jd
	}
	setIfPresent(&jd.Designation, r.Designation)
	setIfPresent(&jd.Department, r.Department)
	setIfPresent(&jd.EmploymentType, r.EmploymentType)
	setIfPresent(&jd.WorkLocation, r.WorkLocation)
	setIfPresent(&jd.Manager, r.Manager)
	return jd
}

type BankAccountRequest struct {
	AccountNumber string `json:"account_number" validate:"max=34"`
	BankName      string `json:"bank_name" validate:"max=100"`
	IFSCCode      string `json:"ifsc_code" validate:"max=11"`
}

type SalaryRequest struct {
	Wage        *int64              `json:"wage" validate:"omitempty,gte=0,lte=100000000"`
	WageType    *string             `json:"wage_type" validate:"omitempty,max=20"`
	BankAccount *BankAccountRequest `json:"bank_account"`
}

type CreateEmployeeRequest struct {
	FirstName   string             `json:"first_name" validate:"required,max=100"`
	LastName    string             `json:"last_name" validate:"required,max=100"`
	Email       string             `json:"email" validate:"required,email,max=255"`
	Role        string             `json:"role"`
	JoiningDate string             `json:"joining_date" validate:"omitempty,datetime=2006-01-02"`
	Phone       string             `json:"phone" validate:"max=32"`
	JobDetails  *JobDetailsRequest `json:"job_details"`
	Wage        *int64             `json:"wage" validate:"omitempty,gte=0,lte=100000000"`
}

func (r *CreateEmployeeRequest) Validate() error {
	return validator.Struct(r).Err()
}

// ResolvedRole defaults an empty role to employee. An unknown role yields
// ErrInvalidRole.
func (r *CreateEmployeeRequest) ResolvedRole() (Role, error) {
	if r.Role == "" {
		return RoleEmployee, nil
	}
	role := Role(r.Role)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}

// UpdateProfileRequest carries the only fields an employee may change on
// their own record. Anything else in the payload is dropped on decode.
type UpdateProfileRequest struct {
	Photo            *string                  `json:"photo" validate:"omitempty,url,max=2048"`
	Phone            *string                  `json:"phone" validate:"omitempty,max=32"`
	Address          *string                  `json:"address" validate:"omitempty,max=500"`
	City             *string                  `json:"city" validate:"omitempty,max=100"`
	EmergencyContact *EmergencyContactRequest `json:"emergency_contact"`
}

func (r *UpdateProfileRequest) Validate() error {
	return validator.Struct(r).Err()
}

func (r *UpdateProfileRequest) Apply(a Account) Account {
	setIfPresent(&a.Photo, r.Photo)
	setIfPresent(&a.Phone, r.Phone)
	setIfPresent(&a.Address, r.Address)
	setIfPresent(&a.City, r.City)
	if r.EmergencyContact != nil {
		a.EmergencyContact = r.EmergencyContact.toEntity()
	}
	return a
}

// UpdateEmployeeRequest is the admin edit. Identifier and password are not
// part of it.
type UpdateEmployeeRequest struct {
	FirstName        *string                  `json:"first_name" validate:"omitempty,min=1,max=100"`
	LastName         *string                  `json:"last_name" validate:"omitempty,min=1,max=100"`
	Email            *string                  `json:"email" validate:"omitempty,email,max=255"`
	Role             *string                  `json:"role"`
	JoiningDate      *string                  `json:"joining_date" validate:"omitempty,datetime=2006-01-02"`
	Photo            *string                  `json:"photo" validate:"omitempty,url,max=2048"`
	Phone            *string                  `json:"phone" validate:"omitempty,max=32"`
	Address          *string                  `json:"address" validate:"omitempty,max=500"`
	City             *string                  `json:"city" validate:"omitempty,max=100"`
	DateOfBirth      *string                  `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Gender           *string                  `json:"gender" validate:"omitempty,oneof=Male Female Other"`
	EmergencyContact *EmergencyContactRequest `json:"emergency_contact"`
	JobDetails       *JobDetailsRequest       `json:"job_details"`
	SalaryDetails    *SalaryRequest           `json:"salary_details"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	errs := validator.Struct(r)
	if r.Role != nil && !Role(*r.Role).IsValid() {
		errs.Add("role", "role must be one of: employee, admin")
	}
	return errs.Err()
}

// Apply overlays the request on a. Salary figures are not derived here.
func (r *UpdateEmployeeRequest) Apply(a Account) Account {
	setIfPresent(&a.FirstName, r.FirstName)
	setIfPresent(&a.LastName, r.LastName)
	if r.Email != nil {
		a.Email = NormalizeEmail(*r.Email)
	}
	if r.Role != nil {
		a.Role = Role(*r.Role)
	}
	if r.JoiningDate != nil {
		if d, err := time.Parse(dateLayout, *r.JoiningDate); err == nil {
			a.JoiningDate = d
		}
	}
	setIfPresent(&a.Photo, r.Photo)
	setIfPresent(&a.Phone, r.Phone)
	setIfPresent(&a.Address, r.Address)
	setIfPresent(&a.City, r.City)
	if r.DateOfBirth != nil {
		if d, err := time.Parse(dateLayout, *r.DateOfBirth); err == nil {
			a.DateOfBirth = &d
		}
	}
	setIfPresent(&a.Gender, r.Gender)
	if r.EmergencyContact != nil {
		a.EmergencyContact = r.EmergencyContact.toEntity()
	}
	a.JobDetails = r.JobDetails.Apply(a.JobDetails)
	if s := r.SalaryDetails; s != nil {
		setIfPresent(&a.SalaryDetails.WageType, s.WageType)
		if s.BankAccount != nil {
			a.SalaryDetails.BankAccount = BankAccount{
				AccountNumber: s.BankAccount.AccountNumber,
				BankName:      s.BankAccount.BankName,
				IFSCCode:      s.BankAccount.IFSCCode,
			}
		}
	}
	return a
}

type AddDocumentRequest struct {
	Name string `json:"name" validate:"required,max=200"`
	Type string `json:"type" validate:"omitempty,oneof=Contract Certificate ID Resume Other"`
	URL  string `json:"url" validate:"required,url,max=2048"`
}

func (r *AddDocumentRequest) Validate() error {
	return validator.Struct(r).Err()
}

type SeedAdminRequest struct {
	FirstName string `validate:"required"`
	LastName  string `validate:"required"`
	Email     string `validate:"required,email"`
	Password  string `validate:"required,min=6,max=72"`
}

func (r *SeedAdminRequest) Validate() error {
	return validator.Struct(r).Err()
}

// ========================================
// RESPONSES
// ========================================

type AccountResponse struct {
	ID                 string                 `json:"id"`
	EmployeeID         string                 `json:"employee_id"`
	Email              string                 `json:"email"`
	FirstName          string                 `json:"first_name"`
	LastName           string                 `json:"last_name"`
	Role               Role                   `json:"role"`
	MustChangePassword bool                   `json:"must_change_password"`
	JoiningDate        string                 `json:"joining_date"`
	Photo              string                 `json:"photo"`
	Phone              string                 `json:"phone"`
	Address            string                 `json:"address"`
	City               string                 `json:"city"`
	DateOfBirth        *string                `json:"date_of_birth"`
	Gender             string                 `json:"gender"`
	EmergencyContact   EmergencyContact       `json:"emergency_contact"`
	JobDetails         JobDetails             `json:"job_details"`
	SalaryDetails      *SalaryDetailsResponse `json:"salary_details,omitempty"`
	Documents          []Document             `json:"documents"`
	CreatedAt          time.Time              `json:"created_at"`
}

type SalaryDetailsResponse struct {
	WageType    string                  `json:"wage_type"`
	Breakdown   payroll.SalaryBreakdown `json:"breakdown"`
	BankAccount BankAccount             `json:"bank_account"`
}

func NewAccountResponse(a Account) AccountResponse {
	resp := AccountResponse{
		ID:                 a.ID,
		EmployeeID:         a.EmployeeIdentifier,
		Email:              a.Email,
		FirstName:          a.FirstName,
		LastName:           a.LastName,
		Role:               a.Role,
		MustChangePassword: a.MustChangePassword,
		JoiningDate:        a.JoiningDate.Format(dateLayout),
		Photo:              a.Photo,
		Phone:              a.Phone,
		Address:            a.Address,
		City:               a.City,
		Gender:             a.Gender,
		EmergencyContact:   a.EmergencyContact,
		JobDetails:         a.JobDetails,
		Documents:          a.Documents,
		CreatedAt:          a.CreatedAt,
	}
	if resp.Documents == nil {
		resp.Documents = []Document{}
	}
	if a.DateOfBirth != nil {
		dob := a.DateOfBirth.Format(dateLayout)
		resp.DateOfBirth = &dob
	}
	if a.SalaryDetails.Configured() {
		resp.SalaryDetails = &SalaryDetailsResponse{
			WageType:    a.SalaryDetails.WageType,
			Breakdown:   a.SalaryDetails.Breakdown,
			BankAccount: a.SalaryDetails.BankAccount,
		}
	}
	return resp
}

type CreateEmployeeResponse struct {
	EmployeeID        string          `json:"employee_id"`
	TemporaryPassword string          `json:"temporary_password"`
	Account           AccountResponse `json:"account"`
}

type SeedAdminResult struct {
	Created    bool
	EmployeeID string
}

const dateLayout = "2006-01-02"

func setIfPresent(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
