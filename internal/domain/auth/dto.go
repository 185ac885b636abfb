package auth

import (
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/account"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
)

type LoginRequest struct {
	// Identifier is an employee identifier or an email address.
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Identifier) {
		errs.Add("identifier", "identifier is required")
	}
	if r.Password == "" {
		errs.Add("password", "password is required")
	}

	return errs.Err()
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (r *ChangePasswordRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.OldPassword == "" {
		errs.Add("old_password", "old_password is required")
	}
	if r.NewPassword == "" {
		errs.Add("new_password", "new_password is required")
	}

	return errs.Err()
}

// PublicProfile is what login reveals about the account.
type PublicProfile struct {
	ID                 string       `json:"id"`
	EmployeeID         string       `json:"employee_id"`
	Email              string       `json:"email"`
	FirstName          string       `json:"first_name"`
	LastName           string       `json:"last_name"`
	Role               account.Role `json:"role"`
	MustChangePassword bool         `json:"must_change_password"`
}

func NewPublicProfile(a account.Account) PublicProfile {
	return PublicProfile{
		ID:                 a.ID,
		EmployeeID:         a.EmployeeIdentifier,
		Email:              a.Email,
		FirstName:          a.FirstName,
		LastName:           a.LastName,
		Role:               a.Role,
		MustChangePassword: a.MustChangePassword,
	}
}

type LoginResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	User      PublicProfile `json:"user"`
	Principal Principal     `json:"-"`
}
