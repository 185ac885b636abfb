package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/account"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/identity"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		UnauthorizedWithCode(w, "INVALID_CREDENTIALS", "Invalid credentials")
	case errors.Is(err, auth.ErrTokenExpired):
		UnauthorizedWithCode(w, "TOKEN_EXPIRED", "Session expired, please log in again")
	case errors.Is(err, auth.ErrUnauthenticated):
		Unauthorized(w, "Authentication required")
	case errors.Is(err, auth.ErrForbidden):
		Forbidden(w, "You do not have permission to perform this action")
	case errors.Is(err, auth.ErrPasswordChangeRequired):
		ForbiddenWithCode(w, "PASSWORD_CHANGE_REQUIRED", "Password must be changed before continuing")
	case errors.Is(err, auth.ErrIncorrectPassword):
		BadRequest(w, "Current password is incorrect", map[string]string{"old_password": "incorrect password"})
	case errors.Is(err, auth.ErrWeakPassword), errors.Is(err, auth.ErrPasswordTooLong):
		ValidationError(w, map[string]string{"new_password": err.Error()})
	case errors.Is(err, auth.ErrTooManyAttempts):
		TooManyRequests(w, "Too many login attempts, try again later", 0)

	// Account domain errors
	case errors.Is(err, account.ErrAccountNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, account.ErrDocumentNotFound):
		NotFound(w, "Document not found")
	case errors.Is(err, account.ErrDuplicateEmail):
		ConflictWithCode(w, "DUPLICATE_EMAIL", "Email already registered")
	case errors.Is(err, account.ErrDuplicateIdentifier):
		ConflictWithCode(w, "DUPLICATE_IDENTIFIER", "Employee identifier already issued")
	case errors.Is(err, account.ErrInvalidRole):
		ValidationError(w, map[string]string{"role": "role must be one of: employee, admin"})

	// Identity domain errors
	case errors.Is(err, identity.ErrUnusableName):
		ValidationError(w, map[string]string{"name": err.Error()})
	case errors.Is(err, identity.ErrInvalidYear):
		ValidationError(w, map[string]string{"joining_date": err.Error()})
	case errors.Is(err, identity.ErrSerialExhausted):
		ConflictWithCode(w, "SERIAL_EXHAUSTED", "No employee identifiers left for this joining year")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		ConflictWithCode(w, "ALREADY_CHECKED_IN", "You have already checked in today")
	case errors.Is(err, attendance.ErrNotCheckedInYet):
		ConflictWithCode(w, "NOT_CHECKED_IN", "You have not checked in yet")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		ConflictWithCode(w, "ALREADY_CHECKED_OUT", "You have already checked out today")
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Leave domain errors
	case errors.Is(err, leave.ErrInvalidRange):
		ValidationError(w, map[string]string{"end_date": err.Error()})
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrAlreadyDecided):
		ConflictWithCode(w, "ALREADY_DECIDED", "Leave request has already been decided")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrSalaryNotConfigured):
		NotFound(w, "Salary has not been configured")
	case errors.Is(err, payroll.ErrNegativeWage):
		ValidationError(w, map[string]string{"wage": err.Error()})

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
