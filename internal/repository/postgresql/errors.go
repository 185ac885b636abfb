package postgresql

import (
	"errors"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/account"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/attendance"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// uniqueConstraints maps constraint names from the migrations to the domain
// conflict they signal.
var uniqueConstraints = map[string]error{
	"accounts_email_lower_key":            account.ErrDuplicateEmail,
	"accounts_employee_identifier_key":    account.ErrDuplicateIdentifier,
	"attendance_records_account_date_key": attendance.ErrAlreadyCheckedIn,
}

// translateError turns a unique violation into its domain error and leaves
// every other error as it is.
func translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		if domainErr, ok := uniqueConstraints[pgErr.ConstraintName]; ok {
			return domainErr
		}
	}
	return err
}
