package payroll

import "errors"

var (
	ErrSalaryNotConfigured = errors.New("salary has not been configured for this employee")
	ErrNegativeWage        = errors.New("wage must not be negative")
)
