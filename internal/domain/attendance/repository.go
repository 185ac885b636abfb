package attendance

import (
	"context"
	"time"
)

// AttendanceRepository stores day records. Check-in and check-out are
// conditional writes decided by the store, never read-modify-write.
type AttendanceRepository interface {
	// CheckIn inserts the day's record, or stamps an existing record whose
	// check-in is unset. It returns ErrAlreadyCheckedIn when check-in is
	// already set.
	CheckIn(ctx context.Context, record Record) (Record, error)

	// CheckOut stamps check-out on the day's record only if check-in is set
	// and check-out is not. Failures are ErrNotCheckedInYet and
	// ErrAlreadyCheckedOut.
	CheckOut(ctx context.Context, accountID string, date time.Time, checkOut string, at time.Time) (Record, error)

	// GetByAccountAndDate returns ErrAttendanceNotFound when there is no
	// record.
	GetByAccountAndDate(ctx context.Context, accountID string, date time.Time) (Record, error)

	// ListByAccount returns the newest limit records, date descending.
	ListByAccount(ctx context.Context, accountID string, limit int) ([]Record, error)

	// ListByDate returns every account's record for date with EmployeeName
	// filled in.
	ListByDate(ctx context.Context, date time.Time) ([]Record, error)
}
