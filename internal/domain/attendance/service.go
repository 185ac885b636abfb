package attendance

import (
	"context"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/auth"
)

// AttendanceService is the per-day check-in/check-out machine:
// NotMarked -> CheckedIn -> CheckedOut.
type AttendanceService interface {
	CheckIn(ctx context.Context, p auth.Principal) (AttendanceResponse, error)
	CheckOut(ctx context.Context, p auth.Principal) (AttendanceResponse, error)

	// GetForDay returns nil when the account has no record for day.
	GetForDay(ctx context.Context, accountID string, day time.Time) (*AttendanceResponse, error)
	GetToday(ctx context.Context, accountID string) (TodayResponse, error)

	ListRecent(ctx context.Context, accountID string, q RecentQuery) ([]AttendanceResponse, error)

	// ListForAdminByDay lists every record for a day; a zero day means today.
	ListForAdminByDay(ctx context.Context, q DayQuery) ([]AttendanceResponse, error)
}
