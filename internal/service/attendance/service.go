package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/clock"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	clock *clock.Clock
}

func NewAttendanceService(attendanceRepository attendance.AttendanceRepository, clk *clock.Clock) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepository,
		clock:                clk,
	}
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, p auth.Principal) (attendance.AttendanceResponse, error) {
	now := s.clock.Now()
	checkIn := s.clock.TimeOfDay(now)
	checkInAt := now.UTC()

	rec, err := s.AttendanceRepository.CheckIn(ctx, attendance.Record{
		AccountID:          p.AccountID,
		EmployeeIdentifier: p.EmployeeIdentifier,
		Date:               s.clock.Day(now),
		CheckIn:            &checkIn,
		CheckInAt:          &checkInAt,
		Status:             attendance.StatusPresent,
	})
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyCheckedIn) {
			return attendance.AttendanceResponse{}, err
		}
		slog.ErrorContext(ctx, "failed to check in", "account_id", p.AccountID, "error", err)
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check in: %w", err)
	}

	return attendance.NewAttendanceResponse(rec), nil
}

// CheckOut implements attendance.AttendanceService. The day is the org-local
// date at the moment of check-out.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, p auth.Principal) (attendance.AttendanceResponse, error) {
	now := s.clock.Now()

	rec, err := s.AttendanceRepository.CheckOut(ctx, p.AccountID, s.clock.Day(now), s.clock.TimeOfDay(now), now.UTC())
	if err != nil {
		if errors.Is(err, attendance.ErrNotCheckedInYet) || errors.Is(err, attendance.ErrAlreadyCheckedOut) {
			return attendance.AttendanceResponse{}, err
		}
		slog.ErrorContext(ctx, "failed to check out", "account_id", p.AccountID, "error", err)
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check out: %w", err)
	}

	return attendance.NewAttendanceResponse(rec), nil
}

// GetForDay implements attendance.AttendanceService. Only the calendar fields
// of day are used.
func (s *AttendanceServiceImpl) GetForDay(ctx context.Context, accountID string, day time.Time) (*attendance.AttendanceResponse, error) {
	y, m, d := day.Date()
	rec, err := s.AttendanceRepository.GetByAccountAndDate(ctx, accountID, time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance: %w", err)
	}
	resp := attendance.NewAttendanceResponse(rec)
	return &resp, nil
}

// GetToday implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetToday(ctx context.Context, accountID string) (attendance.TodayResponse, error) {
	today := s.clock.Today()

	rec, err := s.AttendanceRepository.GetByAccountAndDate(ctx, accountID, today)
	if err != nil && !errors.Is(err, attendance.ErrAttendanceNotFound) {
		return attendance.TodayResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}

	resp := attendance.TodayResponse{
		Date:  clock.FormatDay(today),
		State: attendance.StateNotMarked.String(),
	}
	if err == nil {
		r := attendance.NewAttendanceResponse(rec)
		resp.Attendance = &r
		resp.State = r.State
	}
	return resp, nil
}

// ListRecent implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListRecent(ctx context.Context, accountID string, q attendance.RecentQuery) ([]attendance.AttendanceResponse, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = attendance.DefaultRecentLimit
	}
	if limit > attendance.MaxRecentLimit {
		limit = attendance.MaxRecentLimit
	}

	records, err := s.AttendanceRepository.ListByAccount(ctx, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return toResponses(records), nil
}

// ListForAdminByDay implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListForAdminByDay(ctx context.Context, q attendance.DayQuery) ([]attendance.AttendanceResponse, error) {
	day := q.Day
	if day.IsZero() {
		day = s.clock.Today()
	}

	records, err := s.AttendanceRepository.ListByDate(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance for %s: %w", clock.FormatDay(day), err)
	}
	return toResponses(records), nil
}

func toResponses(records []attendance.Record) []attendance.AttendanceResponse {
	out := make([]attendance.AttendanceResponse, 0, len(records))
	for _, r := range records {
		out = append(out, attendance.NewAttendanceResponse(r))
	}
	return out
}
