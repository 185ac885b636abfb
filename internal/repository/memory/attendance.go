package memory

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/attendance"
	"github.com/google/uuid"
)

type AttendanceRepository struct {
	s *Store
}

var _ attendance.AttendanceRepository = (*AttendanceRepository)(nil)

func (r *AttendanceRepository) CheckIn(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	defer r.s.lockWrite(ctx)()

	key := dayKey{accountID: rec.AccountID, date: rec.Date}
	now := r.s.now()

	if id, ok := r.s.attByDay[key]; ok {
		existing := r.s.attendance[id]
		if existing.CheckIn != nil {
			return attendance.Record{}, attendance.ErrAlreadyCheckedIn
		}
		existing.CheckIn = rec.CheckIn
		existing.CheckInAt = rec.CheckInAt
		existing.Status = attendance.StatusPresent
		existing.UpdatedAt = now
		r.s.attendance[id] = existing
		return existing, nil
	}

	rec.ID = uuid.NewString()
	if rec.Status == "" {
		rec.Status = attendance.StatusPresent
	}
	rec.CreatedAt = now
	rec.UpdatedAt = now
	rec.EmployeeName = nil
	r.s.attendance[rec.ID] = rec
	r.s.attByDay[key] = rec.ID
	return rec, nil
}

func (r *AttendanceRepository) CheckOut(ctx context.Context, accountID string, date time.Time, checkOut string, at time.Time) (attendance.Record, error) {
	defer r.s.lockWrite(ctx)()

	id, ok := r.s.attByDay[dayKey{accountID: accountID, date: date}]
	if !ok {
		return attendance.Record{}, attendance.ErrNotCheckedInYet
	}
	rec := r.s.attendance[id]
	switch rec.State() {
	case attendance.StateNotMarked:
		return attendance.Record{}, attendance.ErrNotCheckedInYet
	case attendance.StateCheckedOut:
		return attendance.Record{}, attendance.ErrAlreadyCheckedOut
	}

	rec.CheckOut = &checkOut
	rec.CheckOutAt = &at
	if rec.CheckInAt != nil {
		rec.WorkingHours = attendance.WorkingHoursBetween(*rec.CheckInAt, at)
	}
	rec.UpdatedAt = r.s.now()
	r.s.attendance[id] = rec
	return rec, nil
}

func (r *AttendanceRepository) GetByAccountAndDate(ctx context.Context, accountID string, date time.Time) (attendance.Record, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.attByDay[dayKey{accountID: accountID, date: date}]
	if !ok {
		return attendance.Record{}, attendance.ErrAttendanceNotFound
	}
	return r.s.attendance[id], nil
}

func (r *AttendanceRepository) ListByAccount(ctx context.Context, accountID string, limit int) ([]attendance.Record, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]attendance.Record, 0)
	for _, rec := range r.s.attendance {
		if rec.AccountID == accountID {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *AttendanceRepository) ListByDate(ctx context.Context, date time.Time) ([]attendance.Record, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]attendance.Record, 0)
	for _, rec := range r.s.attendance {
		if !rec.Date.Equal(date) {
			continue
		}
		if a, ok := r.s.accounts[rec.AccountID]; ok {
			name := a.FullName()
			rec.EmployeeName = &name
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].EmployeeIdentifier < out[j].EmployeeIdentifier
	})
	return out, nil
}
