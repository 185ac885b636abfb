package attendance

import (
	"strconv"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/validator"
)

const (
	DefaultRecentLimit = 30
	MaxRecentLimit     = 366
)

type AttendanceResponse struct {
	ID           string  `json:"id"`
	AccountID    string  `json:"account_id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	Date         string  `json:"date"`
	CheckIn      *string `json:"check_in"`
	CheckOut     *string `json:"check_out"`
	Status       Status  `json:"status"`
	WorkingHours float64 `json:"working_hours"`
	State        string  `json:"state"`
}

func NewAttendanceResponse(r Record) AttendanceResponse {
	return AttendanceResponse{
		ID:           r.ID,
		AccountID:    r.AccountID,
		EmployeeID:   r.EmployeeIdentifier,
		EmployeeName: r.EmployeeName,
		Date:         r.Date.Format("2006-01-02"),
		CheckIn:      r.CheckIn,
		CheckOut:     r.CheckOut,
		Status:       r.Status,
		WorkingHours: r.WorkingHours,
		State:        r.State().String(),
	}
}

type TodayResponse struct {
	Date       string              `json:"date"`
	State      string              `json:"state"`
	Attendance *AttendanceResponse `json:"attendance"`
}

// RecentQuery is parsed from ?limit=.
type RecentQuery struct {
	Limit int
}

func ParseRecentQuery(raw string) (RecentQuery, error) {
	q := RecentQuery{Limit: DefaultRecentLimit}
	if raw == "" {
		return q, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 || limit > MaxRecentLimit {
		return q, validator.ValidationErrors{{
			Field:   "limit",
			Message: "limit must be a number between 1 and " + strconv.Itoa(MaxRecentLimit),
		}}
	}
	q.Limit = limit
	return q, nil
}

// DayQuery is parsed from ?date=YYYY-MM-DD. A zero Day means today.
type DayQuery struct {
	Day time.Time
}

func ParseDayQuery(raw string) (DayQuery, error) {
	if raw == "" {
		return DayQuery{}, nil
	}
	day, ok := validator.IsValidDate(raw)
	if !ok {
		return DayQuery{}, validator.ValidationErrors{{Field: "date", Message: "date must be in YYYY-MM-DD format"}}
	}
	return DayQuery{Day: day}, nil
}
