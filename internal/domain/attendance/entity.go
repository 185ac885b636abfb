package attendance

import (
	"time"
)

type Status string

const (
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
	StatusHalfDay Status = "Half-day"
	StatusLeave   Status = "Leave"
)

// State is the position of a day's record in the check-in/check-out machine.
type State int

const (
	StateNotMarked State = iota
	StateCheckedIn
	StateCheckedOut
)

func (s State) String() string {
	switch s {
	case StateCheckedIn:
		return "checked_in"
	case StateCheckedOut:
		return "checked_out"
	default:
		return "not_marked"
	}
}

// Record is one account's attendance for one calendar day. (AccountID, Date)
// is unique.
type Record struct {
	ID                 string
	AccountID          string
	EmployeeIdentifier string
	Date               time.Time
	CheckIn            *string
	CheckOut           *string
	CheckInAt          *time.Time
	CheckOutAt         *time.Time
	Status             Status
	WorkingHours       float64
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// Join
	EmployeeName *string
}

func (r *Record) State() State {
	switch {
	case r == nil || r.CheckIn == nil:
		return StateNotMarked
	case r.CheckOut == nil:
		return StateCheckedIn
	default:
		return StateCheckedOut
	}
}

// WorkingHoursBetween returns the hours from in to out rounded to two
// decimals, never negative.
func WorkingHoursBetween(in, out time.Time) float64 {
	d := out.Sub(in)
	if d < 0 {
		return 0
	}
	return float64(d.Round(36*time.Second)/(36*time.Second)) / 100
}
