package leave

import (
	"time"
)

type Type string

const (
	TypePaid   Type = "Paid Leave"
	TypeSick   Type = "Sick Leave"
	TypeUnpaid Type = "Unpaid Leave"
)

func (t Type) IsValid() bool {
	switch t {
	case TypePaid, TypeSick, TypeUnpaid:
		return true
	}
	return false
}

type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

// IsDecision reports whether s is a terminal status an admin may set.
func (s Status) IsDecision() bool {
	return s == StatusApproved || s == StatusRejected
}

type Request struct {
	ID                 string
	AccountID          string
	EmployeeIdentifier string
	Type               Type
	StartDate          time.Time
	EndDate            time.Time
	Days               int
	Reason             string
	Status             Status
	ApproverID         *string
	ApprovedAt         *time.Time
	Comments           *string
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// Join
	EmployeeName  *string
	EmployeeEmail *string
}

// Decision is the terminal transition applied to a pending request.
type Decision struct {
	Status     Status
	ApproverID string
	DecidedAt  time.Time
	Comments   *string
}

// CountDays returns the inclusive number of calendar days from start to end.
func CountDays(start, end time.Time) (int, error) {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	if e.Before(s) {
		return 0, ErrInvalidRange
	}
	return int(e.Sub(s)/(24*time.Hour)) + 1, nil
}
