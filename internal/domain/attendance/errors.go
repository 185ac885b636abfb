package attendance

import "errors"

// Attendance domain errors
var (
	ErrAlreadyCheckedIn  = errors.New("you have already checked in today")
	ErrNotCheckedInYet   = errors.New("you have not checked in yet")
	ErrAlreadyCheckedOut = errors.New("you have already checked out today")

	ErrAttendanceNotFound = errors.New("attendance record not found")
)
