package leave

import "errors"

// Leave domain errors
var (
	ErrInvalidRange         = errors.New("end date must not be before start date")
	ErrLeaveRequestNotFound = errors.New("leave request not found")
	ErrAlreadyDecided       = errors.New("leave request has already been decided")
)
