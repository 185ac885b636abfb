package identity

import "errors"

var (
	ErrUnusableName    = errors.New("name has no letters usable in an employee identifier")
	ErrInvalidYear     = errors.New("joining year must be between 1000 and 9999")
	ErrSerialExhausted = errors.New("no employee identifiers left for this joining year")
)
