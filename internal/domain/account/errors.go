package account

import "errors"

var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrDuplicateEmail      = errors.New("email already registered")
	ErrDuplicateIdentifier = errors.New("employee identifier already issued")
	ErrInvalidRole         = errors.New("role must be employee or admin")
	ErrDocumentNotFound    = errors.New("document not found")
)
