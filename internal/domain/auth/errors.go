package auth

import (
	"errors"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/account"
)

var (
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrUnauthenticated        = errors.New("authentication required")
	ErrTokenExpired           = errors.New("session has expired")
	ErrForbidden              = errors.New("you do not have permission to perform this action")
	ErrIncorrectPassword      = errors.New("current password is incorrect")
	ErrWeakPassword           = errors.New("new password must be at least 6 characters")
	ErrPasswordTooLong        = errors.New("new password must be at most 72 bytes")
	ErrPasswordChangeRequired = errors.New("password must be changed before continuing")
	ErrTooManyAttempts        = errors.New("too many login attempts")

	// ErrAccountNotFound is returned when a valid token names an account
	// that no longer exists.
	ErrAccountNotFound = account.ErrAccountNotFound
)
