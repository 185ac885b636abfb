package auth

import (
	"context"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/account"
)

// AuthService hashes credentials and issues and checks session tokens.
type AuthService interface {
	HashPassword(plaintext string) (string, error)
	VerifyPassword(plaintext, hash string) bool

	// Login fails with ErrInvalidCredentials for an unknown identifier and
	// for a wrong password alike.
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)

	// Authenticate resolves a bearer token. It fails with ErrUnauthenticated,
	// ErrTokenExpired or ErrAccountNotFound.
	Authenticate(ctx context.Context, token string) (Principal, error)

	RequireRole(p Principal, role account.Role) error

	ChangePassword(ctx context.Context, accountID string, req ChangePasswordRequest) error
}
