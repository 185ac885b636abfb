package auth

import (
	"context"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/account"
)

// MinPasswordLength is enforced on every password a user chooses.
const MinPasswordLength = 6

// MaxPasswordBytes is the longest input bcrypt accepts.
const MaxPasswordBytes = 72

// Principal is the authenticated caller of a request.
type Principal struct {
	AccountID          string
	EmployeeIdentifier string
	Role               account.Role
	MustChangePassword bool
	ExpiresAt          time.Time
}

// RequireRole fails with ErrForbidden unless p holds role.
func RequireRole(p Principal, role account.Role) error {
	if p.Role != role {
		return ErrForbidden
	}
	return nil
}

type principalKey struct{}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
