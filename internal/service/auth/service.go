package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"unicode/utf8"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/account"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = bcrypt.DefaultCost

type AuthServiceImpl struct {
	account.AccountRepository
	jwt.Service

	dummyOnce sync.Once
	dummyHash []byte
}

func NewAuthService(accountRepository account.AccountRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		AccountRepository: accountRepository,
		Service:           jwtService,
	}
}

// HashPassword implements auth.AuthService.
func (a *AuthServiceImpl) HashPassword(plaintext string) (string, error) {
	if len(plaintext) > auth.MaxPasswordBytes {
		return "", auth.ErrPasswordTooLong
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword implements auth.AuthService.
func (a *AuthServiceImpl) VerifyPassword(plaintext, hash string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	acc, err := a.AccountRepository.GetByLogin(ctx, req.Identifier)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			// burn the same bcrypt time as a real comparison
			a.compareDummy(req.Password)
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to get account for login: %w", err)
	}

	if !a.VerifyPassword(req.Password, acc.PasswordHash) {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	token, claims, err := a.Service.GenerateSessionToken(acc.ID, acc.EmployeeIdentifier, string(acc.Role))
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to create session token: %w", err)
	}

	slog.InfoContext(ctx, "login succeeded", "account_id", acc.ID, "employee_id", acc.EmployeeIdentifier)

	return auth.LoginResponse{
		Token:     token,
		ExpiresAt: claims.ExpiresAt,
		User:      auth.NewPublicProfile(acc),
		Principal: principalOf(acc, claims),
	}, nil
}

// Authenticate implements auth.AuthService.
func (a *AuthServiceImpl) Authenticate(ctx context.Context, token string) (auth.Principal, error) {
	claims, err := a.Service.ParseSessionToken(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return auth.Principal{}, auth.ErrTokenExpired
		}
		return auth.Principal{}, auth.ErrUnauthenticated
	}

	acc, err := a.AccountRepository.GetByID(ctx, claims.AccountID)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			return auth.Principal{}, auth.ErrAccountNotFound
		}
		return auth.Principal{}, fmt.Errorf("failed to load session account: %w", err)
	}
	if acc.EmployeeIdentifier != claims.EmployeeIdentifier {
		return auth.Principal{}, auth.ErrUnauthenticated
	}

	return principalOf(acc, claims), nil
}

// RequireRole implements auth.AuthService.
func (a *AuthServiceImpl) RequireRole(p auth.Principal, role account.Role) error {
	return auth.RequireRole(p, role)
}

// ChangePassword implements auth.AuthService.
func (a *AuthServiceImpl) ChangePassword(ctx context.Context, accountID string, req auth.ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if utf8.RuneCountInString(req.NewPassword) < auth.MinPasswordLength {
		return auth.ErrWeakPassword
	}
	if len(req.NewPassword) > auth.MaxPasswordBytes {
		return auth.ErrPasswordTooLong
	}

	acc, err := a.AccountRepository.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			return auth.ErrAccountNotFound
		}
		return fmt.Errorf("failed to get account: %w", err)
	}

	if !a.VerifyPassword(req.OldPassword, acc.PasswordHash) {
		return auth.ErrIncorrectPassword
	}

	hash, err := a.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	if err := a.AccountRepository.UpdatePassword(ctx, acc.ID, hash, false); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	slog.InfoContext(ctx, "password changed", "account_id", acc.ID)
	return nil
}

func (a *AuthServiceImpl) compareDummy(plaintext string) {
	a.dummyOnce.Do(func() {
		a.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcryptCost)
	})
	_ = bcrypt.CompareHashAndPassword(a.dummyHash, []byte(plaintext))
}

func principalOf(acc account.Account, claims jwt.Claims) auth.Principal {
	return auth.Principal{
		AccountID:          acc.ID,
		EmployeeIdentifier: acc.EmployeeIdentifier,
		Role:               acc.Role,
		MustChangePassword: acc.MustChangePassword,
		ExpiresAt:          claims.ExpiresAt,
	}
}
