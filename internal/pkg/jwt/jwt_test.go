package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-session-tokens-0123456789"

func TestSessionToken_RoundTrip(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	svc := NewJWTService(testSecret, 7*24*time.Hour, 30*time.Second, func() time.Time { return now })

	token, issued, err := svc.GenerateSessionToken("acc-1", "OIANLI20260001", "employee")
	require.NoError(t, err)
	assert.Equal(t, now.Add(7*24*time.Hour), issued.ExpiresAt)

	claims, err := svc.ParseSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, "acc-1", claims.AccountID)
	assert.Equal(t, "OIANLI20260001", claims.EmployeeIdentifier)
	assert.Equal(t, "employee", claims.Role)
	assert.True(t, claims.ExpiresAt.Equal(issued.ExpiresAt))
}

func TestSessionToken_Expired(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	svc := NewJWTService(testSecret, 7*24*time.Hour, 30*time.Second, func() time.Time { return now })

	token, _, err := svc.GenerateSessionToken("acc-1", "OIANLI20260001", "employee")
	require.NoError(t, err)

	now = now.Add(7*24*time.Hour + time.Minute)
	_, err = svc.ParseSessionToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestSessionToken_Invalid(t *testing.T) {
	svc := NewJWTService(testSecret, time.Hour, 0, nil)
	other := NewJWTService("another-secret-key-for-session-tokens-xyz", time.Hour, 0, nil)

	foreign, _, err := other.GenerateSessionToken("acc-1", "OIANLI20260001", "admin")
	require.NoError(t, err)

	for _, token := range []string{"", "not-a-jwt", foreign} {
		_, err := svc.ParseSessionToken(token)
		assert.ErrorIs(t, err, ErrTokenInvalid, "token %q", token)
	}
}
