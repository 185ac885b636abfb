package postgresql_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/account"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/stretchr/testify/require"
)

// newTestDB connects to TEST_DATABASE_URL, migrates it and empties every
// table. Tests are skipped when the variable is unset.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}

	db, err := database.NewPostgreSQLDB(dsn, database.Options{MaxConns: 10, MinConns: 1})
	require.NoError(t, err)
	t.Cleanup(db.Close)

	ctx := context.Background()
	require.NoError(t, database.Migrate(ctx, db, "up"))

	pool, err := db.Pool(ctx)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `TRUNCATE TABLE leave_requests, attendance_records, accounts CASCADE`)
	require.NoError(t, err)

	return db
}

func newTestAccount(identifier, email string) account.Account {
	return account.Account{
		EmployeeIdentifier: identifier,
		Email:              email,
		PasswordHash:       "$2a$10$placeholderplaceholderplaceholderplaceholderplacehold",
		FirstName:          "Test",
		LastName:           "User",
		Role:               account.RoleEmployee,
		MustChangePassword: true,
		JoiningDate:        time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		JobDetails:         account.DefaultJobDetails(),
	}
}
