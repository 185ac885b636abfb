package postgresql_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/account"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hrms-backend-go/internal/repository/postgresql"
	identityService "github.com/cmlabs-hris/hrms-backend-go/internal/service/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountRepository_CreateAndLookup(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewAccountRepository(db)

	in := newTestAccount("OITEUS20260001", "Test.User@Example.com")
	in.SalaryDetails = account.SalaryDetails{
		WageType:  account.WageTypeFixed,
		Breakdown: payroll.Derive(50000, payroll.DefaultParams()),
	}
	created, err := repo.Create(ctx, in)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "test.user@example.com", created.Email)
	assert.Equal(t, in.SalaryDetails, created.SalaryDetails)
	assert.Empty(t, created.Documents)

	byEmail, err := repo.GetByLogin(ctx, "TEST.USER@example.com")
	require.NoError(t, err)
	byID, err := repo.GetByLogin(ctx, "OITEUS20260001")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)
	assert.Equal(t, created.ID, byID.ID)

	_, err = repo.GetByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, account.ErrAccountNotFound)

	n, err := repo.CountJoinedInYear(ctx, 2026)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	n, err = repo.CountJoinedInYear(ctx, 2025)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = repo.MaxSerialInYear(ctx, 2026)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	n, err = repo.MaxSerialInYear(ctx, 2025)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestAccountRepository_UniqueConstraints(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewAccountRepository(db)

	_, err := repo.Create(ctx, newTestAccount("OITEUS20260001", "user@example.com"))
	require.NoError(t, err)

	_, err = repo.Create(ctx, newTestAccount("OITEUS20260002", "USER@example.com"))
	assert.ErrorIs(t, err, account.ErrDuplicateEmail)

	_, err = repo.Create(ctx, newTestAccount("OITEUS20260001", "other@example.com"))
	assert.ErrorIs(t, err, account.ErrDuplicateIdentifier)
}

func TestAccountRepository_UpdateNeverTouchesPassword(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewAccountRepository(db)

	created, err := repo.Create(ctx, newTestAccount("OITEUS20260001", "user@example.com"))
	require.NoError(t, err)

	created.PasswordHash = "changed"
	created.City = "Mumbai"
	updated, err := repo.Update(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, "Mumbai", updated.City)
	assert.NotEqual(t, "changed", updated.PasswordHash)

	require.NoError(t, repo.UpdatePassword(ctx, created.ID, "new-hash", false))
	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", got.PasswordHash)
	assert.False(t, got.MustChangePassword)
}

func TestAccountRepository_Documents(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewAccountRepository(db)

	created, err := repo.Create(ctx, newTestAccount("OITEUS20260001", "user@example.com"))
	require.NoError(t, err)

	at := time.Date(2026, 1, 6, 10, 0, 0, 0, time.UTC)
	for _, id := range []string{"doc-a", "doc-b", "doc-c"} {
		_, err = repo.AddDocument(ctx, created.ID, account.Document{ID: id, Name: id, Type: account.DocumentOther, URL: "https://x/" + id, UploadedAt: at})
		require.NoError(t, err)
	}

	got, err := repo.RemoveDocument(ctx, created.ID, "doc-b")
	require.NoError(t, err)
	require.Len(t, got.Documents, 2)
	assert.Equal(t, "doc-a", got.Documents[0].ID)
	assert.Equal(t, "doc-c", got.Documents[1].ID)

	_, err = repo.RemoveDocument(ctx, created.ID, "doc-b")
	assert.ErrorIs(t, err, account.ErrDocumentNotFound)
}

func TestAccountRepository_ConcurrentIssuanceUnderLock(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewAccountRepository(db)
	tx := postgresql.NewTxManager(db)
	issuer := identityService.NewIssuer(repo, clock.New(time.UTC, nil))

	const n = 8
	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ids []string
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := tx.WithinTransaction(ctx, func(ctx context.Context) error {
				if err := repo.LockJoiningYear(ctx, 2026); err != nil {
					return err
				}
				id, err := issuer.IssueIdentifier(ctx, "Test", "User", 2026)
				if err != nil {
					return err
				}
				_, err = repo.Create(ctx, newTestAccount(id, fmt.Sprintf("user%d@example.com", i)))
				if err == nil {
					mu.Lock()
					ids = append(ids, id)
					mu.Unlock()
				}
				return err
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	require.Len(t, ids, n)
	seen := make(map[string]bool)
	for _, id := range ids {
		assert.False(t, seen[id], "duplicate %s", id)
		seen[id] = true
	}

	err := repo.LockJoiningYear(ctx, 2026)
	assert.Error(t, err, "lock outside a transaction")
}
