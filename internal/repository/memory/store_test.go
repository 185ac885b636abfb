package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/account"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDay = time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

func seedAccount(t *testing.T, s *Store, identifier, email string) account.Account {
	t.Helper()
	return seedAccountCtx(context.Background(), t, s, identifier, email)
}

func seedAccountCtx(ctx context.Context, t *testing.T, s *Store, identifier, email string) account.Account {
	t.Helper()
	a, err := s.Accounts().Create(ctx, account.Account{
		EmployeeIdentifier: identifier,
		Email:              email,
		PasswordHash:       "hash",
		FirstName:          "Test",
		LastName:           identifier,
		Role:               account.RoleEmployee,
		JoiningDate:        testDay,
	})
	require.NoError(t, err)
	return a
}

func TestAccountRepository_Uniqueness(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil)
	seedAccount(t, s, "OIJODO20260001", "john@example.com")

	_, err := s.Accounts().Create(ctx, account.Account{EmployeeIdentifier: "OIJODO20260002", Email: "JOHN@example.com"})
	assert.ErrorIs(t, err, account.ErrDuplicateEmail)

	_, err = s.Accounts().Create(ctx, account.Account{EmployeeIdentifier: "OIJODO20260001", Email: "other@example.com"})
	assert.ErrorIs(t, err, account.ErrDuplicateIdentifier)
}

func TestAccountRepository_MaxSerialInYear(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil)
	seedAccount(t, s, "OIJODO20260001", "john@example.com")
	moved := seedAccount(t, s, "OIJADO20260007", "jane@example.com")
	seedAccount(t, s, "OIANLI20250012", "ana@example.com")

	moved.JoiningDate = testDay.AddDate(-1, 0, 0)
	_, err := s.Accounts().Update(ctx, moved)
	require.NoError(t, err)

	n, err := s.Accounts().MaxSerialInYear(ctx, 2026)
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	n, err = s.Accounts().MaxSerialInYear(ctx, 2025)
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	n, err = s.Accounts().MaxSerialInYear(ctx, 2024)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestAccountRepository_GetByLogin(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil)
	created := seedAccount(t, s, "OIJODO20260001", "John@Example.com")

	byID, err := s.Accounts().GetByLogin(ctx, "OIJODO20260001")
	require.NoError(t, err)
	byEmail, err := s.Accounts().GetByLogin(ctx, "  JOHN@example.COM ")
	require.NoError(t, err)

	assert.Equal(t, created.ID, byID.ID)
	assert.Equal(t, created.ID, byEmail.ID)

	_, err = s.Accounts().GetByLogin(ctx, "nobody")
	assert.ErrorIs(t, err, account.ErrAccountNotFound)
}

func TestAccountRepository_UpdateKeepsCredentials(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil)
	a := seedAccount(t, s, "OIJODO20260001", "john@example.com")

	a.PasswordHash = "tampered"
	a.EmployeeIdentifier = "OIXXXX20260001"
	a.City = "Pune"
	updated, err := s.Accounts().Update(ctx, a)
	require.NoError(t, err)

	assert.Equal(t, "hash", updated.PasswordHash)
	assert.Equal(t, "OIJODO20260001", updated.EmployeeIdentifier)
	assert.Equal(t, "Pune", updated.City)
}

func TestAccountRepository_Documents(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil)
	a := seedAccount(t, s, "OIJODO20260001", "john@example.com")

	got, err := s.Accounts().AddDocument(ctx, a.ID, account.Document{ID: "doc-1", Name: "Contract"})
	require.NoError(t, err)
	require.Len(t, got.Documents, 1)

	// callers cannot mutate stored state through returned slices
	got.Documents[0].Name = "changed"
	again, err := s.Accounts().GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Contract", again.Documents[0].Name)

	_, err = s.Accounts().RemoveDocument(ctx, a.ID, "missing")
	assert.ErrorIs(t, err, account.ErrDocumentNotFound)

	got, err = s.Accounts().RemoveDocument(ctx, a.ID, "doc-1")
	require.NoError(t, err)
	assert.Empty(t, got.Documents)
}

func TestStore_TransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil)
	boom := errors.New("boom")

	err := s.WithinTransaction(ctx, func(txCtx context.Context) error {
		seedAccountCtx(txCtx, t, s, "OIJODO20260001", "john@example.com")
		return boom
	})
	assert.ErrorIs(t, err, boom)

	n, err := s.Accounts().CountJoinedInYear(ctx, 2026)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestStore_RollbackKeepsConcurrentWrites(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil)
	a := seedAccount(t, s, "OIJODO20260001", "john@example.com")
	boom := errors.New("boom")

	var (
		wg       sync.WaitGroup
		checkErr error
	)
	err := s.WithinTransaction(ctx, func(txCtx context.Context) error {
		seedAccountCtx(txCtx, t, s, "OIJASM20260002", "jane@example.com")
		wg.Add(1)
		go func() {
			defer wg.Done()
			in := "09:00:00"
			_, checkErr = s.Attendance().CheckIn(ctx, attendance.Record{AccountID: a.ID, Date: testDay, CheckIn: &in})
		}()
		// give the check-in a chance to run while the transaction is open
		time.Sleep(20 * time.Millisecond)
		return boom
	})
	assert.ErrorIs(t, err, boom)
	wg.Wait()
	require.NoError(t, checkErr)

	rec, err := s.Attendance().GetByAccountAndDate(ctx, a.ID, testDay)
	require.NoError(t, err)
	assert.Equal(t, "09:00:00", *rec.CheckIn)

	_, err = s.Accounts().GetByLogin(ctx, "jane@example.com")
	assert.ErrorIs(t, err, account.ErrAccountNotFound)
}

func TestAttendanceRepository_StateMachine(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil)
	a := seedAccount(t, s, "OIJODO20260001", "john@example.com")
	repo := s.Attendance()

	_, err := repo.CheckOut(ctx, a.ID, testDay, "18:00:00", testDay.Add(18*time.Hour))
	assert.ErrorIs(t, err, attendance.ErrNotCheckedInYet)

	in := "09:00:00"
	inAt := testDay.Add(9 * time.Hour)
	rec, err := repo.CheckIn(ctx, attendance.Record{AccountID: a.ID, EmployeeIdentifier: a.EmployeeIdentifier, Date: testDay, CheckIn: &in, CheckInAt: &inAt})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, rec.Status)

	_, err = repo.CheckIn(ctx, attendance.Record{AccountID: a.ID, Date: testDay, CheckIn: &in, CheckInAt: &inAt})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)

	rec, err = repo.CheckOut(ctx, a.ID, testDay, "17:30:00", testDay.Add(17*time.Hour+30*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 8.5, rec.WorkingHours)

	_, err = repo.CheckOut(ctx, a.ID, testDay, "18:00:00", testDay.Add(18*time.Hour))
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)

	list, err := repo.ListByDate(ctx, testDay)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].EmployeeName)
	assert.Equal(t, "Test OIJODO20260001", *list[0].EmployeeName)
}

func TestAttendanceRepository_ConcurrentCheckIn(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil)
	a := seedAccount(t, s, "OIJODO20260001", "john@example.com")

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok, dupe int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			in := "09:00:00"
			_, err := s.Attendance().CheckIn(ctx, attendance.Record{AccountID: a.ID, Date: testDay, CheckIn: &in})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				ok++
			} else if errors.Is(err, attendance.ErrAlreadyCheckedIn) {
				dupe++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, ok)
	assert.Equal(t, 19, dupe)
}

func TestLeaveRepository_Decide(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil)
	a := seedAccount(t, s, "OIJODO20260001", "john@example.com")
	repo := s.Leaves()

	req, err := repo.Create(ctx, leave.Request{AccountID: a.ID, Type: leave.TypeSick, StartDate: testDay, EndDate: testDay, Days: 1, Reason: "flu"})
	require.NoError(t, err)
	assert.Equal(t, leave.StatusPending, req.Status)

	_, err = repo.Decide(ctx, "missing", leave.Decision{Status: leave.StatusApproved, ApproverID: "admin"})
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)

	decided, err := repo.Decide(ctx, req.ID, leave.Decision{Status: leave.StatusApproved, ApproverID: "admin", DecidedAt: testDay})
	require.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, decided.Status)
	require.NotNil(t, decided.ApproverID)
	assert.Equal(t, "admin", *decided.ApproverID)

	_, err = repo.Decide(ctx, req.ID, leave.Decision{Status: leave.StatusRejected, ApproverID: "admin"})
	assert.ErrorIs(t, err, leave.ErrAlreadyDecided)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.NotNil(t, all[0].EmployeeEmail)
	assert.Equal(t, "john@example.com", *all[0].EmployeeEmail)
}

func TestLeaveRepository_NewestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewStore(func() time.Time { return testDay })
	a := seedAccount(t, s, "OIJODO20260001", "john@example.com")

	var ids []string
	for _, reason := range []string{"first", "second", "third"} {
		req, err := s.Leaves().Create(ctx, leave.Request{AccountID: a.ID, Type: leave.TypePaid, Reason: reason, Days: 1})
		require.NoError(t, err)
		ids = append(ids, req.ID)
	}

	mine, err := s.Leaves().ListByAccount(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, mine, 3)
	assert.Equal(t, []string{ids[2], ids[1], ids[0]}, []string{mine[0].ID, mine[1].ID, mine[2].ID})
}
