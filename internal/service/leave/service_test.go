package leave

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/account"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hrms-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

type leaveFixture struct {
	service  leave.LeaveService
	employee auth.Principal
	admin    auth.Principal
}

func newLeaveFixture(t *testing.T) leaveFixture {
	t.Helper()
	ctx := context.Background()
	now := func() time.Time { return testNow }
	store := memory.NewStore(now)

	emp, err := store.Accounts().Create(ctx, account.Account{EmployeeIdentifier: "OIJODO20260001", Email: "john@example.com", FirstName: "John", LastName: "Doe", Role: account.RoleEmployee})
	require.NoError(t, err)
	adm, err := store.Accounts().Create(ctx, account.Account{EmployeeIdentifier: "OIADUS20260002", Email: "admin@example.com", FirstName: "Admin", LastName: "User", Role: account.RoleAdmin})
	require.NoError(t, err)

	return leaveFixture{
		service:  NewLeaveService(store.Leaves(), clock.New(time.UTC, now)),
		employee: auth.Principal{AccountID: emp.ID, EmployeeIdentifier: emp.EmployeeIdentifier, Role: emp.Role},
		admin:    auth.Principal{AccountID: adm.ID, EmployeeIdentifier: adm.EmployeeIdentifier, Role: adm.Role},
	}
}

func apply(t *testing.T, f leaveFixture, start, end string) leave.LeaveResponse {
	t.Helper()
	resp, err := f.service.Apply(context.Background(), f.employee, leave.ApplyLeaveRequest{
		Type:      string(leave.TypePaid),
		StartDate: start,
		EndDate:   end,
		Reason:    "family trip",
	})
	require.NoError(t, err)
	return resp
}

func TestCountDays(t *testing.T) {
	day := func(s string) time.Time {
		d, err := time.Parse("2006-01-02", s)
		require.NoError(t, err)
		return d
	}

	tests := []struct {
		start, end string
		want       int
	}{
		{"2026-03-14", "2026-03-14", 1},
		{"2026-03-14", "2026-03-20", 7},
		{"2026-02-27", "2026-03-02", 4},
		{"2028-02-28", "2028-03-01", 3},
		{"2026-12-31", "2027-01-01", 2},
	}
	for _, tt := range tests {
		got, err := leave.CountDays(day(tt.start), day(tt.end))
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s..%s", tt.start, tt.end)
	}

	_, err := leave.CountDays(day("2026-03-14"), day("2026-03-13"))
	assert.ErrorIs(t, err, leave.ErrInvalidRange)
}

func TestApply(t *testing.T) {
	ctx := context.Background()
	f := newLeaveFixture(t)

	resp := apply(t, f, "2026-03-16", "2026-03-22")
	assert.Equal(t, 7, resp.Days)
	assert.Equal(t, leave.StatusPending, resp.Status)
	assert.Equal(t, "OIJODO20260001", resp.EmployeeID)
	assert.Nil(t, resp.ApproverID)

	_, err := f.service.Apply(ctx, f.employee, leave.ApplyLeaveRequest{Type: string(leave.TypeSick), StartDate: "2026-03-20", EndDate: "2026-03-19", Reason: "flu"})
	assert.ErrorIs(t, err, leave.ErrInvalidRange)

	_, err = f.service.Apply(ctx, f.employee, leave.ApplyLeaveRequest{Type: "Holiday", StartDate: "2026-03-20", EndDate: "2026-03-21"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "type")
	assert.Contains(t, err.Error(), "reason")
}

func TestDecide(t *testing.T) {
	ctx := context.Background()
	f := newLeaveFixture(t)
	req := apply(t, f, "2026-03-16", "2026-03-16")

	_, err := f.service.Decide(ctx, f.employee, req.ID, leave.DecideLeaveRequest{Status: "Approved"})
	assert.ErrorIs(t, err, auth.ErrForbidden)

	_, err = f.service.Decide(ctx, f.admin, "missing", leave.DecideLeaveRequest{Status: "Approved"})
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)

	_, err = f.service.Decide(ctx, f.admin, req.ID, leave.DecideLeaveRequest{Status: "Pending"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status")

	comments := "  enjoy  "
	decided, err := f.service.Decide(ctx, f.admin, req.ID, leave.DecideLeaveRequest{Status: "Approved", Comments: &comments})
	require.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, decided.Status)
	require.NotNil(t, decided.ApproverID)
	assert.Equal(t, f.admin.AccountID, *decided.ApproverID)
	require.NotNil(t, decided.ApprovedAt)
	assert.True(t, decided.ApprovedAt.Equal(testNow))
	require.NotNil(t, decided.Comments)
	assert.Equal(t, "enjoy", *decided.Comments)

	for _, status := range []string{"Approved", "Rejected"} {
		_, err = f.service.Decide(ctx, f.admin, req.ID, leave.DecideLeaveRequest{Status: status})
		assert.ErrorIs(t, err, leave.ErrAlreadyDecided)
	}
}

func TestDecide_ConcurrentDecisionsApplyOnce(t *testing.T) {
	ctx := context.Background()
	f := newLeaveFixture(t)
	req := apply(t, f, "2026-03-16", "2026-03-17")

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		winners []leave.Status
		decided int
	)
	for i := 0; i < 10; i++ {
		status := leave.StatusApproved
		if i%2 == 1 {
			status = leave.StatusRejected
		}
		wg.Add(1)
		go func(status leave.Status) {
			defer wg.Done()
			resp, err := f.service.Decide(ctx, f.admin, req.ID, leave.DecideLeaveRequest{Status: string(status)})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				winners = append(winners, resp.Status)
			} else if errors.Is(err, leave.ErrAlreadyDecided) {
				decided++
			}
		}(status)
	}
	wg.Wait()

	require.Len(t, winners, 1)
	assert.Equal(t, 9, decided)

	mine, err := f.service.ListMine(ctx, f.employee)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, winners[0], mine[0].Status)
}

func TestListMineAndAll(t *testing.T) {
	ctx := context.Background()
	f := newLeaveFixture(t)
	first := apply(t, f, "2026-03-16", "2026-03-16")
	second := apply(t, f, "2026-04-01", "2026-04-03")

	mine, err := f.service.ListMine(ctx, f.employee)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, second.ID, mine[0].ID)
	assert.Equal(t, first.ID, mine[1].ID)

	adminOwn, err := f.service.ListMine(ctx, f.admin)
	require.NoError(t, err)
	assert.Empty(t, adminOwn)

	_, err = f.service.ListAll(ctx, f.employee)
	assert.ErrorIs(t, err, auth.ErrForbidden)

	all, err := f.service.ListAll(ctx, f.admin)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.NotNil(t, all[0].EmployeeName)
	assert.Equal(t, "John Doe", *all[0].EmployeeName)
}
