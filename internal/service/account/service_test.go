package account

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/account"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/idx"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hrms-backend-go/internal/repository/memory"
	authService "github.com/cmlabs-hris/hrms-backend-go/internal/service/auth"
	identityService "github.com/cmlabs-hris/hrms-backend-go/internal/service/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt-0123456789abcdef"

var testNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

type fixture struct {
	store   *memory.Store
	auth    auth.AuthService
	service account.AccountService
}

func newFixture(t *testing.T, params payroll.Params) fixture {
	t.Helper()
	now := func() time.Time { return testNow }
	clk := clock.New(time.UTC, now)
	store := memory.NewStore(now)
	accounts := store.Accounts()

	authSvc := authService.NewAuthService(accounts, jwt.NewJWTService(testSecret, time.Hour, 0, now))
	issuer := identityService.NewIssuer(accounts, clk)

	return fixture{
		store:   store,
		auth:    authSvc,
		service: NewAccountService(store, accounts, issuer, authSvc, clk, params),
	}
}

func TestCreateEmployee(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, payroll.DefaultParams())
	wage := int64(50000)

	resp, err := f.service.CreateEmployee(ctx, "admin-id", account.CreateEmployeeRequest{
		FirstName: "John",
		LastName:  "Doe",
		Email:     "John.Doe@Example.com",
		Wage:      &wage,
	})
	require.NoError(t, err)

	assert.Equal(t, "OIJODO20260001", resp.EmployeeID)
	assert.Equal(t, "john.doe@example.com", resp.Account.Email)
	assert.Equal(t, account.RoleEmployee, resp.Account.Role)
	assert.True(t, resp.Account.MustChangePassword)
	assert.Equal(t, "2026-03-14", resp.Account.JoiningDate)
	require.NotNil(t, resp.Account.SalaryDetails)
	assert.Equal(t, int64(25000), resp.Account.SalaryDetails.Breakdown.Basic)
	assert.Equal(t, account.EmploymentFullTime, resp.Account.JobDetails.EmploymentType)

	stored, err := f.store.Accounts().GetByID(ctx, resp.Account.ID)
	require.NoError(t, err)
	assert.NotEqual(t, resp.TemporaryPassword, stored.PasswordHash)
	assert.True(t, f.auth.VerifyPassword(resp.TemporaryPassword, stored.PasswordHash))
	require.NotNil(t, stored.CreatedBy)
	assert.Equal(t, "admin-id", *stored.CreatedBy)

	second, err := f.service.CreateEmployee(ctx, "admin-id", account.CreateEmployeeRequest{
		FirstName:   "Jane",
		LastName:    "Doe",
		Email:       "jane@example.com",
		Role:        "admin",
		JoiningDate: "2026-01-02",
	})
	require.NoError(t, err)
	assert.Equal(t, "OIJADO20260002", second.EmployeeID)
	assert.Equal(t, account.RoleAdmin, second.Account.Role)
	assert.Nil(t, second.Account.SalaryDetails)
}

func TestCreateEmployee_JoiningDateMovedOutOfYear(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, payroll.DefaultParams())

	first, err := f.service.CreateEmployee(ctx, "", account.CreateEmployeeRequest{FirstName: "John", LastName: "Doe", Email: "john@example.com"})
	require.NoError(t, err)
	second, err := f.service.CreateEmployee(ctx, "", account.CreateEmployeeRequest{FirstName: "John", LastName: "Doe", Email: "john2@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "OIJODO20260002", second.EmployeeID)

	earlier := "2025-12-01"
	_, err = f.service.UpdateEmployee(ctx, first.Account.ID, account.UpdateEmployeeRequest{JoiningDate: &earlier})
	require.NoError(t, err)

	third, err := f.service.CreateEmployee(ctx, "", account.CreateEmployeeRequest{FirstName: "John", LastName: "Doe", Email: "john3@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "OIJODO20260003", third.EmployeeID)
}

func TestCreateEmployee_Errors(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, payroll.DefaultParams())

	_, err := f.service.CreateEmployee(ctx, "", account.CreateEmployeeRequest{FirstName: "John", LastName: "Doe", Email: "john@example.com"})
	require.NoError(t, err)

	t.Run("duplicate email ignores case", func(t *testing.T) {
		_, err := f.service.CreateEmployee(ctx, "", account.CreateEmployeeRequest{FirstName: "Jon", LastName: "Dee", Email: "JOHN@example.com"})
		assert.ErrorIs(t, err, account.ErrDuplicateEmail)

		n, err := f.store.Accounts().CountJoinedInYear(ctx, 2026)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("invalid role", func(t *testing.T) {
		_, err := f.service.CreateEmployee(ctx, "", account.CreateEmployeeRequest{FirstName: "Ann", LastName: "Lee", Email: "ann@example.com", Role: "owner"})
		assert.ErrorIs(t, err, account.ErrInvalidRole)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := f.service.CreateEmployee(ctx, "", account.CreateEmployeeRequest{Email: "not-an-email"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "first_name")
		assert.Contains(t, err.Error(), "email")
	})
}

func TestCreateEmployee_ConcurrentIdentifiersAreUnique(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, payroll.DefaultParams())

	const n = 12
	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ids = make(map[string]struct{})
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, err := f.service.CreateEmployee(ctx, "", account.CreateEmployeeRequest{
				FirstName: "Sam",
				LastName:  "Roe",
				Email:     fmt.Sprintf("sam%d@example.com", i),
			})
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			ids[resp.EmployeeID] = struct{}{}
			mu.Unlock()
		}(i)
	}
	wg.Wait()

	require.Len(t, ids, n)
	for i := 1; i <= n; i++ {
		assert.Contains(t, ids, fmt.Sprintf("OISARO2026%04d", i))
	}
}

func TestUpdateProfile_OnlyWhitelistedFieldsAndHashKept(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, payroll.DefaultParams())

	created, err := f.service.CreateEmployee(ctx, "", account.CreateEmployeeRequest{FirstName: "John", LastName: "Doe", Email: "john@example.com"})
	require.NoError(t, err)
	before, err := f.store.Accounts().GetByID(ctx, created.Account.ID)
	require.NoError(t, err)

	phone, city := "+91 98765 43210", "Pune"
	resp, err := f.service.UpdateProfile(ctx, created.Account.ID, account.UpdateProfileRequest{
		Phone:            &phone,
		City:             &city,
		EmergencyContact: &account.EmergencyContactRequest{Name: "Mary", Relation: "Mother"},
	})
	require.NoError(t, err)
	assert.Equal(t, phone, resp.Phone)
	assert.Equal(t, city, resp.City)
	assert.Equal(t, "Mary", resp.EmergencyContact.Name)
	assert.Equal(t, account.RoleEmployee, resp.Role)

	after, err := f.store.Accounts().GetByID(ctx, created.Account.ID)
	require.NoError(t, err)
	assert.Equal(t, before.PasswordHash, after.PasswordHash)
	assert.Equal(t, before.EmployeeIdentifier, after.EmployeeIdentifier)
}

func TestUpdateEmployee(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, payroll.DefaultParams())

	created, err := f.service.CreateEmployee(ctx, "", account.CreateEmployeeRequest{FirstName: "John", LastName: "Doe", Email: "john@example.com"})
	require.NoError(t, err)

	wage := int64(50000)
	dept := "Engineering"
	role := "admin"
	resp, err := f.service.UpdateEmployee(ctx, created.Account.ID, account.UpdateEmployeeRequest{
		Role:       &role,
		JobDetails: &account.JobDetailsRequest{Department: &dept},
		SalaryDetails: &account.SalaryRequest{
			Wage:        &wage,
			BankAccount: &account.BankAccountRequest{BankName: "HDFC", AccountNumber: "1234567890"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, account.RoleAdmin, resp.Role)
	assert.Equal(t, dept, resp.JobDetails.Department)
	require.NotNil(t, resp.SalaryDetails)
	assert.Equal(t, account.WageTypeFixed, resp.SalaryDetails.WageType)
	assert.Equal(t, payroll.Derive(50000, payroll.DefaultParams()), resp.SalaryDetails.Breakdown)
	assert.Equal(t, "HDFC", resp.SalaryDetails.BankAccount.BankName)
	assert.Equal(t, created.EmployeeID, resp.EmployeeID)

	_, err = f.service.UpdateEmployee(ctx, "missing", account.UpdateEmployeeRequest{})
	assert.ErrorIs(t, err, account.ErrAccountNotFound)

	bad := "superuser"
	_, err = f.service.UpdateEmployee(ctx, created.Account.ID, account.UpdateEmployeeRequest{Role: &bad})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "role")
}

func TestDocuments(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, payroll.DefaultParams())

	created, err := f.service.CreateEmployee(ctx, "", account.CreateEmployeeRequest{FirstName: "John", LastName: "Doe", Email: "john@example.com"})
	require.NoError(t, err)

	resp, err := f.service.AddDocument(ctx, "admin-id", created.Account.ID, account.AddDocumentRequest{
		Name: "Offer letter",
		URL:  "https://files.example.com/offer.pdf",
	})
	require.NoError(t, err)
	require.Len(t, resp.Documents, 1)

	doc := resp.Documents[0]
	assert.Equal(t, account.DocumentOther, doc.Type)
	assert.Equal(t, "admin-id", doc.UploadedBy)
	_, err = idx.Parse(doc.ID)
	assert.NoError(t, err)

	_, err = f.service.RemoveDocument(ctx, created.Account.ID, "nope")
	assert.ErrorIs(t, err, account.ErrDocumentNotFound)

	resp, err = f.service.RemoveDocument(ctx, created.Account.ID, doc.ID)
	require.NoError(t, err)
	assert.Empty(t, resp.Documents)
}

func TestSeedAdmin_Idempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, payroll.DefaultParams())
	req := account.SeedAdminRequest{FirstName: "Admin", LastName: "User", Email: "admin@odoo.in", Password: "admin123"}

	first, err := f.service.SeedAdmin(ctx, req)
	require.NoError(t, err)
	assert.True(t, first.Created)
	assert.Equal(t, "OIADUS20260001", first.EmployeeID)

	again, err := f.service.SeedAdmin(ctx, req)
	require.NoError(t, err)
	assert.False(t, again.Created)
	assert.Equal(t, first.EmployeeID, again.EmployeeID)

	resp, err := f.auth.Login(ctx, auth.LoginRequest{Identifier: "admin@odoo.in", Password: "admin123"})
	require.NoError(t, err)
	assert.Equal(t, account.RoleAdmin, resp.Principal.Role)
	assert.False(t, resp.Principal.MustChangePassword)
}

func TestRecomputeSalaries(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, payroll.DefaultParams())

	wage := int64(40000)
	_, err := f.service.CreateEmployee(ctx, "", account.CreateEmployeeRequest{FirstName: "John", LastName: "Doe", Email: "john@example.com", Wage: &wage})
	require.NoError(t, err)
	_, err = f.service.CreateEmployee(ctx, "", account.CreateEmployeeRequest{FirstName: "Jane", LastName: "Roe", Email: "jane@example.com"})
	require.NoError(t, err)

	unchanged, err := f.service.RecomputeSalaries(ctx)
	require.NoError(t, err)
	assert.Zero(t, unchanged)

	params := payroll.DefaultParams()
	params.ProfessionalTax = 300
	recompute := NewAccountService(f.store, f.store.Accounts(),
		identityService.NewIssuer(f.store.Accounts(), clock.New(time.UTC, nil)),
		f.auth, clock.New(time.UTC, nil), params)

	changed, err := recompute.RecomputeSalaries(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, changed)

	got, err := f.store.Accounts().GetByLogin(ctx, "john@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(300), got.SalaryDetails.Breakdown.ProfessionalTax)
	assert.Equal(t, wage, got.SalaryDetails.Breakdown.Wage)
}
