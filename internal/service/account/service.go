package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/account"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/identity"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/idx"
)

type AccountServiceImpl struct {
	txManager database.Transactor
	account.AccountRepository
	issuer identity.Issuer
	hasher auth.AuthService
	clock  *clock.Clock
	params payroll.Params
}

func NewAccountService(
	txManager database.Transactor,
	accountRepository account.AccountRepository,
	issuer identity.Issuer,
	hasher auth.AuthService,
	clk *clock.Clock,
	params payroll.Params,
) account.AccountService {
	return &AccountServiceImpl{
		txManager:         txManager,
		AccountRepository: accountRepository,
		issuer:            issuer,
		hasher:            hasher,
		clock:             clk,
		params:            params,
	}
}

// CreateEmployee implements account.AccountService.
func (s *AccountServiceImpl) CreateEmployee(ctx context.Context, actorID string, req account.CreateEmployeeRequest) (account.CreateEmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return account.CreateEmployeeResponse{}, err
	}
	role, err := req.ResolvedRole()
	if err != nil {
		return account.CreateEmployeeResponse{}, err
	}

	joiningDate := s.clock.Today()
	if req.JoiningDate != "" {
		if joiningDate, err = clock.ParseDay(req.JoiningDate); err != nil {
			return account.CreateEmployeeResponse{}, fmt.Errorf("parse joining date: %w", err)
		}
	}

	tempPassword, err := s.issuer.IssueTemporaryPassword()
	if err != nil {
		return account.CreateEmployeeResponse{}, err
	}
	hash, err := s.hasher.HashPassword(tempPassword)
	if err != nil {
		return account.CreateEmployeeResponse{}, err
	}

	newAccount := account.Account{
		Email:              account.NormalizeEmail(req.Email),
		PasswordHash:       hash,
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		Role:               role,
		MustChangePassword: true,
		JoiningDate:        joiningDate,
		Phone:              req.Phone,
		JobDetails:         req.JobDetails.Apply(account.DefaultJobDetails()),
	}
	if actorID != "" {
		newAccount.CreatedBy = &actorID
	}
	if req.Wage != nil {
		if *req.Wage < 0 {
			return account.CreateEmployeeResponse{}, payroll.ErrNegativeWage
		}
		newAccount.SalaryDetails = account.SalaryDetails{
			WageType:  account.WageTypeFixed,
			Breakdown: payroll.Derive(*req.Wage, s.params),
		}
	}

	var created account.Account
	err = s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		year := joiningDate.Year()
		if err := s.AccountRepository.LockJoiningYear(txCtx, year); err != nil {
			return fmt.Errorf("lock joining year %d: %w", year, err)
		}

		identifier, err := s.issuer.IssueIdentifier(txCtx, req.FirstName, req.LastName, year)
		if err != nil {
			return err
		}
		newAccount.EmployeeIdentifier = identifier

		created, err = s.AccountRepository.Create(txCtx, newAccount)
		return err
	})
	if err != nil {
		if !isBusinessError(err) {
			slog.ErrorContext(ctx, "failed to create employee", "email", newAccount.Email, "error", err)
		}
		return account.CreateEmployeeResponse{}, err
	}

	slog.InfoContext(ctx, "employee created",
		"account_id", created.ID,
		"employee_id", created.EmployeeIdentifier,
		"created_by", actorID,
	)

	return account.CreateEmployeeResponse{
		EmployeeID:        created.EmployeeIdentifier,
		TemporaryPassword: tempPassword,
		Account:           account.NewAccountResponse(created),
	}, nil
}

// ListEmployees implements account.AccountService.
func (s *AccountServiceImpl) ListEmployees(ctx context.Context) ([]account.AccountResponse, error) {
	accounts, err := s.AccountRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	resp := make([]account.AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		resp = append(resp, account.NewAccountResponse(a))
	}
	return resp, nil
}

// GetEmployee implements account.AccountService.
func (s *AccountServiceImpl) GetEmployee(ctx context.Context, id string) (account.AccountResponse, error) {
	a, err := s.AccountRepository.GetByID(ctx, id)
	if err != nil {
		return account.AccountResponse{}, err
	}
	return account.NewAccountResponse(a), nil
}

// UpdateEmployee implements account.AccountService.
func (s *AccountServiceImpl) UpdateEmployee(ctx context.Context, id string, req account.UpdateEmployeeRequest) (account.AccountResponse, error) {
	if err := req.Validate(); err != nil {
		return account.AccountResponse{}, err
	}

	current, err := s.AccountRepository.GetByID(ctx, id)
	if err != nil {
		return account.AccountResponse{}, err
	}

	next := req.Apply(current)
	if sal := req.SalaryDetails; sal != nil && sal.Wage != nil {
		if *sal.Wage < 0 {
			return account.AccountResponse{}, payroll.ErrNegativeWage
		}
		next.SalaryDetails.Breakdown = payroll.Derive(*sal.Wage, s.params)
		if next.SalaryDetails.WageType == "" {
			next.SalaryDetails.WageType = account.WageTypeFixed
		}
	}

	updated, err := s.AccountRepository.Update(ctx, next)
	if err != nil {
		return account.AccountResponse{}, err
	}
	return account.NewAccountResponse(updated), nil
}

// GetProfile implements account.AccountService.
func (s *AccountServiceImpl) GetProfile(ctx context.Context, accountID string) (account.AccountResponse, error) {
	return s.GetEmployee(ctx, accountID)
}

// UpdateProfile implements account.AccountService.
func (s *AccountServiceImpl) UpdateProfile(ctx context.Context, accountID string, req account.UpdateProfileRequest) (account.AccountResponse, error) {
	if err := req.Validate(); err != nil {
		return account.AccountResponse{}, err
	}

	current, err := s.AccountRepository.GetByID(ctx, accountID)
	if err != nil {
		return account.AccountResponse{}, err
	}

	updated, err := s.AccountRepository.Update(ctx, req.Apply(current))
	if err != nil {
		return account.AccountResponse{}, err
	}
	return account.NewAccountResponse(updated), nil
}

// AddDocument implements account.AccountService.
func (s *AccountServiceImpl) AddDocument(ctx context.Context, actorID string, accountID string, req account.AddDocumentRequest) (account.AccountResponse, error) {
	if err := req.Validate(); err != nil {
		return account.AccountResponse{}, err
	}

	docType := req.Type
	if docType == "" {
		docType = account.DocumentOther
	}
	now := s.clock.Now()
	doc := account.Document{
		ID:         idx.NewAt(now),
		Name:       req.Name,
		Type:       docType,
		URL:        req.URL,
		UploadedAt: now.UTC(),
		UploadedBy: actorID,
	}

	updated, err := s.AccountRepository.AddDocument(ctx, accountID, doc)
	if err != nil {
		return account.AccountResponse{}, err
	}
	return account.NewAccountResponse(updated), nil
}

// RemoveDocument implements account.AccountService.
func (s *AccountServiceImpl) RemoveDocument(ctx context.Context, accountID string, documentID string) (account.AccountResponse, error) {
	updated, err := s.AccountRepository.RemoveDocument(ctx, accountID, documentID)
	if err != nil {
		return account.AccountResponse{}, err
	}
	return account.NewAccountResponse(updated), nil
}

// SeedAdmin implements account.AccountService.
func (s *AccountServiceImpl) SeedAdmin(ctx context.Context, req account.SeedAdminRequest) (account.SeedAdminResult, error) {
	if err := req.Validate(); err != nil {
		return account.SeedAdminResult{}, err
	}

	existing, err := s.AccountRepository.GetByLogin(ctx, req.Email)
	if err == nil {
		return account.SeedAdminResult{Created: false, EmployeeID: existing.EmployeeIdentifier}, nil
	}
	if !errors.Is(err, account.ErrAccountNotFound) {
		return account.SeedAdminResult{}, fmt.Errorf("failed to look up seed admin: %w", err)
	}

	hash, err := s.hasher.HashPassword(req.Password)
	if err != nil {
		return account.SeedAdminResult{}, err
	}

	joiningDate := s.clock.Today()
	admin := account.Account{
		Email:              account.NormalizeEmail(req.Email),
		PasswordHash:       hash,
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		Role:               account.RoleAdmin,
		MustChangePassword: false,
		JoiningDate:        joiningDate,
		JobDetails: account.JobDetails{
			Designation:    "Administrator",
			Department:     "Management",
			EmploymentType: account.EmploymentFullTime,
			WorkLocation:   account.WorkLocationOffice,
		},
	}

	var created account.Account
	err = s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.AccountRepository.LockJoiningYear(txCtx, joiningDate.Year()); err != nil {
			return fmt.Errorf("lock joining year: %w", err)
		}
		identifier, err := s.issuer.IssueIdentifier(txCtx, req.FirstName, req.LastName, joiningDate.Year())
		if err != nil {
			return err
		}
		admin.EmployeeIdentifier = identifier
		created, err = s.AccountRepository.Create(txCtx, admin)
		return err
	})
	if err != nil {
		return account.SeedAdminResult{}, err
	}

	slog.InfoContext(ctx, "admin account seeded", "account_id", created.ID, "employee_id", created.EmployeeIdentifier)
	return account.SeedAdminResult{Created: true, EmployeeID: created.EmployeeIdentifier}, nil
}

// RecomputeSalaries implements account.AccountService.
func (s *AccountServiceImpl) RecomputeSalaries(ctx context.Context) (int, error) {
	accounts, err := s.AccountRepository.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list accounts: %w", err)
	}

	changed := 0
	for _, a := range accounts {
		if !a.SalaryDetails.Configured() {
			continue
		}
		next := payroll.Derive(a.SalaryDetails.Breakdown.Wage, s.params)
		if next == a.SalaryDetails.Breakdown {
			continue
		}
		a.SalaryDetails.Breakdown = next
		if _, err := s.AccountRepository.Update(ctx, a); err != nil {
			return changed, fmt.Errorf("failed to update salary of %s: %w", a.EmployeeIdentifier, err)
		}
		changed++
	}

	slog.InfoContext(ctx, "salaries recomputed", "changed", changed, "total", len(accounts), "at", s.clock.Now().Format(time.RFC3339))
	return changed, nil
}

func isBusinessError(err error) bool {
	return errors.Is(err, account.ErrDuplicateEmail) ||
		errors.Is(err, account.ErrDuplicateIdentifier) ||
		errors.Is(err, identity.ErrUnusableName) ||
		errors.Is(err, identity.ErrSerialExhausted) ||
		errors.Is(err, identity.ErrInvalidYear)
}
