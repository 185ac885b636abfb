package account

import "context"

// AccountService coordinates employee records. actorID is the account
// performing the change.
type AccountService interface {
	// CreateEmployee issues an identifier and a one-time password and stores
	// the new account.
	CreateEmployee(ctx context.Context, actorID string, req CreateEmployeeRequest) (CreateEmployeeResponse, error)

	ListEmployees(ctx context.Context) ([]AccountResponse, error)
	GetEmployee(ctx context.Context, id string) (AccountResponse, error)
	UpdateEmployee(ctx context.Context, id string, req UpdateEmployeeRequest) (AccountResponse, error)

	GetProfile(ctx context.Context, accountID string) (AccountResponse, error)
	UpdateProfile(ctx context.Context, accountID string, req UpdateProfileRequest) (AccountResponse, error)

	AddDocument(ctx context.Context, actorID string, accountID string, req AddDocumentRequest) (AccountResponse, error)
	RemoveDocument(ctx context.Context, accountID string, documentID string) (AccountResponse, error)

	// SeedAdmin creates the first administrator unless one already exists.
	SeedAdmin(ctx context.Context, req SeedAdminRequest) (SeedAdminResult, error)

	// RecomputeSalaries re-derives every stored breakdown from its wage and
	// returns how many accounts changed.
	RecomputeSalaries(ctx context.Context) (int, error)
}
