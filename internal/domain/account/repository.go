package account

import "context"

// AccountRepository persists accounts. Email and employee identifier are
// unique in the store itself; Create and Update report violations as
// ErrDuplicateEmail and ErrDuplicateIdentifier.
type AccountRepository interface {
	Create(ctx context.Context, account Account) (Account, error)

	// GetByID returns ErrAccountNotFound when no account has id.
	GetByID(ctx context.Context, id string) (Account, error)

	// GetByLogin matches an exact employee identifier or a case-insensitive
	// email, preferring the identifier.
	GetByLogin(ctx context.Context, identifierOrEmail string) (Account, error)

	List(ctx context.Context) ([]Account, error)

	// Update writes every column except the identifier and the password
	// fields.
	Update(ctx context.Context, account Account) (Account, error)

	// UpdatePassword is the only way the stored hash changes.
	UpdatePassword(ctx context.Context, id string, passwordHash string, mustChangePassword bool) error

	// CountJoinedInYear counts accounts whose joining date falls in year.
	CountJoinedInYear(ctx context.Context, year int) (int, error)

	// MaxSerialInYear returns the highest serial among identifiers minted
	// for year, or 0. Joining dates can be edited later, so this can exceed
	// CountJoinedInYear.
	MaxSerialInYear(ctx context.Context, year int) (int, error)

	// LockJoiningYear serialises identifier issuance for year until the
	// surrounding transaction ends.
	LockJoiningYear(ctx context.Context, year int) error

	ExistsByRole(ctx context.Context, role Role) (bool, error)

	AddDocument(ctx context.Context, accountID string, doc Document) (Account, error)

	// RemoveDocument returns ErrDocumentNotFound when the account has no
	// document with documentID.
	RemoveDocument(ctx context.Context, accountID string, documentID string) (Account, error)
}
