package memory

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/account"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/identity"
	"github.com/google/uuid"
)

type AccountRepository struct {
	s *Store
}

var _ account.AccountRepository = (*AccountRepository)(nil)

func (r *AccountRepository) Create(ctx context.Context, a account.Account) (account.Account, error) {
	defer r.s.lockWrite(ctx)()

	a.Email = account.NormalizeEmail(a.Email)
	if err := r.checkUnique(a); err != nil {
		return account.Account{}, err
	}

	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	now := r.s.now()
	a.CreatedAt = now
	a.UpdatedAt = now
	r.s.accounts[a.ID] = cloneAccount(a)
	return cloneAccount(a), nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (account.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.accounts[id]
	if !ok {
		return account.Account{}, account.ErrAccountNotFound
	}
	return cloneAccount(a), nil
}

func (r *AccountRepository) GetByLogin(ctx context.Context, identifierOrEmail string) (account.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, a := range r.s.accounts {
		if a.EmployeeIdentifier == identifierOrEmail {
			return cloneAccount(a), nil
		}
	}
	email := account.NormalizeEmail(identifierOrEmail)
	for _, a := range r.s.accounts {
		if a.Email == email {
			return cloneAccount(a), nil
		}
	}
	return account.Account{}, account.ErrAccountNotFound
}

func (r *AccountRepository) List(ctx context.Context) ([]account.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]account.Account, 0, len(r.s.accounts))
	for _, a := range r.s.accounts {
		out = append(out, cloneAccount(a))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].EmployeeIdentifier < out[j].EmployeeIdentifier
	})
	return out, nil
}

func (r *AccountRepository) Update(ctx context.Context, a account.Account) (account.Account, error) {
	defer r.s.lockWrite(ctx)()

	current, ok := r.s.accounts[a.ID]
	if !ok {
		return account.Account{}, account.ErrAccountNotFound
	}

	// identifier and credentials are not writable here
	a.EmployeeIdentifier = current.EmployeeIdentifier
	a.PasswordHash = current.PasswordHash
	a.MustChangePassword = current.MustChangePassword
	a.Documents = current.Documents
	a.CreatedBy = current.CreatedBy
	a.CreatedAt = current.CreatedAt
	a.UpdatedAt = r.s.now()

	a.Email = account.NormalizeEmail(a.Email)
	if err := r.checkUnique(a); err != nil {
		return account.Account{}, err
	}

	r.s.accounts[a.ID] = cloneAccount(a)
	return cloneAccount(a), nil
}

func (r *AccountRepository) UpdatePassword(ctx context.Context, id string, passwordHash string, mustChangePassword bool) error {
	defer r.s.lockWrite(ctx)()

	a, ok := r.s.accounts[id]
	if !ok {
		return account.ErrAccountNotFound
	}
	a.PasswordHash = passwordHash
	a.MustChangePassword = mustChangePassword
	a.UpdatedAt = r.s.now()
	r.s.accounts[id] = a
	return nil
}

func (r *AccountRepository) CountJoinedInYear(ctx context.Context, year int) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	n := 0
	for _, a := range r.s.accounts {
		if a.JoiningDate.Year() == year {
			n++
		}
	}
	return n, nil
}

func (r *AccountRepository) MaxSerialInYear(ctx context.Context, year int) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	yearPart := fmt.Sprintf("%04d", year)
	highest := 0
	for _, a := range r.s.accounts {
		id := a.EmployeeIdentifier
		if len(id) != identity.IdentifierLength || id[6:10] != yearPart {
			continue
		}
		if n, err := strconv.Atoi(id[10:]); err == nil && n > highest {
			highest = n
		}
	}
	return highest, nil
}

// LockJoiningYear is satisfied by the store-wide transaction lock.
func (r *AccountRepository) LockJoiningYear(ctx context.Context, year int) error {
	return nil
}

func (r *AccountRepository) ExistsByRole(ctx context.Context, role account.Role) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, a := range r.s.accounts {
		if a.Role == role {
			return true, nil
		}
	}
	return false, nil
}

func (r *AccountRepository) AddDocument(ctx context.Context, accountID string, doc account.Document) (account.Account, error) {
	defer r.s.lockWrite(ctx)()

	a, ok := r.s.accounts[accountID]
	if !ok {
		return account.Account{}, account.ErrAccountNotFound
	}
	a = cloneAccount(a)
	a.Documents = append(a.Documents, doc)
	a.UpdatedAt = r.s.now()
	r.s.accounts[accountID] = a
	return cloneAccount(a), nil
}

func (r *AccountRepository) RemoveDocument(ctx context.Context, accountID string, documentID string) (account.Account, error) {
	defer r.s.lockWrite(ctx)()

	a, ok := r.s.accounts[accountID]
	if !ok {
		return account.Account{}, account.ErrAccountNotFound
	}

	kept := make([]account.Document, 0, len(a.Documents))
	for _, d := range a.Documents {
		if d.ID != documentID {
			kept = append(kept, d)
		}
	}
	if len(kept) == len(a.Documents) {
		return account.Account{}, account.ErrDocumentNotFound
	}

	a.Documents = kept
	a.UpdatedAt = r.s.now()
	r.s.accounts[accountID] = a
	return cloneAccount(a), nil
}

// checkUnique must run under the write lock.
func (r *AccountRepository) checkUnique(a account.Account) error {
	for id, other := range r.s.accounts {
		if id == a.ID {
			continue
		}
		if other.Email == a.Email {
			return account.ErrDuplicateEmail
		}
		if a.EmployeeIdentifier != "" && other.EmployeeIdentifier == a.EmployeeIdentifier {
			return account.ErrDuplicateIdentifier
		}
	}
	return nil
}
