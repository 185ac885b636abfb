// Package memory is a process-local record store with the same uniqueness
// and conditional-write rules as the Postgres repositories.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/account"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
)

type dayKey struct {
	accountID string
	date      time.Time
}

type Store struct {
	mu sync.RWMutex

	// txMu serialises transactions against each other and against writes
	// made outside a transaction, so a rollback never drops them.
	txMu sync.Mutex

	accounts   map[string]account.Account
	attendance map[string]attendance.Record
	attByDay   map[dayKey]string
	leaves     map[string]leave.Request
	leaveOrder []string

	now func() time.Time
}

// NewStore returns an empty store. now may be nil.
func NewStore(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		accounts:   make(map[string]account.Account),
		attendance: make(map[string]attendance.Record),
		attByDay:   make(map[dayKey]string),
		leaves:     make(map[string]leave.Request),
		now:        now,
	}
}

func (s *Store) Accounts() *AccountRepository {
	return &AccountRepository{s: s}
}

func (s *Store) Attendance() *AttendanceRepository {
	return &AttendanceRepository{s: s}
}

func (s *Store) Leaves() *LeaveRepository {
	return &LeaveRepository{s: s}
}

// Ping always succeeds.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

type txKey struct{}

// WithinTransaction runs fn while holding the store's transaction lock. If fn
// fails, every collection is restored to the state it had when fn started.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, nested := ctx.Value(txKey{}).(bool); nested {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// lockWrite takes the locks a mutation needs and returns the release func.
// Writes outside a transaction wait for any running transaction to finish.
func (s *Store) lockWrite(ctx context.Context) func() {
	if _, inTx := ctx.Value(txKey{}).(bool); inTx {
		s.mu.Lock()
		return s.mu.Unlock
	}
	s.txMu.Lock()
	s.mu.Lock()
	return func() {
		s.mu.Unlock()
		s.txMu.Unlock()
	}
}

type snapshot struct {
	accounts   map[string]account.Account
	attendance map[string]attendance.Record
	attByDay   map[dayKey]string
	leaves     map[string]leave.Request
	leaveOrder []string
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := snapshot{
		accounts:   make(map[string]account.Account, len(s.accounts)),
		attendance: make(map[string]attendance.Record, len(s.attendance)),
		attByDay:   make(map[dayKey]string, len(s.attByDay)),
		leaves:     make(map[string]leave.Request, len(s.leaves)),
		leaveOrder: append([]string(nil), s.leaveOrder...),
	}
	for k, v := range s.accounts {
		snap.accounts[k] = cloneAccount(v)
	}
	for k, v := range s.attendance {
		snap.attendance[k] = v
	}
	for k, v := range s.attByDay {
		snap.attByDay[k] = v
	}
	for k, v := range s.leaves {
		snap.leaves[k] = v
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = snap.accounts
	s.attendance = snap.attendance
	s.attByDay = snap.attByDay
	s.leaves = snap.leaves
	s.leaveOrder = snap.leaveOrder
}

func cloneAccount(a account.Account) account.Account {
	if a.Documents != nil {
		docs := make([]account.Document, len(a.Documents))
		copy(docs, a.Documents)
		a.Documents = docs
	}
	if a.DateOfBirth != nil {
		dob := *a.DateOfBirth
		a.DateOfBirth = &dob
	}
	if a.CreatedBy != nil {
		by := *a.CreatedBy
		a.CreatedBy = &by
	}
	return a
}
