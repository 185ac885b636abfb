package leave

import "context"

type LeaveRepository interface {
	Create(ctx context.Context, req Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)

	// Decide moves a Pending request to a terminal status in one
	// conditional write. It returns ErrLeaveRequestNotFound or
	// ErrAlreadyDecided when nothing was updated.
	Decide(ctx context.Context, id string, d Decision) (Request, error)

	// ListByAccount returns the account's requests, newest first.
	ListByAccount(ctx context.Context, accountID string) ([]Request, error)

	// ListAll returns every request joined with the requester's name and
	// email, newest first.
	ListAll(ctx context.Context) ([]Request, error)
}
