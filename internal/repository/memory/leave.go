package memory

import (
	"context"
	"sort"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/google/uuid"
)

type LeaveRepository struct {
	s *Store
}

var _ leave.LeaveRepository = (*LeaveRepository)(nil)

func (r *LeaveRepository) Create(ctx context.Context, req leave.Request) (leave.Request, error) {
	defer r.s.lockWrite(ctx)()

	req.ID = uuid.NewString()
	if req.Status == "" {
		req.Status = leave.StatusPending
	}
	now := r.s.now()
	req.CreatedAt = now
	req.UpdatedAt = now
	req.EmployeeName = nil
	req.EmployeeEmail = nil
	r.s.leaves[req.ID] = req
	r.s.leaveOrder = append(r.s.leaveOrder, req.ID)
	return req, nil
}

func (r *LeaveRepository) GetByID(ctx context.Context, id string) (leave.Request, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	req, ok := r.s.leaves[id]
	if !ok {
		return leave.Request{}, leave.ErrLeaveRequestNotFound
	}
	return req, nil
}

func (r *LeaveRepository) Decide(ctx context.Context, id string, d leave.Decision) (leave.Request, error) {
	defer r.s.lockWrite(ctx)()

	req, ok := r.s.leaves[id]
	if !ok {
		return leave.Request{}, leave.ErrLeaveRequestNotFound
	}
	if req.Status != leave.StatusPending {
		return leave.Request{}, leave.ErrAlreadyDecided
	}

	approver := d.ApproverID
	decidedAt := d.DecidedAt
	req.Status = d.Status
	req.ApproverID = &approver
	req.ApprovedAt = &decidedAt
	req.Comments = d.Comments
	req.UpdatedAt = r.s.now()
	r.s.leaves[id] = req
	return req, nil
}

func (r *LeaveRepository) ListByAccount(ctx context.Context, accountID string) ([]leave.Request, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]leave.Request, 0)
	for _, req := range r.newestFirst() {
		if req.AccountID == accountID {
			out = append(out, req)
		}
	}
	return out, nil
}

func (r *LeaveRepository) ListAll(ctx context.Context) ([]leave.Request, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]leave.Request, 0, len(r.s.leaves))
	for _, req := range r.newestFirst() {
		if a, ok := r.s.accounts[req.AccountID]; ok {
			name, email := a.FullName(), a.Email
			req.EmployeeName = &name
			req.EmployeeEmail = &email
		}
		out = append(out, req)
	}
	return out, nil
}

// newestFirst must run under the read lock.
func (r *LeaveRepository) newestFirst() []leave.Request {
	out := make([]leave.Request, 0, len(r.s.leaveOrder))
	for i := len(r.s.leaveOrder) - 1; i >= 0; i-- {
		out = append(out, r.s.leaves[r.s.leaveOrder[i]])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
