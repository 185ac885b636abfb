package leave

import (
	"context"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/auth"
)

// LeaveService runs the Pending -> {Approved, Rejected} workflow.
type LeaveService interface {
	Apply(ctx context.Context, p auth.Principal, req ApplyLeaveRequest) (LeaveResponse, error)
	Decide(ctx context.Context, p auth.Principal, requestID string, req DecideLeaveRequest) (LeaveResponse, error)
	ListMine(ctx context.Context, p auth.Principal) ([]LeaveResponse, error)
	ListAll(ctx context.Context, p auth.Principal) ([]LeaveResponse, error)
}
