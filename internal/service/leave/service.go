package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/account"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/clock"
)

type LeaveServiceImpl struct {
	leave.LeaveRepository
	clock *clock.Clock
}

func NewLeaveService(leaveRepository leave.LeaveRepository, clk *clock.Clock) leave.LeaveService {
	return &LeaveServiceImpl{
		LeaveRepository: leaveRepository,
		clock:           clk,
	}
}

// Apply implements leave.LeaveService.
func (s *LeaveServiceImpl) Apply(ctx context.Context, p auth.Principal, req leave.ApplyLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	start, end := req.Dates()
	days, err := leave.CountDays(start, end)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	created, err := s.LeaveRepository.Create(ctx, leave.Request{
		AccountID:          p.AccountID,
		EmployeeIdentifier: p.EmployeeIdentifier,
		Type:               leave.Type(req.Type),
		StartDate:          start,
		EndDate:            end,
		Days:               days,
		Reason:             req.Reason,
		Status:             leave.StatusPending,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to create leave request", "account_id", p.AccountID, "error", err)
		return leave.LeaveResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return leave.NewLeaveResponse(created), nil
}

// Decide implements leave.LeaveService. The Pending check and the status
// write happen in one conditional update.
func (s *LeaveServiceImpl) Decide(ctx context.Context, p auth.Principal, requestID string, req leave.DecideLeaveRequest) (leave.LeaveResponse, error) {
	if err := auth.RequireRole(p, account.RoleAdmin); err != nil {
		return leave.LeaveResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	decided, err := s.LeaveRepository.Decide(ctx, requestID, leave.Decision{
		Status:     leave.Status(req.Status),
		ApproverID: p.AccountID,
		DecidedAt:  s.clock.Now().UTC(),
		Comments:   req.Comments,
	})
	if err != nil {
		if errors.Is(err, leave.ErrLeaveRequestNotFound) || errors.Is(err, leave.ErrAlreadyDecided) {
			return leave.LeaveResponse{}, err
		}
		slog.ErrorContext(ctx, "failed to decide leave request", "request_id", requestID, "error", err)
		return leave.LeaveResponse{}, fmt.Errorf("failed to decide leave request: %w", err)
	}

	slog.InfoContext(ctx, "leave request decided",
		"request_id", decided.ID,
		"status", decided.Status,
		"approver_id", p.AccountID,
	)
	return leave.NewLeaveResponse(decided), nil
}

// ListMine implements leave.LeaveService.
func (s *LeaveServiceImpl) ListMine(ctx context.Context, p auth.Principal) ([]leave.LeaveResponse, error) {
	requests, err := s.LeaveRepository.ListByAccount(ctx, p.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return leave.NewLeaveResponses(requests), nil
}

// ListAll implements leave.LeaveService.
func (s *LeaveServiceImpl) ListAll(ctx context.Context, p auth.Principal) ([]leave.LeaveResponse, error) {
	if err := auth.RequireRole(p, account.RoleAdmin); err != nil {
		return nil, err
	}

	requests, err := s.LeaveRepository.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return leave.NewLeaveResponses(requests), nil
}
