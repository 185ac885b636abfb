package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	Apply(w http.ResponseWriter, r *http.Request)
	MyRequests(w http.ResponseWriter, r *http.Request)
	ListAll(w http.ResponseWriter, r *http.Request)
	Decide(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService}
}

// Apply implements LeaveHandler.
func (l *LeaveHandlerImpl) Apply(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	principal, ok := auth.PrincipalFromContext(ctx)
	if !ok {
		response.HandleError(w, auth.ErrUnauthenticated)
		return
	}

	var req leave.ApplyLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ApplyLeave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	leaveRequest, err := l.leaveService.Apply(ctx, principal, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted", leaveRequest)
}

// MyRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) MyRequests(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	principal, ok := auth.PrincipalFromContext(ctx)
	if !ok {
		response.HandleError(w, auth.ErrUnauthenticated)
		return
	}

	requests, err := l.leaveService.ListMine(ctx, principal)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// ListAll implements LeaveHandler.
func (l *LeaveHandlerImpl) ListAll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	principal, ok := auth.PrincipalFromContext(ctx)
	if !ok {
		response.HandleError(w, auth.ErrUnauthenticated)
		return
	}

	requests, err := l.leaveService.ListAll(ctx, principal)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// Decide implements LeaveHandler.
func (l *LeaveHandlerImpl) Decide(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	principal, ok := auth.PrincipalFromContext(ctx)
	if !ok {
		response.HandleError(w, auth.ErrUnauthenticated)
		return
	}

	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Leave request ID is required", nil)
		return
	}

	var req leave.DecideLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("DecideLeave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	leaveRequest, err := l.leaveService.Decide(ctx, principal, requestID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request "+string(leaveRequest.Status), leaveRequest)
}
