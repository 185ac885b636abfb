package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/account"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type EmployeeHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	AddDocument(w http.ResponseWriter, r *http.Request)
	RemoveDocument(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	accountService account.AccountService
}

func NewEmployeeHandler(accountService account.AccountService) EmployeeHandler {
	return &employeeHandlerImpl{accountService: accountService}
}

// List implements EmployeeHandler.
func (e *employeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	employees, err := e.accountService.ListEmployees(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, employees)
}

// Create implements EmployeeHandler.
func (e *employeeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrUnauthenticated)
		return
	}

	var req account.CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateEmployee decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := e.accountService.CreateEmployee(r.Context(), principal.AccountID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created successfully", created)
}

// Get implements EmployeeHandler.
func (e *employeeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	employee, err := e.accountService.GetEmployee(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, employee)
}

// Update implements EmployeeHandler.
func (e *employeeHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	var req account.UpdateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateEmployee decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	employee, err := e.accountService.UpdateEmployee(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee updated successfully", employee)
}

// AddDocument implements EmployeeHandler.
func (e *employeeHandlerImpl) AddDocument(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrUnauthenticated)
		return
	}

	id := chi.URLParam(r, "id")
	var req account.AddDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("AddDocument decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	employee, err := e.accountService.AddDocument(r.Context(), principal.AccountID, id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Document added successfully", employee)
}

// RemoveDocument implements EmployeeHandler.
func (e *employeeHandlerImpl) RemoveDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	documentID := chi.URLParam(r, "documentId")

	employee, err := e.accountService.RemoveDocument(r.Context(), id, documentID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Document removed successfully", employee)
}
