package http

import (
	"net/http"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	Today(w http.ResponseWriter, r *http.Request)
	MyAttendance(w http.ResponseWriter, r *http.Request)
	ListByDay(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService}
}

// CheckIn implements AttendanceHandler.
func (a *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrUnauthenticated)
		return
	}

	record, err := a.attendanceService.CheckIn(r.Context(), principal)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked in successfully", record)
}

// CheckOut implements AttendanceHandler.
func (a *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrUnauthenticated)
		return
	}

	record, err := a.attendanceService.CheckOut(r.Context(), principal)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked out successfully", record)
}

// Today implements AttendanceHandler.
func (a *attendanceHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrUnauthenticated)
		return
	}

	today, err := a.attendanceService.GetToday(r.Context(), principal.AccountID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, today)
}

// MyAttendance implements AttendanceHandler.
func (a *attendanceHandlerImpl) MyAttendance(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrUnauthenticated)
		return
	}

	query, err := attendance.ParseRecentQuery(r.URL.Query().Get("limit"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	records, err := a.attendanceService.ListRecent(r.Context(), principal.AccountID, query)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// ListByDay implements AttendanceHandler.
func (a *attendanceHandlerImpl) ListByDay(w http.ResponseWriter, r *http.Request) {
	query, err := attendance.ParseDayQuery(r.URL.Query().Get("date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	records, err := a.attendanceService.ListForAdminByDay(r.Context(), query)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}
