package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/account"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-backend-go/internal/handler/http/response"
)

type ProfileHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
}

type profileHandlerImpl struct {
	accountService account.AccountService
}

func NewProfileHandler(accountService account.AccountService) ProfileHandler {
	return &profileHandlerImpl{accountService: accountService}
}

// Get implements ProfileHandler.
func (p *profileHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrUnauthenticated)
		return
	}

	profile, err := p.accountService.GetProfile(r.Context(), principal.AccountID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, profile)
}

// Update implements ProfileHandler. Fields outside UpdateProfileRequest are
// ignored.
func (p *profileHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrUnauthenticated)
		return
	}

	var req account.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateProfile decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	profile, err := p.accountService.UpdateProfile(r.Context(), principal.AccountID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Profile updated successfully", profile)
}
