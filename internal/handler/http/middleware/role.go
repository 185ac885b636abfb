package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/account"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-backend-go/internal/handler/http/response"
)

// RequireAdmin requires admin role
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := auth.PrincipalFromContext(r.Context())
		if !ok {
			response.HandleError(w, auth.ErrUnauthenticated)
			return
		}

		if err := auth.RequireRole(principal, account.RoleAdmin); err != nil {
			response.HandleError(w, err)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequirePasswordRotated blocks accounts that still hold their one-time
// password.
func RequirePasswordRotated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := auth.PrincipalFromContext(r.Context())
		if !ok {
			response.HandleError(w, auth.ErrUnauthenticated)
			return
		}

		if principal.MustChangePassword {
			response.HandleError(w, auth.ErrPasswordChangeRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
