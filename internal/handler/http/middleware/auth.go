package middleware

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// AuthRequired resolves the bearer token into an auth.Principal stored in the
// request context. Every failure is a generic 401, except an expired session.
func AuthRequired(authService auth.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token := jwtauth.TokenFromHeader(r)
			if token == "" {
				response.HandleError(w, auth.ErrUnauthenticated)
				return
			}

			principal, err := authService.Authenticate(r.Context(), token)
			if err != nil {
				switch {
				case errors.Is(err, auth.ErrTokenExpired):
					response.HandleError(w, auth.ErrTokenExpired)
				case errors.Is(err, auth.ErrUnauthenticated), errors.Is(err, auth.ErrAccountNotFound):
					response.HandleError(w, auth.ErrUnauthenticated)
				default:
					response.HandleError(w, err)
				}
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), principal)))
		}
		return http.HandlerFunc(hfn)
	}
}
