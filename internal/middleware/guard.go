package middleware

import (
	"net/http"

	"github.com/inkwell/inkwell/internal/auth"
)

// LoginPath is where unauthenticated requests to protected routes are sent.
const LoginPath = "/auth/login"

// RequireUser guards a handler that needs an authenticated identity.
// Anonymous requests are redirected to the login page and the wrapped
// handler is never invoked. Authenticated requests pass through unchanged.
func RequireUser() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if auth.UserFromContext(r.Context()) == nil {
				http.Redirect(w, r, LoginPath, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
