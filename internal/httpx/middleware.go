package httpx

import (
	"net/http"

	"github.com/roahoki/biomechanics-website-sub001/internal/auth"
)

type AuthMiddleware struct {
	Verifier *auth.Verifier
}

// RequireAdmin rejects callers without a valid token (401) or without the
// admin role claim (403).
func (a *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := a.Verifier.Authenticate(r.Context(), r.Header.Get("Authorization"))
		if err != nil {
			writeErr(w, err)
			return
		}
		if id.Role != auth.RoleAdmin {
			writeErr(w, auth.ErrForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
