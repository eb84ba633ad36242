package chi

import (
	"net/http"
	"strings"

	"github.com/kenchiku-cloud/archmap/internal/auth"
)

// tokenVerifier validates bearer tokens and resolves their session.
type tokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// SessionMiddleware resolves a Bearer token into a session on the request
// context. Requests without a token pass through unauthenticated; handlers
// that need a user enforce presence themselves.
func SessionMiddleware(tokens tokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			const bearerPrefix = "Bearer "
			if !strings.HasPrefix(header, bearerPrefix) {
				writeError(w, http.StatusUnauthorized, codeUnauthenticated,
					"authorization header must use Bearer scheme")
				return
			}

			claims, err := tokens.Verify(header[len(bearerPrefix):])
			if err != nil {
				writeError(w, http.StatusUnauthorized, codeUnauthenticated, "invalid or expired token")
				return
			}

			ctx := auth.ContextWithSession(r.Context(), auth.Session{
				UserID: claims.UserID(),
				Email:  claims.Email,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSession rejects requests that carry no session.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := auth.SessionFromContext(r.Context()); !ok {
			writeError(w, http.StatusUnauthorized, codeUnauthenticated, "sign in to use favorites")
			return
		}
		next.ServeHTTP(w, r)
	})
}
