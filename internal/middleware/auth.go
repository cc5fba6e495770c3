package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/planora/planner/internal/auth"
)

// callerEmailKey is the context key under which the authenticated caller's
// email is stored. Unexported so only this package can set it.
type callerEmailKey struct{}

// CallerEmail returns the authenticated email stored by RequireAuth, or ""
// when the request did not pass through it.
func CallerEmail(ctx context.Context) string {
	email, _ := ctx.Value(callerEmailKey{}).(string)
	return email
}

// WithCallerEmail returns a context carrying the given caller email.
// Exported for handler tests, which bypass the real token middleware.
func WithCallerEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, callerEmailKey{}, email)
}

// TokenParser validates a bearer token string. Satisfied by *auth.Manager.
type TokenParser interface {
	Parse(tokenString string) (*auth.Claims, error)
}

// RequireAuth returns a middleware that validates the Authorization bearer
// token and stores the caller's email in the request context. A missing
// header, malformed bearer, or failed parse all yield 401 with the same
// error body before the handler runs.
func RequireAuth(tokens TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				writeUnauthenticated(w)
				return
			}

			claims, err := tokens.Parse(token)
			if err != nil {
				writeUnauthenticated(w)
				return
			}

			ctx := WithCallerEmail(r.Context(), claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// writeUnauthenticated writes the same 401 body the handler layer uses, so
// clients see one error shape regardless of which layer rejected them.
func writeUnauthenticated(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	//nolint:errcheck — nothing useful to do if the client is gone.
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{
			"code":    "unauthenticated",
			"message": "a valid bearer token is required",
		},
	})
}
