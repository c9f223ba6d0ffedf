// shared/auth/context.go
package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/ordemrpg/go-services/shared/api"
)

// The identity provider in front of this service authenticates users and
// forwards their identity on every request. The domain layer never reads a
// global session; the acting user always travels in the request context.
const (
	UserIDHeader    = "X-User-ID"
	UserEmailHeader = "X-User-Email"
)

type contextKey int

const (
	userIDKey contextKey = iota
	userEmailKey
	masterKey
)

// Identity carries the authenticated caller of a request.
type Identity struct {
	UserID   string
	Email    string
	IsMaster bool
}

// Middleware resolves the forwarded identity headers into the request context
// and flags allowlisted master emails. Requests without identity pass through;
// RequireUser/RequireMaster guard the routes that need one.
func Middleware(masterEmails []string) func(http.Handler) http.Handler {
	allowlist := make(map[string]bool, len(masterEmails))
	for _, email := range masterEmails {
		allowlist[strings.ToLower(email)] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if userID := r.Header.Get(UserIDHeader); userID != "" {
				ctx = context.WithValue(ctx, userIDKey, userID)
			}
			if email := strings.ToLower(r.Header.Get(UserEmailHeader)); email != "" {
				ctx = context.WithValue(ctx, userEmailKey, email)
				if allowlist[email] {
					ctx = context.WithValue(ctx, masterKey, true)
				}
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID returns the acting user id from the context, if any.
func UserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok
}

// IsMaster reports whether the acting user is an allowlisted master.
func IsMaster(ctx context.Context) bool {
	master, _ := ctx.Value(masterKey).(bool)
	return master
}

// RequireUser rejects requests that carry no authenticated user.
func RequireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserID(r.Context()); !ok {
			api.WriteUnauthorized(w, "Authentication required")
			return
		}
		next(w, r)
	}
}

// RequireMaster rejects requests from non-master users. The allowlist model
// mirrors the original client-side check; it is not a substitute for real
// server-side authorization.
func RequireMaster(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserID(r.Context()); !ok {
			api.WriteUnauthorized(w, "Authentication required")
			return
		}
		if !IsMaster(r.Context()) {
			api.WriteForbidden(w, "Master role required")
			return
		}
		next(w, r)
	}
}
