package middleware

import (
	"context"
	"net/http"

	"github.com/tablekit/tablekit/internal/api/apierr"
	"github.com/tablekit/tablekit/internal/model"
	"github.com/tablekit/tablekit/internal/services/auth"
)

type contextKey string

const identityContextKey contextKey = "identity"

// Identity resolves the request's session cookies into an identity and
// stores it in the request context. It never rejects: unauthenticated
// requests flow through with an empty identity, and role checks happen
// in RequireRole or in the handler for table-scoped routes.
func Identity(resolver *auth.Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := resolver.Resolve(w, r)
			ctx := context.WithValue(r.Context(), identityContextKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects requests carrying no valid credential at all
func RequireAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !GetIdentity(r.Context()).Authenticated() {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole rejects requests whose identity does not satisfy the
// required role: 401 with no credential, 403 with an insufficient one.
// The check is table-blind; table-scoped routes call auth.AllowTable in
// the handler where the table ID is known.
func RequireRole(required model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := GetIdentity(r.Context())
			if !id.Authenticated() {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}
			if !auth.Allow(id, required) {
				apierr.WriteError(w, apierr.NewForbiddenError())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetIdentity returns the resolved identity from the request context.
// Returns the empty identity when the middleware was not applied.
func GetIdentity(ctx context.Context) auth.Identity {
	id, _ := ctx.Value(identityContextKey).(auth.Identity)
	return id
}
