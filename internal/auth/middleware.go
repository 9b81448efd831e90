package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/quizdeck/quizdeck/internal/account"
	"github.com/quizdeck/quizdeck/internal/cache"
	"github.com/quizdeck/quizdeck/internal/rbac"
)

// JWTMiddleware validates the bearer token and attaches the subject and the
// claim role to the request context.
func JWTMiddleware(s *Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if !strings.HasPrefix(h, "Bearer ") {
				http.Error(w, "missing bearer", http.StatusUnauthorized)
				return
			}
			claims, err := s.Parse(strings.TrimPrefix(h, "Bearer "))
			if err != nil {
				http.Error(w, "bad token", http.StatusUnauthorized)
				return
			}
			ctx := WithSubject(r.Context(), claims.Sub)
			ctx = rbac.WithRole(ctx, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AttachRole replaces the claim role with the account's authoritative role,
// going through the per-session role cache so each session hits the store
// once. Unknown accounts are rejected.
func AttachRole(accounts account.Repo, roles cache.RoleCache) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			sub := SubjectFromContext(ctx)
			if sub == "" {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			if role, ok := roles.Get(ctx, sub); ok {
				next.ServeHTTP(w, r.WithContext(rbac.WithRole(ctx, role)))
				return
			}
			a, err := accounts.GetByID(ctx, sub)
			if errors.Is(err, account.ErrNotFound) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			if err != nil {
				http.Error(w, "role lookup failed", http.StatusInternalServerError)
				return
			}
			roles.Set(ctx, sub, a.Role)
			next.ServeHTTP(w, r.WithContext(rbac.WithRole(ctx, a.Role)))
		})
	}
}
