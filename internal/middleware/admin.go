package middleware

import (
	"context"
	"net/http"

	"github.com/mk-cardoso198/engajapro-digital-hub/internal/auth"
	"github.com/mk-cardoso198/engajapro-digital-hub/internal/transport"
)

const AccessCookieName = "engaja_access"

// RoleChecker reports whether the user still holds the admin role. It is
// consulted on every protected request, so revoking a role takes effect
// immediately instead of at next login.
type RoleChecker func(ctx context.Context, userID string) bool

type adminUserKey struct{}

func AdminAuth(adminKey string, manager *auth.Manager, isAdmin RoleChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if adminKey == "" && manager == nil {
				transport.WriteError(w, http.StatusServiceUnavailable, "admin auth not configured", nil)
				return
			}

			if adminKey != "" && r.Header.Get("X-Admin-Key") == adminKey {
				next.ServeHTTP(w, r)
				return
			}

			if manager != nil {
				cookie, err := r.Cookie(AccessCookieName)
				if err == nil && cookie.Value != "" {
					claims, err := manager.Parse(cookie.Value)
					if err == nil && claims.Role == "admin" && claims.TokenType == auth.TokenTypeAccess {
						if isAdmin != nil && !isAdmin(r.Context(), claims.Subject) {
							transport.WriteError(w, http.StatusForbidden, "access denied", nil)
							return
						}
						ctx := context.WithValue(r.Context(), adminUserKey{}, claims.Subject)
						next.ServeHTTP(w, r.WithContext(ctx))
						return
					}
				}
			}

			transport.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		})
	}
}

func AdminUserFromContext(ctx context.Context) string {
	if v := ctx.Value(adminUserKey{}); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
