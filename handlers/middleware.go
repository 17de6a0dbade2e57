package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"github.com/oldcreekhomes/builder-suite-ai-sub001/services"
)

// actorRole resolves the caller's role from the authenticated user record.
// Unauthenticated requests get the viewer role, which is read-only.
func actorRole(e *core.RequestEvent) string {
	if e.Auth == nil {
		return services.RoleViewer
	}
	role := e.Auth.GetString("role")
	if role == "" {
		return services.RoleViewer
	}
	return role
}

// RequireAuth rejects requests without an authenticated user.
func RequireAuth() func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if e.Auth == nil {
			return apiError(e, http.StatusUnauthorized, ErrKindAuth, "Authentication required")
		}
		return e.Next()
	}
}
