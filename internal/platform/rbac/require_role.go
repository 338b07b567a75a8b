// Package rbac provides role checks for protected routes.
package rbac

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/8syncdev/elearn-auth/internal/platform/respond"
	"github.com/8syncdev/elearn-auth/internal/server/middleware"
)

// RoleChecker reports whether a user holds a named role. Used by RequireRole
// to resolve caller permissions.
type RoleChecker interface {
	HasRole(ctx context.Context, userID int64, name string) (bool, error)
}

// RequireRole ensures the caller is authenticated and holds the named role.
// Must run after the auth middleware; aborts with 401 when no principal is
// present and 403 when the role is missing.
func RequireRole(checker RoleChecker, name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := middleware.GetPrincipal(c)
		if !ok {
			respond.AbortError(c, http.StatusUnauthorized, "authentication required")
			return
		}
		held, err := checker.HasRole(c.Request.Context(), p.UserID, name)
		if err != nil {
			respond.AbortError(c, http.StatusInternalServerError, "failed to resolve roles")
			return
		}
		if !held {
			respond.AbortError(c, http.StatusForbidden, name+" role required")
			return
		}
		c.Next()
	}
}
