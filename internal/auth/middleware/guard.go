package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/triptale-app/triptale-backend/internal/auth"
	"github.com/triptale-app/triptale-backend/internal/users/domain"
)

// RoleLookup reads a user's stored role. Implemented by the users repository.
type RoleLookup interface {
	RoleOf(ctx context.Context, email string) (string, error)
}

// RequireOwner allows the request only when the authenticated email matches
// the named path parameter. Must run after Authenticate.
func RequireOwner(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := auth.CurrentIdentity(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		if id.Email != c.Param(param) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
			return
		}

		c.Next()
	}
}

// RequireRole allows the request only when the caller's stored role is one
// of the given roles. The role is fetched fresh on every request: token
// claims are not trusted for this, and caching would let a revoked admin
// keep their privileges.
func RequireRole(store RoleLookup, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := auth.CurrentIdentity(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		role, err := store.RoleOf(c.Request.Context(), id.Email)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
	}
}

// RequireAdmin gates admin-only routes.
func RequireAdmin(store RoleLookup) gin.HandlerFunc {
	return RequireRole(store, domain.RoleAdmin)
}
