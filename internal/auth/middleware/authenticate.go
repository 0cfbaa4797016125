package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/triptale-app/triptale-backend/internal/auth"
)

// Authenticate validates the bearer credential and attaches the decoded
// identity to the request context.
//
// Two schemes are accepted: self-issued HS256 tokens minted by POST /jwt,
// and Firebase ID tokens. Every rejection aborts the chain; no handler
// runs after a 401/403 has been written.
func Authenticate(tokens *auth.TokenService, provider auth.ProviderVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := extractToken(c)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		if auth.IsSelfIssued(raw) {
			claims, err := tokens.Parse(raw)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
				return
			}

			auth.SetIdentity(c, auth.Identity{
				Email: claims.Email,
				Role:  claims.Role,
				Claims: map[string]interface{}{
					"email": claims.Email,
					"role":  claims.Role,
				},
			})
			c.Next()
			return
		}

		// Provider rejections are reported uniformly; the caller learns
		// nothing about why the provider said no.
		decoded, err := provider.VerifyIDToken(c.Request.Context(), raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
			return
		}

		email, _ := decoded.Claims["email"].(string)
		if email == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
			return
		}

		auth.SetIdentity(c, auth.Identity{
			Email:  email,
			Claims: decoded.Claims,
		})
		c.Next()
	}
}

// extractToken extracts the Bearer token from the Authorization header
func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.HasPrefix(bearerToken, "Bearer ") {
		return strings.TrimSpace(bearerToken[7:])
	}
	return ""
}
