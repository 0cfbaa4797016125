package auth

import (
	"github.com/gin-gonic/gin"
)

const (
	// CtxIdentity is the gin context key holding the request's Identity.
	CtxIdentity = "auth_identity"
)

// Identity is the decoded claim attached to a request after authentication.
// It lives for the duration of one request only.
type Identity struct {
	Email string
	// Role as carried by a self-issued token. Untrusted for authorization
	// decisions; admin checks always re-read the stored role.
	Role   string
	Claims map[string]interface{}
}

// SetIdentity attaches the identity to the current request.
func SetIdentity(c *gin.Context, id Identity) {
	c.Set(CtxIdentity, id)
}

// CurrentIdentity returns the identity set by the Authenticate middleware.
func CurrentIdentity(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(CtxIdentity)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	if !ok || id.Email == "" {
		return Identity{}, false
	}
	return id, true
}
