package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

const principalKey = "auth.principal"

// Principal is the authenticated identity attached to a request after the
// auth middleware accepts its access token. FullName is stored with
// diacritics stripped for normalized matching.
type Principal struct {
	UserID    int64
	Username  string
	Email     string
	Phone     string
	FullName  string
	ExpiresAt time.Time
}

// SetPrincipal attaches the principal to the request context.
func SetPrincipal(c *gin.Context, p Principal) {
	c.Set(principalKey, p)
}

// GetPrincipal returns the principal set by the auth middleware and true if present.
func GetPrincipal(c *gin.Context) (Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return Principal{}, false
	}
	p, ok := v.(Principal)
	return p, ok
}
