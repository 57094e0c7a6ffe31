package cookie

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const AccessTokenCookieName = "access_token"

// AccessToken returns the token from the access cookie, falling back to a Bearer header.
// Tokens are issued by the identity service; this API only reads them.
func AccessToken(c *gin.Context) string {
	if token, err := c.Cookie(AccessTokenCookieName); err == nil && token != "" {
		return token
	}
	authHeader := c.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}
