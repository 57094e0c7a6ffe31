package middleware

import (
	"log/slog"
	"net/http"

	"table-booking/internal/domain/user"
	"table-booking/internal/handler/httperr"
	"table-booking/internal/pkg/cookie"
	"table-booking/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthMiddleware struct {
	authenticator usecase.Authenticator
}

const (
	ctxUserIDKey   = "user_id"
	ctxUserRoleKey = "user_role"
)

func NewAuthMiddleware(authenticator usecase.Authenticator) *AuthMiddleware {
	return &AuthMiddleware{
		authenticator: authenticator,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := cookie.AccessToken(c)
		if token == "" {
			httperr.Abort(c, http.StatusUnauthorized, "Access token required")
			return
		}

		actor, err := m.authenticator.Authenticate(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			httperr.Abort(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		setActor(c, actor)
		c.Next()
	}
}

// RequireRoleAtLeast must run after RequireAuth.
func (m *AuthMiddleware) RequireRoleAtLeast(minRole user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetUserRole(c)
		if !ok {
			httperr.Abort(c, http.StatusInternalServerError, "Internal server error")
			return
		}

		if !role.AtLeast(minRole) {
			httperr.Abort(c, http.StatusForbidden, "Insufficient permissions")
			return
		}

		c.Next()
	}
}

// OptionalAuth authenticates the request if a token is present, but does not abort on failure.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := cookie.AccessToken(c)
		if token == "" {
			c.Next()
			return
		}

		// A stale token on a public route degrades to an anonymous request.
		if actor, err := m.authenticator.Authenticate(token); err == nil {
			setActor(c, actor)
		}
		c.Next()
	}
}

func setActor(c *gin.Context, a user.Actor) {
	c.Set(ctxUserIDKey, a.ID)
	c.Set(ctxUserRoleKey, a.Role)
}

func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(ctxUserIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := userID.(uuid.UUID)
	return id, ok
}

func GetUserRole(c *gin.Context) (user.Role, bool) {
	userRole, exists := c.Get(ctxUserRoleKey)
	if !exists {
		return "", false
	}

	role, ok := userRole.(user.Role)
	return role, ok
}

// GetActor returns the authenticated caller. ok is false for anonymous requests.
func GetActor(c *gin.Context) (user.Actor, bool) {
	id, ok := GetUserID(c)
	if !ok {
		return user.Actor{}, false
	}
	role, ok := GetUserRole(c)
	if !ok {
		return user.Actor{}, false
	}
	return user.Actor{ID: id, Role: role}, true
}
