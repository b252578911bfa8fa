package middleware

import (
	"net/http"

	"github.com/davidokon/secretshop/internal/infrastructure/adapter/session"
	"github.com/gin-gonic/gin"
)

// ContextKeyUserID is the gin context key holding the authenticated user ID
const ContextKeyUserID = "auth_user_id"

// RequireUser redirects anonymous requests to the login page and stores
// the authenticated user ID in the gin context for handlers.
func RequireUser(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := sessions.UserID(c.Request)
		if !ok {
			_ = sessions.Flash(c.Writer, c.Request, "Please log in first")
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Set(ContextKeyUserID, userID)
		c.Next()
	}
}

// RequireAdmin verifies the signed admin capability token stored in the
// session. It runs after RequireUser, so the user ID is already in context.
func RequireAdmin(sessions *session.Manager, guard *session.AdminGuard) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := UserID(c)
		token, ok := sessions.AdminToken(c.Request)
		if !ok || !guard.Verify(token, userID) {
			_ = sessions.Flash(c.Writer, c.Request, "Admin access required")
			c.Redirect(http.StatusFound, "/admin-login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated user ID set by RequireUser
func UserID(c *gin.Context) uint64 {
	id, _ := c.Get(ContextKeyUserID)
	userID, _ := id.(uint64)
	return userID
}
