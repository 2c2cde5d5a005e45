package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"hirebase/internal/core/apperror"
	appctx "hirebase/internal/core/context"
)

// SessionCookie is the HTTP-only cookie carrying the signed session token.
const SessionCookie = "hb_session"

// TokenValidator validates a session token and returns its user context.
type TokenValidator interface {
	Validate(tokenString string) (*appctx.UserContext, error)
}

// SessionChecker verifies the referenced server-side session is still active.
type SessionChecker interface {
	SessionActive(ctx context.Context, sessionID string) (bool, error)
}

// SessionAuth validates the session cookie (or a Bearer token for API
// clients) and populates the user context. The token alone is not enough:
// the server-side session it references must still be active, so logout
// and forced revocation take effect immediately.
func SessionAuth(tokens TokenValidator, sessions SessionChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			abortUnauthorized(c, "authentication required")
			return
		}

		user, err := tokens.Validate(tokenString)
		if err != nil {
			abortUnauthorized(c, "invalid session")
			return
		}

		active, err := sessions.SessionActive(c.Request.Context(), user.SessionID)
		if err != nil {
			_ = c.Error(apperror.NewInternal(err))
			c.Abort()
			return
		}
		if !active {
			abortUnauthorized(c, "session expired")
			return
		}

		ctx := appctx.WithUser(c.Request.Context(), user)
		c.Request = c.Request.WithContext(ctx)

		// Store in gin context for easy access
		c.Set("user_id", user.UserID)
		c.Set("permissions", user.Permissions)

		c.Next()
	}
}

// OptionalSessionAuth populates the user context if a valid session is
// present, but does not require one.
func OptionalSessionAuth(tokens TokenValidator, sessions SessionChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			c.Next()
			return
		}

		user, err := tokens.Validate(tokenString)
		if err != nil {
			c.Next()
			return
		}
		if active, err := sessions.SessionActive(c.Request.Context(), user.SessionID); err != nil || !active {
			c.Next()
			return
		}

		ctx := appctx.WithUser(c.Request.Context(), user)
		c.Request = c.Request.WithContext(ctx)
		c.Set("user_id", user.UserID)
		c.Set("permissions", user.Permissions)

		c.Next()
	}
}

// extractToken prefers the session cookie, falling back to a Bearer header
// for non-browser clients.
func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie
	}
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

func abortUnauthorized(c *gin.Context, message string) {
	_ = c.Error(apperror.NewUnauthorized(message))
	c.Abort()
}
