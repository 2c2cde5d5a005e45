// Package middleware provides HTTP middleware for the API.
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"hirebase/internal/core/apperror"
	appctx "hirebase/internal/core/context"
)

// RequirePermission checks if the user holds the required permission.
// Admins automatically have all permissions. Permission codes compare
// case-insensitively.
func RequirePermission(permission string) gin.HandlerFunc {
	return RequireAllPermissions(permission)
}

// RequireAnyPermission checks if the user holds any of the permissions.
// An empty list allows everyone authenticated.
func RequireAnyPermission(permissions ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := appctx.GetUser(c.Request.Context())
		if user == nil {
			_ = c.Error(apperror.NewUnauthorized("authentication required"))
			c.Abort()
			return
		}

		if len(permissions) == 0 || user.IsAdmin {
			c.Next()
			return
		}

		for _, required := range permissions {
			if hasPermission(c, required) {
				c.Next()
				return
			}
		}

		_ = c.Error(
			apperror.NewForbidden("insufficient permissions").
				WithDetail("required_permissions", permissions),
		)
		c.Abort()
	}
}

// RequireAllPermissions checks if the user holds every permission.
// An empty list allows everyone authenticated.
func RequireAllPermissions(permissions ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := appctx.GetUser(c.Request.Context())
		if user == nil {
			_ = c.Error(apperror.NewUnauthorized("authentication required"))
			c.Abort()
			return
		}

		if len(permissions) == 0 || user.IsAdmin {
			c.Next()
			return
		}

		var missing []string
		for _, required := range permissions {
			if !hasPermission(c, required) {
				missing = append(missing, required)
			}
		}

		if len(missing) > 0 {
			_ = c.Error(
				apperror.NewForbidden("insufficient permissions").
					WithDetail("missing_permissions", missing),
			)
			c.Abort()
			return
		}

		c.Next()
	}
}

// hasPermission checks one code against the permissions stored in the gin
// context by the auth middleware.
func hasPermission(c *gin.Context, code string) bool {
	code = strings.ToLower(code)
	for _, perm := range getUserPermissions(c) {
		if strings.ToLower(perm) == code {
			return true
		}
	}
	return false
}

func getUserPermissions(c *gin.Context) []string {
	if perms, exists := c.Get("permissions"); exists {
		if p, ok := perms.([]string); ok {
			return p
		}
	}
	return nil
}
