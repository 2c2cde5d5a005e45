package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appctx "hirebase/internal/core/context"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// withUser simulates the auth middleware: it stores the user on the
// request context and mirrors the permissions into the gin context.
func withUser(user *appctx.UserContext) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user != nil {
			c.Request = c.Request.WithContext(appctx.WithUser(c.Request.Context(), user))
			c.Set("user_id", user.UserID)
			c.Set("permissions", user.Permissions)
		}
		c.Next()
	}
}

func permRequest(t *testing.T, user *appctx.UserContext, guard gin.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()

	router := gin.New()
	router.Use(ErrorHandler())
	router.GET("/guarded", withUser(user), guard, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	router.ServeHTTP(w, req)
	return w
}

func TestRequirePermission_NoUser(t *testing.T) {
	w := permRequest(t, nil, RequirePermission("campaigns:read"))

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "UNAUTHORIZED", body["code"])
}

func TestRequirePermission_Granted(t *testing.T) {
	user := &appctx.UserContext{UserID: "u1", Permissions: []string{"campaigns:read"}}
	w := permRequest(t, user, RequirePermission("campaigns:read"))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequirePermission_CaseInsensitive(t *testing.T) {
	user := &appctx.UserContext{UserID: "u1", Permissions: []string{"Campaigns:Read"}}
	w := permRequest(t, user, RequirePermission("CAMPAIGNS:read"))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequirePermission_Denied(t *testing.T) {
	user := &appctx.UserContext{UserID: "u1", Permissions: []string{"links:read"}}
	w := permRequest(t, user, RequirePermission("campaigns:write"))

	assert.Equal(t, http.StatusForbidden, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "FORBIDDEN", body["code"])

	details := body["details"].(map[string]any)
	assert.Equal(t, []any{"campaigns:write"}, details["missing_permissions"])
}

func TestRequirePermission_AdminBypass(t *testing.T) {
	user := &appctx.UserContext{UserID: "u1", IsAdmin: true}
	w := permRequest(t, user, RequirePermission("users:manage"))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAllPermissions(t *testing.T) {
	user := &appctx.UserContext{UserID: "u1", Permissions: []string{"candidates:write", "candidates:move"}}

	w := permRequest(t, user, RequireAllPermissions("candidates:write", "candidates:move"))
	assert.Equal(t, http.StatusOK, w.Code)

	partial := &appctx.UserContext{UserID: "u1", Permissions: []string{"candidates:write"}}
	w = permRequest(t, partial, RequireAllPermissions("candidates:write", "candidates:move"))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAnyPermission(t *testing.T) {
	user := &appctx.UserContext{UserID: "u1", Permissions: []string{"blacklist:read"}}

	w := permRequest(t, user, RequireAnyPermission("blacklist:read", "blacklist:write"))
	assert.Equal(t, http.StatusOK, w.Code)

	w = permRequest(t, user, RequireAnyPermission("campaigns:write", "links:write"))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequirePermissions_EmptyListAllowsAuthenticated(t *testing.T) {
	user := &appctx.UserContext{UserID: "u1"}

	w := permRequest(t, user, RequireAllPermissions())
	assert.Equal(t, http.StatusOK, w.Code)

	w = permRequest(t, user, RequireAnyPermission())
	assert.Equal(t, http.StatusOK, w.Code)
}
