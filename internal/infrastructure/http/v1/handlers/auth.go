package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	appctx "hirebase/internal/core/context"
	"hirebase/internal/domain/auth"
	"hirebase/internal/infrastructure/http/v1/dto"
	"hirebase/internal/infrastructure/http/v1/middleware"
)

// CookieConfig controls the session cookie attributes.
type CookieConfig struct {
	Secure bool
	TTL    time.Duration
}

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	*BaseHandler
	service *auth.Service
	cookies CookieConfig
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(base *BaseHandler, service *auth.Service, cookies CookieConfig) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		service:     service,
		cookies:     cookies,
	}
}

// Login handles POST /auth/login. On success the session token is set as
// an HTTP-only cookie; the body carries only the user.
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.service.Login(ctx, req.ToCredentials(), c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.setSessionCookie(c, result.Token, int(h.cookies.TTL.Seconds()))

	c.JSON(http.StatusOK, dto.LoginResponse{
		User:      dto.FromUser(result.User),
		ExpiresAt: result.ExpiresAt,
	})
}

// Session handles GET /auth/session. Anonymous callers get 200 with
// authenticated=false rather than 401, so the admin UI can probe session
// state without triggering its unauthorized handling.
func (h *AuthHandler) Session(c *gin.Context) {
	ctx := c.Request.Context()

	if appctx.GetUser(ctx) == nil {
		c.JSON(http.StatusOK, dto.SessionResponse{Authenticated: false})
		return
	}

	user, err := h.service.CurrentUser(ctx)
	if err != nil {
		c.JSON(http.StatusOK, dto.SessionResponse{Authenticated: false})
		return
	}

	resp := dto.FromUser(user)
	c.JSON(http.StatusOK, dto.SessionResponse{
		Authenticated: true,
		User:          &resp,
	})
}

// Logout handles POST /auth/logout. The cookie is cleared even when the
// session was already gone server-side.
func (h *AuthHandler) Logout(c *gin.Context) {
	ctx := c.Request.Context()

	err := h.service.Logout(ctx)
	h.setSessionCookie(c, "", -1)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, value, maxAge, "/", "", h.cookies.Secure, true)
}
