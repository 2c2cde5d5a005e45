package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	appctx "hirebase/internal/core/context"
)

type fakeValidator struct {
	user *appctx.UserContext
	err  error
}

func (f fakeValidator) Validate(string) (*appctx.UserContext, error) {
	return f.user, f.err
}

type fakeSessions struct {
	active bool
	err    error
}

func (f fakeSessions) SessionActive(context.Context, string) (bool, error) {
	return f.active, f.err
}

func authRequest(t *testing.T, guard gin.HandlerFunc, decorate func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()

	router := gin.New()
	router.Use(ErrorHandler())
	router.GET("/me", guard, func(c *gin.Context) {
		user := appctx.GetUser(c.Request.Context())
		if user == nil {
			c.JSON(http.StatusOK, gin.H{"anonymous": true})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": user.UserID})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if decorate != nil {
		decorate(req)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestSessionAuth_NoToken(t *testing.T) {
	guard := SessionAuth(fakeValidator{}, fakeSessions{})
	w := authRequest(t, guard, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionAuth_CookieAccepted(t *testing.T) {
	guard := SessionAuth(
		fakeValidator{user: &appctx.UserContext{UserID: "u1", SessionID: "s1"}},
		fakeSessions{active: true},
	)
	w := authRequest(t, guard, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: SessionCookie, Value: "token"})
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "u1")
}

func TestSessionAuth_BearerFallback(t *testing.T) {
	guard := SessionAuth(
		fakeValidator{user: &appctx.UserContext{UserID: "u1", SessionID: "s1"}},
		fakeSessions{active: true},
	)
	w := authRequest(t, guard, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer token")
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSessionAuth_InvalidToken(t *testing.T) {
	guard := SessionAuth(fakeValidator{err: errors.New("bad signature")}, fakeSessions{})
	w := authRequest(t, guard, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: SessionCookie, Value: "garbage"})
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionAuth_RevokedSession(t *testing.T) {
	// A valid token whose server-side session was revoked must not pass:
	// logout and forced revocation take effect immediately.
	guard := SessionAuth(
		fakeValidator{user: &appctx.UserContext{UserID: "u1", SessionID: "s1"}},
		fakeSessions{active: false},
	)
	w := authRequest(t, guard, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: SessionCookie, Value: "token"})
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionAuth_SessionLookupFailure(t *testing.T) {
	guard := SessionAuth(
		fakeValidator{user: &appctx.UserContext{UserID: "u1", SessionID: "s1"}},
		fakeSessions{err: errors.New("db down")},
	)
	w := authRequest(t, guard, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: SessionCookie, Value: "token"})
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestOptionalSessionAuth_AnonymousPasses(t *testing.T) {
	guard := OptionalSessionAuth(fakeValidator{err: errors.New("no")}, fakeSessions{})

	w := authRequest(t, guard, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "anonymous")

	w = authRequest(t, guard, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: SessionCookie, Value: "stale"})
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "anonymous")
}

func TestOptionalSessionAuth_ValidSessionPopulates(t *testing.T) {
	guard := OptionalSessionAuth(
		fakeValidator{user: &appctx.UserContext{UserID: "u1", SessionID: "s1"}},
		fakeSessions{active: true},
	)
	w := authRequest(t, guard, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: SessionCookie, Value: "token"})
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "u1")
}
