package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStore_StartsUnready(t *testing.T) {
	c, _ := newTestClient(t, jsonHandler(200, `{}`))
	store := NewSessionStore(c)

	assert.Equal(t, StateUnready, store.State())
	assert.Nil(t, store.User())
	assert.False(t, store.IsAuthenticated())
}

func TestSessionStore_ProbeAuthenticated(t *testing.T) {
	c, _ := newTestClient(t, jsonHandler(200,
		`{"authenticated":true,"user":{"id":"u1","email":"ana@example.com","permissions":["campaigns:read"]}}`))
	store := NewSessionStore(c)

	require.NoError(t, store.Probe(context.Background()))

	assert.Equal(t, StateAuthenticated, store.State())
	require.NotNil(t, store.User())
	assert.Equal(t, "ana@example.com", store.User().Email)
}

func TestSessionStore_ProbeAnonymous(t *testing.T) {
	c, _ := newTestClient(t, jsonHandler(200, `{"authenticated":false}`))
	store := NewSessionStore(c)

	require.NoError(t, store.Probe(context.Background()))

	assert.Equal(t, StateAnonymous, store.State())
	assert.Nil(t, store.User())
}

func TestSessionStore_ProbeFailureResolvesAnonymous(t *testing.T) {
	server := httptest.NewServer(jsonHandler(200, `{}`))
	server.Close()

	c, err := New(server.URL)
	require.NoError(t, err)
	store := NewSessionStore(c)

	require.Error(t, store.Probe(context.Background()))

	// An unreachable server must not leave the store stuck in Unready.
	assert.Equal(t, StateAnonymous, store.State())
}

func TestSessionStore_LoginSuccess(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user":{"id":"u1","email":"ana@example.com","is_admin":true}}`))
	}))
	store := NewSessionStore(c)

	err := store.Login(context.Background(), Credentials{
		UsernameOrEmail: "ana@example.com",
		Password:        "secret",
	})
	require.NoError(t, err)

	assert.Equal(t, StateAuthenticated, store.State())
	assert.Empty(t, store.LastError())
	assert.True(t, store.User().IsAdmin)
	assert.False(t, store.Loading())
}

func TestSessionStore_LoginFailureStaysAnonymousWithError(t *testing.T) {
	c, _ := newTestClient(t, jsonHandler(401, `{"message":"Invalid credentials"}`))
	store := NewSessionStore(c)

	err := store.Login(context.Background(), Credentials{
		UsernameOrEmail: "ana@example.com",
		Password:        "wrong",
	})
	require.Error(t, err)

	assert.Equal(t, StateAnonymous, store.State())
	assert.Equal(t, "Invalid credentials", store.LastError())
	assert.Nil(t, store.User())
}

func TestSessionStore_LoginSessionExists(t *testing.T) {
	c, _ := newTestClient(t, jsonHandler(409,
		`{"code":"SESSION_EXISTS","message":"An active session already exists for this account"}`))
	store := NewSessionStore(c)

	err := store.Login(context.Background(), Credentials{
		UsernameOrEmail: "ana@example.com",
		Password:        "secret",
	})
	require.Error(t, err)

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, 409, apiErr.Status)
	assert.Equal(t, "An active session already exists for this account", store.LastError())
}

func TestSessionStore_LogoutClearsEvenWhenServerFails(t *testing.T) {
	c, _ := newTestClient(t, jsonHandler(500, `{"message":"boom"}`))
	store := NewSessionStore(c)
	store.set(StateAuthenticated, &User{ID: "u1"}, "")

	err := store.Logout(context.Background())
	require.Error(t, err)

	assert.Equal(t, StateAnonymous, store.State())
	assert.Nil(t, store.User())
}

func TestSessionStore_ResetOnUnauthorizedDataCall(t *testing.T) {
	c, _ := newTestClient(t, jsonHandler(401, `{"code":"UNAUTHORIZED","message":"session expired"}`))
	store := NewSessionStore(c)
	store.set(StateAuthenticated, &User{ID: "u1", Email: "ana@example.com"}, "")

	var stateAtRedirect State
	c.onUnauthorized = func(string) { stateAtRedirect = store.State() }

	_, err := NewCampaigns(c).List(context.Background(), nil)
	require.Error(t, err)

	// Any 401 destroys the local session, before the redirect handler runs.
	assert.Equal(t, StateAnonymous, store.State())
	assert.Nil(t, store.User())
	assert.Equal(t, StateAnonymous, stateAtRedirect)
}

func TestSessionStore_QuietOps(t *testing.T) {
	// Session calls bypass the notification policy: login failures render
	// inline next to the form, never as a toast.
	c, _ := newTestClient(t, jsonHandler(401, `{"message":"Invalid credentials"}`))
	got := collectNotifications(c.Bus())
	store := NewSessionStore(c)

	_ = store.Login(context.Background(), Credentials{UsernameOrEmail: "x", Password: "y"})
	_ = store.Probe(context.Background())
	_ = store.Logout(context.Background())

	assert.Empty(t, *got)
}

func TestLoginErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "string detail first",
			err:  newAPIError(401, map[string]any{"detail": "Account locked", "message": "other"}),
			want: "Account locked",
		},
		{
			name: "detail object message",
			err:  newAPIError(401, map[string]any{"detail": map[string]any{"message": "nested msg"}}),
			want: "nested msg",
		},
		{
			name: "detail object error",
			err:  newAPIError(401, map[string]any{"detail": map[string]any{"error": "nested err"}}),
			want: "nested err",
		},
		{
			name: "top-level message",
			err:  newAPIError(401, map[string]any{"message": "Invalid credentials"}),
			want: "Invalid credentials",
		},
		{
			name: "fallback to resolved message",
			err:  newAPIError(401, nil),
			want: "Unauthorized",
		},
		{
			name: "non-api error",
			err:  context.DeadlineExceeded,
			want: "Unable to reach the server. Please try again.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, loginErrorMessage(tt.err))
		})
	}
}
