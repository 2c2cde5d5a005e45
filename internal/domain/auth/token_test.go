package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hirebase/internal/core/id"
)

func TestTokenService_RoundTrip(t *testing.T) {
	svc := NewTokenService(DefaultTokenConfig("test-secret"))

	user := NewUser("ana@example.com", "hash")
	user.IsAdmin = true
	user.Roles = []Role{{Code: "manager"}}
	user.Permissions = []string{"campaigns:read", "campaigns:write"}

	sessionID := id.New().String()
	token, expiresAt, err := svc.Generate(user, sessionID)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(12*time.Hour), expiresAt, time.Minute)

	got, err := svc.Validate(token)
	require.NoError(t, err)

	assert.Equal(t, user.ID.String(), got.UserID)
	assert.Equal(t, "ana@example.com", got.Email)
	assert.Equal(t, sessionID, got.SessionID)
	assert.Equal(t, []string{"manager"}, got.Roles)
	assert.Equal(t, user.Permissions, got.Permissions)
	assert.True(t, got.IsAdmin)
}

func TestTokenService_WrongSecretRejected(t *testing.T) {
	minted := NewTokenService(DefaultTokenConfig("secret-a"))
	verifier := NewTokenService(DefaultTokenConfig("secret-b"))

	user := NewUser("ana@example.com", "hash")
	token, _, err := minted.Generate(user, "s1")
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.Error(t, err)
}

func TestTokenService_ExpiredTokenRejected(t *testing.T) {
	cfg := DefaultTokenConfig("test-secret")
	cfg.TTL = -time.Minute
	svc := NewTokenService(cfg)

	user := NewUser("ana@example.com", "hash")
	token, _, err := svc.Generate(user, "s1")
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.Error(t, err)
}

func TestTokenService_GarbageRejected(t *testing.T) {
	svc := NewTokenService(DefaultTokenConfig("test-secret"))

	_, err := svc.Validate("not.a.token")
	assert.Error(t, err)
}
