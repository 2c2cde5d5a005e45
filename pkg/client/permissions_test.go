package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gateWith(t *testing.T, user *User) *Gate {
	t.Helper()
	c, err := New("http://example.test/api")
	require.NoError(t, err)

	store := NewSessionStore(c)
	if user != nil {
		store.set(StateAuthenticated, user, "")
	} else {
		store.set(StateAnonymous, nil, "")
	}
	return NewGate(store)
}

func TestGate_EmptyRequirementAlwaysPasses(t *testing.T) {
	gate := gateWith(t, nil)

	assert.True(t, gate.HasAll())
	assert.True(t, gate.HasAny())
}

func TestGate_NilUserFailsNonEmpty(t *testing.T) {
	gate := gateWith(t, nil)

	assert.False(t, gate.HasAll("campaigns:read"))
	assert.False(t, gate.HasAny("campaigns:read", "links:read"))
}

func TestGate_AdminBypassesChecks(t *testing.T) {
	gate := gateWith(t, &User{IsAdmin: true})

	assert.True(t, gate.HasAll("campaigns:write", "users:manage"))
	assert.True(t, gate.HasAny("anything:at-all"))
}

func TestGate_HasAll(t *testing.T) {
	gate := gateWith(t, &User{Permissions: []string{"campaigns:read", "links:read"}})

	assert.True(t, gate.HasAll("campaigns:read"))
	assert.True(t, gate.HasAll("campaigns:read", "links:read"))
	assert.False(t, gate.HasAll("campaigns:read", "links:write"))
}

func TestGate_HasAny(t *testing.T) {
	gate := gateWith(t, &User{Permissions: []string{"candidates:read"}})

	assert.True(t, gate.HasAny("candidates:read", "candidates:write"))
	assert.False(t, gate.HasAny("campaigns:write", "links:write"))
}

func TestGate_CaseInsensitive(t *testing.T) {
	gate := gateWith(t, &User{Permissions: []string{"Campaigns:Read"}})

	assert.True(t, gate.HasAll("campaigns:read"))
	assert.True(t, gate.HasAll("CAMPAIGNS:READ"))
	assert.True(t, gate.HasAny("campaigns:READ"))
}
