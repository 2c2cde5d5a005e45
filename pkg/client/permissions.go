package client

import "strings"

// Gate answers permission questions against the session user. Permission
// codes compare case-insensitively; an empty requirement always passes, so
// components with no declared requirement render for everyone.
type Gate struct {
	session *SessionStore
}

// NewGate creates a permission gate over a session store.
func NewGate(session *SessionStore) *Gate {
	return &Gate{session: session}
}

// HasAll reports whether the user holds every code. Empty input is true.
func (g *Gate) HasAll(codes ...string) bool {
	if len(codes) == 0 {
		return true
	}
	user := g.session.User()
	if user == nil {
		return false
	}
	if user.IsAdmin {
		return true
	}
	held := normalizedSet(user.Permissions)
	for _, code := range codes {
		if !held[strings.ToLower(code)] {
			return false
		}
	}
	return true
}

// HasAny reports whether the user holds at least one code. Empty input
// is true.
func (g *Gate) HasAny(codes ...string) bool {
	if len(codes) == 0 {
		return true
	}
	user := g.session.User()
	if user == nil {
		return false
	}
	if user.IsAdmin {
		return true
	}
	held := normalizedSet(user.Permissions)
	for _, code := range codes {
		if held[strings.ToLower(code)] {
			return true
		}
	}
	return false
}

func normalizedSet(codes []string) map[string]bool {
	set := make(map[string]bool, len(codes))
	for _, code := range codes {
		set[strings.ToLower(code)] = true
	}
	return set
}
