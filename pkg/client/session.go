package client

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// State describes where the session store is in its lifecycle. The store
// starts Unready; the first probe (or login) moves it to Ready, split into
// Anonymous and Authenticated. UIs render nothing session-dependent until
// the store leaves Unready, which prevents a logged-in user flashing
// through the anonymous layout on page load.
type State string

const (
	StateUnready       State = "unready"
	StateAnonymous     State = "anonymous"
	StateAuthenticated State = "authenticated"
)

// User is the session user as served by the API.
type User struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	FirstName   string     `json:"first_name,omitempty"`
	LastName    string     `json:"last_name,omitempty"`
	FullName    string     `json:"full_name"`
	IsAdmin     bool       `json:"is_admin"`
	Roles       []string   `json:"roles"`
	Permissions []string   `json:"permissions"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// Credentials is the login payload.
type Credentials struct {
	UsernameOrEmail string `json:"username_or_email"`
	Password        string `json:"password"`
	CaptchaToken    string `json:"captcha_token,omitempty"`

	// Force revokes a colliding active session instead of failing with
	// SESSION_EXISTS.
	Force bool `json:"force,omitempty"`
}

// SessionStore tracks the caller's session. Safe for concurrent use.
type SessionStore struct {
	client *Client

	mu        sync.RWMutex
	state     State
	user      *User
	lastError string
	loading   bool
}

// NewSessionStore creates a session store in the Unready state and binds
// it to the client: a 401 on any call through the client drops the store
// to Anonymous, so stale authenticated state never outlives the session.
func NewSessionStore(client *Client) *SessionStore {
	s := &SessionStore{
		client: client,
		state:  StateUnready,
	}
	client.onSessionInvalid = func() {
		s.set(StateAnonymous, nil, "")
	}
	return s
}

type sessionResponse struct {
	Authenticated bool  `json:"authenticated"`
	User          *User `json:"user"`
}

type loginResponse struct {
	User User `json:"user"`
}

// Probe asks the server whether the session cookie is still good and
// moves the store to Ready. Probe failures resolve to Anonymous: an
// unreachable server must not wedge the store in Unready.
func (s *SessionStore) Probe(ctx context.Context) error {
	resp, err := s.client.doQuiet(ctx, http.MethodGet, "/auth/session", nil)
	if err != nil {
		s.set(StateAnonymous, nil, "")
		return err
	}

	var session sessionResponse
	if err := resp.Decode(&session); err != nil {
		s.set(StateAnonymous, nil, "")
		return err
	}

	if session.Authenticated && session.User != nil {
		s.set(StateAuthenticated, session.User, "")
	} else {
		s.set(StateAnonymous, nil, "")
	}
	return nil
}

// Login authenticates. On failure the store stays (or becomes) Anonymous
// and LastError carries the message to render next to the form.
func (s *SessionStore) Login(ctx context.Context, creds Credentials) error {
	s.setLoading(true)
	defer s.setLoading(false)

	resp, err := s.client.doQuiet(ctx, http.MethodPost, "/auth/login", creds)
	if err != nil {
		s.set(StateAnonymous, nil, loginErrorMessage(err))
		return err
	}

	var result loginResponse
	if err := resp.Decode(&result); err != nil {
		s.set(StateAnonymous, nil, "Unexpected response from server")
		return err
	}

	s.set(StateAuthenticated, &result.User, "")
	return nil
}

// Logout ends the session. Local state clears to Anonymous even when the
// HTTP call fails; a dead server must not trap the user in a session.
func (s *SessionStore) Logout(ctx context.Context) error {
	_, err := s.client.doQuiet(ctx, http.MethodPost, "/auth/logout", nil)
	s.set(StateAnonymous, nil, "")
	return err
}

// State returns the current lifecycle state.
func (s *SessionStore) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// User returns the authenticated user, or nil.
func (s *SessionStore) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// IsAuthenticated reports whether the store holds an authenticated user.
func (s *SessionStore) IsAuthenticated() bool {
	return s.State() == StateAuthenticated
}

// LastError returns the message from the most recent failed login, or "".
func (s *SessionStore) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastError
}

// Loading reports whether a login is in flight.
func (s *SessionStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *SessionStore) set(state State, user *User, lastError string) {
	s.mu.Lock()
	s.state = state
	s.user = user
	s.lastError = lastError
	s.mu.Unlock()
}

func (s *SessionStore) setLoading(loading bool) {
	s.mu.Lock()
	s.loading = loading
	s.mu.Unlock()
}

// loginErrorMessage resolves the message shown next to the login form.
// Payload fields are tried in priority order: a string "detail", then
// "detail.message", then "detail.error", then the top-level "message",
// then the transport-resolved message.
func loginErrorMessage(err error) string {
	apiErr, ok := AsAPIError(err)
	if !ok {
		return "Unable to reach the server. Please try again."
	}

	if obj, ok := apiErr.Payload.(map[string]any); ok {
		switch detail := obj["detail"].(type) {
		case string:
			if detail != "" {
				return detail
			}
		case map[string]any:
			for _, key := range []string{"message", "error"} {
				if s, ok := detail[key].(string); ok && s != "" {
					return s
				}
			}
		}
		if s, ok := obj["message"].(string); ok && s != "" {
			return s
		}
	}
	return apiErr.Message
}
