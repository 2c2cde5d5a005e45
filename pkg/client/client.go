// Package client is the Go SDK for the hirebase API. It wraps the HTTP
// transport with the error-propagation rules the admin frontends share:
// a 401 hands control to the unauthorized handler (a browser UI redirects
// to the login page with the interrupted location in ?next=), a 403
// publishes a fixed permission notification, and any other failure
// publishes the friendliest message the response body offers. Errors are
// still returned to the caller after notification.
package client

import (
	"context"
	"net/url"
	"sort"
	"time"

	"hirebase/pkg/notify"
)

// ForbiddenMessage is the fixed notification for 403 responses.
const ForbiddenMessage = "You do not have permission to perform this action."

// UnauthorizedHandler is invoked on 401 responses with the login URL to
// send the user to, including the encoded return location.
type UnauthorizedHandler func(loginURL string)

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the HTTP timeout (default 30s).
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) { c.timeout = timeout }
}

// WithBus sets the notification bus (default: a fresh bus).
func WithBus(bus *notify.Bus) Option {
	return func(c *Client) { c.bus = bus }
}

// WithUnauthorizedHandler sets the 401 handler.
func WithUnauthorizedHandler(h UnauthorizedHandler) Option {
	return func(c *Client) { c.onUnauthorized = h }
}

// WithLoginPath overrides the login page path (default "/login").
func WithLoginPath(path string) Option {
	return func(c *Client) { c.loginPath = path }
}

// Client is the API client.
type Client struct {
	transport *Transport
	bus       *notify.Bus
	timeout   time.Duration
	loginPath string

	onUnauthorized UnauthorizedHandler

	// onSessionInvalid clears local session state when any call comes
	// back 401. Set by the SessionStore bound to this client.
	onSessionInvalid func()
}

// New creates a client for the given API base URL.
func New(baseURL string, opts ...Option) (*Client, error) {
	c := &Client{
		timeout:   30 * time.Second,
		loginPath: "/login",
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.bus == nil {
		c.bus = notify.NewBus()
	}

	transport, err := NewTransport(baseURL, c.timeout)
	if err != nil {
		return nil, err
	}
	c.transport = transport
	return c, nil
}

// Bus returns the notification bus.
func (c *Client) Bus() *notify.Bus {
	return c.bus
}

// SetBearer sets a bearer token for non-browser clients.
func (c *Client) SetBearer(token string) {
	c.transport.SetBearer(token)
}

// Cookie returns the value of a stored cookie for the API host, or "".
// Non-browser clients use it to lift the session token out of the jar
// after login, so a later process can authenticate with SetBearer.
func (c *Client) Cookie(name string) string {
	return c.transport.Cookie(name)
}

// do performs a request and applies the shared error policy. The request
// path doubles as the return location encoded into the login URL on 401.
func (c *Client) do(ctx context.Context, method, path string, body any, query url.Values) (*Response, error) {
	resp, err := c.transport.Do(ctx, method, path, body, query)
	if err == nil {
		return resp, nil
	}

	apiErr, ok := AsAPIError(err)
	if !ok {
		// Transport-level failure (network, timeout)
		c.bus.Error("Unable to reach the server. Please try again.")
		return resp, err
	}

	switch apiErr.Status {
	case 401:
		// The server no longer recognizes the session. Local session
		// state drops first so nothing renders as authenticated while
		// the handler redirects.
		if c.onSessionInvalid != nil {
			c.onSessionInvalid()
		}
		if c.onUnauthorized != nil {
			c.onUnauthorized(c.LoginURL(path))
		}
	case 403:
		c.bus.Error(ForbiddenMessage)
	default:
		c.bus.Error(FriendlyMessage(apiErr))
	}

	return resp, err
}

// doQuiet performs a request without the notification policy. Session
// operations use it: login failures render inline, not as toasts.
func (c *Client) doQuiet(ctx context.Context, method, path string, body any) (*Response, error) {
	return c.transport.Do(ctx, method, path, body, nil)
}

// LoginURL builds the login page URL with the return location in ?next=.
func (c *Client) LoginURL(next string) string {
	return c.loginPath + "?next=" + url.QueryEscape(next)
}

// FriendlyMessage extracts the most useful human-readable message from an
// API error. A payload that is an array yields its first string; an object
// yields the first string found among its flattened values (message-like
// keys first, then alphabetically, recursing into nested arrays and
// objects), so a validation dict like {"field": ["bad value"]} surfaces
// the field message. Anything else falls back to the error's resolved
// message.
func FriendlyMessage(apiErr *APIError) string {
	switch payload := apiErr.Payload.(type) {
	case []any:
		if s := firstString(payload); s != "" {
			return s
		}
	case map[string]any:
		for _, key := range []string{"message", "detail", "error"} {
			if s := firstString(payload[key]); s != "" {
				return s
			}
		}
		if s := firstString(payload); s != "" {
			return s
		}
	}
	if apiErr.Message != "" {
		return apiErr.Message
	}
	return "Request failed"
}

// firstString walks a decoded JSON value depth-first and returns the
// first non-empty string. Object keys are visited in sorted order so the
// result is deterministic.
func firstString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case []any:
		for _, item := range val {
			if s := firstString(item); s != "" {
				return s
			}
		}
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if s := firstString(val[k]); s != "" {
				return s
			}
		}
	}
	return ""
}
