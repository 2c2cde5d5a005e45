package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hirebase/pkg/notify"
)

func newTestClient(t *testing.T, handler http.Handler, opts ...Option) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := New(server.URL, opts...)
	require.NoError(t, err)
	return c, server
}

func jsonHandler(status int, body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
}

func collectNotifications(bus *notify.Bus) *[]notify.Notification {
	var got []notify.Notification
	bus.Subscribe(func(n notify.Notification) {
		got = append(got, n)
	})
	return &got
}

func TestDo_UnauthorizedInvokesHandlerWithNextURL(t *testing.T) {
	var gotLoginURL string
	c, _ := newTestClient(t,
		jsonHandler(401, `{"code":"UNAUTHORIZED","message":"authentication required"}`),
		WithUnauthorizedHandler(func(loginURL string) { gotLoginURL = loginURL }),
	)

	_, err := c.do(context.Background(), http.MethodGet, "/v1/campaigns", nil, nil)
	require.Error(t, err)

	assert.Equal(t, "/login?next=%2Fv1%2Fcampaigns", gotLoginURL)
}

func TestDo_UnauthorizedPublishesNoNotification(t *testing.T) {
	bus := notify.NewBus()
	got := collectNotifications(bus)

	c, _ := newTestClient(t,
		jsonHandler(401, `{"message":"authentication required"}`),
		WithBus(bus),
		WithUnauthorizedHandler(func(string) {}),
	)

	_, err := c.do(context.Background(), http.MethodGet, "/v1/campaigns", nil, nil)
	require.Error(t, err)
	assert.Empty(t, *got, "401 redirects, it does not toast")
}

func TestDo_ForbiddenPublishesFixedMessage(t *testing.T) {
	bus := notify.NewBus()
	got := collectNotifications(bus)

	c, _ := newTestClient(t,
		jsonHandler(403, `{"code":"FORBIDDEN","message":"missing permission campaigns:write"}`),
		WithBus(bus),
	)

	_, err := c.do(context.Background(), http.MethodPost, "/v1/campaigns", nil, nil)
	require.Error(t, err)

	require.Len(t, *got, 1)
	assert.Equal(t, notify.SeverityError, (*got)[0].Severity)
	// The server's own message is deliberately ignored for 403s.
	assert.Equal(t, ForbiddenMessage, (*got)[0].Message)
}

func TestDo_ServerErrorPublishesFriendlyMessage(t *testing.T) {
	bus := notify.NewBus()
	got := collectNotifications(bus)

	c, _ := newTestClient(t,
		jsonHandler(422, `{"code":"BUSINESS_RULE","message":"link has no remaining uses"}`),
		WithBus(bus),
	)

	_, err := c.do(context.Background(), http.MethodPost, "/public/applications", nil, nil)
	require.Error(t, err)

	require.Len(t, *got, 1)
	assert.Equal(t, "link has no remaining uses", (*got)[0].Message)
}

func TestDo_NetworkFailurePublishesGenericMessage(t *testing.T) {
	bus := notify.NewBus()
	got := collectNotifications(bus)

	server := httptest.NewServer(jsonHandler(200, `{}`))
	server.Close() // force a connection error

	c, err := New(server.URL, WithBus(bus))
	require.NoError(t, err)

	_, err = c.do(context.Background(), http.MethodGet, "/v1/campaigns", nil, nil)
	require.Error(t, err)

	require.Len(t, *got, 1)
	assert.Equal(t, "Unable to reach the server. Please try again.", (*got)[0].Message)
}

func TestDo_ErrorStillReturnedAfterNotification(t *testing.T) {
	c, _ := newTestClient(t, jsonHandler(500, `{"message":"boom"}`))

	_, err := c.do(context.Background(), http.MethodGet, "/v1/campaigns", nil, nil)
	require.Error(t, err)

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, 500, apiErr.Status)
	assert.Equal(t, "boom", apiErr.Message)
}

func TestDo_NonJSONSuccessBody(t *testing.T) {
	// A proxy or static server can answer 200 with HTML; the body must not
	// fail the call, it just yields no payload.
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body>ok</body></html>"))
	}))

	resp, err := c.do(context.Background(), http.MethodGet, "/v1/campaigns", nil, nil)
	require.NoError(t, err)
	assert.Nil(t, resp.Payload)
	assert.Equal(t, "<html><body>ok</body></html>", string(resp.Raw))
}

func TestDo_EmptySuccessBody(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	resp, err := c.do(context.Background(), http.MethodDelete, "/v1/campaigns/1", nil, nil)
	require.NoError(t, err)
	assert.Nil(t, resp.Payload)
	assert.Empty(t, resp.Raw)
}

func TestLoginURL_EncodesNext(t *testing.T) {
	c, err := New("http://example.test/api", WithLoginPath("/signin"))
	require.NoError(t, err)

	assert.Equal(t, "/signin?next=%2Fv1%2Fcandidates%3Fstage%3Doffer",
		c.LoginURL("/v1/candidates?stage=offer"))
}

func TestFriendlyMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *APIError
		want string
	}{
		{
			name: "array of strings yields first",
			err:  &APIError{Status: 400, Payload: []any{"first problem", "second problem"}},
			want: "first problem",
		},
		{
			name: "message key wins",
			err:  &APIError{Status: 400, Payload: map[string]any{"detail": "d", "message": "m"}},
			want: "m",
		},
		{
			name: "detail before error",
			err:  &APIError{Status: 400, Payload: map[string]any{"error": "e", "detail": "d"}},
			want: "d",
		},
		{
			name: "first string value by sorted key",
			err:  &APIError{Status: 400, Payload: map[string]any{"zzz": "last", "aaa": "alpha"}},
			want: "alpha",
		},
		{
			name: "non-string values skipped",
			err:  &APIError{Status: 400, Payload: map[string]any{"count": float64(3), "name": "named"}},
			want: "named",
		},
		{
			name: "field dict yields first nested message",
			err:  &APIError{Status: 400, Message: "Bad Request", Payload: map[string]any{"field": []any{"bad value"}}},
			want: "bad value",
		},
		{
			name: "nested object flattened",
			err:  &APIError{Status: 400, Payload: map[string]any{"errors": map[string]any{"email": []any{"already taken"}}}},
			want: "already taken",
		},
		{
			name: "fallback to resolved message",
			err:  &APIError{Status: 400, Message: "Bad Request", Payload: map[string]any{"fields": []any{}}},
			want: "Bad Request",
		},
		{
			name: "last resort",
			err:  &APIError{Status: 400},
			want: "Request failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FriendlyMessage(tt.err))
		})
	}
}

func TestAPIError_MessageExtraction(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		payload any
		want    string
	}{
		{"structured message", 400, map[string]any{"message": "validation failed"}, "validation failed"},
		{"string detail", 400, map[string]any{"detail": "not found here"}, "not found here"},
		{"nested detail message", 400, map[string]any{"detail": map[string]any{"message": "nested"}}, "nested"},
		{"no payload falls back to status text", 404, nil, "Not Found"},
		{"unknown status", 599, nil, "HTTP 599"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := newAPIError(tt.status, tt.payload)
			apiErr, ok := AsAPIError(err)
			require.True(t, ok)
			assert.Equal(t, tt.want, apiErr.Message)
		})
	}
}
