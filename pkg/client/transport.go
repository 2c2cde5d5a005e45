package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"
)

// Response is a decoded HTTP response.
type Response struct {
	Status int

	// Raw is the response body as received.
	Raw []byte

	// Payload is the body decoded as JSON, nil when empty or not JSON.
	Payload any
}

// Transport performs HTTP requests against the API and turns non-2xx
// responses into typed APIErrors. It keeps the session cookie in a jar,
// so a login call authenticates everything that follows.
type Transport struct {
	base   *url.URL
	client *http.Client

	// bearer, when set, is sent as an Authorization header. Used by
	// non-browser clients instead of the cookie.
	bearer string
}

// NewTransport creates a transport for the given base URL
// (e.g. "http://localhost:8080/api").
func NewTransport(baseURL string, timeout time.Duration) (*Transport, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	return &Transport{
		base: base,
		client: &http.Client{
			Jar:     jar,
			Timeout: timeout,
		},
	}, nil
}

// SetBearer sets a bearer token for subsequent requests.
func (t *Transport) SetBearer(token string) {
	t.bearer = token
}

// Cookie returns the value of a stored cookie for the API host, or "".
func (t *Transport) Cookie(name string) string {
	for _, c := range t.client.Jar.Cookies(t.base) {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

// Do performs a request. body, when non-nil, is JSON-encoded. A non-2xx
// status returns an *APIError alongside the response.
func (t *Transport) Do(ctx context.Context, method, path string, body any, query url.Values) (*Response, error) {
	u := t.resolve(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if t.bearer != "" {
		req.Header.Set("Authorization", "Bearer "+t.bearer)
	}

	httpResp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	resp := &Response{
		Status: httpResp.StatusCode,
		Raw:    raw,
	}

	// Bodies are parsed opportunistically: an empty body or invalid JSON
	// (an HTML error page from a proxy, say) leaves Payload nil rather
	// than failing the call.
	if len(bytes.TrimSpace(raw)) > 0 {
		var payload any
		if err := json.Unmarshal(raw, &payload); err == nil {
			resp.Payload = payload
		}
	}

	if httpResp.StatusCode >= 400 {
		return resp, newAPIError(httpResp.StatusCode, resp.Payload)
	}
	return resp, nil
}

// Decode unmarshals the raw body into v.
func (r *Response) Decode(v any) error {
	if len(bytes.TrimSpace(r.Raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Raw, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (t *Transport) resolve(path string) *url.URL {
	u := *t.base
	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + strings.TrimPrefix(path, "/")
	return &u
}
