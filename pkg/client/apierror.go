package client

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is a non-2xx response from the server, carrying the decoded
// body when one was present.
type APIError struct {
	// Status is the HTTP status code.
	Status int

	// Message is the best human-readable description extracted from the
	// body, falling back to the HTTP status text.
	Message string

	// Payload is the decoded JSON body, or nil when the body was empty
	// or not valid JSON.
	Payload any
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// AsAPIError extracts an APIError from an error chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// newAPIError builds an APIError from a status and decoded payload.
// The message is resolved in priority order: a top-level "message" string,
// a string "detail", a "detail.message" string, then the status text.
func newAPIError(status int, payload any) *APIError {
	return &APIError{
		Status:  status,
		Message: extractMessage(status, payload),
		Payload: payload,
	}
}

func extractMessage(status int, payload any) string {
	if obj, ok := payload.(map[string]any); ok {
		if msg, ok := obj["message"].(string); ok && msg != "" {
			return msg
		}
		switch detail := obj["detail"].(type) {
		case string:
			if detail != "" {
				return detail
			}
		case map[string]any:
			if msg, ok := detail["message"].(string); ok && msg != "" {
				return msg
			}
		}
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return fmt.Sprintf("HTTP %d", status)
}
