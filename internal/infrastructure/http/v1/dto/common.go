// Package dto defines request and response shapes for the HTTP API.
package dto

// ListResponse is the paginated list envelope.
type ListResponse struct {
	Results  []any   `json:"results"`
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
}

// IDResponse returns the ID of a created resource.
type IDResponse struct {
	ID string `json:"id"`
}

// SuccessResponse is a generic acknowledgement.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
