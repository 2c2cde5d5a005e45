package dto

import (
	"time"

	"hirebase/internal/domain/blacklist"
)

// CreateBlacklistEntryRequest adds a do-not-hire entry.
type CreateBlacklistEntryRequest struct {
	Kind       blacklist.IdentifierKind `json:"kind" binding:"required"`
	Identifier string                   `json:"identifier" binding:"required"`
	Reason     string                   `json:"reason,omitempty"`
	ExpiresAt  *time.Time               `json:"expires_at,omitempty"`
}

// ToEntry maps the request to a new entry.
func (r CreateBlacklistEntryRequest) ToEntry() *blacklist.Entry {
	e := blacklist.New(r.Kind, r.Identifier, r.Reason)
	e.ExpiresAt = r.ExpiresAt
	return e
}

// UpdateBlacklistEntryRequest replaces entry fields.
type UpdateBlacklistEntryRequest struct {
	Kind       blacklist.IdentifierKind `json:"kind" binding:"required"`
	Identifier string                   `json:"identifier" binding:"required"`
	Reason     string                   `json:"reason,omitempty"`
	ExpiresAt  *time.Time               `json:"expires_at,omitempty"`
}

// Apply maps the request onto an existing entry.
func (r UpdateBlacklistEntryRequest) Apply(e *blacklist.Entry) *blacklist.Entry {
	e.Kind = r.Kind
	e.Identifier = r.Identifier
	e.Reason = r.Reason
	e.ExpiresAt = r.ExpiresAt
	return e
}
