// Package blacklist provides the do-not-hire list. Entries match incoming
// applications by email or national id and block candidate creation.
package blacklist

import (
	"context"
	"strings"
	"time"

	"hirebase/internal/core/apperror"
	"hirebase/internal/core/entity"
)

// IdentifierKind defines what an entry matches against.
type IdentifierKind string

const (
	KindEmail      IdentifierKind = "email"
	KindNationalID IdentifierKind = "national_id"
)

// Entry is one blacklist record.
type Entry struct {
	entity.Record

	Kind       IdentifierKind `db:"kind" json:"kind"`
	Identifier string         `db:"identifier" json:"identifier"`
	Reason     string         `db:"reason" json:"reason,omitempty"`

	// ExpiresAt nil means the entry never lapses.
	ExpiresAt *time.Time `db:"expires_at" json:"expires_at,omitempty"`
}

// New creates a blacklist entry with a normalized identifier.
func New(kind IdentifierKind, identifier, reason string) *Entry {
	return &Entry{
		Record:     entity.NewRecord(),
		Kind:       kind,
		Identifier: Normalize(identifier),
		Reason:     reason,
	}
}

// Validate implements entity.Validatable.
func (e *Entry) Validate(ctx context.Context) error {
	switch e.Kind {
	case KindEmail, KindNationalID:
	default:
		return apperror.NewValidation("invalid identifier kind").
			WithDetail("field", "kind").
			WithDetail("value", string(e.Kind))
	}
	if e.Identifier == "" {
		return apperror.NewValidation("identifier is required").WithDetail("field", "identifier")
	}
	return nil
}

// InEffect reports whether the entry still blocks applications at t.
func (e *Entry) InEffect(t time.Time) bool {
	return e.ExpiresAt == nil || t.Before(*e.ExpiresAt)
}

// Normalize canonicalizes an identifier for matching: lowercase, trimmed,
// internal whitespace removed.
func Normalize(identifier string) string {
	s := strings.ToLower(strings.TrimSpace(identifier))
	return strings.Join(strings.Fields(s), "")
}
