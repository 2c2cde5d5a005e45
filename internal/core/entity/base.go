package entity

import (
	"context"
	"time"

	"hirebase/internal/core/id"
)

// Validatable is implemented by entities that support self-validation.
// Validation checks internal invariants (without database access).
type Validatable interface {
	// Validate checks entity invariants.
	// Returns nil if valid, AppError with details otherwise.
	Validate(ctx context.Context) error
}

// Record contains common fields for all server-managed resources.
// The id is assigned once and never changes; every other field is
// server-authoritative after a mutation.
type Record struct {
	// ID is the primary key (UUIDv7)
	ID id.ID `db:"id" json:"id"`

	// Version for optimistic locking (incremented on each update)
	Version int `db:"version" json:"version"`

	// Audit timestamps
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// NewRecord creates a Record with a generated ID and current timestamps.
func NewRecord() Record {
	now := time.Now().UTC()
	return Record{
		ID:        id.New(),
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch updates UpdatedAt and increments the version.
func (r *Record) Touch() {
	r.UpdatedAt = time.Now().UTC()
	r.Version++
}

// SetVersion updates the version number (used by repository after sync).
func (r *Record) SetVersion(v int) {
	r.Version = v
}
