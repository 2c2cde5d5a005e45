// Package campaign provides the recruitment campaign resource.
// A campaign groups recruitment links, convocatorias and candidates for
// one hiring effort.
package campaign

import (
	"context"
	"time"

	"hirebase/internal/core/apperror"
	"hirebase/internal/core/entity"
	"hirebase/internal/domain/screening"
)

// Status defines the campaign lifecycle state.
type Status string

const (
	StatusDraft  Status = "draft"
	StatusActive Status = "active"
	StatusClosed Status = "closed"
)

// Campaign represents a hiring campaign.
type Campaign struct {
	entity.Record

	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description,omitempty"`
	Status      Status `db:"status" json:"status"`

	// Hiring window. EndDate nil means open-ended.
	StartDate *time.Time `db:"start_date" json:"start_date,omitempty"`
	EndDate   *time.Time `db:"end_date" json:"end_date,omitempty"`

	// ScreeningRules are evaluated against public applications
	// before a candidate record is created. Stored as JSONB.
	ScreeningRules Rules `db:"screening_rules" json:"screening_rules,omitempty"`
}

// Rules is the JSONB-backed rule list.
type Rules []screening.Rule

// New creates a draft campaign.
func New(name string) *Campaign {
	return &Campaign{
		Record: entity.NewRecord(),
		Name:   name,
		Status: StatusDraft,
	}
}

// Validate implements entity.Validatable.
func (c *Campaign) Validate(ctx context.Context) error {
	if c.Name == "" {
		return apperror.NewValidation("name is required").WithDetail("field", "name")
	}
	switch c.Status {
	case StatusDraft, StatusActive, StatusClosed:
	default:
		return apperror.NewValidation("invalid campaign status").
			WithDetail("field", "status").
			WithDetail("value", string(c.Status))
	}
	if c.StartDate != nil && c.EndDate != nil && c.EndDate.Before(*c.StartDate) {
		return apperror.NewValidation("end_date must not precede start_date").
			WithDetail("field", "end_date")
	}
	return nil
}

// IsActive reports whether the campaign accepts applications at t.
func (c *Campaign) IsActive(t time.Time) bool {
	if c.Status != StatusActive {
		return false
	}
	if c.StartDate != nil && t.Before(*c.StartDate) {
		return false
	}
	if c.EndDate != nil && t.After(*c.EndDate) {
		return false
	}
	return true
}
