package dto

import (
	"time"

	"hirebase/internal/core/apperror"
	"hirebase/internal/core/id"
	"hirebase/internal/domain/link"
)

// CreateLinkRequest creates a recruitment link.
type CreateLinkRequest struct {
	CampaignID string     `json:"campaign_id" binding:"required"`
	Name       string     `json:"name" binding:"required"`
	MaxUses    int        `json:"max_uses,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
}

// ToLink maps the request to a new active link.
func (r CreateLinkRequest) ToLink() (*link.Link, error) {
	campaignID, err := id.Parse(r.CampaignID)
	if err != nil {
		return nil, apperror.NewValidation("invalid campaign_id").WithDetail("field", "campaign_id")
	}
	l := link.New(campaignID, r.Name)
	l.MaxUses = r.MaxUses
	l.ExpiresAt = r.ExpiresAt
	return l, nil
}

// UpdateLinkRequest replaces mutable link fields. Status changes go
// through the action endpoints.
type UpdateLinkRequest struct {
	Name      string     `json:"name" binding:"required"`
	MaxUses   int        `json:"max_uses,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// Apply maps the request onto an existing link.
func (r UpdateLinkRequest) Apply(l *link.Link) *link.Link {
	l.Name = r.Name
	l.MaxUses = r.MaxUses
	l.ExpiresAt = r.ExpiresAt
	return l
}

// LinkActionRequest optionally carries a reason for audit purposes.
type LinkActionRequest struct {
	Reason string `json:"reason,omitempty"`
}
