// Package link provides recruitment links: shareable tokens that open a
// public application form for a campaign. Links can be expired, revoked
// and re-activated from the back office.
package link

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"hirebase/internal/core/apperror"
	"hirebase/internal/core/entity"
	"hirebase/internal/core/id"
)

// Status defines the link lifecycle state.
type Status string

const (
	StatusActive  Status = "active"
	StatusExpired Status = "expired"
	StatusRevoked Status = "revoked"
)

// Action names the RPC-style status transitions exposed by the API.
type Action string

const (
	ActionExpire   Action = "expire"
	ActionRevoke   Action = "revoke"
	ActionActivate Action = "activate"
)

// Link represents a recruitment link.
type Link struct {
	entity.Record

	CampaignID id.ID  `db:"campaign_id" json:"campaign_id"`
	Token      string `db:"token" json:"token"`
	Name       string `db:"name" json:"name"`
	Status     Status `db:"status" json:"status"`

	// MaxUses zero means unlimited.
	MaxUses  int `db:"max_uses" json:"max_uses"`
	UseCount int `db:"use_count" json:"use_count"`

	// ExpiresAt nil means no time limit.
	ExpiresAt *time.Time `db:"expires_at" json:"expires_at,omitempty"`
}

// New creates an active link for a campaign with a fresh token.
func New(campaignID id.ID, name string) *Link {
	return &Link{
		Record:     entity.NewRecord(),
		CampaignID: campaignID,
		Token:      newToken(),
		Name:       name,
		Status:     StatusActive,
	}
}

// Validate implements entity.Validatable.
func (l *Link) Validate(ctx context.Context) error {
	if id.IsNil(l.CampaignID) {
		return apperror.NewValidation("campaign_id is required").WithDetail("field", "campaign_id")
	}
	if l.Name == "" {
		return apperror.NewValidation("name is required").WithDetail("field", "name")
	}
	switch l.Status {
	case StatusActive, StatusExpired, StatusRevoked:
	default:
		return apperror.NewValidation("invalid link status").
			WithDetail("field", "status").
			WithDetail("value", string(l.Status))
	}
	if l.MaxUses < 0 {
		return apperror.NewValidation("max_uses must not be negative").WithDetail("field", "max_uses")
	}
	return nil
}

// Apply performs a status transition. Revocation is terminal; activate only
// brings back expired links.
func (l *Link) Apply(action Action) error {
	switch action {
	case ActionExpire:
		if l.Status != StatusActive {
			return apperror.NewInvalidTransition("link", string(l.Status), string(StatusExpired))
		}
		l.Status = StatusExpired
	case ActionRevoke:
		if l.Status == StatusRevoked {
			return apperror.NewInvalidTransition("link", string(l.Status), string(StatusRevoked))
		}
		l.Status = StatusRevoked
	case ActionActivate:
		if l.Status != StatusExpired {
			return apperror.NewInvalidTransition("link", string(l.Status), string(StatusActive))
		}
		l.Status = StatusActive
	default:
		return apperror.NewValidation("unknown link action").WithDetail("action", string(action))
	}
	return nil
}

// Usable reports whether the link accepts applications at t,
// accounting for status, time expiry and use budget.
func (l *Link) Usable(t time.Time) error {
	if l.Status != StatusActive {
		return apperror.NewBusinessRule(apperror.CodeIntakeClosed, "link is not active")
	}
	if l.ExpiresAt != nil && t.After(*l.ExpiresAt) {
		return apperror.NewBusinessRule(apperror.CodeIntakeClosed, "link has expired")
	}
	if l.MaxUses > 0 && l.UseCount >= l.MaxUses {
		return apperror.NewBusinessRule(apperror.CodeLinkExhausted, "link has no remaining uses")
	}
	return nil
}

// RegisterUse counts one submission against the link budget.
func (l *Link) RegisterUse() {
	l.UseCount++
}

// newToken returns a 32-hex-char URL-safe token.
func newToken() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failures are not recoverable here
		panic(err)
	}
	return hex.EncodeToString(b)
}
