// Package convocatoria provides convocatorias: scheduled public calls for
// applications with a seat budget and an open/close window. Each
// convocatoria is published through a token URL like a recruitment link,
// but adds scheduling and capacity on top.
package convocatoria

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"hirebase/internal/core/apperror"
	"hirebase/internal/core/entity"
	"hirebase/internal/core/id"
)

// Status defines the convocatoria lifecycle state.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusOpen      Status = "open"
	StatusClosed    Status = "closed"
)

// Convocatoria represents a scheduled call for applications.
type Convocatoria struct {
	entity.Record

	CampaignID id.ID  `db:"campaign_id" json:"campaign_id"`
	Token      string `db:"token" json:"token"`
	Title      string `db:"title" json:"title"`
	Body       string `db:"body" json:"body,omitempty"`
	Status     Status `db:"status" json:"status"`

	OpensAt  time.Time `db:"opens_at" json:"opens_at"`
	ClosesAt time.Time `db:"closes_at" json:"closes_at"`

	// Seats zero means uncapped.
	Seats       int `db:"seats" json:"seats"`
	SeatsFilled int `db:"seats_filled" json:"seats_filled"`
}

// New creates a scheduled convocatoria.
func New(campaignID id.ID, title string, opensAt, closesAt time.Time) *Convocatoria {
	return &Convocatoria{
		Record:     entity.NewRecord(),
		CampaignID: campaignID,
		Token:      newToken(),
		Title:      title,
		Status:     StatusScheduled,
		OpensAt:    opensAt,
		ClosesAt:   closesAt,
	}
}

// Validate implements entity.Validatable.
func (c *Convocatoria) Validate(ctx context.Context) error {
	if id.IsNil(c.CampaignID) {
		return apperror.NewValidation("campaign_id is required").WithDetail("field", "campaign_id")
	}
	if c.Title == "" {
		return apperror.NewValidation("title is required").WithDetail("field", "title")
	}
	switch c.Status {
	case StatusScheduled, StatusOpen, StatusClosed:
	default:
		return apperror.NewValidation("invalid convocatoria status").
			WithDetail("field", "status").
			WithDetail("value", string(c.Status))
	}
	if c.ClosesAt.Before(c.OpensAt) {
		return apperror.NewValidation("closes_at must not precede opens_at").
			WithDetail("field", "closes_at")
	}
	if c.Seats < 0 {
		return apperror.NewValidation("seats must not be negative").WithDetail("field", "seats")
	}
	return nil
}

// AcceptsApplications reports whether the convocatoria can take one more
// submission at t.
func (c *Convocatoria) AcceptsApplications(t time.Time) error {
	if c.Status == StatusClosed {
		return apperror.NewBusinessRule(apperror.CodeIntakeClosed, "convocatoria is closed")
	}
	if t.Before(c.OpensAt) {
		return apperror.NewBusinessRule(apperror.CodeIntakeClosed, "convocatoria has not opened yet")
	}
	if t.After(c.ClosesAt) {
		return apperror.NewBusinessRule(apperror.CodeIntakeClosed, "convocatoria has closed")
	}
	if c.Seats > 0 && c.SeatsFilled >= c.Seats {
		return apperror.NewBusinessRule(apperror.CodeIntakeClosed, "convocatoria has no remaining seats")
	}
	return nil
}

// SyncStatus derives the status from the window and seat budget.
// Called at read time so listings reflect the clock without a scheduler.
func (c *Convocatoria) SyncStatus(t time.Time) {
	switch {
	case t.Before(c.OpensAt):
		c.Status = StatusScheduled
	case t.After(c.ClosesAt) || (c.Seats > 0 && c.SeatsFilled >= c.Seats):
		c.Status = StatusClosed
	default:
		c.Status = StatusOpen
	}
}

// FillSeat counts one accepted submission.
func (c *Convocatoria) FillSeat() {
	c.SeatsFilled++
}

func newToken() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}
