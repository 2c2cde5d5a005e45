package dto

import (
	"time"

	"hirebase/internal/core/apperror"
	"hirebase/internal/core/id"
	"hirebase/internal/domain/convocatoria"
)

// CreateConvocatoriaRequest schedules a convocatoria.
type CreateConvocatoriaRequest struct {
	CampaignID string    `json:"campaign_id" binding:"required"`
	Title      string    `json:"title" binding:"required"`
	Body       string    `json:"body,omitempty"`
	OpensAt    time.Time `json:"opens_at" binding:"required"`
	ClosesAt   time.Time `json:"closes_at" binding:"required"`
	Seats      int       `json:"seats,omitempty"`
}

// ToConvocatoria maps the request to a new scheduled convocatoria.
func (r CreateConvocatoriaRequest) ToConvocatoria() (*convocatoria.Convocatoria, error) {
	campaignID, err := id.Parse(r.CampaignID)
	if err != nil {
		return nil, apperror.NewValidation("invalid campaign_id").WithDetail("field", "campaign_id")
	}
	c := convocatoria.New(campaignID, r.Title, r.OpensAt, r.ClosesAt)
	c.Body = r.Body
	c.Seats = r.Seats
	return c, nil
}

// UpdateConvocatoriaRequest replaces convocatoria fields.
type UpdateConvocatoriaRequest struct {
	Title    string    `json:"title" binding:"required"`
	Body     string    `json:"body,omitempty"`
	OpensAt  time.Time `json:"opens_at" binding:"required"`
	ClosesAt time.Time `json:"closes_at" binding:"required"`
	Seats    int       `json:"seats,omitempty"`
}

// Apply maps the request onto an existing convocatoria.
func (r UpdateConvocatoriaRequest) Apply(c *convocatoria.Convocatoria) *convocatoria.Convocatoria {
	c.Title = r.Title
	c.Body = r.Body
	c.OpensAt = r.OpensAt
	c.ClosesAt = r.ClosesAt
	c.Seats = r.Seats
	return c
}

// PublicConvocatoriaResponse is the shape served on the public form page.
// It hides internal fields and exposes only what an applicant needs.
type PublicConvocatoriaResponse struct {
	Token          string    `json:"token"`
	Title          string    `json:"title"`
	Body           string    `json:"body,omitempty"`
	Status         string    `json:"status"`
	OpensAt        time.Time `json:"opens_at"`
	ClosesAt       time.Time `json:"closes_at"`
	SeatsRemaining *int      `json:"seats_remaining,omitempty"`
}

// FromConvocatoria maps a convocatoria to its public shape.
func FromConvocatoria(c *convocatoria.Convocatoria) PublicConvocatoriaResponse {
	resp := PublicConvocatoriaResponse{
		Token:    c.Token,
		Title:    c.Title,
		Body:     c.Body,
		Status:   string(c.Status),
		OpensAt:  c.OpensAt,
		ClosesAt: c.ClosesAt,
	}
	if c.Seats > 0 {
		remaining := c.Seats - c.SeatsFilled
		if remaining < 0 {
			remaining = 0
		}
		resp.SeatsRemaining = &remaining
	}
	return resp
}
