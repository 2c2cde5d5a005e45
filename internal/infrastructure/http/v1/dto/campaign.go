package dto

import (
	"time"

	"hirebase/internal/domain/campaign"
	"hirebase/internal/domain/screening"
)

// CreateCampaignRequest creates a campaign.
type CreateCampaignRequest struct {
	Name           string           `json:"name" binding:"required"`
	Description    string           `json:"description,omitempty"`
	StartDate      *time.Time       `json:"start_date,omitempty"`
	EndDate        *time.Time       `json:"end_date,omitempty"`
	ScreeningRules []screening.Rule `json:"screening_rules,omitempty"`
}

// ToCampaign maps the request to a new draft campaign.
func (r CreateCampaignRequest) ToCampaign() *campaign.Campaign {
	c := campaign.New(r.Name)
	c.Description = r.Description
	c.StartDate = r.StartDate
	c.EndDate = r.EndDate
	c.ScreeningRules = r.ScreeningRules
	return c
}

// UpdateCampaignRequest replaces campaign fields.
type UpdateCampaignRequest struct {
	Name           string           `json:"name" binding:"required"`
	Description    string           `json:"description,omitempty"`
	Status         campaign.Status  `json:"status" binding:"required"`
	StartDate      *time.Time       `json:"start_date,omitempty"`
	EndDate        *time.Time       `json:"end_date,omitempty"`
	ScreeningRules []screening.Rule `json:"screening_rules,omitempty"`
}

// Apply maps the request onto an existing campaign.
func (r UpdateCampaignRequest) Apply(c *campaign.Campaign) *campaign.Campaign {
	c.Name = r.Name
	c.Description = r.Description
	c.Status = r.Status
	c.StartDate = r.StartDate
	c.EndDate = r.EndDate
	c.ScreeningRules = r.ScreeningRules
	return c
}
