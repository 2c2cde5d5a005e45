package dto

import (
	"hirebase/internal/core/apperror"
	"hirebase/internal/core/id"
	"hirebase/internal/domain/candidate"
)

// CreateCandidateRequest creates a candidate manually (back-office entry,
// as opposed to public intake).
type CreateCandidateRequest struct {
	CampaignID string `json:"campaign_id" binding:"required"`
	FirstName  string `json:"first_name" binding:"required"`
	LastName   string `json:"last_name" binding:"required"`
	Email      string `json:"email" binding:"required"`
	Phone      string `json:"phone,omitempty"`
	NationalID string `json:"national_id,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// ToCandidate maps the request to a new candidate at the applied stage.
func (r CreateCandidateRequest) ToCandidate() (*candidate.Candidate, error) {
	campaignID, err := id.Parse(r.CampaignID)
	if err != nil {
		return nil, apperror.NewValidation("invalid campaign_id").WithDetail("field", "campaign_id")
	}
	c := candidate.New(campaignID, r.Email)
	c.FirstName = r.FirstName
	c.LastName = r.LastName
	c.Phone = r.Phone
	c.NationalID = r.NationalID
	c.Notes = r.Notes
	return c, nil
}

// UpdateCandidateRequest replaces mutable candidate fields. Stage changes
// go through the stage endpoint.
type UpdateCandidateRequest struct {
	FirstName  string                   `json:"first_name" binding:"required"`
	LastName   string                   `json:"last_name" binding:"required"`
	Phone      string                   `json:"phone,omitempty"`
	NationalID string                   `json:"national_id,omitempty"`
	Notes      string                   `json:"notes,omitempty"`
	Documents  candidate.Documents      `json:"documents,omitempty"`
	Process    candidate.Process        `json:"process,omitempty"`
	Contract   *candidate.ContractTerms `json:"contract,omitempty"`
}

// Apply maps the request onto an existing candidate.
func (r UpdateCandidateRequest) Apply(c *candidate.Candidate) *candidate.Candidate {
	c.FirstName = r.FirstName
	c.LastName = r.LastName
	c.Phone = r.Phone
	c.NationalID = r.NationalID
	c.Notes = r.Notes
	c.Documents = r.Documents
	c.Process = r.Process
	c.Contract = r.Contract
	return c
}

// StageRequest moves a candidate to a new stage.
type StageRequest struct {
	Stage candidate.Stage `json:"stage" binding:"required"`
}

// ReceiveDocumentRequest marks a checklist document as received.
type ReceiveDocumentRequest struct {
	Name string `json:"name" binding:"required"`
}
