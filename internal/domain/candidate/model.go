// Package candidate provides the candidate resource: an applicant moving
// through the recruitment pipeline, with their document checklist,
// onboarding process and contract terms.
package candidate

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"hirebase/internal/core/apperror"
	"hirebase/internal/core/entity"
	"hirebase/internal/core/id"
)

// Stage defines where the candidate is in the pipeline.
type Stage string

const (
	StageApplied   Stage = "applied"
	StageScreening Stage = "screening"
	StageInterview Stage = "interview"
	StageOffer     Stage = "offer"
	StageHired     Stage = "hired"
	StageRejected  Stage = "rejected"
)

// stageTransitions lists the allowed forward moves. Rejected is reachable
// from any non-terminal stage; hired and rejected are terminal.
var stageTransitions = map[Stage][]Stage{
	StageApplied:   {StageScreening, StageRejected},
	StageScreening: {StageInterview, StageRejected},
	StageInterview: {StageOffer, StageRejected},
	StageOffer:     {StageHired, StageRejected},
}

// Document is one entry in the candidate's document checklist.
type Document struct {
	Name       string     `json:"name"`
	Required   bool       `json:"required"`
	Received   bool       `json:"received"`
	ReceivedAt *time.Time `json:"received_at,omitempty"`
}

// Documents is the JSONB-backed checklist.
type Documents []Document

// Complete reports whether every required document has been received.
func (d Documents) Complete() bool {
	for _, doc := range d {
		if doc.Required && !doc.Received {
			return false
		}
	}
	return true
}

// ProcessStep is one step of the onboarding process.
type ProcessStep struct {
	Name        string     `json:"name"`
	Done        bool       `json:"done"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Notes       string     `json:"notes,omitempty"`
}

// Process is the JSONB-backed onboarding step list.
type Process []ProcessStep

// ContractTerms holds the agreed offer terms. Stored as JSONB.
type ContractTerms struct {
	Position     string          `json:"position"`
	Salary       decimal.Decimal `json:"salary"`
	Currency     string          `json:"currency"`
	StartDate    *time.Time      `json:"start_date,omitempty"`
	WeeklyHours  int             `json:"weekly_hours,omitempty"`
	ContractType string          `json:"contract_type,omitempty"`
}

// Candidate represents an applicant in a campaign.
type Candidate struct {
	entity.Record

	CampaignID id.ID  `db:"campaign_id" json:"campaign_id"`
	LinkID     *id.ID `db:"link_id" json:"link_id,omitempty"`

	FirstName  string `db:"first_name" json:"first_name"`
	LastName   string `db:"last_name" json:"last_name"`
	Email      string `db:"email" json:"email"`
	Phone      string `db:"phone" json:"phone,omitempty"`
	NationalID string `db:"national_id" json:"national_id,omitempty"`

	Stage Stage `db:"stage" json:"stage"`

	// Flagged is set when a screening rule matched at intake.
	Flagged     bool   `db:"flagged" json:"flagged"`
	FlagReasons Flags  `db:"flag_reasons" json:"flag_reasons,omitempty"`
	Notes       string `db:"notes" json:"notes,omitempty"`

	Documents Documents      `db:"documents" json:"documents,omitempty"`
	Process   Process        `db:"process" json:"process,omitempty"`
	Contract  *ContractTerms `db:"contract" json:"contract,omitempty"`

	// Answers keeps the raw intake form payload for audit and screening replay.
	Answers Answers `db:"answers" json:"answers,omitempty"`
}

// Flags is a JSONB-backed list of matched screening rule names.
type Flags []string

// Answers is the JSONB-backed intake payload.
type Answers map[string]any

// New creates a candidate at the applied stage.
func New(campaignID id.ID, email string) *Candidate {
	return &Candidate{
		Record:     entity.NewRecord(),
		CampaignID: campaignID,
		Email:      strings.ToLower(strings.TrimSpace(email)),
		Stage:      StageApplied,
	}
}

// Validate implements entity.Validatable.
func (c *Candidate) Validate(ctx context.Context) error {
	if id.IsNil(c.CampaignID) {
		return apperror.NewValidation("campaign_id is required").WithDetail("field", "campaign_id")
	}
	if c.Email == "" {
		return apperror.NewValidation("email is required").WithDetail("field", "email")
	}
	if !strings.Contains(c.Email, "@") {
		return apperror.NewValidation("email is not valid").WithDetail("field", "email")
	}
	switch c.Stage {
	case StageApplied, StageScreening, StageInterview, StageOffer, StageHired, StageRejected:
	default:
		return apperror.NewValidation("invalid candidate stage").
			WithDetail("field", "stage").
			WithDetail("value", string(c.Stage))
	}
	if c.Contract != nil {
		if err := c.Contract.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks contract terms.
func (t *ContractTerms) Validate() error {
	if t.Position == "" {
		return apperror.NewValidation("contract position is required").WithDetail("field", "contract.position")
	}
	if t.Salary.IsNegative() {
		return apperror.NewValidation("contract salary must not be negative").WithDetail("field", "contract.salary")
	}
	return nil
}

// CanMoveTo reports whether a transition to target is allowed.
func (c *Candidate) CanMoveTo(target Stage) bool {
	for _, next := range stageTransitions[c.Stage] {
		if next == target {
			return true
		}
	}
	return false
}

// MoveTo advances the candidate to the target stage.
// Moving to hired requires the required documents to be complete.
func (c *Candidate) MoveTo(target Stage) error {
	if !c.CanMoveTo(target) {
		return apperror.NewInvalidTransition("candidate", string(c.Stage), string(target))
	}
	if target == StageHired && !c.Documents.Complete() {
		return apperror.NewBusinessRule(apperror.CodeBusinessRule,
			"cannot hire with missing required documents")
	}
	c.Stage = target
	return nil
}

// FullName returns the candidate's display name.
func (c *Candidate) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// MarkDocumentReceived marks the named checklist entry as received.
func (c *Candidate) MarkDocumentReceived(name string, at time.Time) error {
	for i := range c.Documents {
		if c.Documents[i].Name == name {
			c.Documents[i].Received = true
			c.Documents[i].ReceivedAt = &at
			return nil
		}
	}
	return apperror.NewNotFound("document", name)
}
