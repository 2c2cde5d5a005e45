package client

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Campaign mirrors the campaign resource.
type Campaign struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Description    string     `json:"description,omitempty"`
	Status         string     `json:"status"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	EndDate        *time.Time `json:"end_date,omitempty"`
	ScreeningRules []Rule     `json:"screening_rules,omitempty"`
	Version        int        `json:"version"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Rule is one screening rule on a campaign.
type Rule struct {
	Name       string `json:"name"`
	Expression string `json:"expression"`
	Action     string `json:"action"`
}

// Link mirrors the recruitment link resource.
type Link struct {
	ID         string     `json:"id"`
	CampaignID string     `json:"campaign_id"`
	Token      string     `json:"token"`
	Name       string     `json:"name"`
	Status     string     `json:"status"`
	MaxUses    int        `json:"max_uses"`
	UseCount   int        `json:"use_count"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	Version    int        `json:"version"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Document is a candidate checklist entry.
type Document struct {
	Name       string     `json:"name"`
	Required   bool       `json:"required"`
	Received   bool       `json:"received"`
	ReceivedAt *time.Time `json:"received_at,omitempty"`
}

// ProcessStep is one onboarding step.
type ProcessStep struct {
	Name        string     `json:"name"`
	Done        bool       `json:"done"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Notes       string     `json:"notes,omitempty"`
}

// ContractTerms holds the agreed offer terms.
type ContractTerms struct {
	Position     string          `json:"position"`
	Salary       decimal.Decimal `json:"salary"`
	Currency     string          `json:"currency"`
	StartDate    *time.Time      `json:"start_date,omitempty"`
	WeeklyHours  int             `json:"weekly_hours,omitempty"`
	ContractType string          `json:"contract_type,omitempty"`
}

// Candidate mirrors the candidate resource.
type Candidate struct {
	ID          string         `json:"id"`
	CampaignID  string         `json:"campaign_id"`
	LinkID      *string        `json:"link_id,omitempty"`
	FirstName   string         `json:"first_name"`
	LastName    string         `json:"last_name"`
	Email       string         `json:"email"`
	Phone       string         `json:"phone,omitempty"`
	NationalID  string         `json:"national_id,omitempty"`
	Stage       string         `json:"stage"`
	Flagged     bool           `json:"flagged"`
	FlagReasons []string       `json:"flag_reasons,omitempty"`
	Notes       string         `json:"notes,omitempty"`
	Documents   []Document     `json:"documents,omitempty"`
	Process     []ProcessStep  `json:"process,omitempty"`
	Contract    *ContractTerms `json:"contract,omitempty"`
	Version     int            `json:"version"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// BlacklistEntry mirrors the blacklist resource.
type BlacklistEntry struct {
	ID         string     `json:"id"`
	Kind       string     `json:"kind"`
	Identifier string     `json:"identifier"`
	Reason     string     `json:"reason,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	Version    int        `json:"version"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Convocatoria mirrors the convocatoria resource.
type Convocatoria struct {
	ID          string    `json:"id"`
	CampaignID  string    `json:"campaign_id"`
	Token       string    `json:"token"`
	Title       string    `json:"title"`
	Body        string    `json:"body,omitempty"`
	Status      string    `json:"status"`
	OpensAt     time.Time `json:"opens_at"`
	ClosesAt    time.Time `json:"closes_at"`
	Seats       int       `json:"seats"`
	SeatsFilled int       `json:"seats_filled"`
	Version     int       `json:"version"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Campaigns is the campaign collection.
type Campaigns struct {
	*Collection[Campaign]
}

// NewCampaigns creates the campaign collection.
func NewCampaigns(c *Client) *Campaigns {
	return &Campaigns{
		Collection: NewCollection(c, "/v1/campaigns", func(c Campaign) string { return c.ID }),
	}
}

// Links is the recruitment link collection with its status actions.
type Links struct {
	*Collection[Link]
}

// NewLinks creates the link collection.
func NewLinks(c *Client) *Links {
	return &Links{
		Collection: NewCollection(c, "/v1/links", func(l Link) string { return l.ID }),
	}
}

// Expire moves an active link to expired.
func (l *Links) Expire(ctx context.Context, id string) (Link, error) {
	return l.Action(ctx, id, "expire", nil)
}

// Revoke permanently disables a link.
func (l *Links) Revoke(ctx context.Context, id string) (Link, error) {
	return l.Action(ctx, id, "revoke", nil)
}

// Activate brings an expired link back.
func (l *Links) Activate(ctx context.Context, id string) (Link, error) {
	return l.Action(ctx, id, "activate", nil)
}

// Candidates is the candidate collection with pipeline actions.
type Candidates struct {
	*Collection[Candidate]
}

// NewCandidates creates the candidate collection.
func NewCandidates(c *Client) *Candidates {
	return &Candidates{
		Collection: NewCollection(c, "/v1/candidates", func(c Candidate) string { return c.ID }),
	}
}

// MoveStage advances a candidate in the pipeline.
func (c *Candidates) MoveStage(ctx context.Context, id, stage string) (Candidate, error) {
	return c.Action(ctx, id, "stage", map[string]string{"stage": stage})
}

// ReceiveDocument marks a checklist document as received.
func (c *Candidates) ReceiveDocument(ctx context.Context, id, name string) (Candidate, error) {
	return c.Action(ctx, id, "documents/receive", map[string]string{"name": name})
}

// Blacklist is the blacklist collection.
type Blacklist struct {
	*Collection[BlacklistEntry]
}

// NewBlacklist creates the blacklist collection.
func NewBlacklist(c *Client) *Blacklist {
	return &Blacklist{
		Collection: NewCollection(c, "/v1/blacklist", func(e BlacklistEntry) string { return e.ID }),
	}
}

// Convocatorias is the convocatoria collection.
type Convocatorias struct {
	*Collection[Convocatoria]
}

// NewConvocatorias creates the convocatoria collection.
func NewConvocatorias(c *Client) *Convocatorias {
	return &Convocatorias{
		Collection: NewCollection(c, "/v1/convocatorias", func(c Convocatoria) string { return c.ID }),
	}
}

// Close closes a convocatoria ahead of its window.
func (c *Convocatorias) Close(ctx context.Context, id string) (Convocatoria, error) {
	return c.Action(ctx, id, "close", nil)
}
