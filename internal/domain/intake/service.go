// Package intake handles public application submissions. It resolves the
// entry point (recruitment link or convocatoria), enforces the campaign
// window, blacklist and duplicate rules, runs screening and creates the
// candidate record, all in one transaction.
package intake

import (
	"context"
	"fmt"
	"time"

	"hirebase/internal/core/apperror"
	"hirebase/internal/core/id"
	"hirebase/internal/core/tx"
	"hirebase/internal/domain/blacklist"
	"hirebase/internal/domain/campaign"
	"hirebase/internal/domain/candidate"
	"hirebase/internal/domain/convocatoria"
	"hirebase/internal/domain/link"
	"hirebase/internal/domain/screening"
	"hirebase/pkg/logger"
)

// Application is a public form submission.
type Application struct {
	// Exactly one of LinkToken or ConvocatoriaToken identifies the entry point.
	LinkToken         string `json:"link_token,omitempty"`
	ConvocatoriaToken string `json:"convocatoria_token,omitempty"`

	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	NationalID string `json:"national_id,omitempty"`

	// Answers carries any extra form fields.
	Answers map[string]any `json:"answers,omitempty"`
}

// Validate checks the submission shape before any lookups.
func (a Application) Validate() error {
	fields := make(map[string][]string)
	if a.LinkToken == "" && a.ConvocatoriaToken == "" {
		fields["link_token"] = append(fields["link_token"], "link_token or convocatoria_token is required")
	}
	if a.LinkToken != "" && a.ConvocatoriaToken != "" {
		fields["link_token"] = append(fields["link_token"], "provide only one of link_token and convocatoria_token")
	}
	if a.Email == "" {
		fields["email"] = append(fields["email"], "email is required")
	}
	if a.FirstName == "" {
		fields["first_name"] = append(fields["first_name"], "first_name is required")
	}
	if a.LastName == "" {
		fields["last_name"] = append(fields["last_name"], "last_name is required")
	}
	if len(fields) > 0 {
		return apperror.NewFieldErrors(fields)
	}
	return nil
}

// Result is what the public endpoint returns for an accepted submission.
type Result struct {
	CandidateID id.ID  `json:"candidate_id"`
	CampaignID  id.ID  `json:"campaign_id"`
	Flagged     bool   `json:"-"`
	Message     string `json:"message"`
}

// Service wires the intake pipeline.
type Service struct {
	campaigns     *campaign.Service
	links         *link.Service
	convocatorias *convocatoria.Service
	candidates    *candidate.Service
	blacklist     *blacklist.Service
	engine        *screening.Engine
	txManager     tx.Manager
}

// NewService creates a new intake service.
func NewService(
	campaigns *campaign.Service,
	links *link.Service,
	convocatorias *convocatoria.Service,
	candidates *candidate.Service,
	blacklistSvc *blacklist.Service,
	engine *screening.Engine,
	txManager tx.Manager,
) *Service {
	return &Service{
		campaigns:     campaigns,
		links:         links,
		convocatorias: convocatorias,
		candidates:    candidates,
		blacklist:     blacklistSvc,
		engine:        engine,
		txManager:     txManager,
	}
}

// Submit processes a public application.
func (s *Service) Submit(ctx context.Context, app Application) (*Result, error) {
	if err := app.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()

	var (
		l *link.Link
		c *convocatoria.Convocatoria
	)
	var campaignID id.ID

	if app.LinkToken != "" {
		var err error
		l, err = s.links.GetByToken(ctx, app.LinkToken)
		if err != nil {
			return nil, err
		}
		if err := l.Usable(now); err != nil {
			return nil, err
		}
		campaignID = l.CampaignID
	} else {
		var err error
		c, err = s.convocatorias.GetByToken(ctx, app.ConvocatoriaToken)
		if err != nil {
			return nil, err
		}
		if err := c.AcceptsApplications(now); err != nil {
			return nil, err
		}
		campaignID = c.CampaignID
	}

	camp, err := s.campaigns.GetByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if !camp.IsActive(now) {
		return nil, apperror.NewBusinessRule(apperror.CodeIntakeClosed, "campaign is not accepting applications")
	}

	if err := s.blacklist.Check(ctx, app.Email, app.NationalID); err != nil {
		return nil, err
	}

	exists, err := s.candidates.ExistsByEmail(ctx, campaignID, app.Email)
	if err != nil {
		return nil, fmt.Errorf("check duplicate application: %w", err)
	}
	if exists {
		return nil, apperror.NewDuplicate("application", "email", app.Email)
	}

	outcome, err := s.engine.Evaluate(camp.ScreeningRules, app.payload())
	if err != nil {
		// Bad rules are logged, not surfaced to the applicant.
		logger.Warn(ctx, "screening rule evaluation failed",
			"campaign_id", campaignID,
			"error", err)
	}
	if outcome.Rejected {
		return nil, apperror.NewBusinessRule(apperror.CodeBusinessRule,
			"application does not meet the campaign requirements")
	}

	cand := newCandidate(campaignID, app, outcome, l)

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.candidates.Create(ctx, cand); err != nil {
			return err
		}
		if l != nil {
			if err := s.links.RegisterUse(ctx, l); err != nil {
				return fmt.Errorf("register link use: %w", err)
			}
		}
		if c != nil {
			if err := s.convocatorias.FillSeat(ctx, c); err != nil {
				return fmt.Errorf("fill convocatoria seat: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "application accepted",
		"candidate_id", cand.ID,
		"campaign_id", campaignID,
		"flagged", cand.Flagged)

	return &Result{
		CandidateID: cand.ID,
		CampaignID:  campaignID,
		Flagged:     cand.Flagged,
		Message:     "application received",
	}, nil
}

// newCandidate builds the candidate record for an accepted submission.
// Flagged applications start in screening so a recruiter reviews the
// flag reasons before the regular pipeline.
func newCandidate(campaignID id.ID, app Application, outcome screening.Outcome, l *link.Link) *candidate.Candidate {
	cand := candidate.New(campaignID, app.Email)
	cand.FirstName = app.FirstName
	cand.LastName = app.LastName
	cand.Phone = app.Phone
	cand.NationalID = app.NationalID
	cand.Flagged = outcome.Flagged
	cand.FlagReasons = outcome.Matched
	cand.Answers = app.payload()
	if outcome.Flagged {
		cand.Stage = candidate.StageScreening
	}
	if l != nil {
		linkID := l.ID
		cand.LinkID = &linkID
	}
	return cand
}

// payload builds the map screening expressions evaluate against.
func (a Application) payload() map[string]any {
	p := map[string]any{
		"first_name":  a.FirstName,
		"last_name":   a.LastName,
		"email":       a.Email,
		"phone":       a.Phone,
		"national_id": a.NationalID,
	}
	for k, v := range a.Answers {
		if _, reserved := p[k]; !reserved {
			p[k] = v
		}
	}
	return p
}
