package link

import (
	"context"
	"fmt"

	"hirebase/internal/core/apperror"
	"hirebase/internal/core/id"
	"hirebase/internal/core/tx"
	"hirebase/internal/domain"
	"hirebase/pkg/logger"
)

// Repository is the storage contract for links.
type Repository interface {
	domain.RecordRepository[*Link]

	// GetByToken resolves a link by its public token.
	GetByToken(ctx context.Context, token string) (*Link, error)
}

// CampaignChecker verifies that the owning campaign exists.
type CampaignChecker interface {
	Exists(ctx context.Context, campaignID id.ID) (bool, error)
}

// Service provides business logic for recruitment links.
type Service struct {
	*domain.RecordService[*Link]
	repo      Repository
	campaigns CampaignChecker
}

// NewService creates a new link service.
func NewService(repo Repository, txManager tx.Manager, campaigns CampaignChecker) *Service {
	base := domain.NewRecordService(domain.RecordServiceConfig[*Link]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "link",
	})

	svc := &Service{
		RecordService: base,
		repo:          repo,
		campaigns:     campaigns,
	}

	base.Hooks().OnBeforeCreate(svc.checkCampaign)

	return svc
}

func (s *Service) checkCampaign(ctx context.Context, l *Link) error {
	exists, err := s.campaigns.Exists(ctx, l.CampaignID)
	if err != nil {
		return fmt.Errorf("check campaign: %w", err)
	}
	if !exists {
		return apperror.NewNotFound("campaign", l.CampaignID.String())
	}
	return nil
}

// ApplyAction loads the link, performs the transition and persists the
// result. Invalid transitions surface as INVALID_STATUS_TRANSITION.
func (s *Service) ApplyAction(ctx context.Context, linkID id.ID, action Action) (*Link, error) {
	l, err := s.GetByID(ctx, linkID)
	if err != nil {
		return nil, err
	}
	if err := l.Apply(action); err != nil {
		return nil, err
	}
	if err := s.Update(ctx, l); err != nil {
		return nil, err
	}
	logger.Info(ctx, "link status changed",
		"link_id", l.ID,
		"action", string(action),
		"status", string(l.Status))
	return l, nil
}

// GetByToken resolves a link for public intake.
func (s *Service) GetByToken(ctx context.Context, token string) (*Link, error) {
	l, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	return l, nil
}

// RegisterUse records one submission against the link inside the
// caller's transaction.
func (s *Service) RegisterUse(ctx context.Context, l *Link) error {
	l.RegisterUse()
	return s.repo.Update(ctx, l)
}
