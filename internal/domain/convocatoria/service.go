package convocatoria

import (
	"context"
	"fmt"
	"time"

	"hirebase/internal/core/apperror"
	"hirebase/internal/core/id"
	"hirebase/internal/core/tx"
	"hirebase/internal/domain"
)

// Repository is the storage contract for convocatorias.
type Repository interface {
	domain.RecordRepository[*Convocatoria]

	// GetByToken resolves a convocatoria by its public token.
	GetByToken(ctx context.Context, token string) (*Convocatoria, error)
}

// CampaignChecker verifies that the owning campaign exists.
type CampaignChecker interface {
	Exists(ctx context.Context, campaignID id.ID) (bool, error)
}

// Service provides business logic for convocatorias.
type Service struct {
	*domain.RecordService[*Convocatoria]
	repo      Repository
	campaigns CampaignChecker
}

// NewService creates a new convocatoria service.
func NewService(repo Repository, txManager tx.Manager, campaigns CampaignChecker) *Service {
	base := domain.NewRecordService(domain.RecordServiceConfig[*Convocatoria]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "convocatoria",
	})

	svc := &Service{
		RecordService: base,
		repo:          repo,
		campaigns:     campaigns,
	}

	base.Hooks().OnBeforeCreate(svc.checkCampaign)

	return svc
}

func (s *Service) checkCampaign(ctx context.Context, c *Convocatoria) error {
	exists, err := s.campaigns.Exists(ctx, c.CampaignID)
	if err != nil {
		return fmt.Errorf("check campaign: %w", err)
	}
	if !exists {
		return apperror.NewNotFound("campaign", c.CampaignID.String())
	}
	return nil
}

// GetByToken resolves a convocatoria for the public form, with its status
// synced to the clock.
func (s *Service) GetByToken(ctx context.Context, token string) (*Convocatoria, error) {
	c, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	c.SyncStatus(time.Now())
	return c, nil
}

// Close closes a convocatoria ahead of its window.
func (s *Service) Close(ctx context.Context, convocatoriaID id.ID) (*Convocatoria, error) {
	c, err := s.GetByID(ctx, convocatoriaID)
	if err != nil {
		return nil, err
	}
	if c.Status == StatusClosed {
		return nil, apperror.NewInvalidTransition("convocatoria", string(c.Status), string(StatusClosed))
	}
	c.Status = StatusClosed
	c.ClosesAt = time.Now()
	if err := s.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// FillSeat counts one accepted submission inside the caller's transaction.
func (s *Service) FillSeat(ctx context.Context, c *Convocatoria) error {
	c.FillSeat()
	return s.repo.Update(ctx, c)
}
