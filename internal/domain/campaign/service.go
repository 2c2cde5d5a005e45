package campaign

import (
	"context"

	"hirebase/internal/core/tx"
	"hirebase/internal/domain"
	"hirebase/internal/domain/screening"
)

// Repository is the storage contract for campaigns.
type Repository interface {
	domain.RecordRepository[*Campaign]
}

// Service provides business logic for campaigns.
type Service struct {
	*domain.RecordService[*Campaign]
	repo   Repository
	engine *screening.Engine
}

// NewService creates a new campaign service.
func NewService(repo Repository, txManager tx.Manager, engine *screening.Engine) *Service {
	base := domain.NewRecordService(domain.RecordServiceConfig[*Campaign]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "campaign",
	})

	svc := &Service{
		RecordService: base,
		repo:          repo,
		engine:        engine,
	}

	// Screening rules must compile before they are persisted.
	base.Hooks().OnBeforeCreate(svc.validateRules)
	base.Hooks().OnBeforeUpdate(svc.validateRules)

	return svc
}

func (s *Service) validateRules(ctx context.Context, c *Campaign) error {
	for _, rule := range c.ScreeningRules {
		if err := rule.Validate(s.engine); err != nil {
			return err
		}
	}
	return nil
}
