package candidate

import (
	"context"
	"time"

	"hirebase/internal/core/id"
	"hirebase/internal/core/tx"
	"hirebase/internal/domain"
	"hirebase/pkg/logger"
)

// Repository is the storage contract for candidates.
type Repository interface {
	domain.RecordRepository[*Candidate]

	// ExistsByEmail reports whether a candidate with the email already
	// exists in the campaign.
	ExistsByEmail(ctx context.Context, campaignID id.ID, email string) (bool, error)
}

// Service provides business logic for candidates.
type Service struct {
	*domain.RecordService[*Candidate]
	repo Repository
}

// NewService creates a new candidate service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	base := domain.NewRecordService(domain.RecordServiceConfig[*Candidate]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "candidate",
	})

	return &Service{
		RecordService: base,
		repo:          repo,
	}
}

// MoveStage transitions a candidate and persists the result.
func (s *Service) MoveStage(ctx context.Context, candidateID id.ID, target Stage) (*Candidate, error) {
	c, err := s.GetByID(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	if err := c.MoveTo(target); err != nil {
		return nil, err
	}
	if err := s.Update(ctx, c); err != nil {
		return nil, err
	}
	logger.Info(ctx, "candidate stage changed",
		"candidate_id", c.ID,
		"stage", string(c.Stage))
	return c, nil
}

// ReceiveDocument marks a checklist document as received.
func (s *Service) ReceiveDocument(ctx context.Context, candidateID id.ID, name string) (*Candidate, error) {
	c, err := s.GetByID(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	if err := c.MarkDocumentReceived(name, time.Now()); err != nil {
		return nil, err
	}
	if err := s.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// ExistsByEmail reports whether the campaign already has a candidate
// with this email.
func (s *Service) ExistsByEmail(ctx context.Context, campaignID id.ID, email string) (bool, error) {
	return s.repo.ExistsByEmail(ctx, campaignID, email)
}
