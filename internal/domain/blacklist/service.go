package blacklist

import (
	"context"
	"fmt"
	"time"

	"hirebase/internal/core/apperror"
	"hirebase/internal/core/tx"
	"hirebase/internal/domain"
)

// Repository is the storage contract for blacklist entries.
type Repository interface {
	domain.RecordRepository[*Entry]

	// FindByIdentifiers returns entries whose identifier matches any of
	// the given normalized values.
	FindByIdentifiers(ctx context.Context, identifiers []string) ([]*Entry, error)
}

// Service provides business logic for the blacklist.
type Service struct {
	*domain.RecordService[*Entry]
	repo Repository
}

// NewService creates a new blacklist service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	base := domain.NewRecordService(domain.RecordServiceConfig[*Entry]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "blacklist entry",
	})

	svc := &Service{
		RecordService: base,
		repo:          repo,
	}

	base.Hooks().OnBeforeCreate(func(ctx context.Context, e *Entry) error {
		e.Identifier = Normalize(e.Identifier)
		return nil
	})
	base.Hooks().OnBeforeUpdate(func(ctx context.Context, e *Entry) error {
		e.Identifier = Normalize(e.Identifier)
		return nil
	})

	return svc
}

// Check returns CANDIDATE_BLACKLISTED when any identifier matches an
// entry still in effect. Empty identifiers are skipped.
func (s *Service) Check(ctx context.Context, email, nationalID string) error {
	var identifiers []string
	if v := Normalize(email); v != "" {
		identifiers = append(identifiers, v)
	}
	if v := Normalize(nationalID); v != "" {
		identifiers = append(identifiers, v)
	}
	if len(identifiers) == 0 {
		return nil
	}

	entries, err := s.repo.FindByIdentifiers(ctx, identifiers)
	if err != nil {
		return fmt.Errorf("check blacklist: %w", err)
	}

	now := time.Now()
	for _, e := range entries {
		if e.InEffect(now) {
			return apperror.NewBlacklisted(e.Identifier)
		}
	}
	return nil
}
