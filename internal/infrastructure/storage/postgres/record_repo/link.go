package record_repo

import (
	"context"

	"hirebase/internal/domain/link"
	"hirebase/internal/infrastructure/storage/postgres"
)

const linkTable = "recruitment_links"

// LinkRepo implements link.Repository.
type LinkRepo struct {
	*BaseRecordRepo[*link.Link]
}

// NewLinkRepo creates a new recruitment link repository.
func NewLinkRepo(txManager *postgres.TxManager) *LinkRepo {
	return &LinkRepo{
		BaseRecordRepo: NewBaseRecordRepo(
			txManager,
			linkTable,
			[]string{"name", "token"},
			func() *link.Link { return &link.Link{} },
		),
	}
}

// GetByToken resolves a link by its public token.
func (r *LinkRepo) GetByToken(ctx context.Context, token string) (*link.Link, error) {
	return r.GetBy(ctx, "token", token)
}
