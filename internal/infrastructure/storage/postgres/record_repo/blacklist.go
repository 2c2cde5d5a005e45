package record_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"hirebase/internal/domain/blacklist"
	"hirebase/internal/infrastructure/storage/postgres"
)

const blacklistTable = "blacklist_entries"

// BlacklistRepo implements blacklist.Repository.
type BlacklistRepo struct {
	*BaseRecordRepo[*blacklist.Entry]
}

// NewBlacklistRepo creates a new blacklist repository.
func NewBlacklistRepo(txManager *postgres.TxManager) *BlacklistRepo {
	return &BlacklistRepo{
		BaseRecordRepo: NewBaseRecordRepo(
			txManager,
			blacklistTable,
			[]string{"identifier", "reason"},
			func() *blacklist.Entry { return &blacklist.Entry{} },
		),
	}
}

// FindByIdentifiers returns entries matching any of the normalized values.
func (r *BlacklistRepo) FindByIdentifiers(ctx context.Context, identifiers []string) ([]*blacklist.Entry, error) {
	if len(identifiers) == 0 {
		return nil, nil
	}

	q := r.Builder().
		Select(postgres.ExtractDBColumns[blacklist.Entry]()...).
		From(blacklistTable).
		Where(squirrel.Eq{"identifier": identifiers})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var entries []*blacklist.Entry
	if err := pgxscan.Select(ctx, r.Querier(ctx), &entries, sql, args...); err != nil {
		return nil, fmt.Errorf("find by identifiers: %w", err)
	}
	return entries, nil
}
