package record_repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"hirebase/internal/core/id"
	"hirebase/internal/domain/candidate"
	"hirebase/internal/infrastructure/storage/postgres"
)

const candidateTable = "candidates"

// CandidateRepo implements candidate.Repository.
type CandidateRepo struct {
	*BaseRecordRepo[*candidate.Candidate]
}

// NewCandidateRepo creates a new candidate repository.
func NewCandidateRepo(txManager *postgres.TxManager) *CandidateRepo {
	return &CandidateRepo{
		BaseRecordRepo: NewBaseRecordRepo(
			txManager,
			candidateTable,
			[]string{"first_name", "last_name", "email", "national_id"},
			func() *candidate.Candidate { return &candidate.Candidate{} },
		),
	}
}

// ExistsByEmail reports whether the campaign already has a candidate with
// this email.
func (r *CandidateRepo) ExistsByEmail(ctx context.Context, campaignID id.ID, email string) (bool, error) {
	q := r.Builder().
		Select("1").
		From(candidateTable).
		Where(squirrel.Eq{"campaign_id": campaignID}).
		Where(squirrel.Eq{"email": strings.ToLower(strings.TrimSpace(email))}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return false, fmt.Errorf("build exists query: %w", err)
	}

	var one int
	err = r.Querier(ctx).QueryRow(ctx, sql, args...).Scan(&one)
	if err != nil {
		if pgxscan.NotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("exists by email: %w", err)
	}
	return true, nil
}
