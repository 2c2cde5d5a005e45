package auth_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"hirebase/internal/core/apperror"
	"hirebase/internal/core/id"
	"hirebase/internal/domain/auth"
	"hirebase/internal/infrastructure/storage/postgres"
)

const sessionTable = "sessions"

// SessionRepo implements auth.SessionRepository.
type SessionRepo struct {
	txManager  *postgres.TxManager
	selectCols []string
}

// NewSessionRepo creates a new session repository.
func NewSessionRepo(txManager *postgres.TxManager) *SessionRepo {
	return &SessionRepo{
		txManager:  txManager,
		selectCols: postgres.ExtractDBColumns[auth.Session](),
	}
}

func (r *SessionRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Create saves a new session.
func (r *SessionRepo) Create(ctx context.Context, session *auth.Session) error {
	q := r.builder().
		Insert(sessionTable).
		SetMap(postgres.StructToMap(session))

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// GetByID retrieves a session by ID.
func (r *SessionRepo) GetByID(ctx context.Context, sessionID id.ID) (*auth.Session, error) {
	q := r.builder().
		Select(r.selectCols...).
		From(sessionTable).
		Where(squirrel.Eq{"id": sessionID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var session auth.Session
	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &session, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("session", sessionID.String())
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	return &session, nil
}

// GetActiveByUser returns the user's unexpired, unrevoked sessions.
func (r *SessionRepo) GetActiveByUser(ctx context.Context, userID id.ID) ([]auth.Session, error) {
	q := r.builder().
		Select(r.selectCols...).
		From(sessionTable).
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.Eq{"revoked_at": nil}).
		Where(squirrel.Gt{"expires_at": time.Now()}).
		OrderBy("created_at DESC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var sessions []auth.Session
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &sessions, sql, args...); err != nil {
		return nil, fmt.Errorf("get active sessions: %w", err)
	}
	return sessions, nil
}

// Revoke revokes a single session.
func (r *SessionRepo) Revoke(ctx context.Context, sessionID id.ID, reason string) error {
	q := r.builder().
		Update(sessionTable).
		Set("revoked_at", time.Now()).
		Set("revoked_reason", reason).
		Where(squirrel.Eq{"id": sessionID}).
		Where(squirrel.Eq{"revoked_at": nil})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

// RevokeAllForUser revokes all active sessions for a user.
func (r *SessionRepo) RevokeAllForUser(ctx context.Context, userID id.ID, reason string) error {
	q := r.builder().
		Update(sessionTable).
		Set("revoked_at", time.Now()).
		Set("revoked_reason", reason).
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.Eq{"revoked_at": nil})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("revoke sessions: %w", err)
	}
	return nil
}

// DeleteExpired removes sessions past their expiry. Meant for a periodic
// cleanup job.
func (r *SessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	q := r.builder().
		Delete(sessionTable).
		Where(squirrel.Lt{"expires_at": time.Now()})

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return result.RowsAffected(), nil
}
