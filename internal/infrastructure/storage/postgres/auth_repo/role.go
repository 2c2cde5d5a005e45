package auth_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"hirebase/internal/core/apperror"
	"hirebase/internal/domain/auth"
	"hirebase/internal/infrastructure/storage/postgres"
)

const (
	roleTable           = "roles"
	permissionTable     = "permissions"
	rolePermissionTable = "role_permissions"
)

// RoleRepo implements auth.RoleRepository.
type RoleRepo struct {
	txManager  *postgres.TxManager
	selectCols []string
}

// NewRoleRepo creates a new role repository.
func NewRoleRepo(txManager *postgres.TxManager) *RoleRepo {
	return &RoleRepo{
		txManager:  txManager,
		selectCols: postgres.ExtractDBColumns[auth.Role](),
	}
}

func (r *RoleRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Create inserts a new role.
func (r *RoleRepo) Create(ctx context.Context, role *auth.Role) error {
	q := r.builder().
		Insert(roleTable).
		SetMap(postgres.StructToMap(role))

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert role: %w", err)
	}
	return nil
}

// GetByCode retrieves role by code.
func (r *RoleRepo) GetByCode(ctx context.Context, code string) (*auth.Role, error) {
	q := r.builder().
		Select(r.selectCols...).
		From(roleTable).
		Where(squirrel.Eq{"code": code}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var role auth.Role
	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &role, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("role", code)
		}
		return nil, fmt.Errorf("get role by code: %w", err)
	}
	return &role, nil
}

// List retrieves all roles.
func (r *RoleRepo) List(ctx context.Context) ([]auth.Role, error) {
	q := r.builder().
		Select(r.selectCols...).
		From(roleTable).
		OrderBy("code ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var roles []auth.Role
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &roles, sql, args...); err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	return roles, nil
}

// ListPermissions retrieves all known permissions.
func (r *RoleRepo) ListPermissions(ctx context.Context) ([]auth.Permission, error) {
	q := r.builder().
		Select(postgres.ExtractDBColumns[auth.Permission]()...).
		From(permissionTable).
		OrderBy("code ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var permissions []auth.Permission
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &permissions, sql, args...); err != nil {
		return nil, fmt.Errorf("list permissions: %w", err)
	}
	return permissions, nil
}
