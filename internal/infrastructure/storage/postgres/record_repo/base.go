// Package record_repo provides PostgreSQL implementations for resource
// record repositories.
package record_repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"hirebase/internal/core/apperror"
	"hirebase/internal/core/entity"
	"hirebase/internal/core/id"
	"hirebase/internal/domain"
	"hirebase/internal/infrastructure/storage/postgres"
)

// BaseRecordRepo provides common CRUD operations for resource records.
// Embed this in specific repositories.
type BaseRecordRepo[T entity.Validatable] struct {
	txManager  *postgres.TxManager
	tableName  string
	selectCols []string
	searchCols []string
	newFn      func() T
}

// NewBaseRecordRepo creates a new base record repository.
// searchCols are the columns the Search filter matches with ILIKE.
func NewBaseRecordRepo[T entity.Validatable](
	txManager *postgres.TxManager,
	tableName string,
	searchCols []string,
	newFn func() T,
) *BaseRecordRepo[T] {
	return &BaseRecordRepo[T]{
		txManager:  txManager,
		tableName:  tableName,
		selectCols: postgres.ExtractDBColumns[T](),
		searchCols: searchCols,
		newFn:      newFn,
	}
}

// Builder returns a new squirrel builder with PostgreSQL placeholder format.
func (r *BaseRecordRepo[T]) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Querier returns the context-appropriate querier (tx or pool).
func (r *BaseRecordRepo[T]) Querier(ctx context.Context) postgres.Querier {
	return r.txManager.GetQuerier(ctx)
}

// Create inserts a new record using its "db" tags.
func (r *BaseRecordRepo[T]) Create(ctx context.Context, record T) error {
	data := postgres.StructToMap(record)
	if len(data) == 0 {
		return fmt.Errorf("no db tags found in record")
	}

	q := r.Builder().
		Insert(r.tableName).
		SetMap(r.filterColumns(data, nil))

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.Querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert %s: %w", r.tableName, err)
	}
	return nil
}

// Update modifies an existing record with optimistic locking.
func (r *BaseRecordRepo[T]) Update(ctx context.Context, record T) error {
	data := postgres.StructToMap(record)
	if len(data) == 0 {
		return fmt.Errorf("no db tags found in record")
	}

	recordID, ok := data["id"]
	if !ok {
		return fmt.Errorf("record has no 'id' field with db tag")
	}
	version, ok := data["version"].(int)
	if !ok {
		return fmt.Errorf("record has no 'version' field or it is not an int")
	}

	q := r.Builder().
		Update(r.tableName).
		SetMap(r.filterColumns(data, map[string]bool{
			"id":         true, // never update ID
			"version":    true, // version is managed here (optimistic locking)
			"created_at": true,
		})).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": recordID}).
		Where(squirrel.Eq{"version": version})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", r.tableName, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification(r.tableName, recordID)
	}
	return nil
}

// Delete removes the record.
func (r *BaseRecordRepo[T]) Delete(ctx context.Context, recordID id.ID) error {
	q := r.Builder().
		Delete(r.tableName).
		Where(squirrel.Eq{"id": recordID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete %s: %w", r.tableName, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(r.tableName, recordID.String())
	}
	return nil
}

// GetByID retrieves record by ID.
func (r *BaseRecordRepo[T]) GetByID(ctx context.Context, recordID id.ID) (T, error) {
	return r.GetBy(ctx, "id", recordID)
}

// GetBy retrieves a record by equality on a single column.
func (r *BaseRecordRepo[T]) GetBy(ctx context.Context, column string, value any) (T, error) {
	record := r.newFn()

	q := r.baseSelect().
		Where(squirrel.Eq{column: value}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return record, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.Querier(ctx), record, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return record, apperror.NewNotFound(r.tableName, fmt.Sprintf("%v", value))
		}
		return record, fmt.Errorf("get %s by %s: %w", r.tableName, column, err)
	}
	return record, nil
}

// List retrieves records with filtering and pagination.
func (r *BaseRecordRepo[T]) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[T], error) {
	result := domain.ListResult[T]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.baseSelect()

	if filter.Search != "" && len(r.searchCols) > 0 {
		pattern := "%" + filter.Search + "%"
		or := make(squirrel.Or, 0, len(r.searchCols))
		for _, col := range r.searchCols {
			or = append(or, squirrel.ILike{col: pattern})
		}
		q = q.Where(or)
	}

	if len(filter.IDs) > 0 {
		q = q.Where(squirrel.Eq{"id": filter.IDs})
	}

	for col, val := range filter.Equals {
		if !r.validColumn(col) {
			return result, apperror.NewValidation("invalid filter column").WithDetail("column", col)
		}
		q = q.Where(squirrel.Eq{col: val})
	}

	// Count total before pagination
	countQ := r.Builder().
		Select("COUNT(*)").
		FromSelect(q, "sub")

	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count query: %w", err)
	}

	querier := r.Querier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count: %w", err)
	}

	orderBy, err := r.parseOrderBy(filter.OrderBy)
	if err != nil {
		return result, err
	}
	q = q.OrderBy(orderBy)

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("list %s: %w", r.tableName, err)
	}
	return result, nil
}

// Exists checks if a record with the given ID exists.
func (r *BaseRecordRepo[T]) Exists(ctx context.Context, recordID id.ID) (bool, error) {
	q := r.Builder().
		Select("1").
		From(r.tableName).
		Where(squirrel.Eq{"id": recordID}).
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
		return false, fmt.Errorf("exists %s: %w", r.tableName, err)
	}
	return true, nil
}

func (r *BaseRecordRepo[T]) baseSelect() squirrel.SelectBuilder {
	return r.Builder().
		Select(r.selectCols...).
		From(r.tableName)
}

// filterColumns keeps only known columns, minus the excluded set.
func (r *BaseRecordRepo[T]) filterColumns(data map[string]any, exclude map[string]bool) map[string]any {
	filtered := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if exclude[col] {
			continue
		}
		if val, ok := data[col]; ok {
			filtered[col] = val
		}
	}
	return filtered
}

func (r *BaseRecordRepo[T]) validColumn(col string) bool {
	for _, c := range r.selectCols {
		if c == col {
			return true
		}
	}
	return false
}

// parseOrderBy converts "-created_at" style ordering into SQL, restricted
// to known columns for injection safety.
func (r *BaseRecordRepo[T]) parseOrderBy(orderBy string) (string, error) {
	if orderBy == "" {
		orderBy = "-created_at"
	}
	col := orderBy
	dir := "ASC"
	if strings.HasPrefix(orderBy, "-") {
		col = orderBy[1:]
		dir = "DESC"
	}
	if !r.validColumn(col) {
		return "", apperror.NewValidation("invalid order column").WithDetail("column", col)
	}
	return col + " " + dir, nil
}
