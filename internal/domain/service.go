// Package domain provides core business logic interfaces and types.
package domain

import (
	"context"
	"fmt"

	"hirebase/internal/core/apperror"
	"hirebase/internal/core/entity"
	"hirebase/internal/core/id"
	"hirebase/internal/core/tx"
)

// RecordService provides business logic shared by all resource records.
// Resource packages embed it and attach hooks for entity-specific rules.
type RecordService[T entity.Validatable] struct {
	repo      RecordRepository[T]
	txManager tx.Manager
	hooks     *HookRegistry[T]

	// entityName for error messages
	entityName string
}

// RecordServiceConfig configures the record service.
type RecordServiceConfig[T entity.Validatable] struct {
	Repo       RecordRepository[T]
	TxManager  tx.Manager
	EntityName string
}

// NewRecordService creates a new record service.
func NewRecordService[T entity.Validatable](cfg RecordServiceConfig[T]) *RecordService[T] {
	return &RecordService[T]{
		repo:       cfg.Repo,
		txManager:  cfg.TxManager,
		hooks:      NewHookRegistry[T](),
		entityName: cfg.EntityName,
	}
}

// Hooks returns the hook registry for external registration.
func (s *RecordService[T]) Hooks() *HookRegistry[T] {
	return s.hooks
}

func (s *RecordService[T]) normalizeValidationErr(err error) error {
	if err == nil {
		return nil
	}
	// If the entity already returns a structured AppError, keep it.
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewValidation(err.Error())
}

func (s *RecordService[T]) normalizeGetErr(err error, recordID any) error {
	if err == nil {
		return nil
	}
	if apperror.IsNotFound(err) {
		return apperror.NewNotFound(s.entityName, recordID)
	}
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewInternal(err).WithDetail("entity", s.entityName).WithDetail("id", recordID)
}

// Create creates a new record.
func (s *RecordService[T]) Create(ctx context.Context, record T) error {
	if err := record.Validate(ctx); err != nil {
		return s.normalizeValidationErr(err)
	}

	if err := s.hooks.Run(ctx, BeforeCreate, record); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, record); err != nil {
			return fmt.Errorf("create %s: %w", s.entityName, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	// After-create hooks run outside the transaction; the record already exists.
	_ = s.hooks.Run(ctx, AfterCreate, record)

	return nil
}

// GetByID retrieves record by ID.
func (s *RecordService[T]) GetByID(ctx context.Context, recordID id.ID) (T, error) {
	record, err := s.repo.GetByID(ctx, recordID)
	if err != nil {
		return record, s.normalizeGetErr(err, recordID.String())
	}
	return record, nil
}

// Update updates an existing record.
func (s *RecordService[T]) Update(ctx context.Context, record T) error {
	if err := record.Validate(ctx); err != nil {
		return s.normalizeValidationErr(err)
	}

	if err := s.hooks.Run(ctx, BeforeUpdate, record); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, record); err != nil {
			return fmt.Errorf("update %s: %w", s.entityName, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	_ = s.hooks.Run(ctx, AfterUpdate, record)

	return nil
}

// Delete removes the record.
func (s *RecordService[T]) Delete(ctx context.Context, recordID id.ID) error {
	// Load first so before/after hooks see the record
	record, err := s.repo.GetByID(ctx, recordID)
	if err != nil {
		return s.normalizeGetErr(err, recordID.String())
	}

	if err := s.hooks.Run(ctx, BeforeDelete, record); err != nil {
		return err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Delete(ctx, recordID); err != nil {
			return fmt.Errorf("delete %s: %w", s.entityName, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	_ = s.hooks.Run(ctx, AfterDelete, record)

	return nil
}

// List retrieves records with filtering.
func (s *RecordService[T]) List(ctx context.Context, filter ListFilter) (ListResult[T], error) {
	return s.repo.List(ctx, filter)
}

// Exists checks if record exists.
func (s *RecordService[T]) Exists(ctx context.Context, recordID id.ID) (bool, error) {
	return s.repo.Exists(ctx, recordID)
}
