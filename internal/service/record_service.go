package service

import (
	"context"
	"errors"
	"fmt"

	"clinic-admin/internal/models"
	"clinic-admin/internal/repository"

	"github.com/rs/zerolog"
)

var ErrInvalidReference = errors.New("invalid reference")

// Repository is the storage a RecordService needs.
type Repository[T any] interface {
	List(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id uint) (*T, error)
	Create(ctx context.Context, record *T) error
	Update(ctx context.Context, record *T) error
	Delete(ctx context.Context, id uint) error
}

type AuditRecorder interface {
	CreateAuditLog(ctx context.Context, subject, action, details string) error
}

// RecordService implements list/create/update/delete for one clinic table
// and writes an audit entry for every accepted mutation.
type RecordService[T models.Record] struct {
	kind     string
	repo     Repository[T]
	audit    AuditRecorder
	logger   zerolog.Logger
	setID    func(*T, uint)
	validate func(context.Context, *T) error
}

func NewRecordService[T models.Record](
	kind string,
	repo Repository[T],
	audit AuditRecorder,
	logger zerolog.Logger,
	setID func(*T, uint),
) *RecordService[T] {
	return &RecordService[T]{
		kind:   kind,
		repo:   repo,
		audit:  audit,
		logger: logger.With().Str("kind", kind).Logger(),
		setID:  setID,
	}
}

func (s *RecordService[T]) Kind() string {
	return s.kind
}

// List retrieves every record of the table
func (s *RecordService[T]) List(ctx context.Context) ([]T, error) {
	return s.repo.List(ctx)
}

// Create stores a new record and fills in its ID and embedded references
func (s *RecordService[T]) Create(ctx context.Context, record *T, subject string) error {
	s.setID(record, 0)
	if err := s.check(ctx, record); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, record); err != nil {
		return fmt.Errorf("failed to create %s: %w", s.kind, err)
	}
	if err := s.refresh(ctx, record); err != nil {
		return err
	}

	s.record(ctx, subject, "create", (*record).RecordID())
	return nil
}

// Update overwrites the record stored under id
func (s *RecordService[T]) Update(ctx context.Context, id uint, record *T, subject string) error {
	// Verify record exists
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	s.setID(record, id)
	if err := s.check(ctx, record); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, record); err != nil {
		return fmt.Errorf("failed to update %s: %w", s.kind, err)
	}
	if err := s.refresh(ctx, record); err != nil {
		return err
	}

	s.record(ctx, subject, "update", id)
	return nil
}

// Delete removes the record stored under id
func (s *RecordService[T]) Delete(ctx context.Context, id uint, subject string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete %s: %w", s.kind, err)
	}

	s.record(ctx, subject, "delete", id)
	return nil
}

func (s *RecordService[T]) check(ctx context.Context, record *T) error {
	if s.validate == nil {
		return nil
	}
	return s.validate(ctx, record)
}

// refresh reloads the stored row so the response carries embedded references.
func (s *RecordService[T]) refresh(ctx context.Context, record *T) error {
	stored, err := s.repo.GetByID(ctx, (*record).RecordID())
	if err != nil {
		return fmt.Errorf("failed to reload %s: %w", s.kind, err)
	}
	*record = *stored
	return nil
}

// Audit failures are logged and do not fail the request.
func (s *RecordService[T]) record(ctx context.Context, subject, op string, id uint) {
	action := s.kind + "_" + op
	details := fmt.Sprintf("%s %s id=%d", op, s.kind, id)
	if err := s.audit.CreateAuditLog(ctx, subject, action, details); err != nil {
		s.logger.Warn().Err(err).Str("action", action).Msg("failed to write audit log")
	}
	s.logger.Info().Str("action", action).Uint("id", id).Str("subject", subject).Msg("record changed")
}
