package repository

import (
	"context"
	"errors"

	"clinic-admin/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNotFound = errors.New("record not found")

// RecordRepository is the gorm-backed store of one clinic table.
type RecordRepository[T any] struct {
	db       *gorm.DB
	preloads []string
}

// NewRecordRepo creates a repository for T. Preloads name the associations
// embedded in every read.
func NewRecordRepo[T any](db *gorm.DB, preloads ...string) *RecordRepository[T] {
	return &RecordRepository[T]{db: db, preloads: preloads}
}

func NewPatientRepo(db *gorm.DB) *RecordRepository[models.Patient] {
	return NewRecordRepo[models.Patient](db)
}

func NewDoctorRepo(db *gorm.DB) *RecordRepository[models.Doctor] {
	return NewRecordRepo[models.Doctor](db)
}

func NewRoomRepo(db *gorm.DB) *RecordRepository[models.Room] {
	return NewRecordRepo[models.Room](db)
}

func NewAppointmentRepo(db *gorm.DB) *RecordRepository[models.Appointment] {
	return NewRecordRepo[models.Appointment](db, "Patient", "Doctor", "Room")
}

func (r *RecordRepository[T]) query(ctx context.Context) *gorm.DB {
	q := r.db.WithContext(ctx)
	for _, p := range r.preloads {
		q = q.Preload(p)
	}
	return q
}

// List retrieves every row in insertion order
func (r *RecordRepository[T]) List(ctx context.Context) ([]T, error) {
	records := []T{}
	err := r.query(ctx).Order("id ASC").Find(&records).Error
	return records, err
}

// GetByID retrieves a row by ID
func (r *RecordRepository[T]) GetByID(ctx context.Context, id uint) (*T, error) {
	var record T
	err := r.query(ctx).Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// Exists reports whether a row with the given ID is stored
func (r *RecordRepository[T]) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// Create inserts a new row; associations are written by id only
func (r *RecordRepository[T]) Create(ctx context.Context, record *T) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(record).Error
}

// Update overwrites an existing row
func (r *RecordRepository[T]) Update(ctx context.Context, record *T) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(record).Error
}

// Delete removes a row by ID
func (r *RecordRepository[T]) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(new(T), id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
