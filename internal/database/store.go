package database

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"aisolutions/internal/metrics"
)

// ErrNotFound is returned when no record has the requested id
var ErrNotFound = errors.New("record not found")

// Store is the persistence gateway for one record type. Records are ordered
// newest first by their timestamp column.
type Store[T any] struct {
	db    *gorm.DB
	table string
}

// NewStore creates a store for the model T persisted in table
func NewStore[T any](db *gorm.DB, table string) *Store[T] {
	return &Store[T]{db: db, table: table}
}

// Create inserts rec and fills in its generated id
func (s *Store[T]) Create(ctx context.Context, rec *T) error {
	start := time.Now()
	err := s.db.WithContext(ctx).Create(rec).Error
	metrics.RecordDBQuery(s.table+"_create", time.Since(start), err)
	return err
}

// List returns every record, most recent first
func (s *Store[T]) List(ctx context.Context) ([]T, error) {
	start := time.Now()
	recs := make([]T, 0)
	err := s.db.WithContext(ctx).Order("timestamp DESC").Order("id DESC").Find(&recs).Error
	metrics.RecordDBQuery(s.table+"_list", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return recs, nil
}

// Get loads the record with the given id
func (s *Store[T]) Get(ctx context.Context, id uint) (*T, error) {
	start := time.Now()
	rec, err := first[T](s.db.WithContext(ctx), id)
	metrics.RecordDBQuery(s.table+"_get", time.Since(start), err)
	return rec, err
}

// Update loads the record, lets mutate change it and writes back only the
// columns mutate reports, all within one transaction. An error from mutate
// aborts the update.
func (s *Store[T]) Update(ctx context.Context, id uint, mutate func(rec *T) ([]string, error)) (*T, error) {
	start := time.Now()
	var out *T
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec, err := first[T](tx, id)
		if err != nil {
			return err
		}
		cols, err := mutate(rec)
		if err != nil {
			return err
		}
		if len(cols) > 0 {
			if err := tx.Model(rec).Select(cols).Updates(rec).Error; err != nil {
				return err
			}
		}
		out = rec
		return nil
	})
	metrics.RecordDBQuery(s.table+"_update", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes the record with the given id
func (s *Store[T]) Delete(ctx context.Context, id uint) error {
	start := time.Now()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec, err := first[T](tx, id)
		if err != nil {
			return err
		}
		return tx.Delete(rec).Error
	})
	metrics.RecordDBQuery(s.table+"_delete", time.Since(start), err)
	return err
}

func first[T any](db *gorm.DB, id uint) (*T, error) {
	var rec T
	if err := db.First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}
