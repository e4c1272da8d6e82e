package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"aisolutions/internal/database"
	"aisolutions/internal/domain"
	"aisolutions/internal/metrics"
	apperrors "aisolutions/pkg/errors"
)

// resource implements create, list, update and delete for one record type.
// F is the pointer type of the entity's field set.
type resource[T any, F domain.Fields[T]] struct {
	name   string // metric label and verb object, e.g. "inquiry"
	plural string
	title  string // used in user-facing messages, e.g. "Inquiry"
	store  *database.Store[T]
	log    *zap.Logger
}

// Create validates f and stores a new record built from it.
func (r *resource[T, F]) Create(ctx context.Context, f F) (*T, error) {
	if !f.Provided() {
		return nil, apperrors.Invalid(domain.ErrNoData.Error())
	}
	if missing := f.Missing(); len(missing) > 0 {
		return nil, apperrors.Validation("Missing required fields: %s", strings.Join(missing, ", "))
	}
	if err := f.Validate(); err != nil {
		return nil, apperrors.Invalid(err.Error())
	}

	rec := new(T)
	f.Apply(rec)
	if err := r.store.Create(ctx, rec); err != nil {
		r.log.Error("create failed", zap.Error(err), zap.Stack("stack"))
		return nil, apperrors.Internal("Failed to create "+r.name, err)
	}

	metrics.RecordSubmission(r.name)
	return rec, nil
}

// CreatedMessage is the confirmation returned for a stored submission
func (r *resource[T, F]) CreatedMessage() string {
	return r.title + " submitted successfully"
}

// List returns every record, most recent first
func (r *resource[T, F]) List(ctx context.Context) ([]T, error) {
	recs, err := r.store.List(ctx)
	if err != nil {
		r.log.Error("list failed", zap.Error(err), zap.Stack("stack"))
		return nil, apperrors.Internal("Failed to retrieve "+r.plural, err)
	}
	return recs, nil
}

// Update applies the supplied fields of f to record id. Nothing is written
// when validation fails.
func (r *resource[T, F]) Update(ctx context.Context, id uint, f F) (*T, error) {
	if !f.Provided() {
		return nil, apperrors.Invalid(domain.ErrNoData.Error())
	}
	if err := f.Validate(); err != nil {
		return nil, apperrors.Invalid(err.Error())
	}

	rec, err := r.store.Update(ctx, id, func(rec *T) ([]string, error) {
		return f.Apply(rec), nil
	})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, apperrors.NotFound("%s %d not found", r.title, id)
		}
		r.log.Error("update failed", zap.Uint("id", id), zap.Error(err), zap.Stack("stack"))
		return nil, apperrors.Internal("Failed to update "+r.name, err)
	}

	r.log.Info("record updated", zap.Uint("id", id))
	return rec, nil
}

// Delete removes record id and returns the confirmation message
func (r *resource[T, F]) Delete(ctx context.Context, id uint) (string, error) {
	if err := r.store.Delete(ctx, id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return "", apperrors.NotFound("%s %d not found", r.title, id)
		}
		r.log.Error("delete failed", zap.Uint("id", id), zap.Error(err), zap.Stack("stack"))
		return "", apperrors.Internal("Failed to delete "+r.name, err)
	}

	r.log.Info("record deleted", zap.Uint("id", id))
	return fmt.Sprintf("%s %d deleted successfully", r.title, id), nil
}
