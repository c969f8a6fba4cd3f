package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is the data-access contract shared by every entity repository.
type Store[T any] interface {
	GetAll(ctx context.Context, opts ...QueryOption) ([]T, error)
	Get(ctx context.Context, opts ...QueryOption) (*T, error)
	Create(ctx context.Context, entity *T) error
	Remove(ctx context.Context, entity *T) error
	Save(ctx context.Context) error
}

// Repository implements Store on top of GORM. Entity repositories embed it
// and add their own lookups.
type Repository[T any] struct {
	db *gorm.DB
}

var _ Store[struct{}] = (*Repository[struct{}])(nil)

func NewRepository[T any](db *gorm.DB) *Repository[T] {
	return &Repository[T]{db: db}
}

// DB exposes the underlying connection bound to ctx.
func (r *Repository[T]) DB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

// GetAll returns every record matching opts, ordered by id.
func (r *Repository[T]) GetAll(ctx context.Context, opts ...QueryOption) ([]T, error) {
	q := buildQuery(opts)
	records := make([]T, 0)
	if err := q.apply(r.DB(ctx)).Find(&records).Error; err != nil {
		return nil, translateError(err)
	}
	return records, nil
}

// Get returns the first record matching opts, or ErrNotFound. When ctx
// carries a UnitOfWork and the query is tracked, the record is registered
// for a later Save.
func (r *Repository[T]) Get(ctx context.Context, opts ...QueryOption) (*T, error) {
	q := buildQuery(opts)
	var record T
	if err := q.apply(r.DB(ctx)).Take(&record).Error; err != nil {
		return nil, translateError(err)
	}
	if !q.untracked {
		if uow, ok := UnitOfWorkFrom(ctx); ok {
			uow.track(&record)
		}
	}
	return &record, nil
}

// Count returns the number of records matching opts. Paging is ignored.
func (r *Repository[T]) Count(ctx context.Context, opts ...QueryOption) (int64, error) {
	q := buildQuery(opts)
	var count int64
	db := r.DB(ctx).Model(new(T))
	for _, scope := range q.scopes {
		db = scope(db)
	}
	if err := db.Count(&count).Error; err != nil {
		return 0, translateError(err)
	}
	return count, nil
}

// Create inserts entity. The store assigns its id.
func (r *Repository[T]) Create(ctx context.Context, entity *T) error {
	return translateError(r.DB(ctx).Omit(clause.Associations).Create(entity).Error)
}

// Persist writes every column of an existing entity.
func (r *Repository[T]) Persist(ctx context.Context, entity *T) error {
	return translateError(r.DB(ctx).Omit(clause.Associations).Save(entity).Error)
}

// Remove deletes entity by primary key and drops it from the unit of work
// in ctx.
func (r *Repository[T]) Remove(ctx context.Context, entity *T) error {
	result := r.DB(ctx).Delete(entity)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if uow, ok := UnitOfWorkFrom(ctx); ok {
		uow.untrack(entity)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Save flushes the records tracked by the unit of work in ctx in a single
// transaction. Without a unit of work there is nothing pending, since every
// other mutation is written immediately.
func (r *Repository[T]) Save(ctx context.Context) error {
	return flush(ctx, r.db)
}

func flush(ctx context.Context, db *gorm.DB) error {
	uow, ok := UnitOfWorkFrom(ctx)
	if !ok {
		return nil
	}
	pending := uow.drain()
	if len(pending) == 0 {
		return nil
	}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, entity := range pending {
			// Updates, unlike Save, never inserts a row that is already gone.
			if err := tx.Select("*").Omit(clause.Associations).Updates(entity).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save %d tracked records: %w", len(pending), translateError(err))
	}
	return nil
}
