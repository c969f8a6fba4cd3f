package database

import (
	"context"
	"sync"
)

type unitOfWorkKey struct{}

// UnitOfWork collects the records fetched with tracking enabled during one
// request so that in-place changes can be flushed by Save. It is not a
// lock: concurrent writers to the same row still follow last-writer-wins.
type UnitOfWork struct {
	mu      sync.Mutex
	tracked []any
}

// WithUnitOfWork returns a context carrying a fresh unit of work.
func WithUnitOfWork(ctx context.Context) (context.Context, *UnitOfWork) {
	uow := &UnitOfWork{}
	return context.WithValue(ctx, unitOfWorkKey{}, uow), uow
}

// UnitOfWorkFrom returns the unit of work stored in ctx, if any.
func UnitOfWorkFrom(ctx context.Context) (*UnitOfWork, bool) {
	uow, ok := ctx.Value(unitOfWorkKey{}).(*UnitOfWork)
	return uow, ok
}

func (u *UnitOfWork) track(entity any) {
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, e := range u.tracked {
		if e == entity {
			return
		}
	}
	u.tracked = append(u.tracked, entity)
}

// untrack drops entity so that a later Save does not write it back.
func (u *UnitOfWork) untrack(entity any) {
	u.mu.Lock()
	defer u.mu.Unlock()
	for i, e := range u.tracked {
		if e == entity {
			u.tracked = append(u.tracked[:i], u.tracked[i+1:]...)
			return
		}
	}
}

// Len reports how many records are pending.
func (u *UnitOfWork) Len() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.tracked)
}

func (u *UnitOfWork) drain() []any {
	u.mu.Lock()
	defer u.mu.Unlock()
	pending := u.tracked
	u.tracked = nil
	return pending
}
