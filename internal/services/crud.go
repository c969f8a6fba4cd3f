package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mrlokans/catalog/internal/database"
	"github.com/mrlokans/catalog/internal/patch"
	"github.com/mrlokans/catalog/internal/result"
)

// newRecord is a pointer to an entity that can be stamped before insert.
type newRecord[E any] interface {
	*E
	StampCreated(now time.Time)
}

// crud implements the operations every entity service shares. kind is the
// capitalized entity name used in messages ("Book").
type crud[E any, P newRecord[E], D any] struct {
	kind  string
	store entityStore[E]
	toDTO func(E) D
	log   logrus.FieldLogger

	// conflict, when set, runs before update and patch write a record. It
	// returns a message when another record already holds one of its unique
	// values.
	conflict func(ctx context.Context, record *E) (string, error)
}

func (c crud[E, P, D]) lowerKind() string {
	return strings.ToLower(c.kind)
}

func (c crud[E, P, D]) toDTOs(records []E) []D {
	out := make([]D, 0, len(records))
	for _, r := range records {
		out = append(out, c.toDTO(r))
	}
	return out
}

func (c crud[E, P, D]) getAll(ctx context.Context, opts ...database.QueryOption) ([]D, error) {
	records, err := c.store.GetAll(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to list %ss: %w", c.lowerKind(), err)
	}
	return c.toDTOs(records), nil
}

func (c crud[E, P, D]) getByID(ctx context.Context, id uint) (D, error) {
	var zero D
	record, err := c.store.Get(ctx, database.ByID(id), database.Untracked())
	if errors.Is(err, database.ErrNotFound) {
		return zero, notFoundf("%s with ID %d not found.", c.kind, id)
	}
	if err != nil {
		return zero, fmt.Errorf("failed to get %s: %w", c.lowerKind(), err)
	}
	return c.toDTO(*record), nil
}

// byName maps a single-record lookup onto a DTO.
func (c crud[E, P, D]) byName(name string, record *E, err error) (D, error) {
	var zero D
	if errors.Is(err, database.ErrNotFound) {
		return zero, notFoundf("%s '%s' not found.", c.kind, name)
	}
	if err != nil {
		return zero, fmt.Errorf("failed to get %s: %w", c.lowerKind(), err)
	}
	return c.toDTO(*record), nil
}

// taken reports whether a lookup found a record. A miss is not an error.
func taken[E any](record *E, err error) (bool, error) {
	if errors.Is(err, database.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return record != nil, nil
}

// heldByOther reports whether a record other than id matches opts.
func heldByOther[E any](ctx context.Context, store Getter[E], id uint, opts ...database.QueryOption) (bool, error) {
	opts = append(opts, database.Where("id <> ?", id), database.Untracked())
	return taken[E](store.Get(ctx, opts...))
}

// exists reports whether store holds a record with id.
func exists[E any](ctx context.Context, store Getter[E], id uint) (bool, error) {
	return taken[E](store.Get(ctx, database.ByID(id), database.Untracked()))
}

func (c crud[E, P, D]) create(ctx context.Context, record P) result.Result[D] {
	record.StampCreated(database.Now())
	if err := c.store.Create(ctx, record); err != nil {
		if errors.Is(err, database.ErrConflict) {
			return result.Failf[D](result.CodeConflict, "Database update failed: %v", err)
		}
		c.log.WithError(err).WithField("entity", c.lowerKind()).Error("Create failed")
		return result.Failf[D](result.CodeInternal, "Unexpected error occurred: %v", err)
	}
	return result.OK(c.toDTO(*record))
}

func (c crud[E, P, D]) delete(ctx context.Context, id uint) result.Result[D] {
	record, err := c.store.Get(ctx, database.ByID(id), database.Untracked())
	if errors.Is(err, database.ErrNotFound) {
		return result.Failf[D](result.CodeNotFound, "%s with ID %d not found.", c.kind, id)
	}
	if err == nil {
		err = c.store.Remove(ctx, record)
		if errors.Is(err, database.ErrNotFound) {
			return result.Failf[D](result.CodeNotFound, "%s with ID %d not found.", c.kind, id)
		}
	}
	if err != nil {
		c.log.WithError(err).WithFields(logrus.Fields{"entity": c.lowerKind(), "id": id}).Error("Delete failed")
		return result.Failf[D](result.CodeInternal, "Failed to delete %s: %v", c.lowerKind(), err)
	}
	return result.Empty[D]()
}

// update fetches the record, lets apply copy the new field values onto it
// and writes it back. An apply error is a validation failure.
func (c crud[E, P, D]) update(ctx context.Context, id uint, apply func(*E) error) result.Result[D] {
	record, err := c.store.Get(ctx, database.ByID(id))
	if errors.Is(err, database.ErrNotFound) {
		return result.Failf[D](result.CodeNotFound, "%s with ID %d not found.", c.kind, id)
	}
	if err != nil {
		return c.unexpected("Update", id, err)
	}
	if err := apply(record); err != nil {
		return result.Failf[D](result.CodeValidation, "Update failed: %v", err)
	}
	if res, ok := c.checkUnique(ctx, "Update", id, record); !ok {
		return res
	}
	updated, err := c.store.Update(ctx, record)
	if errors.Is(err, database.ErrConflict) {
		return result.Failf[D](result.CodeConflict, "Update failed: %v", err)
	}
	if err != nil {
		return c.unexpected("Update", id, err)
	}
	return result.OK(c.toDTO(*updated))
}

// patch applies doc to the DTO view of the record through table, then maps
// the patched DTO back with back.
func (c crud[E, P, D]) patch(ctx context.Context, id uint, doc patch.Document, table patch.Table[D], back func(*E, D) error) result.Result[D] {
	record, err := c.store.Get(ctx, database.ByID(id))
	if errors.Is(err, database.ErrNotFound) {
		return result.Failf[D](result.CodeNotFound, "%s with ID %d not found.", c.kind, id)
	}
	if err != nil {
		return c.unexpected("Patch", id, err)
	}
	if len(doc) == 0 {
		return result.Failf[D](result.CodeValidation, "Patch operation failed: %v", patch.ErrEmptyDocument)
	}

	view := c.toDTO(*record)
	if err := table.Apply(doc, &view); err != nil {
		return result.Failf[D](result.CodeValidation, "Patch operation failed: %v", err)
	}
	if err := back(record, view); err != nil {
		return result.Failf[D](result.CodeValidation, "Patch operation failed: %v", err)
	}
	if res, ok := c.checkUnique(ctx, "Patch", id, record); !ok {
		return res
	}

	updated, err := c.store.Update(ctx, record)
	if errors.Is(err, database.ErrConflict) {
		return result.Failf[D](result.CodeConflict, "Update failed due to conflict: %v", err)
	}
	if err != nil {
		return c.unexpected("Patch", id, err)
	}
	return result.OK(c.toDTO(*updated))
}

// checkUnique runs the conflict hook. ok is false when res must be returned.
func (c crud[E, P, D]) checkUnique(ctx context.Context, op string, id uint, record *E) (res result.Result[D], ok bool) {
	if c.conflict == nil {
		return res, true
	}
	msg, err := c.conflict(ctx, record)
	if err != nil {
		return c.unexpected(op, id, err), false
	}
	if msg != "" {
		return result.Fail[D](result.CodeConflict, msg), false
	}
	return res, true
}

func (c crud[E, P, D]) unexpected(op string, id uint, err error) result.Result[D] {
	c.log.WithError(err).WithFields(logrus.Fields{"entity": c.lowerKind(), "id": id}).Error(op + " failed")
	return result.Failf[D](result.CodeInternal, "An unexpected error occurred: %v", err)
}

// infallible adapts a mapping function that cannot fail to the shape update
// and patch expect.
func infallible[E any, V any](fn func(*E, V)) func(*E, V) error {
	return func(e *E, v V) error {
		fn(e, v)
		return nil
	}
}
