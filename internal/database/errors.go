package database

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when no record matches a lookup.
	ErrNotFound = errors.New("record not found")

	// ErrConflict is returned when the store rejects a write, typically a
	// unique constraint violation.
	ErrConflict = errors.New("persistence conflict")
)

// translateError maps driver and GORM errors onto the package sentinels.
// Errors that don't map are returned unchanged.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey),
		errors.Is(err, gorm.ErrForeignKeyViolated),
		isConstraintViolation(err):
		return fmt.Errorf("%w: %v", ErrConflict, err)
	default:
		return err
	}
}

// isConstraintViolation catches sqlite constraint errors the dialect does
// not translate (NOT NULL, CHECK).
func isConstraintViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "constraint failed") ||
		strings.Contains(msg, "violates unique constraint") ||
		strings.Contains(msg, "violates not-null constraint")
}
