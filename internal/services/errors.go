package services

import (
	"errors"
	"fmt"
)

// ErrNotFound is matched by every lookup miss reported by the services.
var ErrNotFound = errors.New("not found")

// NotFoundError carries a message that is safe to show to API clients.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func notFoundf(format string, args ...any) error {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}
