package patch

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Operation kinds.
const (
	OpAdd     = "add"
	OpRemove  = "remove"
	OpReplace = "replace"
	OpTest    = "test"
	OpCopy    = "copy"
	OpMove    = "move"
)

var (
	ErrInvalidPath    = errors.New("invalid path")
	ErrUnsupportedOp  = errors.New("unsupported operation")
	ErrMissingValue   = errors.New("missing value")
	ErrTypeMismatch   = errors.New("type mismatch")
	ErrInvalidValue   = errors.New("invalid value")
	ErrTestFailed     = errors.New("test failed")
	ErrImmutableField = errors.New("field cannot be modified")
	ErrEmptyDocument  = errors.New("patch document is empty")
	ErrWriteOnlyField = errors.New("field cannot be read")
)

// Operation is one step of a Document.
type Operation struct {
	Op    string          `json:"op"`
	Path  string          `json:"path"`
	From  string          `json:"from,omitempty"`
	Value json.RawMessage `json:"value,omitempty"`
}

// Document is an ordered list of operations.
type Document []Operation

// Set builds a replace operation, encoding value as JSON.
func Set(path string, value any) Operation {
	raw, err := json.Marshal(value)
	if err != nil {
		panic(fmt.Sprintf("patch: cannot encode value for %s: %v", path, err))
	}
	return Operation{Op: OpReplace, Path: path, Value: raw}
}

// Remove builds a remove operation.
func Remove(path string) Operation {
	return Operation{Op: OpRemove, Path: path}
}

// Paths returns the member names the document touches, in order.
func (d Document) Paths() []string {
	paths := make([]string, 0, len(d))
	for _, op := range d {
		if name, err := memberName(op.Path); err == nil {
			paths = append(paths, name)
		}
	}
	return paths
}

// OpError reports the operation that aborted a patch.
type OpError struct {
	Index int
	Op    string
	Path  string
	Err   error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("operation %d (%s %s): %v", e.Index, e.Op, e.Path, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// Check validates a member value before it is written.
type Check[V any] func(V) error

// Required rejects blank strings.
func Required(v string) error {
	if strings.TrimSpace(v) == "" {
		return errors.New("value is required")
	}
	return nil
}

// Range accepts values in [lo, hi].
func Range(lo, hi int) Check[int] {
	return func(v int) error {
		if v < lo || v > hi {
			return fmt.Errorf("%d is outside %d-%d", v, lo, hi)
		}
		return nil
	}
}

// NonNegative rejects values below zero.
func NonNegative(v int) error {
	if v < 0 {
		return fmt.Errorf("%d is negative", v)
	}
	return nil
}

// Field describes how one DTO member is read and written by a patch.
type Field[D any] struct {
	immutable bool
	writeOnly bool
	get       func(*D) any
	decode    func(json.RawMessage) (any, error)
	assign    func(*D, any) error
	reset     func(*D) error
	equal     func(a, b any) bool
}

// Value declares a member of type V reached through ptr. Checks run on every
// write, including remove, which writes the zero value.
func Value[D any, V comparable](ptr func(*D) *V, checks ...Check[V]) Field[D] {
	return typed(ptr, func(a, b V) bool { return a == b }, checks)
}

// Timestamp declares a time member. Instants are compared with time.Time.Equal.
func Timestamp[D any](ptr func(*D) *time.Time, checks ...Check[time.Time]) Field[D] {
	return typed(ptr, time.Time.Equal, checks)
}

// Immutable marks f as read-only: test is allowed, every write fails.
func Immutable[D any](f Field[D]) Field[D] {
	f.immutable = true
	return f
}

// WriteOnly marks f as a secret: it can be set or removed, but test
// and copy or move from it fail.
func WriteOnly[D any](f Field[D]) Field[D] {
	f.writeOnly = true
	return f
}

func typed[D any, V any](ptr func(*D) *V, eq func(a, b V) bool, checks []Check[V]) Field[D] {
	assign := func(d *D, value any) error {
		v, ok := value.(V)
		if !ok {
			return fmt.Errorf("%w: cannot assign %T to %T", ErrTypeMismatch, value, *new(V))
		}
		for _, check := range checks {
			if err := check(v); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidValue, err)
			}
		}
		*ptr(d) = v
		return nil
	}
	return Field[D]{
		get: func(d *D) any { return *ptr(d) },
		decode: func(raw json.RawMessage) (any, error) {
			var v V
			if err := json.Unmarshal(raw, &v); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
			}
			return v, nil
		},
		assign: assign,
		reset: func(d *D) error {
			var zero V
			return assign(d, zero)
		},
		equal: func(a, b any) bool {
			av, aok := a.(V)
			bv, bok := b.(V)
			return aok && bok && eq(av, bv)
		},
	}
}

// Table is the per-DTO dispatch table, keyed by lower-cased member name.
type Table[D any] struct {
	fields map[string]Field[D]
}

// NewTable builds a table. Member names are matched ignoring case.
func NewTable[D any](fields map[string]Field[D]) Table[D] {
	t := Table[D]{fields: make(map[string]Field[D], len(fields))}
	for name, f := range fields {
		t.fields[strings.ToLower(name)] = f
	}
	return t
}

// Apply runs doc against target. target is left untouched unless every
// operation succeeds.
func (t Table[D]) Apply(doc Document, target *D) error {
	if target == nil {
		return errors.New("patch: nil target")
	}
	working := *target
	for i, op := range doc {
		if err := t.applyOne(op, &working); err != nil {
			return &OpError{Index: i, Op: op.Op, Path: op.Path, Err: err}
		}
	}
	*target = working
	return nil
}

func (t Table[D]) lookup(path string) (Field[D], error) {
	name, err := memberName(path)
	if err != nil {
		return Field[D]{}, err
	}
	f, ok := t.fields[name]
	if !ok {
		return Field[D]{}, fmt.Errorf("%w: unknown member %q", ErrInvalidPath, path)
	}
	return f, nil
}

func (t Table[D]) applyOne(op Operation, d *D) error {
	kind := strings.ToLower(strings.TrimSpace(op.Op))
	switch kind {
	case OpAdd, OpReplace, OpRemove, OpTest, OpCopy, OpMove:
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedOp, op.Op)
	}

	target, err := t.lookup(op.Path)
	if err != nil {
		return err
	}
	if target.immutable && kind != OpTest {
		return ErrImmutableField
	}

	switch kind {
	case OpAdd, OpReplace:
		if len(op.Value) == 0 {
			return ErrMissingValue
		}
		v, err := target.decode(op.Value)
		if err != nil {
			return err
		}
		return target.assign(d, v)

	case OpRemove:
		return target.reset(d)

	case OpTest:
		if target.writeOnly {
			return ErrWriteOnlyField
		}
		if len(op.Value) == 0 {
			return ErrMissingValue
		}
		v, err := target.decode(op.Value)
		if err != nil {
			return err
		}
		if !target.equal(target.get(d), v) {
			return fmt.Errorf("%w: %s does not match %s", ErrTestFailed, op.Path, string(op.Value))
		}
		return nil

	default: // copy, move
		if op.From == "" {
			return fmt.Errorf("%w: %s requires from", ErrInvalidPath, kind)
		}
		source, err := t.lookup(op.From)
		if err != nil {
			return err
		}
		if source.writeOnly {
			return ErrWriteOnlyField
		}
		if kind == OpMove && source.immutable {
			return ErrImmutableField
		}
		sameMember := strings.EqualFold(op.From, op.Path)
		if err := target.assign(d, source.get(d)); err != nil {
			return err
		}
		if kind == OpMove && !sameMember {
			return source.reset(d)
		}
		return nil
	}
}

// memberName resolves a single-level JSON pointer to a lower-cased member name.
func memberName(path string) (string, error) {
	if !strings.HasPrefix(path, "/") {
		return "", fmt.Errorf("%w: %q must start with /", ErrInvalidPath, path)
	}
	name := path[1:]
	if name == "" || strings.Contains(name, "/") {
		return "", fmt.Errorf("%w: %q must name exactly one member", ErrInvalidPath, path)
	}
	name = strings.NewReplacer("~1", "/", "~0", "~").Replace(name)
	return strings.ToLower(name), nil
}
