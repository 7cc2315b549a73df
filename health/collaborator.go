package health

import (
	"context"
	"database/sql"
	"fmt"
)

// Database is the query capability checks may use. *sql.DB satisfies it.
type Database interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	PingContext(ctx context.Context) error
}

// Optional holds a collaborator that may be absent.
type Optional[T any] struct {
	value T
	ok    bool
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, ok: true}
}

// None returns an empty Optional.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Maybe returns Some(v) unless v is the zero value (a nil interface or
// pointer), in which case it returns None.
func Maybe[T comparable](v T) Optional[T] {
	var zero T
	if v == zero {
		return None[T]()
	}
	return Some(v)
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.ok
}

// Present reports whether a value is held.
func (o Optional[T]) Present() bool {
	return o.ok
}

// Require returns the value, or an error wrapping ErrMissingCollaborator that
// names the collaborator when it is absent.
func (o Optional[T]) Require(name string) (T, error) {
	if !o.ok {
		var zero T
		return zero, fmt.Errorf("%w: %s", ErrMissingCollaborator, name)
	}
	return o.value, nil
}
