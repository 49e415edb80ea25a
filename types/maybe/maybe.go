// Package maybe provides an option type for view models whose values
// can be absent, like a gas price on a day without gas tariffs.
package maybe

// Maybe holds a value that may be missing. The zero value is a missing
// value.
type Maybe[T any] struct {
	value T
	valid bool
}

func Some[T any](value T) Maybe[T] {
	return Maybe[T]{value: value, valid: true}
}

// SqlNull builds a Maybe from the value/valid pair carried by the
// database/sql null types.
func SqlNull[T any](value T, valid bool) Maybe[T] {
	return Maybe[T]{value: value, valid: valid}
}

func (m Maybe[T]) IsValid() bool {
	return m.valid
}

// Value returns the held value, the zero value when missing.
func (m Maybe[T]) Value() T {
	return m.value
}
