// Package result provides a generic two-armed Result type for code that
// wants a value-or-error sum without the error interface, such as carrying
// structured error payloads (see the validate package).
//
// A Result holds exactly one live payload; the discriminant and payload are
// plain fields of a value type, so copying a Result always moves them
// together.
package result

// Result is either Ok carrying a T, or Err carrying an E.
// The zero value is an Err with E's zero value.
type Result[T, E any] struct {
	ok  bool
	val T
	err E
}

// Ok returns a successful Result carrying v.
func Ok[T, E any](v T) Result[T, E] {
	return Result[T, E]{ok: true, val: v}
}

// Err returns a failed Result carrying e.
func Err[T, E any](e E) Result[T, E] {
	return Result[T, E]{err: e}
}

// IsOk reports whether the Result carries a value.
func (r Result[T, E]) IsOk() bool { return r.ok }

// IsErr reports whether the Result carries an error payload.
func (r Result[T, E]) IsErr() bool { return !r.ok }

// Value returns the carried value. It panics on an Err; use ValueOr or
// Unpack when failure is expected.
func (r Result[T, E]) Value() T {
	if !r.ok {
		panic("result: Value called on Err")
	}
	return r.val
}

// Error returns the carried error payload. It panics on an Ok.
func (r Result[T, E]) Error() E {
	if r.ok {
		panic("result: Error called on Ok")
	}
	return r.err
}

// ValueOr returns the carried value, or def on an Err.
func (r Result[T, E]) ValueOr(def T) T {
	if r.ok {
		return r.val
	}
	return def
}

// Unpack bridges to Go's two-return convention: (value, zero, true) on Ok,
// (zero, err, false) on Err.
func (r Result[T, E]) Unpack() (T, E, bool) {
	return r.val, r.err, r.ok
}

// Map transforms the value of an Ok result, passing an Err through.
func Map[T, U, E any](r Result[T, E], f func(T) U) Result[U, E] {
	if r.ok {
		return Ok[U, E](f(r.val))
	}
	return Err[U, E](r.err)
}
