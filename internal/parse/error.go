package parse

import (
	"skein/internal/source"
)

// ErrorKind discriminates structural and custom failures.
type ErrorKind uint8

const (
	// ErrStructural is an expected-vs-got mismatch. Structural errors
	// occurring at the same point may have their expected sets merged.
	ErrStructural ErrorKind = iota
	// ErrCustom carries an opaque user payload. Custom errors are never
	// merged and abort an enclosing Choice immediately.
	ErrCustom
)

// Error is a parse failure. Errors are values: they travel through the
// return channel only and are never panicked.
type Error[T comparable, E any] struct {
	Kind     ErrorKind
	Span     source.Span
	Got      Part[T]   // structural only
	Expected []Part[T] // structural only; insertion-ordered, deduplicated
	Payload  E         // custom only
}

// NewStructural builds a structural failure.
func NewStructural[E any, T comparable](span source.Span, got Part[T], expected ...Part[T]) *Error[T, E] {
	return &Error[T, E]{
		Kind:     ErrStructural,
		Span:     span,
		Got:      got,
		Expected: appendParts(nil, expected...),
	}
}

// NewCustom builds a custom failure with a user payload.
func NewCustom[T comparable, E any](span source.Span, payload E) *Error[T, E] {
	return &Error[T, E]{
		Kind:    ErrCustom,
		Span:    span,
		Payload: payload,
	}
}

// CommittedSince reports whether the failure consumed input relative
// to the attempt that started at start. Committed failures are not
// eligible for backtracking recovery.
func (e *Error[T, E]) CommittedSince(start source.Pos) bool {
	return !e.Span.Start.SamePoint(start)
}
