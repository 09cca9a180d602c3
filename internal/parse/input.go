package parse

import (
	"skein/internal/source"
)

// Input is a persistent token source. The stream value is the Input
// implementation itself: Next never mutates the receiver, it returns a
// new Input positioned past the consumed token. Calling Next twice with
// the same receiver and position must yield identical results.
//
// Window is used only for diagnostics, against the input a run started
// with; concatenating its three parts must reconstruct the full
// physical lines the span touches, including spans that cross line
// boundaries.
type Input[T any] interface {
	Next(pos source.Pos) (tok T, rest Input[T], next source.Pos, ok bool)
	Window(span source.Span) (before, within, after string)
	Base() source.Pos
}

// State is the full machine state threaded through every parser step:
// the remaining input, the current position, and the caller-supplied
// context value. States are immutable; every step builds a new one.
type State[T comparable, C any] struct {
	In  Input[T]
	Pos source.Pos
	Ctx C
}
