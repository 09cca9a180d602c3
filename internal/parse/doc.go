// Package parse implements a generic backtracking parser-combinator
// engine: a composable computation model over an abstract token stream
// with position tracking, an accumulating error model, and a context
// value threaded through the run like state.
//
// # Data model
//
// A Parser[A, T, C, E] is a pure function from State[T, C] (input,
// position, context) to either (value, new state) or *Error[T, E].
// Errors are values: nothing in this package panics on a parse failure.
//
// Error is a tagged union of two kinds:
//
//   - Structural – an expected-vs-got mismatch described by Parts
//     (concrete tokens or labels). Structural errors occurring at the
//     same point are mergeable: Choice unions their expected sets.
//   - Custom – an opaque payload of type E. Custom errors are never
//     merged and terminate an enclosing Choice immediately.
//
// # Backtracking
//
// A failure is soft when the failing parser consumed no input, which
// the engine decides solely by comparing byte offsets of the failure
// span start and the attempt start. Line/column are ignored for this
// purpose: offsets are monotonic, line/column can alias.
//
//   - Optional recovers soft failures by rewinding stream, position,
//     and context to the pre-attempt state.
//   - Choice retries later alternatives only after soft failures; the
//     first committed failure wins and is returned as-is.
//   - Label renames the expected set of a soft structural failure.
//
// Committed failures are never silently recovered; they propagate to
// the top of the run.
//
// # Hazards
//
// Repetition combinators (Many, Some, Sep1) applied to a sub-parser
// that can succeed while consuming zero tokens will loop forever. The
// engine does not detect this; it is a documented caller obligation.
//
// # Consumers
//
//   - internal/scan: text streams over Unicode content plus token
//     matchers (literals, regex, numbers, string literals).
//   - internal/diagfmt: renders an Error plus the original Input into a
//     human-readable diagnostic with a source window.
//   - internal/grammar/...: example grammars built entirely from these
//     primitives.
package parse
