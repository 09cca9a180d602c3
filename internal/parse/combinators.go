package parse

import (
	"skein/internal/source"
)

// Maybe is the result of Optional: a value plus a presence flag.
type Maybe[A any] struct {
	Value A
	Valid bool
}

// Optional tries p. On success the value is wrapped. On a soft failure
// (p consumed nothing) the pre-attempt stream, position, and context
// are restored and the absent marker is returned. A committed failure
// propagates unchanged: partially consumed input is never silently
// discarded.
func Optional[A any, T comparable, C, E any](p Parser[A, T, C, E]) Parser[Maybe[A], T, C, E] {
	return func(st State[T, C]) (Maybe[A], State[T, C], *Error[T, E]) {
		a, next, err := p(st)
		if err == nil {
			return Maybe[A]{Value: a, Valid: true}, next, nil
		}
		if err.CommittedSince(st.Pos) {
			return Maybe[A]{}, st, err
		}
		return Maybe[A]{}, st, nil
	}
}

// Choice tries each alternative in order from the same pre-attempt
// state. The first success wins. A committed failure is returned
// immediately without trying later alternatives (first committed
// failure wins, not longest match), and so is any custom failure. The
// expected sets of soft structural failures are accumulated; if every
// alternative soft-fails, Choice fails at the original position with
// the accumulated union and the next available token (or the
// end-of-input marker) as got.
func Choice[A any, T comparable, C, E any](alts ...Parser[A, T, C, E]) Parser[A, T, C, E] {
	return func(st State[T, C]) (A, State[T, C], *Error[T, E]) {
		var expected []Part[T]
		for _, alt := range alts {
			a, next, err := alt(st)
			if err == nil {
				return a, next, nil
			}
			if err.Kind == ErrCustom || err.CommittedSince(st.Pos) {
				var zero A
				return zero, st, err
			}
			expected = appendParts(expected, err.Expected...)
		}

		got := EndOfInput[T]()
		if tok, _, _, ok := st.In.Next(st.Pos); ok {
			got = TokenPart(tok)
		}
		var zero A
		return zero, st, &Error[T, E]{
			Kind:     ErrStructural,
			Span:     source.At(st.Pos),
			Got:      got,
			Expected: expected,
		}
	}
}

// Label replaces the expected set of a soft structural failure with the
// single part Msg(name), so nested machinery reports one coherent name
// instead of leaking internal token names. Committed and custom
// failures pass through unaltered.
func Label[A any, T comparable, C, E any](name string, p Parser[A, T, C, E]) Parser[A, T, C, E] {
	return func(st State[T, C]) (A, State[T, C], *Error[T, E]) {
		a, next, err := p(st)
		if err == nil || err.Kind == ErrCustom || err.CommittedSince(st.Pos) {
			return a, next, err
		}
		relabeled := *err
		relabeled.Expected = []Part[T]{MsgPart[T](name)}
		var zero A
		return zero, st, &relabeled
	}
}

// Many applies p zero or more times, accumulating results in a loop
// rather than by recursion so long inputs cannot exhaust the stack. A
// soft failure ends the repetition; a committed failure propagates.
//
// Applying Many to a parser that can succeed while consuming nothing
// loops forever. The engine does not detect this; it is a caller
// obligation.
func Many[A any, T comparable, C, E any](p Parser[A, T, C, E]) Parser[[]A, T, C, E] {
	return func(st State[T, C]) ([]A, State[T, C], *Error[T, E]) {
		out := []A{}
		cur := st
		for {
			a, next, err := p(cur)
			if err != nil {
				if err.CommittedSince(cur.Pos) {
					return nil, st, err
				}
				return out, cur, nil
			}
			out = append(out, a)
			cur = next
		}
	}
}

// Some applies p one or more times; the first application failing makes
// the whole parser fail.
func Some[A any, T comparable, C, E any](p Parser[A, T, C, E]) Parser[[]A, T, C, E] {
	return Bind(p, func(first A) Parser[[]A, T, C, E] {
		return Map(Many(p), func(rest []A) []A {
			return append([]A{first}, rest...)
		})
	})
}

// Sep1 parses one or more occurrences of p separated by by, returning
// only the p results.
func Sep1[A, B any, T comparable, C, E any](p Parser[A, T, C, E], by Parser[B, T, C, E]) Parser[[]A, T, C, E] {
	return Bind(p, func(first A) Parser[[]A, T, C, E] {
		return Map(Many(Then(by, p)), func(rest []A) []A {
			return append([]A{first}, rest...)
		})
	})
}

// Sep is Sep1 or the empty sequence.
func Sep[A, B any, T comparable, C, E any](p Parser[A, T, C, E], by Parser[B, T, C, E]) Parser[[]A, T, C, E] {
	return Choice(Sep1(p, by), Pure[[]A, T, C, E]([]A{}))
}

// Between runs open, p, closing in sequence and keeps only p's result.
func Between[O, A, X any, T comparable, C, E any](open Parser[O, T, C, E], p Parser[A, T, C, E], closing Parser[X, T, C, E]) Parser[A, T, C, E] {
	return Bind(open, func(O) Parser[A, T, C, E] {
		return ThenSkip(p, closing)
	})
}
