package parse

import (
	"skein/internal/source"
)

// Parser is a pure computation over a token stream: it takes the
// current state and either produces a value plus the advanced state, or
// a failure. Parsers are stateless, referentially transparent values;
// they may be stored, shared, and reused across runs.
//
// Type parameters: A result, T token, C context, E custom error payload.
type Parser[A any, T comparable, C, E any] func(st State[T, C]) (A, State[T, C], *Error[T, E])

// Run executes p against in from the stream's initial position.
func Run[A any, T comparable, C, E any](p Parser[A, T, C, E], in Input[T], ctx C) (A, *Error[T, E]) {
	a, _, err := p(State[T, C]{In: in, Pos: in.Base(), Ctx: ctx})
	return a, err
}

// Pure succeeds immediately with value, consuming nothing.
func Pure[A any, T comparable, C, E any](value A) Parser[A, T, C, E] {
	return func(st State[T, C]) (A, State[T, C], *Error[T, E]) {
		return value, st, nil
	}
}

// Bind runs p, then feeds its result to f to obtain the continuation.
// Failures of p propagate unchanged. Every higher-level combinator in
// this package bottoms out in Bind.
func Bind[A, B any, T comparable, C, E any](p Parser[A, T, C, E], f func(A) Parser[B, T, C, E]) Parser[B, T, C, E] {
	return func(st State[T, C]) (B, State[T, C], *Error[T, E]) {
		a, next, err := p(st)
		if err != nil {
			var zero B
			return zero, st, err
		}
		return f(a)(next)
	}
}

// Map transforms the result of p with f.
func Map[A, B any, T comparable, C, E any](p Parser[A, T, C, E], f func(A) B) Parser[B, T, C, E] {
	return func(st State[T, C]) (B, State[T, C], *Error[T, E]) {
		a, next, err := p(st)
		if err != nil {
			var zero B
			return zero, st, err
		}
		return f(a), next, nil
	}
}

// Then sequences p and q, keeping q's result.
func Then[A, B any, T comparable, C, E any](p Parser[A, T, C, E], q Parser[B, T, C, E]) Parser[B, T, C, E] {
	return Bind(p, func(A) Parser[B, T, C, E] { return q })
}

// ThenSkip sequences p and q, keeping p's result.
func ThenSkip[A, B any, T comparable, C, E any](p Parser[A, T, C, E], q Parser[B, T, C, E]) Parser[A, T, C, E] {
	return Bind(p, func(a A) Parser[A, T, C, E] {
		return Map(q, func(B) A { return a })
	})
}

// Fail fails immediately with a custom payload and a zero-width span at
// the current position.
func Fail[A any, T comparable, C, E any](payload E) Parser[A, T, C, E] {
	return func(st State[T, C]) (A, State[T, C], *Error[T, E]) {
		var zero A
		return zero, st, NewCustom[T, E](source.At(st.Pos), payload)
	}
}

// FailMsg fails immediately with a structural error: zero-width span at
// the current position, got set to the message, empty expected set.
func FailMsg[A any, T comparable, C, E any](msg string) Parser[A, T, C, E] {
	return func(st State[T, C]) (A, State[T, C], *Error[T, E]) {
		var zero A
		return zero, st, NewStructural[E](source.At(st.Pos), MsgPart[T](msg))
	}
}

// Position reads the current position without consuming input.
func Position[T comparable, C, E any]() Parser[source.Pos, T, C, E] {
	return func(st State[T, C]) (source.Pos, State[T, C], *Error[T, E]) {
		return st.Pos, st, nil
	}
}

// Context reads the current context value without consuming input.
func Context[T comparable, C, E any]() Parser[C, T, C, E] {
	return func(st State[T, C]) (C, State[T, C], *Error[T, E]) {
		return st.Ctx, st, nil
	}
}

// UpdateContext replaces the context with f(ctx). The new value is not
// scoped: it threads forward through the rest of the sequential chain,
// like state, until another update replaces it or backtracking rewinds
// past this step.
func UpdateContext[T comparable, C, E any](f func(C) C) Parser[struct{}, T, C, E] {
	return func(st State[T, C]) (struct{}, State[T, C], *Error[T, E]) {
		st.Ctx = f(st.Ctx)
		return struct{}{}, st, nil
	}
}

// Satisfy consumes one token matching pred, or soft-fails with the
// given expected parts (got is the offending token, or the end-of-input
// marker when the stream is exhausted).
func Satisfy[T comparable, C, E any](pred func(T) bool, expected ...Part[T]) Parser[T, T, C, E] {
	return func(st State[T, C]) (T, State[T, C], *Error[T, E]) {
		tok, rest, next, ok := st.In.Next(st.Pos)
		if !ok {
			var zero T
			return zero, st, NewStructural[E](source.At(st.Pos), EndOfInput[T](), expected...)
		}
		if !pred(tok) {
			var zero T
			return zero, st, NewStructural[E](source.At(st.Pos), TokenPart(tok), expected...)
		}
		return tok, State[T, C]{In: rest, Pos: next, Ctx: st.Ctx}, nil
	}
}

// Token consumes exactly the given token.
func Token[T comparable, C, E any](want T) Parser[T, T, C, E] {
	return Satisfy[T, C, E](func(tok T) bool { return tok == want }, TokenPart(want))
}

// Any consumes the next token unconditionally, failing only at end of
// input.
func Any[T comparable, C, E any]() Parser[T, T, C, E] {
	return Satisfy[T, C, E](func(T) bool { return true })
}

// End succeeds only when the stream is exhausted.
func End[T comparable, C, E any]() Parser[struct{}, T, C, E] {
	return func(st State[T, C]) (struct{}, State[T, C], *Error[T, E]) {
		if tok, _, _, ok := st.In.Next(st.Pos); ok {
			return struct{}{}, st, NewStructural[E](source.At(st.Pos), TokenPart(tok), EndOfInput[T]())
		}
		return struct{}{}, st, nil
	}
}
