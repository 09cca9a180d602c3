// Package json is an example consumer of the combinator engine: a JSON
// value grammar assembled entirely from parse and scan primitives. It
// adds no engine behavior of its own; nesting depth is tracked through
// the parser context and overflow surfaces as a custom failure.
package json

import (
	"fmt"
	"strconv"

	"skein/internal/parse"
	"skein/internal/scan"
	"skein/internal/source"
)

// Kind tags a JSON value.
type Kind uint8

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

// Value is a parsed JSON value. Object fields keep their source order.
type Value struct {
	Kind   Kind
	Span   source.Span
	Bool   bool
	Num    float64
	Str    string
	Items  []Value
	Fields []Field
}

// Field is one object member.
type Field struct {
	Name  string
	Value Value
}

// Interface converts a value into the usual any-shaped tree
// (nil / bool / float64 / string / []any / map[string]any), which the
// CLI feeds to its JSON and msgpack encoders.
func (v Value) Interface() any {
	switch v.Kind {
	case Bool:
		return v.Bool
	case Number:
		return v.Num
	case String:
		return v.Str
	case Array:
		items := make([]any, 0, len(v.Items))
		for _, it := range v.Items {
			items = append(items, it.Interface())
		}
		return items
	case Object:
		obj := make(map[string]any, len(v.Fields))
		for _, f := range v.Fields {
			obj[f.Name] = f.Value.Interface()
		}
		return obj
	default:
		return nil
	}
}

// ctx threads the nesting depth through the run.
type ctx struct {
	depth int
	limit int
}

// P is the grammar's parser shape: rune tokens, depth context, error
// payloads.
type P[A any] = parse.Parser[A, rune, ctx, error]

// DefaultMaxDepth bounds nesting when Options.MaxDepth is zero.
const DefaultMaxDepth = 64

// Options configures a parse run.
type Options struct {
	// MaxDepth caps array/object nesting; 0 means DefaultMaxDepth,
	// negative means unlimited.
	MaxDepth int
}

// valueP is assigned in init: the grammar is mutually recursive, and
// tying the knot by hand keeps the package-level initializers acyclic.
var (
	valueP  P[Value]
	arrayP  P[Value]
	objectP P[Value]
)

// value delegates to valueP so recursive productions can reference the
// grammar before init has built it.
func value(st parse.State[rune, ctx]) (Value, parse.State[rune, ctx], *parse.Error[rune, error]) {
	return valueP(st)
}

func init() {
	arrayP = bracketed('[', ']',
		parse.Map(parse.Sep[Value, string, rune, ctx, error](value, lex(",")),
			func(items []Value) Value { return Value{Kind: Array, Items: items} }))

	member := parse.Bind(
		scan.Lexeme(parse.Label("an object key", scan.StringLit[ctx, error]())),
		func(name string) P[Field] {
			return parse.Then(lex(":"), parse.Map(P[Value](value), func(v Value) Field {
				return Field{Name: name, Value: v}
			}))
		},
	)
	objectP = bracketed('{', '}',
		parse.Map(parse.Sep[Field, string, rune, ctx, error](member, lex(",")),
			func(fields []Field) Value { return Value{Kind: Object, Fields: fields} }))

	valueP = scan.Lexeme(spanned(parse.Label("a JSON value", parse.Choice(
		objectP,
		arrayP,
		stringP(),
		literal("true", Value{Kind: Bool, Bool: true}),
		literal("false", Value{Kind: Bool, Bool: false}),
		literal("null", Value{Kind: Null}),
		numberP(),
	))))
}

// Parse parses a complete JSON document: one value, surrounded by
// optional whitespace, consuming the whole input.
func Parse(buf *source.Buffer, opts Options) (Value, *parse.Error[rune, error]) {
	limit := opts.MaxDepth
	if limit == 0 {
		limit = DefaultMaxDepth
	}
	doc := parse.Then(scan.Spaces[ctx, error](),
		parse.ThenSkip(P[Value](value), parse.End[rune, ctx, error]()))
	return parse.Run(doc, scan.NewText(buf), ctx{limit: limit})
}

// ParseString is a convenience wrapper for tests and embedding.
func ParseString(input string, opts Options) (Value, *parse.Error[rune, error]) {
	return Parse(source.NewString(input), opts)
}

func lex(lit string) P[string] {
	return scan.Lexeme(scan.Lit[ctx, error](lit))
}

// bracketed wraps body in open/close delimiters and one depth level.
func bracketed(open, closing rune, body P[Value]) P[Value] {
	return parse.ThenSkip(
		parse.Then(scan.Lexeme(scan.Rune[ctx, error](open)),
			parse.Then(enter(), parse.ThenSkip(body, scan.Lexeme(scan.Rune[ctx, error](closing))))),
		leave(),
	)
}

// enter fails with a custom error once nesting exceeds the limit; leave
// unwinds on the way out. The context threads forward, so the unwind
// must be explicit.
func enter() P[struct{}] {
	return parse.Bind(parse.Context[rune, ctx, error](), func(c ctx) P[struct{}] {
		if c.limit > 0 && c.depth >= c.limit {
			return parse.Fail[struct{}, rune, ctx, error](fmt.Errorf("nesting deeper than %d levels", c.limit))
		}
		return parse.UpdateContext[rune, ctx, error](func(c ctx) ctx {
			c.depth++
			return c
		})
	})
}

func leave() P[struct{}] {
	return parse.UpdateContext[rune, ctx, error](func(c ctx) ctx {
		c.depth--
		return c
	})
}

// spanned records the consumed span on the value.
func spanned(p P[Value]) P[Value] {
	return parse.Bind(parse.Position[rune, ctx, error](), func(start source.Pos) P[Value] {
		return parse.Bind(p, func(v Value) P[Value] {
			return parse.Map(parse.Position[rune, ctx, error](), func(end source.Pos) Value {
				v.Span = source.Span{Start: start, End: end}
				return v
			})
		})
	})
}

func literal(lit string, v Value) P[Value] {
	return parse.Map(scan.Lit[ctx, error](lit), func(string) Value { return v })
}

func numberP() P[Value] {
	return parse.Bind(
		parse.Label("a number", scan.Regexp[ctx, error](`-?(?:0|[1-9][0-9]*)(?:\.[0-9]+)?(?:[eE][+-]?[0-9]+)?`)),
		func(text string) P[Value] {
			n, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return parse.Fail[Value, rune, ctx, error](fmt.Errorf("bad number %q: %w", text, err))
			}
			return parse.Pure[Value, rune, ctx, error](Value{Kind: Number, Num: n})
		},
	)
}

func stringP() P[Value] {
	return parse.Map(scan.StringLit[ctx, error](), func(s string) Value {
		return Value{Kind: String, Str: s}
	})
}
