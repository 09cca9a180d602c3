// Package sexpr is an example consumer of the combinator engine: a
// small s-expression grammar with symbols, numbers, strings, lists, and
// the ' quote sugar.
package sexpr

import (
	"strconv"

	"skein/internal/parse"
	"skein/internal/scan"
	"skein/internal/source"
)

// Kind tags a node.
type Kind uint8

const (
	Symbol Kind = iota
	Number
	String
	List
)

// Node is one s-expression.
type Node struct {
	Kind  Kind
	Span  source.Span
	Text  string // symbol name or string value
	Num   float64
	Items []Node
}

// Interface converts the node into an any-shaped tree: symbols become
// strings, lists become []any.
func (n Node) Interface() any {
	switch n.Kind {
	case Number:
		return n.Num
	case String, Symbol:
		return n.Text
	default:
		items := make([]any, 0, len(n.Items))
		for _, it := range n.Items {
			items = append(items, it.Interface())
		}
		return items
	}
}

type noCtx = struct{}

// P is the grammar's parser shape: no context, error payloads.
type P[A any] = parse.Parser[A, rune, noCtx, error]

var exprP P[Node]

func expr(st parse.State[rune, noCtx]) (Node, parse.State[rune, noCtx], *parse.Error[rune, error]) {
	return exprP(st)
}

func init() {
	list := parse.Map(
		parse.Between(lex("("), parse.Many(P[Node](expr)), lex(")")),
		func(items []Node) Node { return Node{Kind: List, Items: items} })

	quoted := parse.Then(scan.Rune[noCtx, error]('\''),
		parse.Map(P[Node](expr), func(n Node) Node {
			return Node{Kind: List, Items: []Node{{Kind: Symbol, Text: "quote"}, n}}
		}))

	exprP = scan.Lexeme(spanned(parse.Label("an expression", parse.Choice(
		list,
		quoted,
		stringNode(),
		numberNode(),
		symbolNode(),
	))))
}

// Parse reads a single expression spanning the whole input.
func Parse(buf *source.Buffer) (Node, *parse.Error[rune, error]) {
	doc := parse.Then(scan.Spaces[noCtx, error](),
		parse.ThenSkip(P[Node](expr), parse.End[rune, noCtx, error]()))
	return parse.Run(doc, scan.NewText(buf), noCtx{})
}

// ParseString is a convenience wrapper for tests and embedding.
func ParseString(input string) (Node, *parse.Error[rune, error]) {
	return Parse(source.NewString(input))
}

func lex(lit string) P[string] {
	return scan.Lexeme(scan.Lit[noCtx, error](lit))
}

func spanned(p P[Node]) P[Node] {
	return parse.Bind(parse.Position[rune, noCtx, error](), func(start source.Pos) P[Node] {
		return parse.Bind(p, func(n Node) P[Node] {
			return parse.Map(parse.Position[rune, noCtx, error](), func(end source.Pos) Node {
				n.Span = source.Span{Start: start, End: end}
				return n
			})
		})
	})
}

func numberNode() P[Node] {
	return parse.Bind(
		parse.Label("a number", scan.Regexp[noCtx, error](`-?[0-9]+(?:\.[0-9]+)?`)),
		func(text string) P[Node] {
			n, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return parse.FailMsg[Node, rune, noCtx, error]("bad number " + text)
			}
			return parse.Pure[Node, rune, noCtx, error](Node{Kind: Number, Num: n})
		},
	)
}

func stringNode() P[Node] {
	return parse.Map(scan.StringLit[noCtx, error](), func(s string) Node {
		return Node{Kind: String, Text: s}
	})
}

func symbolNode() P[Node] {
	return parse.Map(
		parse.Label("a symbol", scan.Regexp[noCtx, error](`[A-Za-z+*/<>=!?_.-][A-Za-z0-9+*/<>=!?_.-]*`)),
		func(s string) Node { return Node{Kind: Symbol, Text: s} })
}
