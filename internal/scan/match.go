package scan

import (
	"skein/internal/parse"
	"skein/internal/source"
)

// Rune consumes exactly the given rune.
func Rune[C, E any](want rune) parse.Parser[rune, rune, C, E] {
	return parse.Token[rune, C, E](want)
}

// RuneWhere consumes one rune matching pred, described by label in
// expected sets.
func RuneWhere[C, E any](pred func(rune) bool, label string) parse.Parser[rune, rune, C, E] {
	return parse.Satisfy[rune, C, E](pred, parse.MsgPart[rune](label))
}

// Lit consumes the literal rune sequence lit. A mismatch on the first
// rune is a soft failure; a mismatch after at least one consumed rune
// commits.
func Lit[C, E any](lit string) parse.Parser[string, rune, C, E] {
	return func(st parse.State[rune, C]) (string, parse.State[rune, C], *parse.Error[rune, E]) {
		cur := st
		for _, want := range lit {
			tok, rest, next, ok := cur.In.Next(cur.Pos)
			if !ok {
				return "", st, parse.NewStructural[E](source.At(cur.Pos), parse.EndOfInput[rune](), parse.TokenPart(want))
			}
			if tok != want {
				return "", st, parse.NewStructural[E](source.At(cur.Pos), parse.TokenPart(tok), parse.TokenPart(want))
			}
			cur = parse.State[rune, C]{In: rest, Pos: next, Ctx: cur.Ctx}
		}
		return lit, cur, nil
	}
}

// Spaces skips any run of blanks, tabs, and newlines; it never fails.
func Spaces[C, E any]() parse.Parser[struct{}, rune, C, E] {
	blank := parse.Satisfy[rune, C, E](func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '\r'
	}, parse.MsgPart[rune]("whitespace"))
	return parse.Map(parse.Many(blank), func([]rune) struct{} { return struct{}{} })
}

// Lexeme runs p and then skips trailing whitespace, the usual tokenizer
// discipline for text grammars.
func Lexeme[A any, C, E any](p parse.Parser[A, rune, C, E]) parse.Parser[A, rune, C, E] {
	return parse.ThenSkip(p, Spaces[C, E]())
}
