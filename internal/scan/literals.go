package scan

import (
	"strconv"
	"strings"

	"skein/internal/parse"
)

// Token helpers for text grammars. All of them are plain combinator
// consumers: regex matchers wrapped in labels, with '_' allowed inside
// digit runs.

// Decimal matches an unsigned decimal integer literal.
func Decimal[C, E any]() parse.Parser[string, rune, C, E] {
	return parse.Label("decimal literal", Regexp[C, E](`[0-9][0-9_]*`))
}

// Hex matches a 0x-prefixed hexadecimal literal.
func Hex[C, E any]() parse.Parser[string, rune, C, E] {
	return parse.Label("hex literal", Regexp[C, E](`0[xX][0-9a-fA-F][0-9a-fA-F_]*`))
}

// Float matches a decimal literal with a fraction, an exponent, or
// both. A bare integer does not match.
func Float[C, E any]() parse.Parser[string, rune, C, E] {
	return parse.Label("float literal",
		Regexp[C, E](`[0-9][0-9_]*(?:\.[0-9][0-9_]*(?:[eE][+-]?[0-9]+)?|[eE][+-]?[0-9]+)`))
}

// StringLit matches a double-quoted string literal with backslash
// escapes (\" \\ \/ \n \t \r \b \f and \uXXXX) and returns the decoded
// value.
func StringLit[C, E any]() parse.Parser[string, rune, C, E] {
	quoted := parse.Label("string literal",
		Regexp[C, E](`"(?:[^"\\\n]|\\.)*"`))
	return parse.Map(quoted, func(raw string) string {
		return decodeEscapes(raw[1 : len(raw)-1])
	})
}

func decodeEscapes(body string) string {
	if !strings.ContainsRune(body, '\\') {
		return body
	}

	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); i++ {
		if body[i] != '\\' || i+1 == len(body) {
			b.WriteByte(body[i])
			continue
		}
		i++
		switch body[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case '"', '\\', '/':
			b.WriteByte(body[i])
		case 'u':
			if i+4 < len(body) {
				if code, err := strconv.ParseUint(body[i+1:i+5], 16, 32); err == nil {
					b.WriteRune(rune(code))
					i += 4
					continue
				}
			}
			// malformed \u: keep it verbatim
			b.WriteByte('\\')
			b.WriteByte('u')
		default:
			b.WriteByte('\\')
			b.WriteByte(body[i])
		}
	}
	return b.String()
}
