package scan

import (
	"fmt"
	"regexp"

	"fortio.org/safecast"

	"skein/internal/parse"
	"skein/internal/source"
)

// Regexp matches pattern anchored to the current position of a Text
// stream and returns the matched substring, advancing newline-aware.
//
// Misses are structural failures: Msg("Regex failed") when nothing
// matches here, Msg("Zero-length match") when the match consumed no
// characters (repetition over such a parser would never terminate). An
// invalid pattern is a configuration error surfaced through the same
// channel, carrying the regexp engine's diagnostic.
func Regexp[C, E any](pattern string) parse.Parser[string, rune, C, E] {
	re, compileErr := regexp.Compile(`\A(?:` + pattern + `)`)

	return func(st parse.State[rune, C]) (string, parse.State[rune, C], *parse.Error[rune, E]) {
		if compileErr != nil {
			return "", st, parse.NewStructural[E](source.At(st.Pos), parse.MsgPart[rune](compileErr.Error()))
		}
		txt, ok := st.In.(Text)
		if !ok {
			return "", st, parse.NewStructural[E](source.At(st.Pos), parse.MsgPart[rune]("regex matching requires a text stream"))
		}

		loc := re.FindIndex(txt.buf.Content[txt.off:])
		if loc == nil {
			return "", st, parse.NewStructural[E](source.At(st.Pos), parse.MsgPart[rune]("Regex failed"))
		}
		if loc[1] == 0 {
			return "", st, parse.NewStructural[E](source.At(st.Pos), parse.MsgPart[rune]("Zero-length match"))
		}

		length, err := safecast.Conv[uint32](loc[1])
		if err != nil {
			panic(fmt.Errorf("match length overflow: %w", err))
		}
		matched := string(txt.buf.Content[txt.off : txt.off+length])

		// проматываем совпадение через Next, чтобы line/col остались честными
		cur := st
		stop := st.Pos.Offset + length
		for cur.Pos.Offset < stop {
			_, rest, next, ok := cur.In.Next(cur.Pos)
			if !ok {
				break
			}
			cur = parse.State[rune, C]{In: rest, Pos: next, Ctx: cur.Ctx}
		}
		return matched, cur, nil
	}
}
