package scan

import (
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"

	"skein/internal/parse"
	"skein/internal/source"
)

// Text is a persistent rune stream over a source.Buffer. A Text value
// is a view: consuming a rune returns a new view on the same buffer,
// the buffer itself is never touched.
type Text struct {
	buf *source.Buffer
	off uint32
}

// NewText creates a stream view positioned at the start of buf.
func NewText(buf *source.Buffer) Text {
	return Text{buf: buf}
}

// NewTextString builds a normalized buffer from s and wraps it.
func NewTextString(s string) Text {
	return NewText(source.NewString(s))
}

// Buffer exposes the backing buffer.
func (t Text) Buffer() *source.Buffer {
	return t.buf
}

// Next decodes the rune at the view's offset. Position advance is
// newline-aware: '\n' starts a new line at column 1, any other rune
// moves one column right. Offsets advance by the rune's encoded byte
// length.
func (t Text) Next(pos source.Pos) (rune, parse.Input[rune], source.Pos, bool) {
	if t.off >= t.buf.Len() {
		return 0, t, pos, false
	}
	r, size := utf8.DecodeRune(t.buf.Content[t.off:])
	width, err := safecast.Conv[uint32](size)
	if err != nil {
		panic(fmt.Errorf("rune width overflow: %w", err))
	}
	return r, Text{buf: t.buf, off: t.off + width}, advance(pos, r, width), true
}

// Window delegates to the backing buffer.
func (t Text) Window(span source.Span) (before, within, after string) {
	return t.buf.Window(span)
}

// Base returns the initial position of the stream.
func (t Text) Base() source.Pos {
	return source.Start()
}

func advance(pos source.Pos, r rune, width uint32) source.Pos {
	next := source.Pos{Offset: pos.Offset + width, Line: pos.Line, Col: pos.Col + 1}
	if r == '\n' {
		next.Line = pos.Line + 1
		next.Col = 1
	}
	return next
}
