package source

import "sort"

// Window extracts the three-part diagnostic context for a span:
// the text from the start of the span's first physical line up to the
// span, the spanned text itself, and the text from the span to the end
// of its last physical line. Concatenating the parts reconstructs the
// full lines the span touches. Out-of-range spans are clamped.
func (b *Buffer) Window(span Span) (before, within, after string) {
	length := b.Len()

	start := min(span.Start.Offset, length)
	end := min(span.End.Offset, length)
	if end < start {
		end = start
	}

	lineStart := b.lineStartBefore(start)
	lineEnd := b.lineEndAfter(end)

	before = string(b.Content[lineStart:start])
	within = string(b.Content[start:end])
	after = string(b.Content[end:lineEnd])
	return before, within, after
}

// lineStartBefore returns the offset of the first byte of the line
// containing off.
func (b *Buffer) lineStartBefore(off uint32) uint32 {
	// первый \n с индексом >= off отделяет следующую строку;
	// нас интересует последний \n строго до off
	i := sort.Search(len(b.LineIdx), func(i int) bool {
		return b.LineIdx[i] >= off
	})
	if i == 0 {
		return 0
	}
	return b.LineIdx[i-1] + 1
}

// lineEndAfter returns the offset one past the last byte of the line
// containing off, excluding the trailing newline itself.
func (b *Buffer) lineEndAfter(off uint32) uint32 {
	i := sort.Search(len(b.LineIdx), func(i int) bool {
		return b.LineIdx[i] >= off
	})
	if i == len(b.LineIdx) {
		return b.Len()
	}
	return b.LineIdx[i]
}

// LineCol resolves a byte offset to a 1-based line/column pair using
// the line index. Column is measured in bytes from the line start.
func (b *Buffer) LineCol(off uint32) (line, col uint32) {
	start := b.lineStartBefore(off)
	i := sort.Search(len(b.LineIdx), func(i int) bool {
		return b.LineIdx[i] >= off
	})
	return uint32(i) + 1, off - start + 1
}
