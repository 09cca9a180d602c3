package source

import (
	"fmt"
)

// Span is a half-open [Start, End) range of positions, End >= Start.
// A zero-width span (Start == End) marks a point failure: nothing was
// consumed at that location.
type Span struct {
	Start Pos
	End   Pos
}

// At returns the zero-width span at pos.
func At(pos Pos) Span {
	return Span{Start: pos, End: pos}
}

func (s Span) Empty() bool {
	return s.Start.Offset == s.End.Offset
}

func (s Span) Len() uint32 {
	return s.End.Offset - s.Start.Offset
}

func (s Span) String() string {
	return fmt.Sprintf("%s-%s", s.Start, s.End)
}

// Cover extends s to include other.
func (s Span) Cover(other Span) Span {
	if other.Start.Offset < s.Start.Offset {
		s.Start = other.Start
	}
	if other.End.Offset > s.End.Offset {
		s.End = other.End
	}
	return s
}
