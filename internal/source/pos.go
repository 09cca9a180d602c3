package source

import "fmt"

// Pos is an absolute location in an input stream.
// Offset is the monotonic byte index and is the only field the engine
// compares when deciding whether a parser consumed input; Line and Col
// exist for human-readable diagnostics (both 1-based).
type Pos struct {
	Offset uint32
	Line   uint32 // 1-based
	Col    uint32 // 1-based
}

// Start is the initial position of any stream.
func Start() Pos {
	return Pos{Offset: 0, Line: 1, Col: 1}
}

// SamePoint reports whether p and q denote the same stream point.
// Line/Col are deliberately ignored: they can alias across encodings,
// the byte offset cannot.
func (p Pos) SamePoint(q Pos) bool {
	return p.Offset == q.Offset
}

// Before reports whether p precedes q in the stream.
func (p Pos) Before(q Pos) bool {
	return p.Offset < q.Offset
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}
