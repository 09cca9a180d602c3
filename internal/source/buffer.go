package source

import (
	"fmt"
	"os"
	"slices"

	"fortio.org/safecast"
	"golang.org/x/text/unicode/norm"
)

// BufferFlags encodes what normalization happened when the buffer was built.
type BufferFlags uint8

const (
	// BufferHadBOM indicates a UTF-8 BOM was stripped from the content.
	BufferHadBOM BufferFlags = 1 << iota
	BufferNormalizedCRLF
	BufferNormalizedNFC
)

// Buffer is an immutable Unicode text buffer with a precomputed line
// index. It is the backing store for text streams and the source of
// truth for diagnostic windows; nothing mutates Content after New.
type Buffer struct {
	Content []byte
	LineIdx []uint32 // byte offsets of every '\n'
	Flags   BufferFlags
}

// Options controls normalization applied while building a Buffer.
type Options struct {
	// NFC re-composes the content to Unicode NFC before indexing.
	NFC bool
}

// New builds a buffer from raw bytes: strips a UTF-8 BOM, normalizes
// CRLF to LF, optionally applies NFC, then indexes line breaks.
func New(content []byte, opts Options) *Buffer {
	content, hadBOM := removeBOM(content)
	content, hadCRLF := normalizeCRLF(content)

	flags := BufferFlags(0)
	if hadBOM {
		flags |= BufferHadBOM
	}
	if hadCRLF {
		flags |= BufferNormalizedCRLF
	}
	if opts.NFC && !norm.NFC.IsNormal(content) {
		content = norm.NFC.Bytes(content)
		flags |= BufferNormalizedNFC
	}

	return &Buffer{
		Content: content,
		LineIdx: buildLineIndex(content),
		Flags:   flags,
	}
}

// NewString is a convenience wrapper over New for test and API use.
func NewString(content string) *Buffer {
	return New([]byte(content), Options{})
}

// Load reads a file from disk and builds a buffer from it.
func Load(path string, opts Options) (*Buffer, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return New(content, opts), nil
}

// Len returns the content length in bytes.
func (b *Buffer) Len() uint32 {
	n, err := safecast.Conv[uint32](len(b.Content))
	if err != nil {
		panic(fmt.Errorf("buffer length overflow: %w", err))
	}
	return n
}

// normalizeCRLF заменяет все \r\n на \n, не трогая одиночные \r.
func normalizeCRLF(content []byte) ([]byte, bool) {
	if !slices.Contains(content, '\r') {
		return content, false
	}

	out := make([]byte, 0, len(content))
	changed := false

	i := 0
	for i < len(content) {
		if content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			out = append(out, '\n')
			i += 2
			changed = true
		} else {
			out = append(out, content[i])
			i++
		}
	}
	return out, changed
}

func removeBOM(content []byte) ([]byte, bool) {
	if len(content) < 3 {
		return content, false
	}
	if content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		return content[3:], true
	}
	return content, false
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, len(content)/32)
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i))
		}
	}
	return out
}
