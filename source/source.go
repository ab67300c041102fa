// Package source holds the byte-level view of a Marble program: the raw
// text, a precomputed line index for turning byte offsets into (line,
// column) pairs, and the compile-time identifier scope stack used to
// resolve names to de Bruijn depths.
package source

import (
	"sort"

	"github.com/skx/marble/token"
)

// Position is a 1-based (line, column) pair plus the 0-based byte offset
// it was derived from.
type Position struct {
	Line   int
	Column int
	Offset int
}

// Source is an immutable UTF-8 byte sequence plus a precomputed line-start
// index, letting callers cheaply map a Token's byte range back to text and
// to a human-readable position.
type Source struct {
	bytes      []byte
	lineStarts []int // byte offset of the first byte of each line
}

// New builds a Source over the given bytes, indexing line starts once.
func New(src []byte) *Source {
	starts := []int{0}
	for i, b := range src {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &Source{bytes: src, lineStarts: starts}
}

// Bytes returns the underlying source bytes.
func (s *Source) Bytes() []byte {
	return s.bytes
}

// Len returns the number of bytes in the source.
func (s *Source) Len() int {
	return len(s.bytes)
}

// Lexeme extracts the raw text a Token's byte range covers.
func (s *Source) Lexeme(t token.Token) string {
	start, end := t.Range.Start, t.Range.End
	if start < 0 {
		start = 0
	}
	if end > len(s.bytes) {
		end = len(s.bytes)
	}
	if start > end {
		return ""
	}
	return string(s.bytes[start:end])
}

// PositionAt converts a byte offset into a 1-based (line, column).
func (s *Source) PositionAt(offset int) Position {
	// lineStarts is sorted; find the last start <= offset.
	line := sort.Search(len(s.lineStarts), func(i int) bool {
		return s.lineStarts[i] > offset
	}) - 1
	if line < 0 {
		line = 0
	}
	column := offset - s.lineStarts[line] + 1
	return Position{Line: line + 1, Column: column, Offset: offset}
}

// Start returns the Position of a Token's first byte.
func (s *Source) Start(t token.Token) Position {
	return s.PositionAt(t.Range.Start)
}
