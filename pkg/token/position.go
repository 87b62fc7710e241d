// Package token defines source positions and diagnostic excerpts shared
// by the lexer and the driver.
package token

import (
	"fmt"
	"strings"
)

// Position represents a location in the source text.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number
	Offset int // 0-based byte offset
}

// IsValid returns true if the position is valid (line > 0).
func (p Position) IsValid() bool {
	return p.Line > 0
}

// String returns "line L, column C".
func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

// PositionAt derives the 1-based line and column of a byte offset by
// counting newlines before it. Offsets past the end of src clamp to the
// end of the text.
func PositionAt(src string, offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(src) {
		offset = len(src)
	}
	before := src[:offset]
	line := strings.Count(before, "\n") + 1
	col := offset - strings.LastIndexByte(before, '\n')
	return Position{Line: line, Column: col, Offset: offset}
}

// Span represents a half-open range in the source text.
type Span struct {
	Start Position
	End   Position
}

// Contains returns true if the span contains the given offset.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start.Offset && offset < s.End.Offset
}

// excerptContext is how many lines before the failure are shown.
const excerptContext = 4

// Excerpt renders the failing line preceded by up to four lines of
// context, with a caret aligned under the offending column. The output
// is purely diagnostic; callers asserting on failures should compare
// the reported line and column instead.
func Excerpt(src string, pos Position) string {
	if !pos.IsValid() {
		return ""
	}
	lines := strings.Split(src, "\n")
	if pos.Line > len(lines) {
		return ""
	}
	first := pos.Line - excerptContext
	if first < 1 {
		first = 1
	}

	width := len(fmt.Sprintf("%d", pos.Line))
	var b strings.Builder
	for n := first; n <= pos.Line; n++ {
		fmt.Fprintf(&b, "%*d | %s\n", width, n, lines[n-1])
	}
	fmt.Fprintf(&b, "%s | %s^", strings.Repeat(" ", width), strings.Repeat(" ", pos.Column-1))
	return b.String()
}
