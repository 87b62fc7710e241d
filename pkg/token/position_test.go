package token

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPositionAt(t *testing.T) {
	src := "ab\ncd\n\nefg"

	tests := []struct {
		name   string
		offset int
		line   int
		column int
	}{
		{"start of text", 0, 1, 1},
		{"middle of first line", 1, 1, 2},
		{"newline itself", 2, 1, 3},
		{"start of second line", 3, 2, 1},
		{"second char of second line", 4, 2, 2},
		{"empty line", 6, 3, 1},
		{"last line", 7, 4, 1},
		{"end of text", len(src), 4, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := PositionAt(src, tt.offset)
			assert.Equal(t, tt.line, pos.Line, "line")
			assert.Equal(t, tt.column, pos.Column, "column")
			assert.Equal(t, tt.offset, pos.Offset, "offset")
		})
	}
}

func TestPositionAt_Clamps(t *testing.T) {
	pos := PositionAt("ab", 99)
	assert.Equal(t, 2, pos.Offset)

	pos = PositionAt("ab", -5)
	assert.Equal(t, 0, pos.Offset)
	assert.Equal(t, 1, pos.Line)
}

func TestSpan_Contains(t *testing.T) {
	s := Span{Start: Position{Line: 1, Column: 1, Offset: 2}, End: Position{Line: 1, Column: 5, Offset: 6}}
	assert.False(t, s.Contains(1))
	assert.True(t, s.Contains(2))
	assert.True(t, s.Contains(5))
	assert.False(t, s.Contains(6))
}

func TestExcerpt_ContextLimit(t *testing.T) {
	src := strings.Join([]string{"l1", "l2", "l3", "l4", "l5", "l6 bad", "l7"}, "\n")
	pos := PositionAt(src, strings.Index(src, "bad"))
	require.Equal(t, 6, pos.Line)
	require.Equal(t, 4, pos.Column)

	got := Excerpt(src, pos)
	lines := strings.Split(got, "\n")
	// 4 preceding lines, the failing line, and the caret line.
	require.Len(t, lines, 6)
	assert.NotContains(t, got, "l1")
	assert.Contains(t, lines[0], "l2")
	assert.Contains(t, lines[4], "l6 bad")

	caret := lines[5]
	assert.Equal(t, "^", strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(caret), "|")))
}

func TestExcerpt_CaretColumn(t *testing.T) {
	got := Excerpt("abc def", Position{Line: 1, Column: 5, Offset: 4})
	lines := strings.Split(got, "\n")
	require.Len(t, lines, 2)

	// Both lines share the "N | " gutter, so the caret lines up with the
	// offending column when the gutter widths match.
	gutter := strings.Index(lines[0], "| ")
	caretAt := strings.Index(lines[1], "^") - (gutter + 2)
	assert.Equal(t, 4, caretAt, "caret should sit under column 5")
}

func TestExcerpt_InvalidPosition(t *testing.T) {
	assert.Empty(t, Excerpt("abc", Position{}))
	assert.Empty(t, Excerpt("abc", Position{Line: 9, Column: 1}))
}
