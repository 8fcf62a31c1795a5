// Package cursor provides the position marker the matcher walks over input
// text with.
//
// A Cursor is a plain value. Saving a position is copying the Cursor and
// restoring it is assigning the copy back; nothing is shared between copies.
package cursor

import (
	"unicode/utf8"
)

// Cursor represents a position inside an input text
type Cursor struct {
	// Remaining is the unconsumed suffix of the input
	Remaining string
	// Line is the 1-based line number of the next character
	Line int
	// Column is the 1-based column (in characters) of the next character
	Column int
	// Offset is the number of bytes consumed from the start of the input
	Offset int

	depth int
}

// New creates a cursor at the start of input
func New(input string) Cursor {
	return Cursor{
		Remaining: input,
		Line:      1,
		Column:    1,
	}
}

// AtEnd reports whether all input has been consumed
func (c Cursor) AtEnd() bool {
	return c.Remaining == ""
}

// Len returns the number of unconsumed bytes
func (c Cursor) Len() int {
	return len(c.Remaining)
}

// Peek returns the next character without consuming it
func (c Cursor) Peek() (rune, bool) {
	if c.Remaining == "" {
		return 0, false
	}

	r, _ := utf8.DecodeRuneInString(c.Remaining)

	return r, true
}

// PeekN returns the next n characters without consuming them.
// It returns false when fewer than n characters remain.
func (c Cursor) PeekN(n int) (string, bool) {
	end := 0

	for i := 0; i < n; i++ {
		if end >= len(c.Remaining) {
			return "", false
		}

		_, size := utf8.DecodeRuneInString(c.Remaining[end:])
		end += size
	}

	return c.Remaining[:end], true
}

// Next consumes one character and returns it along with the advanced cursor
func (c Cursor) Next() (rune, Cursor, bool) {
	if c.Remaining == "" {
		return 0, c, false
	}

	r, size := utf8.DecodeRuneInString(c.Remaining)
	c.Remaining = c.Remaining[size:]
	c.Offset += size

	if r == '\n' {
		c.Line++
		c.Column = 1
	} else {
		c.Column++
	}

	return r, c, true
}

// Advance consumes n bytes, keeping line and column in step.
// n is clamped to the remaining input.
func (c Cursor) Advance(n int) Cursor {
	if n > len(c.Remaining) {
		n = len(c.Remaining)
	}

	target := len(c.Remaining) - n
	for len(c.Remaining) > target {
		_, c, _ = c.Next()
	}

	return c
}

// AdvanceToEnd consumes all remaining input
func (c Cursor) AdvanceToEnd() Cursor {
	return c.Advance(len(c.Remaining))
}

// Consumed returns the text between from and c.
// from must be an earlier position over the same input.
func (c Cursor) Consumed(from Cursor) string {
	n := len(from.Remaining) - len(c.Remaining)
	if n <= 0 {
		return ""
	}

	return from.Remaining[:n]
}

// Limit returns a cursor at the same position whose input ends after n bytes
func (c Cursor) Limit(n int) Cursor {
	if n < len(c.Remaining) {
		c.Remaining = c.Remaining[:n]
	}

	return c
}

// Depth returns how many nested pattern invocations enclose this cursor
func (c Cursor) Depth() int {
	return c.depth
}

// Descend returns the cursor one nesting level deeper
func (c Cursor) Descend() Cursor {
	c.depth++
	return c
}

// AtDepth returns the cursor with its nesting level set to depth
func (c Cursor) AtDepth(depth int) Cursor {
	c.depth = depth
	return c
}
