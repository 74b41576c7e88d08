package parser

import (
	"unicode/utf8"

	"uma/token"
)

// Cursor walks source text one Unicode scalar at a time and tracks the
// position of the current scalar. Once the input is exhausted AtEnd stays
// true; the zero rune is never handed out as data.
type Cursor struct {
	source  string
	offset  int // byte offset of current
	width   int // byte width of current
	current rune
	line    int
	column  int
	eof     bool
}

func NewCursor(source string) *Cursor {
	c := &Cursor{source: source, line: 1}
	if source == "" {
		c.eof = true
		return c
	}
	c.current, c.width = utf8.DecodeRuneInString(source)
	return c
}

// Current returns the scalar under the cursor. It must not be used once AtEnd
// reports true.
func (c *Cursor) Current() rune {
	return c.current
}

func (c *Cursor) AtEnd() bool {
	return c.eof
}

// Advance moves one scalar forward and returns the new current scalar.
// Leaving a newline starts a new line at column 0.
func (c *Cursor) Advance() (rune, bool) {
	if c.eof {
		return 0, false
	}

	if c.current == '\n' {
		c.line++
		c.column = 0
	} else {
		c.column++
	}

	c.offset += c.width
	if c.offset >= len(c.source) {
		c.eof = true
		c.current, c.width = 0, 0
		return 0, false
	}

	c.current, c.width = utf8.DecodeRuneInString(c.source[c.offset:])
	return c.current, true
}

// Peek returns the scalar after the current one without moving.
func (c *Cursor) Peek() (rune, bool) {
	return c.PeekN(1)
}

// PeekN looks n scalars ahead of the current one.
func (c *Cursor) PeekN(n int) (rune, bool) {
	if c.eof {
		return 0, false
	}

	off := c.offset + c.width
	for i := 1; ; i++ {
		if off >= len(c.source) {
			return 0, false
		}
		r, w := utf8.DecodeRuneInString(c.source[off:])
		if i == n {
			return r, true
		}
		off += w
	}
}

// Since counts the scalars between start and the current position.
func (c *Cursor) Since(start token.Position) int {
	return utf8.RuneCountInString(c.source[start.Offset:c.offset])
}

// Position of the current scalar (or of the end of input).
func (c *Cursor) Position() token.Position {
	return token.Position{Line: c.line, Column: c.column, Offset: c.offset}
}
