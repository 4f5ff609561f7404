package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"rill/internal/source"
)

// Cursor tracks a byte position inside a single file's content.
type Cursor struct {
	file *source.File
	pos  uint32
}

// NewCursor positions a cursor at the start of file.
func NewCursor(file *source.File) Cursor {
	return Cursor{file: file}
}

// EOF reports whether the cursor has consumed the whole file.
func (c *Cursor) EOF() bool {
	return int(c.pos) >= len(c.file.Content)
}

// Peek returns the current byte without consuming it, or 0 at EOF.
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.file.Content[c.pos]
}

// PeekAt returns the byte n positions ahead, or 0 past EOF.
func (c *Cursor) PeekAt(n uint32) byte {
	idx := c.pos + n
	if int(idx) >= len(c.file.Content) {
		return 0
	}
	return c.file.Content[idx]
}

// Bump consumes the current byte.
func (c *Cursor) Bump() {
	if !c.EOF() {
		c.pos++
	}
}

// BumpBy consumes n bytes, clamping at the end of the file.
func (c *Cursor) BumpBy(n uint32) {
	c.pos += n
	if end := mustU32(len(c.file.Content)); c.pos > end {
		c.pos = end
	}
}

// Mark records the current offset for a later SpanFrom.
func (c *Cursor) Mark() uint32 {
	return c.pos
}

// SpanFrom builds a span from a previous Mark to the current offset.
func (c *Cursor) SpanFrom(start uint32) source.Span {
	return source.Span{File: c.file.ID, Start: start, End: c.pos}
}

// Offset returns the current byte offset.
func (c *Cursor) Offset() uint32 {
	return c.pos
}

func mustU32(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("offset overflow: %w", err))
	}
	return v
}
