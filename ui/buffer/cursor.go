package buffer

import "math"

// So why is the code for moving the cursor in the buffer package, and not in the
// TextSurface component? The cursor needs to have a reference to the buffer to
// know where lines end and how it can move. The buffer is the city, and the
// Cursor is the car.

type position struct {
	line int
	col  int
}

// A Region represents a span of the buffer, such as a selection. The start is
// never after the end, and the end is exclusive. As a Region spans multiple
// lines, those connecting line-delimiters are included in it, as well.
type Region struct {
	Start Cursor
	End   Cursor
}

// NewRegion returns the Region between `a` and `b`, in whichever order they
// were given.
func NewRegion(a, b Cursor) Region {
	if b.Less(a) {
		a, b = b, a
	}
	return Region{a, b}
}

// Empty returns whether the Region spans no characters.
func (r Region) Empty() bool {
	return r.Start.line == r.End.line && r.Start.col == r.End.col
}

// A Cursor's functions emulate common cursor actions. Cursors are values: every
// movement returns a new Cursor.
type Cursor struct {
	buffer  *Buffer
	prevCol int // Column to return to when moving vertically
	position
}

func NewCursor(in *Buffer) Cursor {
	return Cursor{
		buffer: in,
	}
}

func (c Cursor) Left() Cursor {
	if c.col == 0 && c.line != 0 { // If we are at the beginning of the current line...
		// Go to the end of the above line
		c.line--
		c.col = (*c.buffer).RunesInLine(c.line)
	} else {
		c.col = Max(c.col-1, 0)
	}
	c.prevCol = c.col
	return c
}

func (c Cursor) Right() Cursor {
	// If we are at the end of the current line,
	// and not at the last line...
	if c.col >= (*c.buffer).RunesInLine(c.line) && c.line < (*c.buffer).Lines()-1 {
		c.line, c.col = (*c.buffer).ClampLineCol(c.line+1, 0) // Go to beginning of line below
	} else {
		c.line, c.col = (*c.buffer).ClampLineCol(c.line, c.col+1)
	}
	c.prevCol = c.col
	return c
}

func (c Cursor) Up() Cursor {
	if c.line == 0 { // If the cursor is at the first line...
		c.line, c.col = 0, 0 // Go to beginning
		c.prevCol = 0
	} else {
		c.line, c.col = (*c.buffer).ClampLineCol(c.line-1, c.prevCol)
	}
	return c
}

func (c Cursor) Down() Cursor {
	if c.line == (*c.buffer).Lines()-1 { // If the cursor is at the last line...
		c.line, c.col = (*c.buffer).ClampLineCol(c.line, math.MaxInt32) // Go to end of current line
		c.prevCol = c.col
	} else {
		c.line, c.col = (*c.buffer).ClampLineCol(c.line+1, c.prevCol)
	}
	return c
}

func (c Cursor) GetLineCol() (line, col int) {
	return c.line, c.col
}

// SetLineCol sets the line and col of the Cursor to those provided. `line` is
// clamped within the range (0, lines in buffer). `col` is then clamped within
// the range (0, line length in runes).
func (c Cursor) SetLineCol(line, col int) Cursor {
	c.line, c.col = (*c.buffer).ClampLineCol(line, col)
	c.prevCol = c.col
	return c
}

// Less returns whether the Cursor is positioned before `other`.
func (c Cursor) Less(other Cursor) bool {
	return c.line < other.line || (c.line == other.line && c.col < other.col)
}

func (c Cursor) Eq(other Cursor) bool {
	return c.buffer == other.buffer && c.line == other.line && c.col == other.col
}

// Max returns the larger integer.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
