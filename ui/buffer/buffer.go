package buffer

import (
	"io"
)

// A Buffer is wrapper around any buffer data structure like ropes or a gap buffer
// that can be used for text editors. One way this interface helps is by making
// all API function parameters line and column indexes, so it is simple and easy
// to index and use like a text editor. All lines and columns start at zero, and
// all ranges are half-open: the start is included, the end is not.
//
// Any line out of range is a panic! If you are unsure your position or range
// may be out of bounds, use ClampLineCol() or compare with Lines() or RunesInLine().
type Buffer interface {
	// Line returns the text of the given line without its line delimiter. A
	// CRLF delimiter is excluded entirely.
	Line(line int) []byte

	// Slice returns a copy of the buffer from startLine, startCol up to, but
	// not including, endLine, endCol.
	Slice(startLine, startCol, endLine, endCol int) []byte

	// Bytes returns all of the bytes in the buffer. This function is very likely
	// to copy all of the data in the buffer. Use sparingly.
	Bytes() []byte

	// Insert copies a byte slice (inserting it) into the position at line, col.
	Insert(line, col int, value []byte)

	// Remove deletes the characters from startLine, startCol up to, but not
	// including, endLine, endCol.
	Remove(startLine, startCol, endLine, endCol int)

	// Len returns the number of bytes in the buffer.
	Len() int

	// Lines returns the number of lines in the buffer. If the buffer is empty,
	// 1 is returned, because there is always at least one line.
	Lines() int

	// RunesInLine returns the number of runes in the given line. That is, the
	// number of Utf-8 codepoints in the line, not bytes. Excludes line delimiters.
	RunesInLine(line int) int

	// ClampLineCol clamps the line first, then clamps the column between zero
	// and the position of the line delimiter.
	ClampLineCol(line, col int) (int, int)

	// LineColToPos returns the byte offset of line, col. Columns past the end
	// of the line resolve to the position of the line delimiter.
	LineColToPos(line, col int) int

	// PosToLineCol converts a byte offset of the buffer into a line and column.
	// The position is clamped.
	PosToLineCol(pos int) (int, int)

	WriteTo(w io.Writer) (int64, error)
}
