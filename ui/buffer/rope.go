package buffer

import (
	"fmt"
	"io"
	"sort"
	"unicode/utf8"

	"github.com/zyedidia/rope"
)

// RopeBuffer is a Buffer stored in a rope. The byte offset where each line
// starts is kept alongside the rope and updated on every edit, so finding a
// line does not scan the text before it.
type RopeBuffer struct {
	rope   *rope.Node
	starts []int // starts[i] is the byte offset of line i; starts[0] is 0
}

func NewRopeBuffer(contents []byte) *RopeBuffer {
	b := &RopeBuffer{rope: rope.New(contents), starts: []int{0}}
	if len(contents) > 0 {
		b.rope.IndexAllFunc(0, len(contents), []byte{'\n'}, func(idx int) bool {
			b.starts = append(b.starts, idx+1)
			return false
		})
	}
	return b
}

// getLineStartPos returns the first byte index of the given line (starting from zero).
// The returned index can be equal to the length of the buffer, which means the
// line is the last, empty line of the buffer. Panics if the line does not exist.
func (b *RopeBuffer) getLineStartPos(line int) int {
	if line < 0 || line >= len(b.starts) {
		panic(fmt.Sprintf("getLineStartPos: line %d out of range [0, %d)", line, len(b.starts)))
	}
	return b.starts[line]
}

// lineAt returns the line holding the byte at `pos`.
func (b *RopeBuffer) lineAt(pos int) int {
	return sort.Search(len(b.starts), func(i int) bool { return b.starts[i] > pos }) - 1
}

// getLineBounds returns the byte range of the line's content, excluding the
// line delimiter.
func (b *RopeBuffer) getLineBounds(line int) (int, int) {
	start := b.getLineStartPos(line)
	end := b.rope.Len()
	if line+1 < len(b.starts) {
		end = b.starts[line+1] - 1 // The '\n'
	}

	// A CRLF delimiter is not part of the content
	if end > start && end < b.rope.Len() && b.rope.At(end-1) == '\r' {
		end--
	}
	return start, end
}

func (b *RopeBuffer) slicePos(start, end int) []byte {
	if start >= end {
		return []byte{}
	}
	return b.rope.Slice(start, end)
}

// Line returns the content of the given line without the line delimiter.
func (b *RopeBuffer) Line(line int) []byte {
	start, end := b.getLineBounds(line)
	return b.slicePos(start, end)
}

// LineColToPos returns the byte offset of line, col. Columns past the end of
// the line resolve to the end of the line content.
func (b *RopeBuffer) LineColToPos(line, col int) int {
	start, end := b.getLineBounds(line)
	if col <= 0 {
		return start
	}

	content := b.slicePos(start, end)
	var i int
	for i < len(content) && col > 0 {
		_, size := utf8.DecodeRune(content[i:]) // Respect Utf-8 codepoint boundaries
		i += size
		col--
	}
	return start + i
}

func (b *RopeBuffer) Slice(startLine, startCol, endLine, endCol int) []byte {
	return b.slicePos(b.LineColToPos(startLine, startCol), b.LineColToPos(endLine, endCol))
}

func (b *RopeBuffer) Bytes() []byte {
	return b.rope.Value()
}

func (b *RopeBuffer) Insert(line, col int, value []byte) {
	if len(value) == 0 {
		return
	}
	pos := b.LineColToPos(line, col)
	b.rope.Insert(pos, value)

	// Lines after the one inserted into move right, and every '\n' inserted
	// starts a new line.
	at := b.lineAt(pos)
	var added []int
	for i, c := range value {
		if c == '\n' {
			added = append(added, pos+i+1)
		}
	}
	tail := b.starts[at+1:]
	starts := make([]int, 0, len(b.starts)+len(added))
	starts = append(starts, b.starts[:at+1]...)
	starts = append(starts, added...)
	for _, s := range tail {
		starts = append(starts, s+len(value))
	}
	b.starts = starts
}

func (b *RopeBuffer) Remove(startLine, startCol, endLine, endCol int) {
	start := b.LineColToPos(startLine, startCol)
	end := b.LineColToPos(endLine, endCol)

	if end <= start {
		return
	}
	b.rope.Remove(start, end)

	// Lines starting inside the removed text are gone, and the lines after it
	// move left.
	starts := b.starts[:0]
	for _, s := range b.starts {
		switch {
		case s <= start:
			starts = append(starts, s)
		case s > end:
			starts = append(starts, s-(end-start))
		}
	}
	b.starts = starts
}

func (b *RopeBuffer) Len() int {
	return b.rope.Len()
}

func (b *RopeBuffer) Lines() int {
	return len(b.starts)
}

func (b *RopeBuffer) RunesInLine(line int) int {
	return utf8.RuneCount(b.Line(line))
}

func (b *RopeBuffer) ClampLineCol(line, col int) (int, int) {
	if line < 0 {
		line = 0
	} else if lines := b.Lines() - 1; line > lines {
		line = lines
	}

	if col < 0 {
		col = 0
	} else if runes := b.RunesInLine(line); col > runes {
		col = runes
	}

	return line, col
}

func (b *RopeBuffer) PosToLineCol(pos int) (int, int) {
	length := b.Len()
	if pos <= 0 {
		return 0, 0
	} else if pos > length {
		pos = length
	}

	line := b.lineAt(pos)
	start := b.getLineStartPos(line)
	col := utf8.RuneCount(b.slicePos(start, pos))
	return b.ClampLineCol(line, col)
}

func (b *RopeBuffer) WriteTo(w io.Writer) (int64, error) {
	return b.rope.WriteTo(w)
}
