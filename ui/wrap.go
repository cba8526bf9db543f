package ui

import "github.com/mattn/go-runewidth"

// WrapMode tells a TextSurface how to lay out lines wider than itself.
type WrapMode uint8

const (
	WrapChar WrapMode = iota // Break lines at the last rune that fits
	WrapNone                 // Never break lines; scroll horizontally instead
)

// A rowSpan is one display row of a logical line: the runes from start up to,
// but not including, end.
type rowSpan struct {
	start, end int
}

// runeCells returns how many terminal cells `r` occupies when drawn at `cell`.
// Tabs advance to the next multiple of tabSize.
func runeCells(r rune, cell, tabSize int) int {
	if r == '\t' {
		if tabSize < 1 {
			tabSize = 1
		}
		return tabSize - cell%tabSize
	}
	if w := runewidth.RuneWidth(r); w > 0 {
		return w
	}
	return 1 // Control and zero-width runes still get a cell so the cursor can reach them
}

// wrapLine splits a logical line into display rows no wider than `width` cells.
// A line always has at least one row, even when it is empty. When the last row
// fills the width exactly, an empty row follows it so the cursor at the end of
// the line has a cell of its own.
func wrapLine(runes []rune, tabSize, width int, mode WrapMode) []rowSpan {
	if mode == WrapNone || width <= 0 || len(runes) == 0 {
		return []rowSpan{{0, len(runes)}}
	}

	spans := make([]rowSpan, 0, 1)
	start, cell := 0, 0
	for i, r := range runes {
		w := runeCells(r, cell, tabSize)
		if cell > 0 && cell+w > width {
			spans = append(spans, rowSpan{start, i})
			start, cell = i, 0
			w = runeCells(r, 0, tabSize)
		}
		cell += w
	}
	spans = append(spans, rowSpan{start, len(runes)})
	if cell >= width {
		spans = append(spans, rowSpan{len(runes), len(runes)})
	}
	return spans
}

// cellsBetween returns the width in cells of runes[from:to], with tab stops
// measured from `from`.
func cellsBetween(runes []rune, from, to, tabSize int) int {
	var cell int
	for i := from; i < to && i < len(runes); i++ {
		cell += runeCells(runes[i], cell, tabSize)
	}
	return cell
}

// rowContaining returns the index of the row of `spans` that holds column
// `col`. A column at the end of a wrapped row belongs to the next row, except
// at the end of the line.
func rowContaining(spans []rowSpan, col int) int {
	for i, span := range spans {
		if col < span.end {
			return i
		}
	}
	return len(spans) - 1
}

// lineLayout caches the number of display rows and the width in cells of each
// logical line, with the settings they were measured for. A row count of zero
// means the line has not been measured, since every line has at least one row.
type lineLayout struct {
	rows  []int
	cells []int

	width, tabSize int
	wrap           WrapMode
}

// reset forgets every measurement, for a buffer of `lines` lines.
func (l *lineLayout) reset(lines int) {
	l.rows = make([]int, lines)
	l.cells = make([]int, lines)
}

// splice follows an edit starting on `line` that took the buffer from `before`
// lines to `after` lines. The lines the edit touched are forgotten, and the
// measurements of the lines after them move with them.
func (l *lineLayout) splice(line, before, after int) {
	if len(l.rows) != before || line < 0 || line >= before {
		l.reset(after)
		return
	}
	if before == after {
		l.rows[line], l.cells[line] = 0, 0
		return
	}
	tail := line + 1 + Max(before-after, 0)
	fresh := 1 + Max(after-before, 0)
	l.rows = spliceZeros(l.rows, line, tail, fresh)
	l.cells = spliceZeros(l.cells, line, tail, fresh)
}

// spliceZeros replaces s[from:to] with n zeros.
func spliceZeros(s []int, from, to, n int) []int {
	out := make([]int, 0, len(s)-(to-from)+n)
	out = append(out, s[:from]...)
	out = append(out, make([]int, n)...)
	return append(out, s[to:]...)
}
