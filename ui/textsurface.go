package ui

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/fivemoreminix/notepad/ui/buffer"
	"github.com/gdamore/tcell/v2"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("notepad.ui")

// ErrIndexOutOfRange is returned when an Index names a line the buffer does not have.
var ErrIndexOutOfRange = errors.New("index out of range")

// An Index is a position in the buffer as the user sees it: lines start at one
// and columns, counted in runes, start at zero. It prints as "line.col".
type Index struct {
	Line int
	Col  int
}

func (i Index) String() string {
	return fmt.Sprintf("%d.%d", i.Line, i.Col)
}

// Less returns whether `i` comes before `other` in the buffer.
func (i Index) Less(other Index) bool {
	return i.Line < other.Line || (i.Line == other.Line && i.Col < other.Col)
}

// ScrollUnit is the unit of a relative scroll.
type ScrollUnit uint8

const (
	ScrollUnits ScrollUnit = iota // Display rows, or cells horizontally
	ScrollPages                   // A view's height, less two rows
)

// An Op names an operation forwarded to the buffer or view of a TextSurface.
type Op string

const (
	OpInsert        Op = "insert"
	OpReplace       Op = "replace"
	OpDelete        Op = "delete"
	OpMarkSetInsert Op = "mark set insert"
	OpXViewMoveTo   Op = "xview moveto"
	OpXViewScroll   Op = "xview scroll"
	OpYViewMoveTo   Op = "yview moveto"
	OpYViewScroll   Op = "yview scroll"
	OpTagAddSel     Op = "tag add sel"
	OpTagRemoveSel  Op = "tag remove sel"
)

// changeOps are the operations after which a TextSurface notifies its change listeners.
var changeOps = map[Op]bool{
	OpInsert:        true,
	OpReplace:       true,
	OpDelete:        true,
	OpMarkSetInsert: true,
	OpXViewMoveTo:   true,
	OpXViewScroll:   true,
	OpYViewMoveTo:   true,
	OpYViewScroll:   true,
}

// Font is the typeface requested for text. A terminal draws every cell with its
// own font, so only the bold and italic variants of a family make a difference.
type Font struct {
	Family string
	Size   int
}

func (f Font) apply(style tcell.Style) tcell.Style {
	family := strings.ToLower(f.Family)
	return style.Bold(strings.Contains(family, "bold")).Italic(strings.Contains(family, "italic"))
}

// DisplayLineInfo is the geometry of one display row, relative to the top-left
// of the TextSurface. Height is always one row in a terminal.
type DisplayLineInfo struct {
	X, Y          int
	Width, Height int
}

// TextSurface is a multi-line text field. Every operation that changes the
// buffer, the insert cursor or the view is forwarded through one place, and
// when it succeeds, the change listeners are called before the operation
// returns. Listeners therefore always observe the state after the change.
type TextSurface struct {
	Buffer      buffer.Buffer
	Highlighter *buffer.Highlighter
	Wrap        WrapMode // How to lay out lines wider than the surface
	TabSize     int      // Cells between tab stops
	Dirty       bool     // Whether the buffer has been edited
	IsCRLF      bool     // Whether the file's line endings are CRLF (\r\n) or LF (\n)

	screen     *tcell.Screen // We keep our own reference to the screen for cursor purposes.
	cursor     buffer.Cursor
	anchor     buffer.Cursor // The other end of the selection
	selectMode bool          // Whether text between anchor and cursor is selected
	dragging   bool          // Whether the first mouse button is held over the surface

	topLine, topRow int // First visible display row: a logical line and one of its rows
	scrollx         int // Horizontal offset in cells, only when not wrapping
	layout          lineLayout

	foreground  tcell.Color
	background  tcell.Color
	font        Font
	language    *buffer.Language
	colorscheme buffer.Colorscheme

	changeListeners []func()
	keyListeners    []func(*tcell.EventKey)
	mouseListeners  []func(*tcell.EventMouse)

	baseComponent
}

// NewTextSurface creates a TextSurface holding `contents`. The colors are taken
// from the "TextSurface" key of the theme.
func NewTextSurface(screen *tcell.Screen, contents []byte, theme *Theme) *TextSurface {
	fg, bg, _ := theme.GetOrDefault("TextSurface").Decompose()
	t := &TextSurface{
		Wrap:          WrapChar,
		TabSize:       4,
		screen:        screen,
		foreground:    fg,
		background:    bg,
		colorscheme:   buffer.Colorscheme{},
		baseComponent: baseComponent{theme: theme},
	}
	t.load(contents)
	return t
}

// OnChange registers a listener called after every successful insert, replace,
// delete, insert cursor move, or scroll.
func (t *TextSurface) OnChange(fn func()) {
	t.changeListeners = append(t.changeListeners, fn)
}

// OnKeypress registers a listener called after the surface handled a key.
func (t *TextSurface) OnKeypress(fn func(*tcell.EventKey)) {
	t.keyListeners = append(t.keyListeners, fn)
}

// OnMouseRelease registers a listener called when a mouse button pressed on the
// surface is released.
func (t *TextSurface) OnMouseRelease(fn func(*tcell.EventMouse)) {
	t.mouseListeners = append(t.mouseListeners, fn)
}

func (t *TextSurface) notifyChange() {
	for _, fn := range t.changeListeners {
		fn()
	}
}

// forward runs an operation against the buffer or the view. A panic from the
// buffer is turned into an error. Errors are logged and returned, and only a
// successful operation from changeOps notifies the change listeners.
func (t *TextSurface) forward(op Op, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: %v", op, r)
		}
		if err != nil {
			log.Errorf("text surface %s failed: %s", op, err.Error())
			return
		}
		if changeOps[op] {
			t.notifyChange()
		}
	}()
	return fn()
}

// load replaces the buffer, determining whether it uses CRLF or LF line endings.
func (t *TextSurface) load(contents []byte) {
	t.IsCRLF = false
	var i int
loop:
	for i < len(contents) {
		switch contents[i] {
		case '\n':
			break loop
		case '\r':
			t.IsCRLF = i+1 < len(contents) && contents[i+1] == '\n'
			break loop
		}
		_, size := utf8.DecodeRune(contents[i:])
		i += size
	}

	t.Buffer = buffer.NewRopeBuffer(contents)
	t.cursor = buffer.NewCursor(&t.Buffer)
	t.anchor = t.cursor
	t.selectMode = false
	t.topLine, t.topRow, t.scrollx = 0, 0, 0
	t.layout.reset(t.Buffer.Lines())
	t.Highlighter = buffer.NewHighlighter(t.Buffer, t.language, &t.colorscheme)
}

// SetContents replaces everything in the buffer with `contents` and moves the
// cursor and the view to the beginning.
func (t *TextSurface) SetContents(contents []byte) error {
	return t.forward(OpReplace, func() error {
		t.load(contents)
		t.Dirty = false
		return nil
	})
}

// GetLineDelimiter returns "\r\n" for a CRLF buffer, or "\n" for an LF buffer.
func (t *TextSurface) GetLineDelimiter() string {
	if t.IsCRLF {
		return "\r\n"
	}
	return "\n"
}

// lineCol converts an Index into a zero-based line and a clamped column.
func (t *TextSurface) lineCol(idx Index) (int, int, error) {
	if idx.Line < 1 || idx.Line > t.Buffer.Lines() || idx.Col < 0 {
		return 0, 0, fmt.Errorf("%v: %w", idx, ErrIndexOutOfRange)
	}
	line, col := t.Buffer.ClampLineCol(idx.Line-1, idx.Col)
	return line, col, nil
}

func (t *TextSurface) index(c buffer.Cursor) Index {
	line, col := c.GetLineCol()
	return Index{line + 1, col}
}

func (t *TextSurface) pos(c buffer.Cursor) int {
	line, col := c.GetLineCol()
	return t.Buffer.LineColToPos(line, col)
}

func (t *TextSurface) cursorAtPos(c buffer.Cursor, pos int) buffer.Cursor {
	return c.SetLineCol(t.Buffer.PosToLineCol(pos))
}

// Cursor returns the Index of the insert cursor.
func (t *TextSurface) Cursor() Index {
	return t.index(t.cursor)
}

// End returns the Index after the last character of the buffer.
func (t *TextSurface) End() Index {
	last := t.Buffer.Lines() - 1
	return Index{last + 1, t.Buffer.RunesInLine(last)}
}

// Get returns the text from `start` up to, but not including, `end`.
func (t *TextSurface) Get(start, end Index) (string, error) {
	sLine, sCol, err := t.lineCol(start)
	if err != nil {
		return "", err
	}
	eLine, eCol, err := t.lineCol(end)
	if err != nil {
		return "", err
	}
	if end.Less(start) {
		return "", nil
	}
	return string(t.Buffer.Slice(sLine, sCol, eLine, eCol)), nil
}

// String returns the whole buffer.
func (t *TextSurface) String() string {
	return string(t.Buffer.Bytes())
}

// Insert writes `text` at `idx`. A cursor at or after `idx` moves with the text.
func (t *TextSurface) Insert(idx Index, text string) error {
	return t.forward(OpInsert, func() error {
		line, col, err := t.lineCol(idx)
		if err != nil {
			return err
		}
		t.insert(line, col, text)
		return nil
	})
}

// Delete removes the text from `start` up to, but not including, `end`.
func (t *TextSurface) Delete(start, end Index) error {
	return t.forward(OpDelete, func() error {
		return t.delete(start, end)
	})
}

// Replace deletes the text from `start` to `end`, and inserts `text` in its place.
func (t *TextSurface) Replace(start, end Index, text string) error {
	return t.forward(OpReplace, func() error {
		if err := t.delete(start, end); err != nil {
			return err
		}
		line, col, _ := t.lineCol(start)
		t.insert(line, col, text)
		return nil
	})
}

func (t *TextSurface) insert(line, col int, text string) {
	if len(text) == 0 {
		return
	}
	pos := t.Buffer.LineColToPos(line, col)
	cursorPos, anchorPos := t.pos(t.cursor), t.pos(t.anchor)
	linesBefore := t.Buffer.Lines()

	t.Buffer.Insert(line, col, []byte(text))
	t.Dirty = true

	if cursorPos >= pos {
		cursorPos += len(text)
	}
	if anchorPos >= pos {
		anchorPos += len(text)
	}
	t.cursor = t.cursorAtPos(t.cursor, cursorPos)
	t.anchor = t.cursorAtPos(t.anchor, anchorPos)
	t.invalidate(line, linesBefore)
	t.clampView()
}

func (t *TextSurface) delete(start, end Index) error {
	sLine, sCol, err := t.lineCol(start)
	if err != nil {
		return err
	}
	eLine, eCol, err := t.lineCol(end)
	if err != nil {
		return err
	}
	startPos := t.Buffer.LineColToPos(sLine, sCol)
	endPos := t.Buffer.LineColToPos(eLine, eCol)
	if endPos <= startPos {
		return nil
	}

	cursorPos, anchorPos := t.pos(t.cursor), t.pos(t.anchor)
	linesBefore := t.Buffer.Lines()

	t.Buffer.Remove(sLine, sCol, eLine, eCol)
	t.Dirty = true

	shift := func(p int) int {
		if p >= endPos {
			return p - (endPos - startPos)
		} else if p > startPos {
			return startPos
		}
		return p
	}
	t.cursor = t.cursorAtPos(t.cursor, shift(cursorPos))
	t.anchor = t.cursorAtPos(t.anchor, shift(anchorPos))
	t.invalidate(sLine, linesBefore)
	t.clampView()
	return nil
}

// invalidate marks the highlighting of `line` stale, or of every line after it
// when the number of lines changed. The layout of the edited lines is measured
// again when next needed.
func (t *TextSurface) invalidate(line, linesBefore int) {
	t.layout.splice(line, linesBefore, t.Buffer.Lines())
	if t.Buffer.Lines() != linesBefore {
		t.Highlighter.InvalidateLines(line, math.MaxInt32)
	} else {
		t.Highlighter.InvalidateLines(line, line)
	}
}

// SetCursor moves the insert cursor to `idx` and scrolls it into view.
func (t *TextSurface) SetCursor(idx Index) error {
	return t.forward(OpMarkSetInsert, func() error {
		line, col, err := t.lineCol(idx)
		if err != nil {
			return err
		}
		t.cursor = t.cursor.SetLineCol(line, col)
		t.see(t.cursor)
		return nil
	})
}

// Select selects the text from `start` up to `end` and moves the cursor to `end`
// without scrolling.
func (t *TextSurface) Select(start, end Index) error {
	return t.forward(OpTagAddSel, func() error {
		sLine, sCol, err := t.lineCol(start)
		if err != nil {
			return err
		}
		eLine, eCol, err := t.lineCol(end)
		if err != nil {
			return err
		}
		t.anchor = t.anchor.SetLineCol(sLine, sCol)
		t.cursor = t.cursor.SetLineCol(eLine, eCol)
		t.selectMode = !t.anchor.Eq(t.cursor)
		return nil
	})
}

// ClearSelection deselects any text. The text itself is untouched.
func (t *TextSurface) ClearSelection() {
	_ = t.forward(OpTagRemoveSel, func() error {
		t.selectMode = false
		return nil
	})
}

// Selection returns the selected span, and false when nothing is selected.
func (t *TextSurface) Selection() (Index, Index, bool) {
	if !t.selectMode {
		return Index{}, Index{}, false
	}
	region := buffer.NewRegion(t.anchor, t.cursor)
	if region.Empty() {
		return Index{}, Index{}, false
	}
	return t.index(region.Start), t.index(region.End), true
}

// GetSelectedString returns the selected text. If the returned string is empty,
// then nothing was selected.
func (t *TextSurface) GetSelectedString() string {
	start, end, ok := t.Selection()
	if !ok {
		return ""
	}
	str, _ := t.Get(start, end)
	return str
}

// DeleteSelection removes the selected text, if any, and deselects it.
func (t *TextSurface) DeleteSelection() error {
	start, end, ok := t.Selection()
	if !ok {
		return nil
	}
	t.selectMode = false
	return t.Delete(start, end)
}

// InsertAtCursor replaces the selection, if any, with `text`, and then keeps the
// cursor, which ends up after `text`, in view.
func (t *TextSurface) InsertAtCursor(text string) error {
	if err := t.DeleteSelection(); err != nil {
		return err
	}
	if err := t.Insert(t.Cursor(), text); err != nil {
		return err
	}
	return t.SetCursor(t.Cursor())
}

// Backspace deletes the selection, or the character before the cursor.
func (t *TextSurface) Backspace() error {
	if _, _, ok := t.Selection(); ok {
		return t.DeleteSelection()
	}
	t.selectMode = false
	end := t.Cursor()
	start := t.index(t.cursor.Left())
	if !start.Less(end) {
		return nil
	}
	if err := t.Delete(start, end); err != nil {
		return err
	}
	return t.SetCursor(t.Cursor())
}

// DeleteForward deletes the selection, or the character after the cursor.
func (t *TextSurface) DeleteForward() error {
	if _, _, ok := t.Selection(); ok {
		return t.DeleteSelection()
	}
	t.selectMode = false
	start := t.Cursor()
	end := t.index(t.cursor.Right())
	if !start.Less(end) {
		return nil
	}
	return t.Delete(start, end)
}

// moveCursor moves the insert cursor to `c`. With `extend`, the selection grows
// or shrinks to follow the cursor; otherwise it is dropped.
func (t *TextSurface) moveCursor(c buffer.Cursor, extend bool) {
	if extend {
		if !t.selectMode {
			t.anchor = t.cursor
			t.selectMode = true
		}
	} else {
		t.selectMode = false
	}
	_ = t.forward(OpMarkSetInsert, func() error {
		t.cursor = c
		t.see(t.cursor)
		return nil
	})
}

// lineRunes returns the runes of the zero-based `line`.
func (t *TextSurface) lineRunes(line int) []rune {
	return []rune(string(t.Buffer.Line(line)))
}

func (t *TextSurface) rows(line int) []rowSpan {
	return wrapLine(t.lineRunes(line), t.TabSize, t.width, t.Wrap)
}

// measure makes sure the layout of `line` is known. The whole layout is
// dropped when the width, the tab size or the wrap mode changed since it was
// measured.
func (t *TextSurface) measure(line int) {
	l := &t.layout
	if l.width != t.width || l.tabSize != t.TabSize || l.wrap != t.Wrap || len(l.rows) != t.Buffer.Lines() {
		l.reset(t.Buffer.Lines())
		l.width, l.tabSize, l.wrap = t.width, t.TabSize, t.Wrap
	}
	if l.rows[line] == 0 {
		runes := t.lineRunes(line)
		l.rows[line] = len(wrapLine(runes, t.TabSize, t.width, t.Wrap))
		l.cells[line] = cellsBetween(runes, 0, len(runes), t.TabSize)
	}
}

// rowCount returns the number of display rows of `line`.
func (t *TextSurface) rowCount(line int) int {
	t.measure(line)
	return t.layout.rows[line]
}

// lineCells returns the width in cells of the whole of `line`.
func (t *TextSurface) lineCells(line int) int {
	t.measure(line)
	return t.layout.cells[line]
}

// totalRows returns the number of display rows of the whole buffer.
func (t *TextSurface) totalRows() int {
	var total int
	for line := 0; line < t.Buffer.Lines(); line++ {
		total += t.rowCount(line)
	}
	return total
}

// rowIndex returns the absolute display row of `row` of `line`.
func (t *TextSurface) rowIndex(line, row int) int {
	abs := row
	for l := 0; l < line; l++ {
		abs += t.rowCount(l)
	}
	return abs
}

// fromRowIndex converts an absolute display row into a line and a row of
// that line. Rows past the end resolve to the last row.
func (t *TextSurface) fromRowIndex(abs int) (int, int) {
	if abs < 0 {
		abs = 0
	}
	lines := t.Buffer.Lines()
	for line := 0; line < lines; line++ {
		n := t.rowCount(line)
		if abs < n {
			return line, abs
		}
		abs -= n
	}
	last := lines - 1
	return last, t.rowCount(last) - 1
}

func (t *TextSurface) topIndex() int {
	return t.rowIndex(t.topLine, t.topRow)
}

func (t *TextSurface) maxTop(total int) int {
	return Max(0, total-Max(t.height, 1))
}

func (t *TextSurface) setTop(abs int) {
	abs = Clamp(abs, 0, t.maxTop(t.totalRows()))
	t.topLine, t.topRow = t.fromRowIndex(abs)
}

// clampView keeps the view within the buffer after edits or resizes.
func (t *TextSurface) clampView() {
	if t.topLine >= t.Buffer.Lines() {
		t.topLine, t.topRow = t.Buffer.Lines()-1, 0
	}
	if rows := t.rowCount(t.topLine); t.topRow >= rows {
		t.topRow = rows - 1
	}
	t.setTop(t.topIndex())
	if t.Wrap != WrapNone {
		t.scrollx = 0
	}
}

// see scrolls the view just enough to show the cursor `c`.
func (t *TextSurface) see(c buffer.Cursor) {
	line, col := c.GetLineCol()
	runes := t.lineRunes(line)
	spans := wrapLine(runes, t.TabSize, t.width, t.Wrap)
	row := rowContaining(spans, col)

	abs := t.rowIndex(line, row)
	top := t.topIndex()
	height := Max(t.height, 1)
	if abs < top {
		t.setTop(abs)
	} else if abs >= top+height {
		t.setTop(abs - height + 1)
	}

	if t.Wrap == WrapNone && t.width > 0 {
		cell := cellsBetween(runes, 0, col, t.TabSize)
		if cell >= t.scrollx+t.width {
			t.scrollx = cell - t.width + 1
		} else if cell < t.scrollx {
			t.scrollx = cell
		}
	}
}

// YView returns the fractions of the display rows above the top of the view,
// and up to the bottom of the view.
func (t *TextSurface) YView() (float64, float64) {
	total := t.totalRows()
	top := t.topIndex()
	bottom := Min(top+Max(t.height, 0), total)
	return float64(top) / float64(total), float64(bottom) / float64(total)
}

// YViewMoveTo scrolls so that `fraction` of the display rows are above the view.
func (t *TextSurface) YViewMoveTo(fraction float64) error {
	return t.forward(OpYViewMoveTo, func() error {
		if math.IsNaN(fraction) {
			return fmt.Errorf("invalid fraction %v", fraction)
		}
		fraction = math.Max(0, math.Min(1, fraction))
		t.setTop(int(math.Round(fraction * float64(t.totalRows()))))
		return nil
	})
}

// YViewScroll scrolls the view `n` rows or pages down, or up when `n` is negative.
func (t *TextSurface) YViewScroll(n int, unit ScrollUnit) error {
	return t.forward(OpYViewScroll, func() error {
		if unit == ScrollPages {
			n *= Max(1, t.height-2)
		}
		t.setTop(t.topIndex() + n)
		return nil
	})
}

// longestLine returns the width in cells of the widest logical line.
func (t *TextSurface) longestLine() int {
	var longest int
	for line := 0; line < t.Buffer.Lines(); line++ {
		longest = Max(longest, t.lineCells(line))
	}
	return longest
}

// XView returns the fractions of the widest line left of the view, and up to
// the right edge of the view. A wrapping surface always shows everything.
func (t *TextSurface) XView() (float64, float64) {
	longest := t.longestLine()
	if t.Wrap != WrapNone || longest == 0 {
		return 0, 1
	}
	right := Min(t.scrollx+t.width, longest)
	return float64(t.scrollx) / float64(longest), float64(right) / float64(longest)
}

func (t *TextSurface) setScrollX(cell int) {
	if t.Wrap != WrapNone {
		t.scrollx = 0
		return
	}
	t.scrollx = Clamp(cell, 0, Max(0, t.longestLine()-t.width))
}

// XViewMoveTo scrolls so that `fraction` of the widest line is left of the view.
func (t *TextSurface) XViewMoveTo(fraction float64) error {
	return t.forward(OpXViewMoveTo, func() error {
		if math.IsNaN(fraction) {
			return fmt.Errorf("invalid fraction %v", fraction)
		}
		fraction = math.Max(0, math.Min(1, fraction))
		t.setScrollX(int(math.Round(fraction * float64(t.longestLine()))))
		return nil
	})
}

// XViewScroll scrolls the view `n` cells or pages right, or left when `n` is negative.
func (t *TextSurface) XViewScroll(n int, unit ScrollUnit) error {
	return t.forward(OpXViewScroll, func() error {
		if unit == ScrollPages {
			n *= Max(1, t.width-2)
		}
		t.setScrollX(t.scrollx + n)
		return nil
	})
}

// IndexAt returns the Index of the character drawn at `x`, `y` relative to the
// surface. Positions below the text resolve to the last display row, and
// positions right of a row's text resolve to the end of that row.
func (t *TextSurface) IndexAt(x, y int) Index {
	abs := t.topIndex() + Clamp(y, 0, Max(t.height-1, 0))
	line, row := t.fromRowIndex(abs)
	runes := t.lineRunes(line)
	spans := wrapLine(runes, t.TabSize, t.width, t.Wrap)
	span := spans[row]

	target := Max(x, 0) + t.scrollx
	col := span.start
	var cell int
	for col < span.end {
		w := runeCells(runes[col], cell, t.TabSize)
		if cell+w > target {
			break
		}
		cell += w
		col++
	}
	// Past the end of a wrapped row is the last character of the row
	if col == span.end && row < len(spans)-1 {
		col = span.end - 1
	}
	return Index{line + 1, col}
}

// DLineInfo returns the geometry of the display row holding `idx`, and false when
// that row is not visible.
func (t *TextSurface) DLineInfo(idx Index) (DisplayLineInfo, bool) {
	line, col, err := t.lineCol(idx)
	if err != nil {
		return DisplayLineInfo{}, false
	}
	runes := t.lineRunes(line)
	spans := wrapLine(runes, t.TabSize, t.width, t.Wrap)
	row := rowContaining(spans, col)

	y := t.rowIndex(line, row) - t.topIndex()
	if y < 0 || y >= t.height {
		return DisplayLineInfo{}, false
	}
	span := spans[row]
	return DisplayLineInfo{
		X:      -t.scrollx,
		Y:      y,
		Width:  cellsBetween(runes, span.start, span.end, t.TabSize),
		Height: 1,
	}, true
}

// NextDisplayLine returns the Index of the first character of the display row
// after the one holding `idx`, and false at the last row of the buffer.
func (t *TextSurface) NextDisplayLine(idx Index) (Index, bool) {
	line, col, err := t.lineCol(idx)
	if err != nil {
		return Index{}, false
	}
	spans := t.rows(line)
	if row := rowContaining(spans, col); row+1 < len(spans) {
		return Index{line + 1, spans[row+1].start}, true
	}
	if line+1 < t.Buffer.Lines() {
		return Index{line + 2, 0}, true
	}
	return Index{}, false
}

// SetSize resizes the surface. Resizing changes where lines wrap, so the view
// is clamped again.
func (t *TextSurface) SetSize(width, height int) {
	if width != t.width {
		t.layout.reset(t.Buffer.Lines())
	}
	t.width, t.height = Max(width, 0), Max(height, 0)
	t.clampView()
}

// SetFont sets the font of the text.
func (t *TextSurface) SetFont(font Font) {
	t.font = font
}

func (t *TextSurface) GetFont() Font {
	return t.font
}

// SetForeground sets the color of the text and of the cursor.
func (t *TextSurface) SetForeground(color tcell.Color) {
	t.foreground = color
}

// SetBackground sets the color behind the text.
func (t *TextSurface) SetBackground(color tcell.Color) {
	t.background = color
}

func (t *TextSurface) GetColors() (fg, bg tcell.Color) {
	return t.foreground, t.background
}

// SetHighlighting feeds the surface a language and a style for each token class.
// A nil language disables highlighting.
func (t *TextSurface) SetHighlighting(lang *buffer.Language, colorscheme buffer.Colorscheme) {
	t.language = lang
	if colorscheme != nil {
		t.colorscheme = colorscheme
	}
	t.Highlighter.Language = lang
	t.Highlighter.Colorscheme = &t.colorscheme
	t.Highlighter.InvalidateLines(0, math.MaxInt32)
}

// SetLanguage changes the highlighting language, keeping the colorscheme.
func (t *TextSurface) SetLanguage(lang *buffer.Language) {
	t.SetHighlighting(lang, nil)
}

func (t *TextSurface) baseStyle() tcell.Style {
	return t.font.apply(tcell.StyleDefault.Foreground(t.foreground).Background(t.background))
}

func (t *TextSurface) styleAt(line, col int, base tcell.Style) tcell.Style {
	syntax := t.Highlighter.SyntaxAt(line, col)
	if syntax == buffer.Default {
		return base
	}
	return t.font.apply(t.Highlighter.GetStyle(syntax))
}

func (t *TextSurface) selected(line, col int) bool {
	if !t.selectMode {
		return false
	}
	region := buffer.NewRegion(t.anchor, t.cursor)
	sLine, sCol := region.Start.GetLineCol()
	eLine, eCol := region.End.GetLineCol()
	if line < sLine || line > eLine {
		return false
	}
	if line == sLine && col < sCol {
		return false
	}
	if line == eLine && col >= eCol {
		return false
	}
	return true
}

// Draw renders the visible display rows of the TextSurface.
func (t *TextSurface) Draw(s tcell.Screen) {
	base := t.baseStyle()
	DrawRect(s, t.x, t.y, t.width, t.height, ' ', base)

	t.Highlighter.UpdateInvalidatedLines(t.topLine, t.topLine+t.height)

	line, row := t.topLine, t.topRow
	lines := t.Buffer.Lines()
	for y := 0; y < t.height && line < lines; y++ {
		runes := t.lineRunes(line)
		spans := wrapLine(runes, t.TabSize, t.width, t.Wrap)
		span := spans[row]

		var cell int // Cells drawn on this row, including those scrolled out of view
		for col := span.start; col < span.end; col++ {
			r := runes[col]
			w := runeCells(r, cell, t.TabSize)

			style := t.styleAt(line, col, base)
			if t.selected(line, col) {
				style = style.Reverse(true)
			}

			x := cell - t.scrollx
			if x >= t.width {
				break
			}
			if r == '\t' {
				for i := 0; i < w; i++ {
					if x+i >= 0 && x+i < t.width {
						s.SetContent(t.x+x+i, t.y+y, ' ', nil, style)
					}
				}
			} else if x >= 0 && x+w <= t.width {
				s.SetContent(t.x+x, t.y+y, r, nil, style)
			}
			cell += w
		}

		// Show that a selection runs through the line delimiter
		if row == len(spans)-1 && t.selected(line, len(runes)) {
			if x := cell - t.scrollx; x >= 0 && x < t.width {
				s.SetContent(t.x+x, t.y+y, ' ', nil, base.Reverse(true))
			}
		}

		row++
		if row >= len(spans) {
			line, row = line+1, 0
		}
	}

	t.updateCursorVisibility()
}

// cursorCell returns where the cursor is drawn, relative to the surface, and
// false when it is out of view.
func (t *TextSurface) cursorCell() (int, int, bool) {
	line, col := t.cursor.GetLineCol()
	runes := t.lineRunes(line)
	spans := wrapLine(runes, t.TabSize, t.width, t.Wrap)
	row := rowContaining(spans, col)

	y := t.rowIndex(line, row) - t.topIndex()
	x := cellsBetween(runes, spans[row].start, col, t.TabSize) - t.scrollx
	if y < 0 || y >= t.height || x < 0 || x >= t.width {
		return 0, 0, false
	}
	return x, y, true
}

// updateCursorVisibility sets the position of the terminal's cursor with the
// cursor of the TextSurface, when focused and not selecting.
func (t *TextSurface) updateCursorVisibility() {
	if t.screen == nil || *t.screen == nil {
		return
	}
	if x, y, ok := t.cursorCell(); ok && t.focused && !t.selectMode {
		(*t.screen).ShowCursor(t.x+x, t.y+y)
	} else {
		(*t.screen).HideCursor()
	}
}

// SetFocused sets whether the TextSurface is focused. When focused, the cursor
// is set visible and its position is updated on every event.
func (t *TextSurface) SetFocused(v bool) {
	t.focused = v
	t.updateCursorVisibility()
}

// HandleEvent allows the TextSurface to handle `event` if it chooses, returns
// whether the TextSurface handled the event.
func (t *TextSurface) HandleEvent(event tcell.Event) bool {
	switch ev := event.(type) {
	case *tcell.EventKey:
		if !t.handleKey(ev) {
			return false
		}
		for _, fn := range t.keyListeners {
			fn(ev)
		}
		return true
	case *tcell.EventMouse:
		return t.handleMouse(ev)
	}
	return false
}

func (t *TextSurface) handleKey(ev *tcell.EventKey) bool {
	extend := ev.Modifiers()&tcell.ModShift != 0

	switch ev.Key() {
	// Cursor movement
	case tcell.KeyUp:
		t.moveCursor(t.cursor.Up(), extend)
	case tcell.KeyDown:
		t.moveCursor(t.cursor.Down(), extend)
	case tcell.KeyLeft:
		t.moveCursor(t.cursor.Left(), extend)
	case tcell.KeyRight:
		t.moveCursor(t.cursor.Right(), extend)
	case tcell.KeyHome:
		line, _ := t.cursor.GetLineCol()
		t.moveCursor(t.cursor.SetLineCol(line, 0), extend)
	case tcell.KeyEnd:
		line, _ := t.cursor.GetLineCol()
		t.moveCursor(t.cursor.SetLineCol(line, math.MaxInt32), extend)
	case tcell.KeyPgUp:
		line, col := t.cursor.GetLineCol()
		_ = t.YViewScroll(-1, ScrollPages)
		t.moveCursor(t.cursor.SetLineCol(line-Max(1, t.height-2), col), extend)
	case tcell.KeyPgDn:
		line, col := t.cursor.GetLineCol()
		_ = t.YViewScroll(1, ScrollPages)
		t.moveCursor(t.cursor.SetLineCol(line+Max(1, t.height-2), col), extend)

	// Deleting
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		_ = t.Backspace()
	case tcell.KeyDelete:
		_ = t.DeleteForward()

	// Inserting
	case tcell.KeyTab:
		_ = t.InsertAtCursor("\t")
	case tcell.KeyEnter:
		_ = t.InsertAtCursor(t.GetLineDelimiter())
	case tcell.KeyRune:
		if ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) != 0 {
			return false
		}
		_ = t.InsertAtCursor(string(ev.Rune()))
	default:
		return false
	}
	return true
}

func (t *TextSurface) handleMouse(ev *tcell.EventMouse) bool {
	mx, my := ev.Position()
	if !t.dragging && !t.contains(mx, my) {
		return false
	}

	buttons := ev.Buttons()
	switch {
	case buttons&tcell.WheelUp != 0:
		_ = t.YViewScroll(-3, ScrollUnits)
	case buttons&tcell.WheelDown != 0:
		_ = t.YViewScroll(3, ScrollUnits)
	case buttons&tcell.Button1 != 0:
		idx := t.IndexAt(mx-t.x, my-t.y)
		if !t.dragging { // Press: place the cursor and start a selection there
			t.dragging = true
			t.selectMode = false
			_ = t.SetCursor(idx)
			t.anchor = t.cursor
		} else { // Drag: the selection follows the cursor
			_ = t.SetCursor(idx)
			t.selectMode = !t.anchor.Eq(t.cursor)
		}
	case t.dragging: // Release
		t.dragging = false
		for _, fn := range t.mouseListeners {
			fn(ev)
		}
	default:
		return false
	}
	return true
}
