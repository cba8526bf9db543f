package ui

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/fivemoreminix/notepad/ui/buffer"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScreen(t *testing.T, width, height int) tcell.Screen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(width, height)
	t.Cleanup(s.Fini)
	return s
}

func newTestSurface(t *testing.T, contents string, width, height int) *TextSurface {
	t.Helper()
	s := newTestScreen(t, width, height)
	surface := NewTextSurface(&s, []byte(contents), nil)
	surface.SetSize(width, height)
	return surface
}

func TestIndexString(t *testing.T) {
	assert.Equal(t, "3.14", Index{3, 14}.String())
	assert.True(t, Index{1, 5}.Less(Index{2, 0}))
	assert.False(t, Index{2, 0}.Less(Index{2, 0}))
}

func TestForwardNotifiesAfterChange(t *testing.T) {
	surface := newTestSurface(t, "hello", 20, 5)

	var seen []string
	surface.OnChange(func() { seen = append(seen, surface.String()) })

	require.NoError(t, surface.Insert(Index{1, 5}, " world"))
	assert.Equal(t, []string{"hello world"}, seen, "listener must observe the text after the insert")

	require.NoError(t, surface.Delete(Index{1, 0}, Index{1, 6}))
	require.NoError(t, surface.Replace(Index{1, 0}, Index{1, 5}, "earth"))
	assert.Equal(t, []string{"hello world", "world", "earth"}, seen)
	assert.True(t, surface.Dirty)
}

func TestForwardNotifiesEveryChangeOp(t *testing.T) {
	surface := newTestSurface(t, "0\n1\n2\n3\n4\n5\n6\n7\n8\n9", 10, 4)
	surface.Wrap = WrapNone

	var count int
	surface.OnChange(func() { count++ })

	ops := []func() error{
		func() error { return surface.Insert(Index{1, 0}, "x") },
		func() error { return surface.Replace(Index{1, 0}, Index{1, 1}, "y") },
		func() error { return surface.Delete(Index{1, 0}, Index{1, 1}) },
		func() error { return surface.SetCursor(Index{3, 0}) },
		func() error { return surface.XViewMoveTo(0) },
		func() error { return surface.XViewScroll(1, ScrollUnits) },
		func() error { return surface.YViewMoveTo(0.5) },
		func() error { return surface.YViewScroll(-1, ScrollPages) },
	}
	for i, op := range ops {
		require.NoError(t, op())
		assert.Equal(t, i+1, count, "op %d must notify exactly once", i)
	}
}

func TestForwardFailureDoesNotNotify(t *testing.T) {
	surface := newTestSurface(t, "one line", 20, 5)

	var count int
	surface.OnChange(func() { count++ })

	err := surface.Insert(Index{5, 0}, "nope")
	assert.True(t, errors.Is(err, ErrIndexOutOfRange))
	err = surface.SetCursor(Index{0, 0})
	assert.True(t, errors.Is(err, ErrIndexOutOfRange))

	err = surface.forward(OpInsert, func() error { panic("rope exploded") })
	assert.ErrorContains(t, err, "rope exploded")

	assert.Equal(t, 0, count)
	assert.Equal(t, "one line", surface.String())
}

func TestSelectionDoesNotNotify(t *testing.T) {
	surface := newTestSurface(t, "hello world", 20, 5)

	var count int
	surface.OnChange(func() { count++ })

	require.NoError(t, surface.Select(Index{1, 0}, Index{1, 5}))
	assert.Equal(t, "hello", surface.GetSelectedString())
	surface.ClearSelection()
	assert.Equal(t, "", surface.GetSelectedString())
	assert.Equal(t, 0, count)
}

func TestInsertMovesCursor(t *testing.T) {
	surface := newTestSurface(t, "abc", 20, 5)
	require.NoError(t, surface.SetCursor(Index{1, 2}))

	require.NoError(t, surface.Insert(Index{1, 0}, "xy"))
	assert.Equal(t, Index{1, 4}, surface.Cursor())

	require.NoError(t, surface.Insert(Index{1, 4}, "\n"))
	assert.Equal(t, Index{2, 0}, surface.Cursor(), "an insert at the cursor pushes it along")

	require.NoError(t, surface.Delete(Index{1, 0}, Index{2, 0}))
	assert.Equal(t, Index{1, 0}, surface.Cursor())
	assert.Equal(t, "c", surface.String())
}

func TestGet(t *testing.T) {
	surface := newTestSurface(t, "first\nsecond\nthird", 20, 5)

	str, err := surface.Get(Index{1, 2}, Index{2, 3})
	require.NoError(t, err)
	assert.Equal(t, "rst\nsec", str)

	str, err = surface.Get(Index{1, 0}, surface.End())
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond\nthird", str)
	assert.Equal(t, Index{3, 5}, surface.End())

	_, err = surface.Get(Index{1, 0}, Index{9, 0})
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestLineEndings(t *testing.T) {
	surface := newTestSurface(t, "a\r\nb", 20, 5)
	assert.True(t, surface.IsCRLF)
	assert.Equal(t, "\r\n", surface.GetLineDelimiter())

	require.NoError(t, surface.SetCursor(Index{1, 1}))
	surface.HandleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	assert.Equal(t, "a\r\n\r\nb", surface.String())
	assert.Equal(t, Index{2, 0}, surface.Cursor())

	require.NoError(t, surface.SetContents([]byte("x\ny")))
	assert.False(t, surface.IsCRLF)
	assert.False(t, surface.Dirty)
	assert.Equal(t, Index{1, 0}, surface.Cursor())
}

func TestDisplayLines(t *testing.T) {
	surface := newTestSurface(t, "abcdefg\nxy", 4, 5)

	idx := surface.IndexAt(0, 0)
	assert.Equal(t, Index{1, 0}, idx)

	info, ok := surface.DLineInfo(idx)
	require.True(t, ok)
	assert.Equal(t, DisplayLineInfo{X: 0, Y: 0, Width: 4, Height: 1}, info)

	idx, ok = surface.NextDisplayLine(idx)
	require.True(t, ok)
	assert.Equal(t, Index{1, 4}, idx)
	info, ok = surface.DLineInfo(idx)
	require.True(t, ok)
	assert.Equal(t, 1, info.Y)

	idx, ok = surface.NextDisplayLine(idx)
	require.True(t, ok)
	assert.Equal(t, Index{2, 0}, idx)
	info, ok = surface.DLineInfo(idx)
	require.True(t, ok)
	assert.Equal(t, DisplayLineInfo{X: 0, Y: 2, Width: 2, Height: 1}, info)

	_, ok = surface.NextDisplayLine(idx)
	assert.False(t, ok)

	assert.Equal(t, Index{1, 6}, surface.IndexAt(2, 1))
	assert.Equal(t, Index{2, 2}, surface.IndexAt(3, 4), "below the text is the end of the last row")
}

func TestCursorAfterFullLine(t *testing.T) {
	surface := newTestSurface(t, "", 5, 3)
	for _, r := range "abcde" {
		surface.HandleEvent(runeKey(r))
	}
	assert.Equal(t, Index{1, 5}, surface.Cursor())
	assert.Equal(t, 2, surface.totalRows())

	x, y, ok := surface.cursorCell()
	require.True(t, ok)
	assert.Equal(t, 0, x)
	assert.Equal(t, 1, y, "the cursor goes below the line, not over its last character")

	s := *surface.screen
	surface.Draw(s)
	r, _, _, _ := s.GetContent(4, 0)
	assert.Equal(t, 'e', r)
	assert.Equal(t, Index{1, 4}, surface.IndexAt(4, 0))
	assert.Equal(t, Index{1, 5}, surface.IndexAt(3, 1))
}

func TestDLineInfoOutOfView(t *testing.T) {
	surface := newTestSurface(t, "0\n1\n2\n3\n4\n5", 10, 3)

	_, ok := surface.DLineInfo(Index{4, 0})
	assert.False(t, ok)

	require.NoError(t, surface.YViewScroll(2, ScrollUnits))
	info, ok := surface.DLineInfo(Index{4, 0})
	require.True(t, ok)
	assert.Equal(t, 1, info.Y)
	assert.Equal(t, Index{3, 0}, surface.IndexAt(0, 0))
}

func TestYView(t *testing.T) {
	surface := newTestSurface(t, "0\n1\n2\n3\n4\n5\n6\n7\n8\n9", 10, 4)

	first, last := surface.YView()
	assert.InDelta(t, 0.0, first, 1e-9)
	assert.InDelta(t, 0.4, last, 1e-9)

	require.NoError(t, surface.YViewScroll(1, ScrollPages)) // A page is the height less two rows
	first, last = surface.YView()
	assert.InDelta(t, 0.2, first, 1e-9)
	assert.InDelta(t, 0.6, last, 1e-9)

	require.NoError(t, surface.YViewMoveTo(1))
	first, last = surface.YView()
	assert.InDelta(t, 0.6, first, 1e-9)
	assert.InDelta(t, 1.0, last, 1e-9)

	require.NoError(t, surface.YViewScroll(-100, ScrollUnits))
	first, _ = surface.YView()
	assert.InDelta(t, 0.0, first, 1e-9)
}

func TestXView(t *testing.T) {
	surface := newTestSurface(t, "abcdefghij", 4, 2)

	require.NoError(t, surface.XViewScroll(3, ScrollUnits))
	first, last := surface.XView()
	assert.Equal(t, 0.0, first, "a wrapping surface never scrolls horizontally")
	assert.Equal(t, 1.0, last)

	surface.Wrap = WrapNone
	require.NoError(t, surface.XViewScroll(3, ScrollUnits))
	first, last = surface.XView()
	assert.InDelta(t, 0.3, first, 1e-9)
	assert.InDelta(t, 0.7, last, 1e-9)

	require.NoError(t, surface.XViewMoveTo(1))
	first, _ = surface.XView()
	assert.InDelta(t, 0.6, first, 1e-9)
}

func TestSetCursorScrollsIntoView(t *testing.T) {
	surface := newTestSurface(t, "0\n1\n2\n3\n4\n5\n6\n7\n8\n9", 10, 3)

	require.NoError(t, surface.SetCursor(Index{8, 0}))
	assert.Equal(t, Index{6, 0}, surface.IndexAt(0, 0))

	require.NoError(t, surface.SetCursor(Index{2, 0}))
	assert.Equal(t, Index{2, 0}, surface.IndexAt(0, 0))
}

func TestTyping(t *testing.T) {
	surface := newTestSurface(t, "", 20, 5)

	var keys int
	surface.OnKeypress(func(*tcell.EventKey) { keys++ })

	for _, r := range "hi!" {
		assert.True(t, surface.HandleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)))
	}
	assert.True(t, surface.HandleEvent(tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone)))
	assert.True(t, surface.HandleEvent(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone)))
	assert.True(t, surface.HandleEvent(tcell.NewEventKey(tcell.KeyDelete, 0, tcell.ModNone)))
	assert.False(t, surface.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModCtrl)))

	assert.Equal(t, "h", surface.String())
	assert.Equal(t, Index{1, 1}, surface.Cursor())
	assert.Equal(t, 6, keys, "only handled keys reach the listeners")
}

func TestShiftSelectAndReplace(t *testing.T) {
	surface := newTestSurface(t, "hello world", 20, 5)

	for i := 0; i < 5; i++ {
		surface.HandleEvent(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModShift))
	}
	assert.Equal(t, "hello", surface.GetSelectedString())

	require.NoError(t, surface.InsertAtCursor("bye"))
	assert.Equal(t, "bye world", surface.String())
	assert.Equal(t, Index{1, 3}, surface.Cursor())
	_, _, ok := surface.Selection()
	assert.False(t, ok)
}

func TestMouseSelect(t *testing.T) {
	surface := newTestSurface(t, "hello world", 20, 5)

	var releases int
	surface.OnMouseRelease(func(*tcell.EventMouse) { releases++ })

	assert.True(t, surface.HandleEvent(tcell.NewEventMouse(0, 0, tcell.Button1, tcell.ModNone)))
	assert.True(t, surface.HandleEvent(tcell.NewEventMouse(5, 0, tcell.Button1, tcell.ModNone)))
	assert.True(t, surface.HandleEvent(tcell.NewEventMouse(5, 0, tcell.ButtonNone, tcell.ModNone)))

	assert.Equal(t, "hello", surface.GetSelectedString())
	assert.Equal(t, Index{1, 5}, surface.Cursor())
	assert.Equal(t, 1, releases)

	assert.False(t, surface.HandleEvent(tcell.NewEventMouse(30, 30, tcell.Button1, tcell.ModNone)))
}

func TestDraw(t *testing.T) {
	s := newTestScreen(t, 10, 3)
	surface := NewTextSurface(&s, []byte("if x:\n\tpass"), nil)
	surface.SetSize(10, 3)
	surface.SetForeground(tcell.ColorWhite)
	surface.SetBackground(tcell.ColorBlack)
	surface.SetHighlighting(buffer.Python, buffer.Colorscheme{
		buffer.Keyword: tcell.StyleDefault.Foreground(tcell.ColorRed),
	})
	require.NoError(t, surface.Select(Index{2, 1}, Index{2, 3}))

	surface.Draw(s)

	r, _, style, _ := s.GetContent(0, 0)
	assert.Equal(t, 'i', r)
	fg, _, _ := style.Decompose()
	assert.Equal(t, tcell.ColorRed, fg, "keywords use the colorscheme")

	r, _, style, _ = s.GetContent(3, 0)
	assert.Equal(t, 'x', r)
	fg, bg, _ := style.Decompose()
	assert.Equal(t, tcell.ColorWhite, fg)
	assert.Equal(t, tcell.ColorBlack, bg)

	r, _, _, _ = s.GetContent(4, 1) // The tab takes four cells
	assert.Equal(t, 'p', r)
	_, _, style, _ = s.GetContent(5, 1)
	_, _, attrs := style.Decompose()
	assert.NotZero(t, attrs&tcell.AttrReverse, "selected text is reversed")
}

func TestFont(t *testing.T) {
	style := Font{Family: "Terminal Bold"}.apply(tcell.StyleDefault)
	_, _, attrs := style.Decompose()
	assert.NotZero(t, attrs&tcell.AttrBold)
	assert.Zero(t, attrs&tcell.AttrItalic)

	style = Font{Family: "Terminal", Size: 12}.apply(tcell.StyleDefault.Bold(true))
	_, _, attrs = style.Decompose()
	assert.Zero(t, attrs&tcell.AttrBold)
}

func TestLayoutFollowsEdits(t *testing.T) {
	surface := newTestSurface(t, "short\na line that wraps\n\tx\nend", 6, 10)
	same := func(msg string) {
		t.Helper()
		fresh := newTestSurface(t, surface.String(), 6, 10)
		require.Equal(t, fresh.Buffer.Lines(), surface.Buffer.Lines(), msg)
		for line := 0; line < fresh.Buffer.Lines(); line++ {
			assert.Equal(t, fresh.rowCount(line), surface.rowCount(line), "%s: rows of line %d", msg, line)
			assert.Equal(t, fresh.lineCells(line), surface.lineCells(line), "%s: cells of line %d", msg, line)
		}
		assert.Equal(t, fresh.totalRows(), surface.totalRows(), msg)
	}
	same("loaded")

	require.NoError(t, surface.Insert(Index{1, 5}, " and longer\nnew"))
	same("insert with a newline")
	require.NoError(t, surface.Insert(Index{3, 0}, "abc"))
	same("insert within a line")
	require.NoError(t, surface.Delete(Index{1, 2}, Index{3, 4}))
	same("delete across lines")
	require.NoError(t, surface.Replace(Index{1, 0}, Index{2, 1}, "x\ny\nz"))
	same("replace")
	require.NoError(t, surface.SetContents([]byte("one\ntwo")))
	same("new contents")

	require.NoError(t, surface.Insert(Index{1, 0}, "a much longer first line"))
	rows := surface.totalRows()
	surface.Wrap = WrapNone
	assert.Equal(t, 2, surface.totalRows(), "nothing wraps")
	surface.Wrap = WrapChar
	assert.Equal(t, rows, surface.totalRows())
	surface.SetSize(100, 10)
	assert.Equal(t, 2, surface.totalRows())
}

func TestEditNearEndOfLongFile(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 3000; i++ {
		fmt.Fprintf(&b, "%d: a line that is long enough to wrap once on this surface\n", i)
	}
	surface := newTestSurface(t, b.String(), 40, 20)
	surface.SetFocused(true)
	s := *surface.screen
	require.NoError(t, surface.SetCursor(Index{2900, 0}))
	surface.Draw(s)

	start := time.Now()
	for _, r := range "edit" {
		surface.HandleEvent(runeKey(r))
	}
	surface.HandleEvent(key(tcell.KeyEnter))
	surface.HandleEvent(key(tcell.KeyBackspace2))
	surface.Draw(s)
	elapsed := time.Since(start)

	assert.Equal(t, Index{2900, 4}, surface.Cursor())
	assert.Equal(t, 6001, surface.totalRows())
	assert.Less(t, elapsed.Milliseconds(), int64(500), "keystrokes must not relayout the whole file")
}
