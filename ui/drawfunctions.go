package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// DrawRect renders a filled box at `x` and `y`, of size `width` and `height`.
// Will not call `Show()`.
func DrawRect(s tcell.Screen, x, y, width, height int, char rune, style tcell.Style) {
	for col := x; col < x+width; col++ {
		for row := y; row < y+height; row++ {
			s.SetContent(col, row, char, nil, style)
		}
	}
}

// DrawStr will render each character of a string at `x` and `y`. Each '\n'
// continues the string at `x` on the next row. Returns the width in cells of
// the widest row drawn.
func DrawStr(s tcell.Screen, x, y int, str string, style tcell.Style) int {
	var widest int
	for i, line := range strings.Split(str, "\n") {
		col := x
		for _, r := range line {
			s.SetContent(col, y+i, r, nil, style)
			col += runewidth.RuneWidth(r)
		}
		widest = Max(widest, col-x)
	}
	return widest
}

// QuickCharInString returns the rune at rune index `idx` of `s`, or zero when
// `idx` is out of range. The rune is lowercased to be matched against key
// presses.
func QuickCharInString(s string, idx int) rune {
	runes := []rune(strings.ToLower(s))
	if idx < 0 || idx >= len(runes) {
		return 0
	}
	return runes[idx]
}

// DrawQuickCharStr renders `str` like DrawStr, but underlines the rune at rune
// index `quickCharIdx`. Returns the width in cells of the string.
func DrawQuickCharStr(s tcell.Screen, x, y int, str string, quickCharIdx int, style tcell.Style) int {
	col := x
	for i, r := range []rune(str) {
		sty := style
		if i == quickCharIdx {
			sty = style.Underline(true)
		}
		s.SetContent(col, y, r, nil, sty)
		col += runewidth.RuneWidth(r)
	}
	return col - x
}

// DrawRectOutline draws only the outline of a rectangle, using `ul`, `ur`, `bl`, and `br`
// for the corner runes, and `hor` and `vert` for the horizontal and vertical runes, respectively.
func DrawRectOutline(s tcell.Screen, x, y, _width, _height int, ul, ur, bl, br, hor, vert rune, style tcell.Style) {
	width := x + _width - 1   // Length across
	height := y + _height - 1 // Length top-to-bottom

	// Horizontals and verticals
	for col := x + 1; col < width; col++ {
		s.SetContent(col, y, hor, nil, style)      // Top line
		s.SetContent(col, height, hor, nil, style) // Bottom line
	}
	for row := y + 1; row < height; row++ {
		s.SetContent(x, row, vert, nil, style)     // Left line
		s.SetContent(width, row, vert, nil, style) // Right line
	}
	// Corners
	s.SetContent(x, y, ul, nil, style)
	s.SetContent(width, y, ur, nil, style)
	s.SetContent(x, height, bl, nil, style)
	s.SetContent(width, height, br, nil, style)
}

// DrawRectOutlineDefault calls DrawRectOutline with the default edge runes.
func DrawRectOutlineDefault(s tcell.Screen, x, y, width, height int, style tcell.Style) {
	DrawRectOutline(s, x, y, width, height, '┌', '┐', '└', '┘', '─', '│', style)
}

// DrawWindow draws a window body with a header row holding the centered `title`.
func DrawWindow(s tcell.Screen, x, y, width, height int, title string, theme *Theme) {
	headerStyle := theme.GetOrDefault("WindowHeader")

	DrawRect(s, x, y, width, 1, ' ', headerStyle)                               // Draw header
	DrawStr(s, x+width/2-runewidth.StringWidth(title)/2, y, title, headerStyle) // Draw title
	DrawRect(s, x, y+1, width, height-1, ' ', theme.GetOrDefault("Window"))     // Draw body background
}
