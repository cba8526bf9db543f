package ui

import (
	"strconv"

	"github.com/gdamore/tcell/v2"
)

// A GutterLabel is the text drawn beside one display row of a TextSurface.
type GutterLabel struct {
	Y    int // Row relative to the top of the surface
	Text string
}

// LineNumberGutter draws the logical line number of each visible display row of
// the TextSurface it is attached to. Rows of a wrapped line repeat the number.
// Its rightmost column is a border.
type LineNumberGutter struct {
	Labels []GutterLabel

	surface     *TextSurface
	color       tcell.Color
	background  tcell.Color
	borderColor tcell.Color
	font        Font

	baseComponent
}

// NewLineNumberGutter returns a gutter of a fixed `width`, including its border.
// The colors are taken from the "Gutter" key of the theme.
func NewLineNumberGutter(width int, theme *Theme) *LineNumberGutter {
	fg, bg, _ := theme.GetOrDefault("Gutter").Decompose()
	g := &LineNumberGutter{
		color:         fg,
		background:    bg,
		borderColor:   bg,
		font:          Font{Family: "Terminal", Size: 10},
		baseComponent: baseComponent{theme: theme},
	}
	g.width = Max(width, 2)
	return g
}

// Attach sets the TextSurface whose lines are numbered.
func (g *LineNumberGutter) Attach(t *TextSurface) {
	g.surface = t
}

// Redraw recomputes the labels from the display rows that are currently visible.
func (g *LineNumberGutter) Redraw() {
	g.Labels = g.Labels[:0]
	if g.surface == nil {
		return
	}

	idx := g.surface.IndexAt(0, 0)
	for {
		info, ok := g.surface.DLineInfo(idx)
		if !ok {
			break
		}
		g.Labels = append(g.Labels, GutterLabel{info.Y, strconv.Itoa(idx.Line)})

		if idx, ok = g.surface.NextDisplayLine(idx); !ok {
			break
		}
	}
}

func (g *LineNumberGutter) SetColor(color tcell.Color) {
	g.color = color
}

// SetBackground sets the background of the gutter and of its border.
func (g *LineNumberGutter) SetBackground(color tcell.Color) {
	g.background = color
	g.borderColor = color
}

func (g *LineNumberGutter) SetFont(font Font) {
	g.font = font
}

func (g *LineNumberGutter) Draw(s tcell.Screen) {
	style := g.font.apply(tcell.StyleDefault.Foreground(g.color).Background(g.background))
	DrawRect(s, g.x, g.y, g.width-1, g.height, ' ', style)

	border := tcell.StyleDefault.Foreground(g.borderColor).Background(g.borderColor)
	DrawRect(s, g.x+g.width-1, g.y, 1, g.height, ' ', border)

	for _, label := range g.Labels {
		if label.Y >= g.height {
			continue
		}
		text := label.Text
		if len(text) > g.width-1 { // Keep the least significant digits
			text = text[len(text)-(g.width-1):]
		}
		DrawStr(s, g.x, g.y+label.Y, text, style)
	}
}

// SetSize only changes the height: the width is fixed.
func (g *LineNumberGutter) SetSize(_, height int) {
	g.height = Max(height, 0)
}

func (g *LineNumberGutter) GetMinSize() (int, int) {
	return g.width, 0
}

func (g *LineNumberGutter) HandleEvent(tcell.Event) bool {
	return false
}
