package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Align defines the text alignment of a label.
type Align uint8

const (
	// AlignLeft is the normal text alignment where text is aligned to the left
	// of its bounding box.
	AlignLeft Align = iota
	// AlignRight causes text to be aligned to the right of its bounding box.
	AlignRight
)

// A Label is a component for rendering text. Text can be rendered easily
// without a Label, but this component forces the text to fit within its
// bounding box and allows for left or right alignment.
type Label struct {
	Text      string
	Alignment Align

	baseComponent
}

func NewLabel(text string, theme *Theme) *Label {
	l := &Label{Text: text, baseComponent: baseComponent{theme: theme}}
	l.SetSize(l.GetMinSize())
	return l
}

// SetText changes the text and resizes the Label to fit it.
func (l *Label) SetText(text string) {
	l.Text = text
	l.SetSize(l.GetMinSize())
}

func (l *Label) Draw(s tcell.Screen) {
	style := l.theme.GetOrDefault("Label")
	DrawRect(s, l.x, l.y, l.width, l.height, ' ', style)

	text := runewidth.Truncate(l.Text, l.width, "…")
	x := l.x
	if l.Alignment == AlignRight {
		x += l.width - runewidth.StringWidth(text)
	}
	for _, r := range text {
		s.SetContent(x, l.y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}

func (l *Label) GetMinSize() (int, int) {
	return runewidth.StringWidth(l.Text), 1
}

func (l *Label) HandleEvent(tcell.Event) bool {
	return false
}
