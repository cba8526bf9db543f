package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

type Button struct {
	Text     string
	Callback func()

	baseComponent
}

func NewButton(text string, theme *Theme, callback func()) *Button {
	b := &Button{
		Text:          text,
		Callback:      callback,
		baseComponent: baseComponent{theme: theme},
	}
	b.SetSize(b.GetMinSize())
	return b
}

func (b *Button) Draw(s tcell.Screen) {
	var str string
	if b.focused {
		str = fmt.Sprintf("[ %s ]", b.Text)
	} else {
		str = fmt.Sprintf("  %s  ", b.Text)
	}
	DrawStr(s, b.x, b.y, str, b.theme.GetOrDefault("Button"))
}

func (b *Button) GetMinSize() (int, int) {
	return runewidth.StringWidth(b.Text) + 4, 1
}

// SetSize does nothing: a Button is always its minimum size.
func (b *Button) SetSize(int, int) {
	b.width, b.height = b.GetMinSize()
}

func (b *Button) activate() {
	if b.Callback != nil {
		b.Callback()
	}
}

// HandleEvent activates the Button on Enter while focused, or on a click.
func (b *Button) HandleEvent(event tcell.Event) bool {
	switch ev := event.(type) {
	case *tcell.EventKey:
		if b.focused && ev.Key() == tcell.KeyEnter {
			b.activate()
			return true
		}
	case *tcell.EventMouse:
		mx, my := ev.Position()
		if ev.Buttons()&tcell.Button1 != 0 && b.contains(mx, my) {
			b.activate()
			return true
		}
	}
	return false
}
