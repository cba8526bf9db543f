package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// An InputField is a single-line input box.
type InputField struct {
	Text string

	cursorPos int // Rune index into Text
	scrollPos int // First rune in view
	screen    *tcell.Screen

	baseComponent
}

func NewInputField(screen *tcell.Screen, text string, theme *Theme) *InputField {
	f := &InputField{
		Text:          text,
		screen:        screen,
		baseComponent: baseComponent{theme: theme},
	}
	f.cursorPos = len([]rune(text))
	return f
}

func (f *InputField) GetCursorPos() int {
	return f.cursorPos
}

// SetCursorPos sets the cursor position offset. Offset is clamped to possible values.
// The InputField is scrolled to show the new cursor position.
func (f *InputField) SetCursorPos(offset int) {
	offset = Clamp(offset, 0, len([]rune(f.Text)))

	// Scrolling
	if inner := f.width - 2; inner > 0 {
		if offset >= f.scrollPos+inner { // If cursor position is out of view to the right...
			f.scrollPos = offset - inner + 1 // Scroll just enough to view that column
		} else if offset < f.scrollPos { // If cursor position is out of view to the left...
			f.scrollPos = offset
		}
	}

	f.cursorPos = offset
	if f.focused && f.screen != nil && *f.screen != nil {
		(*f.screen).ShowCursor(f.x+1+f.cellsTo(offset), f.y)
	}
}

// cellsTo returns the cells between the scroll position and the rune at `offset`.
func (f *InputField) cellsTo(offset int) int {
	runes := []rune(f.Text)
	return runewidth.StringWidth(string(runes[Min(f.scrollPos, offset):offset]))
}

// Delete removes the rune before the cursor, or after the cursor when `forward`.
func (f *InputField) Delete(forward bool) {
	runes := []rune(f.Text)
	at := f.cursorPos
	if !forward {
		at--
	}
	if at < 0 || at >= len(runes) {
		return
	}
	f.Text = string(append(runes[:at:at], runes[at+1:]...))
	f.SetCursorPos(at)
}

func (f *InputField) insert(r rune) {
	runes := []rune(f.Text)
	runes = append(runes[:f.cursorPos], append([]rune{r}, runes[f.cursorPos:]...)...)
	f.Text = string(runes)
	f.SetCursorPos(f.cursorPos + 1)
}

func (f *InputField) Draw(s tcell.Screen) {
	style := f.theme.GetOrDefault("InputField")

	DrawRect(s, f.x, f.y, f.width, f.height, ' ', style) // Draw background
	s.SetContent(f.x, f.y, '[', nil, style)
	s.SetContent(f.x+f.width-1, f.y, ']', nil, style)

	runes := []rune(f.Text)
	if f.scrollPos < len(runes) {
		text := runewidth.Truncate(string(runes[f.scrollPos:]), f.width-2, "")
		DrawStr(s, f.x+1, f.y, text, style) // Draw text
	}

	// Update cursor
	f.SetCursorPos(f.cursorPos)
}

func (f *InputField) SetFocused(v bool) {
	f.focused = v
	if v {
		f.SetCursorPos(f.cursorPos)
	} else if f.screen != nil && *f.screen != nil {
		(*f.screen).HideCursor()
	}
}

func (f *InputField) GetMinSize() (int, int) {
	return 3, 1
}

func (f *InputField) HandleEvent(event tcell.Event) bool {
	switch ev := event.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyLeft:
			f.SetCursorPos(f.cursorPos - 1)
		case tcell.KeyRight:
			f.SetCursorPos(f.cursorPos + 1)
		case tcell.KeyHome:
			f.SetCursorPos(0)
		case tcell.KeyEnd:
			f.SetCursorPos(len([]rune(f.Text)))
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			f.Delete(false)
		case tcell.KeyDelete:
			f.Delete(true)
		case tcell.KeyRune:
			f.insert(ev.Rune())
		default:
			return false
		}
		return true
	}
	return false
}
