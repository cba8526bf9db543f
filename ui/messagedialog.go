package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

type MessageDialogKind uint8

const (
	MessageKindNormal MessageDialogKind = iota
	MessageKindWarning
	MessageKindError
)

// Index of messageDialogKindTitles is any MessageDialogKind.
var messageDialogKindTitles [3]string = [3]string{
	"Message",
	"Warning!",
	"Error!",
}

// A MessageDialog shows a message and a row of buttons. The Callback receives
// the text of the button that was chosen.
type MessageDialog struct {
	Title    string
	Kind     MessageDialogKind
	Callback func(string)

	message        string
	messageWrapped string

	buttons     []*Button
	selectedIdx int

	baseComponent
}

func NewMessageDialog(title string, message string, kind MessageDialogKind, options []string, theme *Theme, callback func(string)) *MessageDialog {
	if title == "" {
		title = messageDialogKindTitles[kind] // Use default title
	}

	if len(options) == 0 {
		options = []string{"OK"}
	}

	dialog := &MessageDialog{
		Title:         title,
		Kind:          kind,
		Callback:      callback,
		baseComponent: baseComponent{theme: theme},
	}

	dialog.buttons = make([]*Button, len(options))
	for i := range options {
		option := options[i]
		dialog.buttons[i] = NewButton(option, theme, func() {
			if dialog.Callback != nil {
				dialog.Callback(option)
			}
		})
	}

	dialog.SetMessage(message) // Also sets the dialog's size to its minimum size

	return dialog
}

func (d *MessageDialog) SetMessage(message string) {
	d.message = message
	d.SetSize(d.width, d.height)
}

func (d *MessageDialog) Message() string {
	return d.message
}

func (d *MessageDialog) Draw(s tcell.Screen) {
	DrawWindow(s, d.x, d.y, d.width, d.height, d.Title, d.theme)

	DrawStr(s, d.x+1, d.y+2, d.messageWrapped, d.theme.GetOrDefault("Window"))

	col := d.width // Start from the right side
	for i := range d.buttons {
		width, _ := d.buttons[i].GetSize()
		col -= width + 1 // Move left enough for each button (1 for padding)
		d.buttons[i].SetPos(d.x+col, d.y+d.height-2)
		d.buttons[i].Draw(s)
	}
}

func (d *MessageDialog) SetFocused(v bool) {
	d.focused = v
	d.buttons[d.selectedIdx].SetFocused(v)
}

func (d *MessageDialog) SetTheme(theme *Theme) {
	d.theme = theme
	for i := range d.buttons {
		d.buttons[i].SetTheme(theme)
	}
}

func (d *MessageDialog) GetMinSize() (int, int) {
	lines := strings.Count(d.messageWrapped, "\n") + 1

	return Max(runewidth.StringWidth(d.Title)+2, 30), 2 + lines + 2
}

// SetSize wraps the message to the new width, and grows the height to fit it.
func (d *MessageDialog) SetSize(width, height int) {
	minWidth, _ := d.GetMinSize()
	d.width = Max(width, minWidth)
	d.messageWrapped = runewidth.Wrap(d.message, d.width-2)
	_, minHeight := d.GetMinSize()
	d.height = Max(height, minHeight)
}

// HandleEvent moves between the buttons with Tab, and otherwise gives the
// event to the selected button. Escape chooses the last button.
func (d *MessageDialog) HandleEvent(event tcell.Event) bool {
	if ev, ok := event.(*tcell.EventKey); ok {
		switch ev.Key() {
		case tcell.KeyTab, tcell.KeyLeft, tcell.KeyRight:
			d.buttons[d.selectedIdx].SetFocused(false)
			d.selectedIdx = (d.selectedIdx + 1) % len(d.buttons)
			d.buttons[d.selectedIdx].SetFocused(d.focused)
			return true
		case tcell.KeyEscape:
			d.buttons[len(d.buttons)-1].activate()
			return true
		}
	}
	for _, b := range d.buttons {
		if b.HandleEvent(event) {
			return true
		}
	}
	return false
}
