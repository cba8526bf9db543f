package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// A FileFilter names a kind of file the user may be looking for. Filters are
// only shown to the user: any typed path is accepted.
type FileFilter struct {
	Name    string
	Pattern string
}

func (f FileFilter) String() string {
	return f.Name + " (" + f.Pattern + ")"
}

// A FileSelectorDialog is a window with an input and buttons for choosing the
// path of one file, either to open or to save.
type FileSelectorDialog struct {
	Title              string
	Filters            []FileFilter
	FileChosenCallback func(string) // Receives the trimmed path; never called with an empty path
	CancelCallback     func()       // Called when the dialog has been canceled by the user

	tabOrder    []Component
	tabOrderIdx int

	inputField    *InputField
	confirmButton *Button
	cancelButton  *Button

	baseComponent
}

func NewFileSelectorDialog(screen *tcell.Screen, title string, filters []FileFilter, theme *Theme, fileChosenCallback func(string), cancelCallback func()) *FileSelectorDialog {
	dialog := &FileSelectorDialog{
		Title:              title,
		Filters:            filters,
		FileChosenCallback: fileChosenCallback,
		CancelCallback:     cancelCallback,
		baseComponent:      baseComponent{theme: theme},
	}

	dialog.inputField = NewInputField(screen, "", theme)
	dialog.confirmButton = NewButton("Confirm", theme, dialog.onConfirm)
	dialog.cancelButton = NewButton("Cancel", theme, dialog.onCancel)
	dialog.tabOrder = []Component{dialog.inputField, dialog.cancelButton, dialog.confirmButton}

	return dialog
}

// onConfirm is a callback called by the confirm button. An empty path is the
// same as canceling.
func (d *FileSelectorDialog) onConfirm() {
	path := strings.TrimSpace(d.inputField.Text)
	if path == "" {
		d.onCancel()
		return
	}
	if d.FileChosenCallback != nil {
		d.FileChosenCallback(path)
	}
}

func (d *FileSelectorDialog) onCancel() {
	if d.CancelCallback != nil {
		d.CancelCallback()
	}
}

// SetPath sets the text of the input field, such as to suggest the current file.
func (d *FileSelectorDialog) SetPath(path string) {
	d.inputField.Text = path
	d.inputField.SetCursorPos(len([]rune(path)))
}

func (d *FileSelectorDialog) filtersLine() string {
	names := make([]string, len(d.Filters))
	for i, f := range d.Filters {
		names[i] = f.String()
	}
	return strings.Join(names, ", ")
}

func (d *FileSelectorDialog) Draw(s tcell.Screen) {
	DrawWindow(s, d.x, d.y, d.width, d.height, d.Title, d.theme)

	if len(d.Filters) > 0 {
		line := runewidth.Truncate(d.filtersLine(), d.width-2, "…")
		DrawStr(s, d.x+1, d.y+1, line, d.theme.GetOrDefault("Window"))
	}

	// Update positions of child components (dependent on size information that may not be available at SetPos() )
	btnWidth, _ := d.confirmButton.GetSize()
	d.confirmButton.SetPos(d.x+d.width-btnWidth-1, d.y+4) // Place "Ok" button on right, bottom

	d.inputField.Draw(s)
	d.confirmButton.Draw(s)
	d.cancelButton.Draw(s)
}

func (d *FileSelectorDialog) SetFocused(v bool) {
	d.focused = v
	d.tabOrder[d.tabOrderIdx].SetFocused(v)
}

func (d *FileSelectorDialog) SetTheme(theme *Theme) {
	d.theme = theme
	for _, c := range d.tabOrder {
		c.SetTheme(theme)
	}
}

func (d *FileSelectorDialog) SetPos(x, y int) {
	d.x, d.y = x, y
	d.inputField.SetPos(d.x+1, d.y+2)   // Center input field
	d.cancelButton.SetPos(d.x+1, d.y+4) // Place "Cancel" button on left, bottom
}

func (d *FileSelectorDialog) GetMinSize() (int, int) {
	return Max(runewidth.StringWidth(d.Title), runewidth.StringWidth(d.filtersLine())) + 2, 6
}

func (d *FileSelectorDialog) SetSize(width, height int) {
	minX, minY := d.GetMinSize()
	d.width, d.height = Max(width, minX), Max(height, minY)

	d.inputField.SetSize(d.width-2, 1)
}

func (d *FileSelectorDialog) HandleEvent(event tcell.Event) bool {
	if ev, ok := event.(*tcell.EventKey); ok {
		switch ev.Key() {
		case tcell.KeyTab:
			d.tabOrder[d.tabOrderIdx].SetFocused(false)

			d.tabOrderIdx++
			if d.tabOrderIdx >= len(d.tabOrder) {
				d.tabOrderIdx = 0
			}

			d.tabOrder[d.tabOrderIdx].SetFocused(true)
			return true
		case tcell.KeyEscape:
			d.onCancel()
			return true
		case tcell.KeyEnter:
			if d.tabOrder[d.tabOrderIdx] == d.inputField {
				d.onConfirm()
				return true
			}
		}
	}
	if _, ok := event.(*tcell.EventMouse); ok {
		return d.confirmButton.HandleEvent(event) || d.cancelButton.HandleEvent(event)
	}
	return d.tabOrder[d.tabOrderIdx].HandleEvent(event)
}
