package main

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/fivemoreminix/notepad/config"
	"github.com/fivemoreminix/notepad/ui"
	"github.com/fivemoreminix/notepad/ui/buffer"
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/afero"
	"github.com/tliron/commonlog"
)

const appName = "Notepad"

const gutterWidth = 5

var log = commonlog.GetLogger("notepad")

// fileFilters are offered in the open and save dialogs. They do not restrict
// what can be typed.
var fileFilters = []ui.FileFilter{
	{Name: "All Files", Pattern: "*.*"},
	{Name: "Text Files", Pattern: "*.txt"},
	{Name: "Python Files", Pattern: "*.py"},
}

// App is the editor window: a menu bar, an EditPanel holding the one open
// document, and a status bar. Dialogs are shown over everything and take all
// input until closed.
type App struct {
	FilePath string // Where the document is saved; empty until saved or opened

	screen    tcell.Screen
	fs        afero.Fs
	cfg       config.Config
	theme     ui.Theme
	clipboard *Clipboard

	bar       *ui.MenuBar
	panel     *ui.EditPanel
	status    *ui.StatusBar
	posLabel  *ui.Label
	fileLabel *ui.Label

	dialog     ui.Component // Shown over everything when not nil
	focused    ui.Component
	barFocused bool
	quit       bool
}

func NewApp(screen tcell.Screen, fsys afero.Fs, cfg config.Config, clip *Clipboard) *App {
	a := &App{
		screen:    screen,
		fs:        fsys,
		cfg:       cfg,
		theme:     ui.Theme{},
		clipboard: clip,
	}

	a.panel = ui.NewEditPanel(&a.screen, nil, gutterWidth, &a.theme)
	a.panel.SetFont(cfg.Font.Family, cfg.Font.Size).
		SetBackground(tcell.GetColor(cfg.Colors.Background)).
		SetForeground(tcell.GetColor(cfg.Colors.Text))
	a.panel.Surface.TabSize = cfg.Font.TabStop
	a.panel.Surface.SetHighlighting(nil, newColorscheme(cfg))
	a.panel.Surface.OnKeypress(func(*tcell.EventKey) { a.updateStatus() })
	a.panel.Surface.OnMouseRelease(func(*tcell.EventMouse) { a.updateStatus() })

	a.posLabel = ui.NewLabel("", &a.theme)
	a.fileLabel = ui.NewLabel("", &a.theme)
	a.status = ui.NewStatusBar(&a.theme).
		AddElement(ui.NewStatusBarElement(a.posLabel)).
		AddElement(ui.NewStatusBarElement(a.fileLabel))

	a.bar = ui.NewMenuBar(&a.theme)
	a.bar.AddMenu(a.fileMenu())
	a.bar.AddMenu(a.editMenu())

	a.layout()
	a.panel.Start()
	a.changeFocus(a.panel)
	a.updateStatus()
	return a
}

// newColorscheme styles each class of token with the colors of `cfg`.
func newColorscheme(cfg config.Config) buffer.Colorscheme {
	bg := tcell.GetColor(cfg.Colors.Background)
	style := func(color string) tcell.Style {
		return tcell.StyleDefault.Foreground(tcell.GetColor(color)).Background(bg)
	}
	h := cfg.Colors.Highlighting
	return buffer.Colorscheme{
		buffer.Default:    style(cfg.Colors.Text),
		buffer.Keyword:    style(h.Keyword),
		buffer.Comment:    style(h.Comment),
		buffer.Definition: style(h.Definition),
		buffer.String:     style(h.String),
		buffer.Builtin:    style(h.Builtin),
	}
}

func (a *App) fileMenu() *ui.Menu {
	menu := ui.NewMenu("File", 0, &a.theme)
	menu.AddItems([]ui.Item{
		&ui.ItemEntry{Name: "Open...", Shortcut: "Ctrl+O", Key: tcell.KeyCtrlO, Callback: a.promptOpen},
		&ui.ItemEntry{Name: "Save", Shortcut: "Ctrl+S", Key: tcell.KeyCtrlS, Callback: a.save},
		&ui.ItemEntry{Name: "Save As...", QuickChar: 5, Shortcut: "Ctrl+W", Key: tcell.KeyCtrlW, Callback: a.promptSaveAs},
		&ui.ItemSeparator{},
		&ui.ItemEntry{Name: "Exit", QuickChar: 1, Shortcut: "Ctrl+Q", Key: tcell.KeyCtrlQ, Callback: a.Quit},
	})
	return menu
}

func (a *App) editMenu() *ui.Menu {
	menu := ui.NewMenu("Edit", 0, &a.theme)
	menu.AddItems([]ui.Item{
		&ui.ItemEntry{Name: "Cut", QuickChar: 2, Shortcut: "Ctrl+X", Key: tcell.KeyCtrlX, Callback: a.cut},
		&ui.ItemEntry{Name: "Copy", Shortcut: "Ctrl+C", Key: tcell.KeyCtrlC, Callback: a.copy},
		&ui.ItemEntry{Name: "Paste", Shortcut: "Ctrl+V", Key: tcell.KeyCtrlV, Callback: a.paste},
		&ui.ItemSeparator{},
		&ui.ItemEntry{Name: "Go to line...", Shortcut: "Ctrl+G", Key: tcell.KeyCtrlG, Callback: a.promptGotoLine},
	})
	return menu
}

// Title is the name of the window: the application and the file being edited.
func (a *App) Title() string {
	if a.FilePath == "" {
		return appName
	}
	return appName + " - " + a.FilePath
}

func (a *App) Surface() *ui.TextSurface {
	return a.panel.Surface
}

// Open replaces the document with the file at `path`, which becomes the current file.
func (a *App) Open(path string) error {
	data, err := ReadDocument(a.fs, path)
	if err != nil {
		return err
	}
	if err := a.panel.Surface.SetContents(data); err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	a.setFilePath(path)
	log.Infof("opened %s (%d bytes)", path, len(data))
	return nil
}

// OpenOrCreate opens the file at `path`, or starts an empty document that will
// be saved there when the file does not exist.
func (a *App) OpenOrCreate(path string) error {
	err := a.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		a.setFilePath(path)
		return nil
	}
	return err
}

// Save writes the document to the current file. Without a current file, the
// user is asked for one.
func (a *App) Save() error {
	if a.FilePath == "" {
		a.promptSaveAs()
		return nil
	}
	return a.SaveAs(a.FilePath)
}

// SaveAs writes the document to `path`, which becomes the current file.
func (a *App) SaveAs(path string) error {
	if err := WriteDocument(a.fs, path, a.panel.Surface.Buffer); err != nil {
		return err
	}
	a.panel.Surface.Dirty = false
	a.setFilePath(path)
	log.Infof("saved %s", path)
	return nil
}

func (a *App) setFilePath(path string) {
	a.FilePath = path
	a.panel.Surface.SetLanguage(buffer.LanguageForPath(path))
	a.updateStatus()
}

// Cut moves the selection to the clipboard.
func (a *App) Cut() error {
	sel := a.panel.Surface.GetSelectedString()
	if sel == "" {
		return nil
	}
	if err := a.clipboard.Write(sel); err != nil {
		return fmt.Errorf("cut: %w", err)
	}
	return a.panel.Surface.DeleteSelection()
}

// Copy puts the selection in the clipboard.
func (a *App) Copy() error {
	sel := a.panel.Surface.GetSelectedString()
	if sel == "" {
		return nil
	}
	if err := a.clipboard.Write(sel); err != nil {
		return fmt.Errorf("copy: %w", err)
	}
	return nil
}

// Paste inserts the clipboard at the cursor. Selected text stays in the
// document, but is no longer selected.
func (a *App) Paste() error {
	text, err := a.clipboard.Read()
	if err != nil {
		return fmt.Errorf("paste: %w", err)
	}
	surface := a.panel.Surface
	surface.ClearSelection()
	if err := surface.InsertAtCursor(text); err != nil {
		return fmt.Errorf("paste: %w", err)
	}
	return nil
}

// Menu callbacks report errors in a dialog.

func (a *App) save()  { a.report(a.Save()) }
func (a *App) cut()   { a.report(a.Cut()) }
func (a *App) copy()  { a.report(a.Copy()) }
func (a *App) paste() { a.report(a.Paste()) }

// Quit ends the event loop.
func (a *App) Quit() {
	a.quit = true
}

// report logs `err` and shows it to the user. Nothing happens when `err` is nil.
func (a *App) report(err error) {
	if err == nil {
		return
	}
	log.Errorf("%s", err.Error())
	a.showDialog(ui.NewMessageDialog("", err.Error(), ui.MessageKindError, nil, &a.theme, func(string) {
		a.closeDialog()
	}))
}

func (a *App) promptOpen() {
	a.showDialog(ui.NewFileSelectorDialog(&a.screen, "Open", fileFilters, &a.theme,
		func(path string) {
			a.closeDialog()
			a.report(a.Open(path))
		},
		a.closeDialog,
	))
}

func (a *App) promptSaveAs() {
	dialog := ui.NewFileSelectorDialog(&a.screen, "Save As", fileFilters, &a.theme,
		func(path string) {
			a.closeDialog()
			a.report(a.SaveAs(path))
		},
		a.closeDialog,
	)
	dialog.SetPath(a.FilePath)
	a.showDialog(dialog)
}

func (a *App) promptGotoLine() {
	a.showDialog(NewGotoLineDialog(&a.screen, &a.theme,
		func(line int) {
			a.closeDialog()
			surface := a.panel.Surface
			line = ui.Min(line, surface.End().Line)
			a.report(surface.SetCursor(ui.Index{Line: line}))
			a.updateStatus()
		},
		a.closeDialog,
	))
}

// Dialog returns the dialog being shown, or nil.
func (a *App) Dialog() ui.Component {
	return a.dialog
}

func (a *App) showDialog(dialog ui.Component) {
	a.dialog = dialog
	a.layout()
	a.changeFocus(dialog)
}

func (a *App) closeDialog() {
	a.dialog = nil
	a.barFocused = false
	a.changeFocus(a.panel)
}

func (a *App) changeFocus(to ui.Component) {
	if a.focused != nil {
		a.focused.SetFocused(false)
	}
	a.focused = to
	to.SetFocused(true)
}

// updateStatus shows the cursor position and the file name in the status bar.
func (a *App) updateStatus() {
	idx := a.panel.Surface.Cursor()
	a.posLabel.SetText(fmt.Sprintf("ln %d : col %d", idx.Line, idx.Col))

	name := "Untitled"
	if a.FilePath != "" {
		name = filepath.Base(a.FilePath)
	}
	a.fileLabel.SetText(name)
}

func (a *App) layout() {
	width, height := a.screen.Size()

	a.bar.SetPos(0, 0)
	a.bar.SetSize(width, 1)

	a.panel.SetPos(0, 1)
	a.panel.SetSize(width, ui.Max(height-2, 0))

	a.status.SetPos(0, height-1)
	a.status.SetSize(width, 1)

	if a.dialog != nil {
		w, h := a.dialog.GetMinSize()
		w = ui.Max(w, ui.Min(width-4, 50))
		a.dialog.SetSize(w, h)
		w, h = a.dialog.GetSize()
		a.dialog.SetPos(width/2-w/2, height/2-h/2) // Center
	}
}

func (a *App) Draw() {
	a.screen.Clear()

	a.panel.Draw(a.screen)
	a.status.Draw(a.screen)
	a.bar.Draw(a.screen)

	// The title goes at the right of the menu bar
	title := a.Title()
	if a.panel.Surface.Dirty {
		title += " *"
	}
	width, _ := a.screen.Size()
	ui.DrawStr(a.screen, ui.Max(width-len([]rune(title))-1, 0), 0, title, a.theme.GetOrDefault("MenuBar"))

	if a.dialog != nil {
		a.dialog.Draw(a.screen)
	}

	a.screen.Show()
}

// HandleEvent gives `event` to the dialog, the menu shortcuts, or the focused
// component, in that order.
func (a *App) HandleEvent(event tcell.Event) {
	switch ev := event.(type) {
	case *tcell.EventResize:
		a.layout()
		a.screen.Sync()
	case *tcell.EventKey:
		if a.dialog != nil {
			a.dialog.HandleEvent(ev)
			return
		}
		// Shortcuts and menu items edit the surface without a keypress
		// reaching it, so the status bar is refreshed here too.
		if a.bar.HandleShortcut(ev) {
			if a.dialog == nil && a.barFocused {
				a.barFocused = false
				a.changeFocus(a.panel)
			}
			a.updateStatus()
			return
		}
		// On Escape, we change focus between editor and the MenuBar.
		if ev.Key() == tcell.KeyEscape {
			a.barFocused = !a.barFocused
			if a.barFocused {
				a.changeFocus(a.bar)
			} else {
				a.changeFocus(a.panel)
			}
			return
		}
		menuOpen := a.bar.MenusVisible()
		a.focused.HandleEvent(ev)
		if a.barFocused && menuOpen && !a.bar.MenusVisible() && a.dialog == nil {
			// A menu item was chosen
			a.barFocused = false
			a.changeFocus(a.panel)
			a.updateStatus()
		}
	case *tcell.EventMouse:
		if a.dialog != nil {
			a.dialog.HandleEvent(ev)
			return
		}
		a.panel.HandleEvent(ev)
	}
}

// Run draws and handles events until the user quits or the screen is finalized.
func (a *App) Run() {
	for !a.quit {
		a.Draw()
		event := a.screen.PollEvent()
		if event == nil {
			return
		}
		a.HandleEvent(event)
	}
}
