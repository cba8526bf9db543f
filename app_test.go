package main

import (
	"testing"

	"github.com/fivemoreminix/notepad/config"
	"github.com/fivemoreminix/notepad/ui"
	"github.com/fivemoreminix/notepad/ui/buffer"
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) (*App, afero.Fs) {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(60, 20)
	t.Cleanup(s.Fini)

	clip, err := NewClipboard(ClipInternal)
	require.NoError(t, err)

	fsys := afero.NewMemMapFs()
	return NewApp(s, fsys, config.Default(), clip), fsys
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func ctrl(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModCtrl)
}

func typeString(a *App, s string) {
	for _, r := range s {
		a.HandleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func TestOpenSaveIsByteIdentical(t *testing.T) {
	a, fsys := newTestApp(t)
	data := []byte("def main():\r\n\tprint('hi')  \r\n\r\n# trailing\xff")
	require.NoError(t, afero.WriteFile(fsys, "doc.py", data, 0o644))

	require.NoError(t, a.Open("doc.py"))
	assert.Equal(t, "doc.py", a.FilePath)
	assert.Equal(t, "Notepad - doc.py", a.Title())
	assert.Equal(t, buffer.Python, a.Surface().Highlighter.Language)

	a.HandleEvent(ctrl(tcell.KeyCtrlS))
	got, err := afero.ReadFile(fsys, "doc.py")
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestOpenMissingFileShowsError(t *testing.T) {
	a, _ := newTestApp(t)

	a.report(a.Open("missing.txt"))
	dialog, ok := a.Dialog().(*ui.MessageDialog)
	require.True(t, ok, "an error is shown in a message dialog")
	assert.Contains(t, dialog.Message(), "missing.txt")
	assert.Empty(t, a.FilePath)

	a.HandleEvent(key(tcell.KeyEscape))
	assert.Nil(t, a.Dialog())
}

func TestOpenOrCreate(t *testing.T) {
	a, fsys := newTestApp(t)

	require.NoError(t, a.OpenOrCreate("new.txt"))
	assert.Equal(t, "new.txt", a.FilePath)

	typeString(a, "fresh")
	require.NoError(t, a.Save())
	got, err := afero.ReadFile(fsys, "new.txt")
	require.NoError(t, err)
	assert.Equal(t, "fresh", string(got))
}

func TestSaveWithoutFileAsksForOne(t *testing.T) {
	a, fsys := newTestApp(t)
	typeString(a, "text")

	a.HandleEvent(ctrl(tcell.KeyCtrlS))
	require.IsType(t, &ui.FileSelectorDialog{}, a.Dialog())

	typeString(a, "out.txt")
	a.HandleEvent(key(tcell.KeyEnter))
	assert.Nil(t, a.Dialog())
	assert.Equal(t, "out.txt", a.FilePath)
	assert.False(t, a.Surface().Dirty)

	got, err := afero.ReadFile(fsys, "out.txt")
	require.NoError(t, err)
	assert.Equal(t, "text", string(got))

	// Later saves go to the same file without asking
	typeString(a, "!")
	a.HandleEvent(ctrl(tcell.KeyCtrlS))
	assert.Nil(t, a.Dialog())
	got, _ = afero.ReadFile(fsys, "out.txt")
	assert.Equal(t, "text!", string(got))
}

func TestSaveAsUpdatesCurrentFile(t *testing.T) {
	a, fsys := newTestApp(t)
	require.NoError(t, afero.WriteFile(fsys, "a.txt", []byte("x"), 0o644))
	require.NoError(t, a.Open("a.txt"))

	a.HandleEvent(ctrl(tcell.KeyCtrlW))
	require.NotNil(t, a.Dialog())
	for range "a.txt" { // The current path is suggested
		a.HandleEvent(key(tcell.KeyBackspace2))
	}
	typeString(a, "b.py")
	a.HandleEvent(key(tcell.KeyEnter))

	assert.Equal(t, "b.py", a.FilePath)
	assert.Equal(t, buffer.Python, a.Surface().Highlighter.Language)
	got, err := afero.ReadFile(fsys, "b.py")
	require.NoError(t, err)
	assert.Equal(t, "x", string(got))
}

func TestCancelledDialogsDoNothing(t *testing.T) {
	a, fsys := newTestApp(t)
	typeString(a, "keep")

	a.HandleEvent(ctrl(tcell.KeyCtrlW))
	typeString(a, "never.txt")
	a.HandleEvent(key(tcell.KeyEscape))
	assert.Nil(t, a.Dialog())

	a.HandleEvent(ctrl(tcell.KeyCtrlO))
	a.HandleEvent(key(tcell.KeyEnter)) // An empty path is the same as canceling
	assert.Nil(t, a.Dialog())

	assert.Empty(t, a.FilePath)
	assert.Equal(t, "keep", a.Surface().String())
	exists, err := afero.Exists(fsys, "never.txt")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCutPasteMovesText(t *testing.T) {
	a, _ := newTestApp(t)
	s := a.Surface()
	require.NoError(t, s.SetContents([]byte("hello world")))

	require.NoError(t, s.Select(ui.Index{Line: 1, Col: 0}, ui.Index{Line: 1, Col: 6}))
	a.HandleEvent(ctrl(tcell.KeyCtrlX))
	assert.Equal(t, "world", s.String())
	assert.Equal(t, "ln 1 : col 0", a.posLabel.Text)

	require.NoError(t, s.SetCursor(s.End()))
	a.HandleEvent(ctrl(tcell.KeyCtrlV))
	assert.Equal(t, "worldhello ", s.String())
	assert.Equal(t, "ln 1 : col 11", a.posLabel.Text, "the status bar follows a paste")
}

func TestCopyPasteDuplicatesText(t *testing.T) {
	a, _ := newTestApp(t)
	s := a.Surface()
	require.NoError(t, s.SetContents([]byte("hello world")))

	require.NoError(t, s.Select(ui.Index{Line: 1, Col: 0}, ui.Index{Line: 1, Col: 5}))
	a.HandleEvent(ctrl(tcell.KeyCtrlC))
	assert.Equal(t, "hello world", s.String())

	require.NoError(t, s.SetCursor(s.End()))
	a.HandleEvent(ctrl(tcell.KeyCtrlV))
	a.HandleEvent(ctrl(tcell.KeyCtrlV))
	assert.Equal(t, "hello worldhellohello", s.String())
}

func TestPasteKeepsSelectedText(t *testing.T) {
	a, _ := newTestApp(t)
	s := a.Surface()
	require.NoError(t, s.SetContents([]byte("hello world")))
	require.NoError(t, a.clipboard.Write("X"))

	require.NoError(t, s.Select(ui.Index{Line: 1, Col: 6}, ui.Index{Line: 1, Col: 11}))
	require.NoError(t, a.Paste())
	assert.Equal(t, "hello worldX", s.String())
	assert.Empty(t, s.GetSelectedString())
}

func TestCutWithoutSelection(t *testing.T) {
	a, _ := newTestApp(t)
	require.NoError(t, a.clipboard.Write("before"))
	typeString(a, "abc")

	require.NoError(t, a.Cut())
	assert.Equal(t, "abc", a.Surface().String())
	text, _ := a.clipboard.Read()
	assert.Equal(t, "before", text)
}

func TestStatusBarFollowsCursor(t *testing.T) {
	a, _ := newTestApp(t)
	assert.Equal(t, "ln 1 : col 0", a.posLabel.Text)
	assert.Equal(t, "Untitled", a.fileLabel.Text)

	typeString(a, "ab")
	a.HandleEvent(key(tcell.KeyEnter))
	typeString(a, "c")
	assert.Equal(t, "ln 2 : col 1", a.posLabel.Text)

	// Clicking the first line, past its end
	a.HandleEvent(tcell.NewEventMouse(40, 1, tcell.Button1, tcell.ModNone))
	a.HandleEvent(tcell.NewEventMouse(40, 1, tcell.ButtonNone, tcell.ModNone))
	assert.Equal(t, "ln 1 : col 2", a.posLabel.Text)
}

func TestGotoLine(t *testing.T) {
	a, _ := newTestApp(t)
	require.NoError(t, a.Surface().SetContents([]byte("a\nb\nc\nd")))

	a.HandleEvent(ctrl(tcell.KeyCtrlG))
	typeString(a, "3")
	a.HandleEvent(key(tcell.KeyEnter))

	assert.Nil(t, a.Dialog())
	assert.Equal(t, ui.Index{Line: 3, Col: 0}, a.Surface().Cursor())
	assert.Equal(t, "ln 3 : col 0", a.posLabel.Text)
}

func TestMenuQuickChars(t *testing.T) {
	a, _ := newTestApp(t)
	require.NoError(t, a.clipboard.Write("pasted"))

	a.HandleEvent(key(tcell.KeyEscape)) // Focus the menu bar
	typeString(a, "e")                  // Edit
	assert.True(t, a.bar.MenusVisible())
	typeString(a, "p") // Paste
	assert.False(t, a.bar.MenusVisible())
	assert.Equal(t, "pasted", a.Surface().String())
	assert.Equal(t, "ln 1 : col 6", a.posLabel.Text)

	typeString(a, "!") // The editor has the focus again
	assert.Equal(t, "pasted!", a.Surface().String())
}

func TestQuit(t *testing.T) {
	a, _ := newTestApp(t)
	a.HandleEvent(ctrl(tcell.KeyCtrlQ))
	assert.True(t, a.quit)
}

func TestDraw(t *testing.T) {
	a, fsys := newTestApp(t)
	require.NoError(t, afero.WriteFile(fsys, "t.txt", []byte("one\ntwo"), 0o644))
	require.NoError(t, a.Open("t.txt"))
	a.Draw()

	s := a.screen
	r, _, _, _ := s.GetContent(0, 2) // The gutter, below the menu bar
	assert.Equal(t, '2', r)
	r, _, _, _ = s.GetContent(6, 1) // After the gutter and the separator
	assert.Equal(t, 'o', r)

	title := a.Title()
	r, _, _, _ = s.GetContent(60-len(title)-1, 0)
	assert.Equal(t, 'N', r)
}
