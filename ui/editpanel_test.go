package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPanel(t *testing.T, contents string, width, height int) (*EditPanel, tcell.Screen) {
	t.Helper()
	s := newTestScreen(t, width, height)
	p := NewEditPanel(&s, []byte(contents), 4, nil)
	p.SetPos(0, 0)
	p.SetSize(width, height)
	return p, s
}

func TestEditPanelStates(t *testing.T) {
	p, _ := newTestPanel(t, "a\nb", 20, 5)
	assert.Equal(t, PanelConstructed, p.State())

	require.NoError(t, p.Surface.Insert(Index{1, 0}, "x"))
	assert.Empty(t, p.Gutter.Labels, "no redraw before the panel is live")

	p.SetFont("Terminal", 10).SetBackground(tcell.ColorBlack).SetForeground(tcell.ColorWhite)
	assert.Equal(t, PanelThemed, p.State())

	p.Start()
	assert.Equal(t, PanelLive, p.State())
	assert.Len(t, p.Gutter.Labels, 2)

	require.NoError(t, p.Surface.Insert(p.Surface.End(), "\nc"))
	assert.Len(t, p.Gutter.Labels, 3, "a change redraws the gutter")
	assert.Equal(t, "live", p.State().String())
}

func TestEditPanelResize(t *testing.T) {
	p, _ := newTestPanel(t, "012345678", 16, 5)
	p.Start()

	w, _ := p.Surface.GetSize()
	assert.Equal(t, 10, w, "gutter, separator and scrollbar take the rest")
	assert.Len(t, p.Gutter.Labels, 1)

	p.SetSize(11, 5) // The line now wraps
	assert.Len(t, p.Gutter.Labels, 2)
	assert.Equal(t, "1", p.Gutter.Labels[1].Text)
}

func TestEditPanelTheming(t *testing.T) {
	p, s := newTestPanel(t, "text", 20, 3)
	p.SetFont("Terminal Bold", 12).SetBackground(tcell.ColorNavy).SetForeground(tcell.ColorYellow)
	p.Start()

	assert.Equal(t, Font{"Terminal Bold", 12}, p.Surface.GetFont())
	assert.Equal(t, Font{"Terminal Bold", 12}, p.Gutter.font)
	fg, bg := p.Surface.GetColors()
	assert.Equal(t, tcell.ColorYellow, fg)
	assert.Equal(t, tcell.ColorNavy, bg)
	assert.Equal(t, tcell.ColorYellow, p.Gutter.color)
	assert.Equal(t, tcell.ColorNavy, p.Gutter.background)

	p.Draw(s)
	r, _, style, _ := s.GetContent(4, 0)
	assert.Equal(t, '│', r)
	sfg, _, _ := style.Decompose()
	assert.Equal(t, tcell.ColorWhite, sfg, "the separator keeps its color")

	r, _, style, _ = s.GetContent(5, 0)
	assert.Equal(t, 't', r)
	_, _, attrs := style.Decompose()
	assert.NotZero(t, attrs&tcell.AttrBold)
}

func TestEditPanelScrollbar(t *testing.T) {
	p, _ := newTestPanel(t, "0\n1\n2\n3\n4\n5\n6\n7\n8\n9", 20, 4)
	p.Start()

	first, last := p.Scrollbar.Get()
	assert.InDelta(t, 0.0, first, 1e-9)
	assert.InDelta(t, 0.4, last, 1e-9)

	// Below the thumb: one page down
	assert.True(t, p.HandleEvent(tcell.NewEventMouse(19, 3, tcell.Button1, tcell.ModNone)))
	first, _ = p.Scrollbar.Get()
	assert.InDelta(t, 0.2, first, 1e-9)
	assert.Equal(t, "3", p.Gutter.Labels[0].Text)

	// The mouse wheel over the text scrolls too
	p.HandleEvent(tcell.NewEventMouse(8, 1, tcell.WheelDown, tcell.ModNone))
	first, _ = p.Scrollbar.Get()
	assert.InDelta(t, 0.5, first, 1e-9)
}
