package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// PanelState is the lifecycle of an EditPanel.
type PanelState uint8

const (
	PanelConstructed PanelState = iota // Children exist, with the colors of the theme
	PanelThemed                        // A font or color was set
	PanelLive                          // Change and resize notifications redraw the gutter and scrollbar
)

func (s PanelState) String() string {
	switch s {
	case PanelConstructed:
		return "constructed"
	case PanelThemed:
		return "themed"
	case PanelLive:
		return "live"
	default:
		return fmt.Sprintf("PanelState(%d)", uint8(s))
	}
}

// EditPanel lays out a LineNumberGutter, a separator, a TextSurface and a
// Scrollbar, left to right, as one scrollable unit.
type EditPanel struct {
	Surface   *TextSurface
	Gutter    *LineNumberGutter
	Scrollbar *Scrollbar

	state          PanelState
	separatorStyle tcell.Style

	baseComponent
}

// NewEditPanel creates a panel around a new TextSurface holding `contents`.
// `gutterWidth` is the fixed width of the gutter, including its border.
func NewEditPanel(screen *tcell.Screen, contents []byte, gutterWidth int, theme *Theme) *EditPanel {
	p := &EditPanel{
		Surface:        NewTextSurface(screen, contents, theme),
		Gutter:         NewLineNumberGutter(gutterWidth, theme),
		Scrollbar:      NewScrollbar(theme),
		separatorStyle: theme.GetOrDefault("Separator"),
		baseComponent:  baseComponent{theme: theme},
	}
	p.Gutter.Attach(p.Surface)
	p.Scrollbar.Attach(p.Surface)
	p.Surface.OnChange(p.onChange)
	return p
}

func (p *EditPanel) State() PanelState {
	return p.state
}

// Start makes the panel live: from now on, every change of the surface and
// every resize of the panel redraws the gutter and moves the scrollbar.
func (p *EditPanel) Start() {
	p.state = PanelLive
	p.refresh()
}

func (p *EditPanel) onChange() {
	if p.state == PanelLive {
		p.refresh()
	}
}

func (p *EditPanel) refresh() {
	p.Gutter.Redraw()
	p.Scrollbar.Set(p.Surface.YView())
}

func (p *EditPanel) themed() {
	if p.state == PanelConstructed {
		p.state = PanelThemed
	}
}

// SetFont sets the font of the text and of the line numbers. Returns the
// EditPanel, so calls can be chained.
func (p *EditPanel) SetFont(family string, size int) *EditPanel {
	font := Font{Family: family, Size: size}
	p.Surface.SetFont(font)
	p.Gutter.SetFont(font)
	p.themed()
	return p
}

// SetBackground sets the background of the text and of the gutter. The
// separator between them keeps its own color.
func (p *EditPanel) SetBackground(color tcell.Color) *EditPanel {
	p.Surface.SetBackground(color)
	p.Gutter.SetBackground(color)
	p.themed()
	return p
}

// SetForeground sets the color of the text and of the line numbers.
func (p *EditPanel) SetForeground(color tcell.Color) *EditPanel {
	p.Surface.SetForeground(color)
	p.Gutter.SetColor(color)
	p.themed()
	return p
}

func (p *EditPanel) Draw(s tcell.Screen) {
	p.Gutter.Draw(s)
	gw, _ := p.Gutter.GetSize()
	DrawRect(s, p.x+gw, p.y, 1, p.height, '│', p.separatorStyle)
	p.Surface.Draw(s)
	p.Scrollbar.Draw(s)
}

func (p *EditPanel) SetFocused(v bool) {
	p.focused = v
	p.Surface.SetFocused(v)
}

func (p *EditPanel) SetTheme(theme *Theme) {
	p.theme = theme
	p.separatorStyle = theme.GetOrDefault("Separator")
	p.Gutter.SetTheme(theme)
	p.Scrollbar.SetTheme(theme)
	p.Surface.SetTheme(theme)
}

func (p *EditPanel) SetPos(x, y int) {
	p.x, p.y = x, y
	p.layout()
}

// SetSize lays out the children again and, when live, notifies them of the resize.
func (p *EditPanel) SetSize(width, height int) {
	p.width, p.height = width, height
	p.layout()
	if p.state == PanelLive {
		p.refresh()
	}
}

func (p *EditPanel) layout() {
	gw, _ := p.Gutter.GetMinSize()
	p.Gutter.SetPos(p.x, p.y)
	p.Gutter.SetSize(gw, p.height)

	p.Surface.SetPos(p.x+gw+1, p.y)
	p.Surface.SetSize(Max(p.width-gw-2, 0), p.height)

	p.Scrollbar.SetPos(p.x+p.width-1, p.y)
	p.Scrollbar.SetSize(1, p.height)
}

func (p *EditPanel) GetMinSize() (int, int) {
	gw, _ := p.Gutter.GetMinSize()
	return gw + 3, 1
}

// HandleEvent gives the event to the scrollbar, and then to the surface.
func (p *EditPanel) HandleEvent(event tcell.Event) bool {
	if p.Scrollbar.HandleEvent(event) {
		return true
	}
	return p.Surface.HandleEvent(event)
}
