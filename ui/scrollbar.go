package ui

import "github.com/gdamore/tcell/v2"

// Scrollbar is a vertical bar one column wide that shows, and controls, the
// vertical view of a TextSurface. Clicking above or below the thumb scrolls a
// page, and dragging moves the view with the mouse.
type Scrollbar struct {
	first, last float64 // Visible fraction of the surface, as reported by YView

	surface  *TextSurface
	dragging bool

	baseComponent
}

func NewScrollbar(theme *Theme) *Scrollbar {
	return &Scrollbar{last: 1, baseComponent: baseComponent{theme: theme, width: 1}}
}

// Attach sets the TextSurface scrolled by the Scrollbar, and reads its view.
func (b *Scrollbar) Attach(t *TextSurface) {
	b.surface = t
	b.Set(t.YView())
}

// Set moves the thumb to span from `first` to `last`, which are fractions of
// the whole surface.
func (b *Scrollbar) Set(first, last float64) {
	b.first, b.last = first, last
}

func (b *Scrollbar) Get() (float64, float64) {
	return b.first, b.last
}

// thumb returns the rows of the thumb, relative to the top of the bar.
func (b *Scrollbar) thumb() (int, int) {
	if b.height <= 0 {
		return 0, 0
	}
	top := int(b.first * float64(b.height))
	bottom := int(b.last*float64(b.height) + 0.5)
	top = Clamp(top, 0, b.height-1)
	bottom = Clamp(bottom, top+1, b.height)
	return top, bottom
}

func (b *Scrollbar) Draw(s tcell.Screen) {
	style := b.theme.GetOrDefault("Scrollbar")
	DrawRect(s, b.x, b.y, b.width, b.height, '░', style)
	top, bottom := b.thumb()
	DrawRect(s, b.x, b.y+top, b.width, bottom-top, '█', style)
}

func (b *Scrollbar) SetSize(_, height int) {
	b.height = Max(height, 0)
}

func (b *Scrollbar) GetMinSize() (int, int) {
	return 1, 0
}

// HandleEvent scrolls the attached TextSurface on mouse clicks and drags over
// the bar.
func (b *Scrollbar) HandleEvent(event tcell.Event) bool {
	ev, ok := event.(*tcell.EventMouse)
	if !ok || b.surface == nil {
		return false
	}
	mx, my := ev.Position()
	inside := b.contains(mx, my)
	if !inside && !b.dragging {
		return false
	}

	if ev.Buttons()&tcell.Button1 == 0 {
		if b.dragging {
			b.dragging = false
			return true
		}
		return false
	}

	row := my - b.y
	if b.dragging {
		_ = b.surface.YViewMoveTo(float64(Clamp(row, 0, b.height)) / float64(Max(b.height, 1)))
		return true
	}

	top, bottom := b.thumb()
	switch {
	case row < top:
		_ = b.surface.YViewScroll(-1, ScrollPages)
	case row >= bottom:
		_ = b.surface.YViewScroll(1, ScrollPages)
	default:
		b.dragging = true
	}
	return true
}
