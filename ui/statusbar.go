package ui

import "github.com/gdamore/tcell/v2"

// A StatusBarElement holds one component of a StatusBar, such as a Label.
type StatusBarElement struct {
	Child Component
}

func NewStatusBarElement(child Component) *StatusBarElement {
	return &StatusBarElement{child}
}

func (e *StatusBarElement) width() int {
	w, _ := e.Child.GetMinSize()
	return w
}

// StatusBar is a single row of elements packed against its right edge. The
// first element added is the rightmost, and a vertical divider separates each
// pair of adjacent elements. Elements cannot be removed, but their contents may
// change between draws.
type StatusBar struct {
	Dividers []int // Columns of the dividers from the last Draw, right to left

	elements []*StatusBarElement

	baseComponent
}

func NewStatusBar(theme *Theme) *StatusBar {
	return &StatusBar{baseComponent: baseComponent{theme: theme, height: 1}}
}

// AddElement appends `e` left of the previously added elements. Returns the
// StatusBar, so calls can be chained.
func (b *StatusBar) AddElement(e *StatusBarElement) *StatusBar {
	e.Child.SetTheme(b.theme)
	b.elements = append(b.elements, e)
	return b
}

func (b *StatusBar) Elements() []*StatusBarElement {
	return b.elements
}

func (b *StatusBar) Draw(s tcell.Screen) {
	style := b.theme.GetOrDefault("StatusBar")
	DrawRect(s, b.x, b.y, b.width, b.height, ' ', style)

	b.Dividers = b.Dividers[:0]
	right := b.x + b.width // Exclusive
	for i, e := range b.elements {
		if i > 0 {
			right--
			b.Dividers = append(b.Dividers, right)
			if right >= b.x {
				s.SetContent(right, b.y, '│', nil, style)
			}
		}

		w := e.width()
		left := right - w
		if left < b.x { // Clip the element at the left edge
			w -= b.x - left
			left = b.x
		}
		if w > 0 {
			e.Child.SetPos(left, b.y)
			e.Child.SetSize(w, 1)
			e.Child.Draw(s)
		}
		right = left
	}
}

func (b *StatusBar) SetTheme(theme *Theme) {
	b.theme = theme
	for _, e := range b.elements {
		e.Child.SetTheme(theme)
	}
}

func (b *StatusBar) GetMinSize() (int, int) {
	return 0, 1
}

func (b *StatusBar) HandleEvent(tcell.Event) bool {
	return false
}
