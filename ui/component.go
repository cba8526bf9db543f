package ui

import (
	"github.com/gdamore/tcell/v2"
)

// A Component is anything drawn in a rectangle of the screen that can take
// input: widgets like buttons and labels, the parts of an EditPanel, and the
// dialogs. After construction, the owner places it with SetPos and, for
// components that stretch, SetSize.
type Component interface {
	// Draw renders the component inside its rectangle.
	Draw(tcell.Screen)
	// SetFocused tells the component whether key events are meant for it. A
	// focused component may draw differently, like a button showing brackets.
	SetFocused(bool)
	// SetTheme replaces the theme of the component and of its children.
	SetTheme(*Theme)

	GetPos() (x, y int)
	SetPos(x, y int)

	// GetMinSize is the smallest size the component can be drawn at.
	GetMinSize() (w, h int)
	GetSize() (w, h int)
	// SetSize resizes the component. Components may refuse sizes below their
	// minimum, or ignore a dimension that is fixed.
	SetSize(w, h int)

	// HandleEvent returns true when the component used the event, so that it
	// is not given to anyone else.
	HandleEvent(tcell.Event) bool
}

// baseComponent holds the state every component has. Embedding it provides
// the position, size, focus and theme methods, which may be overridden.
type baseComponent struct {
	focused       bool
	x, y          int
	width, height int
	theme         *Theme
}

func (c *baseComponent) SetFocused(v bool) {
	c.focused = v
}

func (c *baseComponent) SetTheme(theme *Theme) {
	c.theme = theme
}

func (c *baseComponent) GetPos() (int, int) {
	return c.x, c.y
}

func (c *baseComponent) SetPos(x, y int) {
	c.x, c.y = x, y
}

func (c *baseComponent) GetMinSize() (int, int) {
	return 0, 0
}

func (c *baseComponent) GetSize() (int, int) {
	return c.width, c.height
}

func (c *baseComponent) SetSize(width, height int) {
	c.width, c.height = width, height
}

// contains reports whether the screen cell at x, y is inside the component.
func (c *baseComponent) contains(x, y int) bool {
	return x >= c.x && x < c.x+c.width && y >= c.y && y < c.y+c.height
}
