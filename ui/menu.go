package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	runewidth "github.com/mattn/go-runewidth"
)

// Item is an interface implemented by ItemEntry and ItemSeparator to be listed in Menus.
type Item interface {
	GetName() string
	// Returns a character/rune index of the name of the item.
	GetQuickCharIdx() int
	// A Shortcut is the text shown beside the item, like "Ctrl+X". An empty
	// string implies no shortcut.
	GetShortcut() string
}

// An ItemSeparator is like a blank Item that cannot actually be selected. It is useful
// for separating items in a Menu.
type ItemSeparator struct{}

// GetName returns an empty string.
func (i *ItemSeparator) GetName() string {
	return ""
}

func (i *ItemSeparator) GetQuickCharIdx() int {
	return 0
}

func (i *ItemSeparator) GetShortcut() string {
	return ""
}

// ItemEntry is a listing in a Menu with a name and callback. When Key is set,
// pressing it anywhere activates the entry.
type ItemEntry struct {
	Name      string
	QuickChar int       // Character/rune index of Name
	Shortcut  string    // Shown to the user
	Key       tcell.Key // Key that triggers the entry, like tcell.KeyCtrlX
	Callback  func()
}

// GetName returns the name of the ItemEntry.
func (i *ItemEntry) GetName() string {
	return i.Name
}

func (i *ItemEntry) GetQuickCharIdx() int {
	return i.QuickChar
}

func (i *ItemEntry) GetShortcut() string {
	return i.Shortcut
}

// A MenuBar is a horizontal list of menus.
type MenuBar struct {
	menus        []*Menu
	selected     int  // Index of selection in MenuBar
	menusVisible bool // Whether to draw the selected menu

	baseComponent
}

func NewMenuBar(theme *Theme) *MenuBar {
	return &MenuBar{
		menus:         make([]*Menu, 0, 6),
		baseComponent: baseComponent{theme: theme, height: 1},
	}
}

func (b *MenuBar) AddMenu(menu *Menu) {
	menu.itemSelectedCallback = func() {
		b.menusVisible = false
		menu.SetFocused(false)
	}
	b.menus = append(b.menus, menu)
}

// MenusVisible returns whether a menu is expanded below the bar.
func (b *MenuBar) MenusVisible() bool {
	return b.menusVisible
}

// GetMenuXPos returns the X position of the name of Menu at `idx` visually.
func (b *MenuBar) GetMenuXPos(idx int) int {
	x := b.x + 1
	for i := 0; i < idx; i++ {
		x += runewidth.StringWidth(b.menus[i].Name) + 2 // two for padding
	}
	return x
}

func (b *MenuBar) ActivateMenuUnderCursor() {
	b.menusVisible = true // Show menus
	menu := b.menus[b.selected]
	menu.SetPos(b.GetMenuXPos(b.selected), b.y+1)
	menu.SetFocused(true)
}

func (b *MenuBar) moveCursor(delta int) {
	if b.menusVisible {
		b.menus[b.selected].SetFocused(false) // Unfocus current menu
	}

	b.selected = (b.selected + delta + len(b.menus)) % len(b.menus) // Wrap around

	if b.menusVisible {
		// Update position of new menu after changing menu selection
		b.menus[b.selected].SetPos(b.GetMenuXPos(b.selected), b.y+1)
		b.menus[b.selected].SetFocused(true) // Focus new menu
	}
}

func (b *MenuBar) CursorLeft() {
	b.moveCursor(-1)
}

func (b *MenuBar) CursorRight() {
	b.moveCursor(1)
}

// Draw renders the MenuBar and its sub-menus.
func (b *MenuBar) Draw(s tcell.Screen) {
	normalStyle := b.theme.GetOrDefault("MenuBar")

	// Draw menus based on whether b.focused and which is selected
	DrawRect(s, b.x, b.y, b.width, 1, ' ', normalStyle)
	col := b.x + 1
	for i, item := range b.menus {
		sty := normalStyle
		if b.focused && b.selected == i {
			sty = b.theme.GetOrDefault("MenuBarSelected") // Use special style for selected item
		}

		str := fmt.Sprintf(" %s ", item.Name)
		col += DrawQuickCharStr(s, col, b.y, str, item.QuickChar+1, sty)
	}

	if b.menusVisible {
		b.menus[b.selected].Draw(s) // Draw menu when it is expanded / visible
	}
}

// SetFocused highlights the MenuBar. Unfocusing it closes any open menu.
func (b *MenuBar) SetFocused(v bool) {
	b.focused = v
	if !v {
		if len(b.menus) > 0 {
			b.menus[b.selected].SetFocused(false)
		}
		b.selected = 0 // Reset cursor position every time component is unfocused
		b.menusVisible = false
	}
}

func (b *MenuBar) SetTheme(theme *Theme) {
	b.theme = theme
	for _, m := range b.menus {
		m.theme = theme
	}
}

func (b *MenuBar) GetMinSize() (int, int) {
	return 0, 1
}

// HandleShortcut activates the entry of any menu bound to the key of `ev`.
// Returns whether an entry was activated.
func (b *MenuBar) HandleShortcut(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyRune {
		return false
	}
	for _, m := range b.menus {
		if m.handleShortcut(ev.Key()) {
			return true
		}
	}
	return false
}

// HandleEvent will propogate events to sub-menus and returns true if
// any of them handled the event.
func (b *MenuBar) HandleEvent(event tcell.Event) bool {
	ev, ok := event.(*tcell.EventKey)
	if !ok || len(b.menus) == 0 {
		return false
	}

	if b.HandleShortcut(ev) {
		return true
	}

	switch ev.Key() {
	case tcell.KeyEnter:
		if !b.menusVisible { // If menus are not visible...
			b.ActivateMenuUnderCursor()
		} else { // The selected Menu is visible, send the event to it
			return b.menus[b.selected].HandleEvent(event)
		}
	case tcell.KeyLeft:
		b.CursorLeft()
	case tcell.KeyRight:
		b.CursorRight()
	case tcell.KeyTab:
		if b.menusVisible {
			return b.menus[b.selected].HandleEvent(event)
		}
		b.CursorRight()

	// Quick char
	case tcell.KeyRune: // Search for the matching quick char in menu names
		if b.menusVisible {
			return b.menus[b.selected].HandleEvent(event) // Have menu handle quick char event
		}
		for i, m := range b.menus {
			r := QuickCharInString(m.Name, m.QuickChar)
			if r != 0 && r == ev.Rune() {
				b.selected = i              // Select menu at i
				b.ActivateMenuUnderCursor() // Show menu
				break
			}
		}

	default:
		if b.menusVisible {
			return b.menus[b.selected].HandleEvent(event)
		}
		return false // Nobody to propogate our event to
	}
	return true
}

// A Menu contains one or more ItemEntry or ItemSeparator.
type Menu struct {
	Name      string
	QuickChar int // Character/rune index of Name
	Items     []Item

	x, y                 int
	width, height        int    // Size may not be settable
	selected             int    // Index of selected Item
	itemSelectedCallback func() // Used internally to hide menus on selection

	theme *Theme
}

// NewMenu creates a new, empty Menu.
func NewMenu(name string, quickChar int, theme *Theme) *Menu {
	return &Menu{
		Name:      name,
		QuickChar: quickChar,
		Items:     make([]Item, 0, 6),
		theme:     theme,
	}
}

func (m *Menu) AddItems(items []Item) {
	m.Items = append(m.Items, items...)
}

func (m *Menu) ActivateItemUnderCursor() {
	if item, ok := m.Items[m.selected].(*ItemEntry); ok {
		if m.itemSelectedCallback != nil {
			m.itemSelectedCallback() // Hide the menu before the callback may open a dialog
		}
		if item.Callback != nil {
			item.Callback()
		}
	}
}

func (m *Menu) moveCursor(delta int) {
	for range m.Items {
		m.selected = (m.selected + delta + len(m.Items)) % len(m.Items) // Wrap around
		if _, ok := m.Items[m.selected].(*ItemSeparator); !ok {
			return
		}
	}
}

func (m *Menu) CursorUp() {
	m.moveCursor(-1)
}

func (m *Menu) CursorDown() {
	m.moveCursor(1)
}

// Draw renders the Menu at its position.
func (m *Menu) Draw(s tcell.Screen) {
	defaultStyle := m.theme.GetOrDefault("Menu")

	m.GetSize()                                                          // Call this to update internal width and height
	DrawRect(s, m.x, m.y, m.width, m.height, ' ', defaultStyle)          // Fill background
	DrawRectOutlineDefault(s, m.x, m.y, m.width, m.height, defaultStyle) // Draw outline

	// Draw items based on which is selected
	for i, item := range m.Items {
		switch item.(type) {
		case *ItemSeparator:
			str := fmt.Sprintf("%s%s%s", "├", strings.Repeat("─", m.width-2), "┤")
			DrawStr(s, m.x, m.y+1+i, str, defaultStyle)
		default:
			sty := defaultStyle
			if m.selected == i {
				sty = m.theme.GetOrDefault("MenuSelected")
			}

			nameCols := DrawQuickCharStr(s, m.x+1, m.y+1+i, item.GetName(), item.GetQuickCharIdx(), sty)

			str := strings.Repeat(" ", Max(m.width-2-nameCols, 0)) // Fill space after menu names to border
			DrawStr(s, m.x+1+nameCols, m.y+1+i, str, sty)

			if shortcut := item.GetShortcut(); len(shortcut) > 0 { // If the item has a shortcut...
				str := " " + shortcut + " "
				DrawStr(s, m.x+m.width-1-runewidth.StringWidth(str), m.y+1+i, str, sty)
			}
		}
	}
}

// SetFocused resets the selection when the Menu loses focus.
func (m *Menu) SetFocused(v bool) {
	if !v {
		m.selected = 0
	}
}

func (m *Menu) SetPos(x, y int) {
	m.x, m.y = x, y
}

// GetSize returns the size of the Menu, which fits its items.
func (m *Menu) GetSize() (int, int) {
	maxNameLen := 0
	widestShortcut := 0 // Will contribute to the width
	for i := range m.Items {
		maxNameLen = Max(maxNameLen, runewidth.StringWidth(m.Items[i].GetName()))
		widestShortcut = Max(widestShortcut, runewidth.StringWidth(m.Items[i].GetShortcut()))
	}

	shortcutsWidth := 0
	if widestShortcut > 0 {
		shortcutsWidth = 1 + widestShortcut + 1 // " Ctrl+X "  (with one cell padding surrounding)
	}

	m.width = 1 + maxNameLen + shortcutsWidth + 1 // Add two for padding
	m.height = 1 + len(m.Items) + 1               // And another two for the same reason ...
	return m.width, m.height
}

func (m *Menu) handleShortcut(key tcell.Key) bool {
	for i := range m.Items {
		if entry, ok := m.Items[i].(*ItemEntry); ok && entry.Key != 0 && entry.Key == key {
			m.selected = i
			m.ActivateItemUnderCursor()
			return true
		}
	}
	return false
}

// HandleEvent will handle events for a Menu. Returns true if the event was handled.
func (m *Menu) HandleEvent(event tcell.Event) bool {
	ev, ok := event.(*tcell.EventKey)
	if !ok {
		return false
	}

	switch ev.Key() {
	case tcell.KeyEnter:
		m.ActivateItemUnderCursor()
	case tcell.KeyUp:
		m.CursorUp()
	case tcell.KeyTab, tcell.KeyDown:
		m.CursorDown()
	case tcell.KeyRune:
		for i, item := range m.Items {
			r := QuickCharInString(item.GetName(), item.GetQuickCharIdx())
			if r != 0 && r == ev.Rune() {
				m.selected = i
				m.ActivateItemUnderCursor()
				break
			}
		}
	default:
		return false
	}
	return true
}
