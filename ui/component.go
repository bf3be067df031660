package ui

import (
	"github.com/gdamore/tcell/v2"
)

// A Component is anything the viewer lays out on the screen: the code view,
// the status bar and the input field. After constructing a component, call
// SetPos() and SetSize() before drawing it.
type Component interface {
	// Draw renders the component inside its bounding rectangle.
	Draw(tcell.Screen)
	// Only a focused component shows the terminal cursor and reacts to keys.
	SetFocused(bool)
	// Applies the theme to the component.
	SetTheme(*Theme)

	GetPos() (x, y int)
	SetPos(x, y int)

	// Returns the smallest size the Component can be.
	GetMinSize() (w, h int)
	GetSize() (w, h int)
	SetSize(w, h int)

	// HandleEvent returns whether the component handled the event. Unfocused
	// components should leave every event unhandled.
	HandleEvent(tcell.Event) bool
}

// baseComponent can be embedded in a Component's struct to hide the
// boilerplate fields and functions. Every method can be overriden.
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
