package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// A StatusBar is a one line component showing text on its left and right
// edges. When Err is set, the error replaces the left text and the bar is
// drawn with the "StatusBarError" style. Text that does not fit is truncated.
type StatusBar struct {
	Left  string
	Right string
	Err   error

	baseComponent
}

func NewStatusBar(theme *Theme) *StatusBar {
	return &StatusBar{
		baseComponent: baseComponent{theme: theme, height: 1},
	}
}

func (b *StatusBar) GetMinSize() (int, int) {
	return 0, 1
}

func (b *StatusBar) Draw(s tcell.Screen) {
	style := b.theme.GetOrDefault("StatusBar")
	left := b.Left
	if b.Err != nil {
		style = b.theme.GetOrDefault("StatusBarError")
		left = b.Err.Error()
	}

	DrawRect(s, b.x, b.y, b.width, 1, ' ', style)

	right := runewidth.Truncate(b.Right, b.width, "…")
	rightWidth := runewidth.StringWidth(right)
	left = runewidth.Truncate(left, max(b.width-rightWidth-1, 0), "…")

	DrawStr(s, b.x, b.y, left, style)
	DrawStr(s, b.x+b.width-rightWidth, b.y, right, style)
}

func (b *StatusBar) HandleEvent(tcell.Event) bool {
	return false
}
