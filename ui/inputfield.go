package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// An InputField is a single-line input box, drawn after an optional prompt.
type InputField struct {
	Prompt string
	Text   []rune

	cursorPos int
	scrollPos int
	screen    *tcell.Screen

	baseComponent
}

func NewInputField(screen *tcell.Screen, prompt string, theme *Theme) *InputField {
	return &InputField{
		Prompt:        prompt,
		screen:        screen,
		baseComponent: baseComponent{theme: theme, height: 1},
	}
}

func (f *InputField) String() string {
	return string(f.Text)
}

func (f *InputField) textX() int {
	return f.x + runewidth.StringWidth(f.Prompt)
}

func (f *InputField) textWidth() int {
	return max(f.width-runewidth.StringWidth(f.Prompt), 1)
}

func (f *InputField) GetCursorPos() int {
	return f.cursorPos
}

// SetCursorPos sets the cursor position offset. Offset is clamped to possible values.
// The InputField is scrolled to show the new cursor position.
func (f *InputField) SetCursorPos(offset int) {
	// Clamping
	if offset < 0 {
		offset = 0
	} else if offset > len(f.Text) {
		offset = len(f.Text)
	}

	// Scrolling
	if offset >= f.scrollPos+f.textWidth() { // If cursor position is out of view to the right...
		f.scrollPos = offset - f.textWidth() + 1 // Scroll just enough to view that column
	} else if offset < f.scrollPos { // If cursor position is out of view to the left...
		f.scrollPos = offset
	}

	f.cursorPos = offset
	if f.focused && f.screen != nil {
		(*f.screen).ShowCursor(f.textX()+offset-f.scrollPos, f.y)
	}
}

// Insert types r at the cursor.
func (f *InputField) Insert(r rune) {
	f.Text = append(f.Text, 0)
	copy(f.Text[f.cursorPos+1:], f.Text[f.cursorPos:])
	f.Text[f.cursorPos] = r
	f.SetCursorPos(f.cursorPos + 1)
}

// Delete with `forward` false removes the rune before the cursor, like
// backspace. With `forward` true it removes the rune under the cursor.
func (f *InputField) Delete(forward bool) {
	at := f.cursorPos
	if !forward {
		at--
	}
	if at < 0 || at >= len(f.Text) {
		return
	}
	f.Text = append(f.Text[:at], f.Text[at+1:]...)
	f.SetCursorPos(at)
}

func (f *InputField) Draw(s tcell.Screen) {
	style := f.theme.GetOrDefault("InputField")

	DrawRect(s, f.x, f.y, f.width, 1, ' ', style) // Draw background
	DrawStr(s, f.x, f.y, f.Prompt, style)

	if len(f.Text) > 0 {
		endPos := f.scrollPos + min(len(f.Text)-f.scrollPos, f.textWidth())
		DrawStr(s, f.textX(), f.y, string(f.Text[f.scrollPos:endPos]), style) // Draw text
	}

	// Update cursor
	f.SetCursorPos(f.cursorPos)
}

func (f *InputField) SetFocused(v bool) {
	f.focused = v
	if v {
		f.SetCursorPos(f.cursorPos)
	} else if f.screen != nil {
		(*f.screen).HideCursor()
	}
}

func (f *InputField) GetMinSize() (int, int) {
	return runewidth.StringWidth(f.Prompt) + 1, 1
}

func (f *InputField) HandleEvent(event tcell.Event) bool {
	switch ev := event.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyLeft:
			f.SetCursorPos(f.cursorPos - 1)
		case tcell.KeyRight:
			f.SetCursorPos(f.cursorPos + 1)
		case tcell.KeyHome:
			f.SetCursorPos(0)
		case tcell.KeyEnd:
			f.SetCursorPos(len(f.Text))
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			f.Delete(false)
		case tcell.KeyDelete:
			f.Delete(true)
		case tcell.KeyRune:
			f.Insert(ev.Rune())
		default:
			return false
		}
		return true
	}
	return false
}
