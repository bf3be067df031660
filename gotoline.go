package main

import (
	"strconv"
	"strings"

	"github.com/fivemoreminix/qview/ui"
	"github.com/gdamore/tcell/v2"
)

// A GotoLinePrompt asks for a line number in place of the status bar. Only
// digits can be typed; Enter chooses the line and Esc cancels.
type GotoLinePrompt struct {
	LineChosenCallback func(int) // Lines start from one
	CancelCallback     func()

	*ui.InputField
}

func NewGotoLinePrompt(s *tcell.Screen, theme *ui.Theme, lineChosenCallback func(int), cancelCallback func()) *GotoLinePrompt {
	return &GotoLinePrompt{
		LineChosenCallback: lineChosenCallback,
		CancelCallback:     cancelCallback,
		InputField:         ui.NewInputField(s, "Go to line: ", theme),
	}
}

func (p *GotoLinePrompt) onConfirm() {
	num, err := strconv.Atoi(strings.TrimSpace(p.String()))
	if err != nil || num < 1 {
		p.onCancel()
		return
	}
	if p.LineChosenCallback != nil {
		p.LineChosenCallback(num)
	}
}

func (p *GotoLinePrompt) onCancel() {
	if p.CancelCallback != nil {
		p.CancelCallback()
	}
}

func (p *GotoLinePrompt) HandleEvent(event tcell.Event) bool {
	if ev, ok := event.(*tcell.EventKey); ok {
		switch ev.Key() {
		case tcell.KeyEnter:
			p.onConfirm()
			return true
		case tcell.KeyEsc:
			p.onCancel()
			return true
		case tcell.KeyRune:
			if r := ev.Rune(); r < '0' || r > '9' {
				return true // Swallowed
			}
		}
	}
	return p.InputField.HandleEvent(event)
}
