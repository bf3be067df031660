package main

import (
	"testing"

	"github.com/fivemoreminix/qview/ui"
	"github.com/gdamore/tcell/v2"
)

func sendKeys(p *GotoLinePrompt, str string, keys ...tcell.Key) {
	for _, r := range str {
		p.HandleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
	for _, k := range keys {
		p.HandleEvent(tcell.NewEventKey(k, 0, tcell.ModNone))
	}
}

func TestGotoLinePrompt(t *testing.T) {
	chosen, canceled := 0, false
	newPrompt := func() *GotoLinePrompt {
		chosen, canceled = 0, false
		return NewGotoLinePrompt(nil, nil, func(line int) { chosen = line }, func() { canceled = true })
	}

	p := newPrompt()
	sendKeys(p, "1x2", tcell.KeyEnter)
	if p.String() != "12" {
		t.Errorf("Expected only digits to be typed, got %q", p.String())
	}
	if chosen != 12 || canceled {
		t.Errorf("Expected line 12 to be chosen, got %v (canceled %v)", chosen, canceled)
	}

	p = newPrompt()
	sendKeys(p, "3", tcell.KeyEsc)
	if chosen != 0 || !canceled {
		t.Errorf("Expected Esc to cancel, got line %v", chosen)
	}

	p = newPrompt()
	sendKeys(p, "0", tcell.KeyEnter)
	if chosen != 0 || !canceled {
		t.Errorf("Expected line 0 to cancel, got line %v", chosen)
	}

	p = newPrompt()
	sendKeys(p, "", tcell.KeyEnter)
	if !canceled {
		t.Error("Expected an empty line number to cancel")
	}
}

func TestGotoLine(t *testing.T) {
	cv := ui.NewCodeView(nil, "a.zig", []byte("a\nb\nc"), nil, nil)

	gotoLine(cv, 2)
	if line, col := cv.GetCursor().GetLineCol(); line != 1 || col != 0 {
		t.Errorf("Expected the cursor at 1:0, got %v:%v", line, col)
	}

	gotoLine(cv, 99)
	if line, _ := cv.GetCursor().GetLineCol(); line != 2 {
		t.Errorf("Expected a line past the end to go to the last line, got %v", line)
	}
}
