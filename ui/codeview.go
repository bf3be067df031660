package ui

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/fivemoreminix/qview/pkg/lexer"
	"github.com/fivemoreminix/qview/ui/buffer"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// CodeView is a read-only view of a highlighted buffer. It shows line numbers,
// scrolls to follow its cursor and can tell which token is under the cursor.
type CodeView struct {
	Buffer      buffer.Buffer
	Highlighter *buffer.Highlighter
	LineNumbers bool   // Whether to render line numbers (and therefore the column)
	TabSize     int    // How many cells a tab takes
	FilePath    string // Shown by the status bar

	screen           *tcell.Screen // We keep our own reference to the screen for cursor purposes.
	cursor           buffer.Cursor
	scrollx, scrolly int // X and Y offset of view, known as scroll

	baseComponent
}

// NewCodeView shows contents highlighted as lang. A nil lang shows plain text.
func NewCodeView(screen *tcell.Screen, filePath string, contents []byte, lang *buffer.Language, theme *Theme) *CodeView {
	cv := &CodeView{
		LineNumbers: true,
		TabSize:     4,
		FilePath:    filePath,

		screen:        screen,
		baseComponent: baseComponent{theme: theme},
	}
	cv.SetContents(contents, lang)
	return cv
}

// SetContents replaces the buffer, resetting the cursor and the scroll.
func (c *CodeView) SetContents(contents []byte, lang *buffer.Language) {
	c.Buffer = buffer.NewRopeBuffer(contents)
	c.cursor = buffer.NewCursor(&c.Buffer)
	c.scrollx, c.scrolly = 0, 0
	c.Highlighter = buffer.NewHighlighter(c.Buffer, lang, DefaultColorscheme)
}

// Language returns the language the buffer is highlighted as, or nil.
func (c *CodeView) Language() *buffer.Language {
	return c.Highlighter.Language
}

// Highlight brings the highlighting up to date and returns the scan error,
// if there was one. Draw calls it too.
func (c *CodeView) Highlight() error {
	return c.Highlighter.UpdateInvalidated()
}

// TokenAtCursor returns the token under the cursor.
func (c *CodeView) TokenAtCursor() (lexer.Token, bool) {
	c.Highlight()
	return c.Highlighter.TokenAt(c.cursor.Pos())
}

// CurrentLine returns the line the cursor is on, without its delimiter.
func (c *CodeView) CurrentLine() []byte {
	line, _ := c.cursor.GetLineCol()
	return trimDelim(c.Buffer.Line(line))
}

func trimDelim(line []byte) []byte {
	if n := len(line); n > 0 && line[n-1] == '\n' {
		line = line[:n-1]
		if n := len(line); n > 0 && line[n-1] == '\r' {
			line = line[:n-1]
		}
	}
	return line
}

// runeWidth returns how many cells r takes on screen.
func (c *CodeView) runeWidth(r rune) int {
	if r == '\t' {
		return c.TabSize
	}
	if unicode.IsControl(r) {
		return 1 // Drawn as a placeholder
	}
	return runewidth.RuneWidth(r)
}

// visualCol returns the cell offset of the rune at line, col from the start
// of the line, accounting for tabs and wide runes.
func (c *CodeView) visualCol(line, col int) int {
	var cells, i int
	for _, r := range string(trimDelim(c.Buffer.Line(line))) {
		if i >= col {
			break
		}
		cells += c.runeWidth(r)
		i++
	}
	return cells
}

// updateCursorVisibility sets the position of the terminal's cursor with the
// cursor of the CodeView, if the CodeView is focused.
func (c *CodeView) updateCursorVisibility() {
	if c.focused && c.screen != nil {
		line, col := c.cursor.GetLineCol()
		x := c.x + c.getColumnWidth() + c.visualCol(line, col) - c.scrollx
		(*c.screen).ShowCursor(x, c.y+line-c.scrolly)
	}
}

// Scroll the screen if the cursor is out of view.
func (c *CodeView) ScrollToCursor() {
	line, col := c.cursor.GetLineCol()
	vcol := c.visualCol(line, col)

	// Scroll the screen when going to lines out of view
	if line >= c.scrolly+c.height-1 { // If the new line is below view...
		c.scrolly = max(line-c.height+1, 0) // Scroll just enough to view that line
	} else if line < c.scrolly { // If the new line is above view
		c.scrolly = line
	}

	textWidth := c.width - c.getColumnWidth()

	// Scroll the screen horizontally when going to columns out of view
	if vcol >= c.scrollx+textWidth-1 { // If the new column is right of view
		c.scrollx = max(vcol-textWidth+1, 0) // Scroll just enough to view that column
	} else if vcol < c.scrollx { // If the new column is left of view
		c.scrollx = vcol
	}
}

func (c *CodeView) GetCursor() buffer.Cursor {
	return c.cursor
}

func (c *CodeView) SetCursor(newCursor buffer.Cursor) {
	c.cursor = newCursor
	c.ScrollToCursor()
	c.updateCursorVisibility()
}

// getColumnWidth returns the width of the line numbers column if it is present.
func (c *CodeView) getColumnWidth() int {
	var columnWidth int
	if c.LineNumbers {
		// Set columnWidth to max count of line number digits
		columnWidth = max(3, 1+len(strconv.Itoa(c.Buffer.Lines()))) // Column has minimum width of 2
	}
	return columnWidth
}

// Draw renders the CodeView component.
func (c *CodeView) Draw(s tcell.Screen) {
	columnWidth := c.getColumnWidth()
	bufferLines := c.Buffer.Lines()

	c.Highlight() // A failed scan still leaves the tokens before the error

	columnStyle := c.Highlighter.Colorscheme.GetStyle(buffer.Column)
	defaultStyle := c.Highlighter.Colorscheme.GetStyle(buffer.Default)

	for lineY := c.y; lineY < c.y+c.height; lineY++ { // For each line we can draw...
		line := lineY + c.scrolly - c.y // The line number being drawn (starts at zero)

		DrawRect(s, c.x+columnWidth, lineY, c.width-columnWidth, 1, ' ', defaultStyle)

		lineNumStr := "" // Line number as a string
		if line < bufferLines {
			lineNumStr = strconv.Itoa(line + 1)
			c.drawLine(s, line, lineY, defaultStyle)
		}

		if columnWidth > 0 {
			columnStr := fmt.Sprintf("%s%s│", strings.Repeat(" ", columnWidth-len(lineNumStr)-1), lineNumStr) // Right align line number
			DrawStr(s, c.x, lineY, columnStr, columnStyle)
		}
	}

	c.updateCursorVisibility()
}

func (c *CodeView) drawLine(s tcell.Screen, line, y int, defaultStyle tcell.Style) {
	left := c.x + c.getColumnWidth()
	right := c.x + c.width
	matches := c.Highlighter.GetLineMatches(line)

	var m int     // Index of the first match that may cover the current rune
	var cells int // Cells from the start of the line
	var col int   // Rune index in the line

	for _, r := range string(trimDelim(c.Buffer.Line(line))) {
		for m < len(matches) && matches[m].EndCol < col {
			m++
		}
		style := defaultStyle
		if m < len(matches) && matches[m].Col <= col {
			style = c.Highlighter.GetStyle(matches[m])
		}

		width := c.runeWidth(r)
		x := left + cells - c.scrollx
		switch {
		case r == '\t': // Each cell of a tab is drawn
			for i := 0; i < width; i++ {
				if x+i >= left && x+i < right {
					s.SetContent(x+i, y, ' ', nil, style)
				}
			}
		case x >= left && x+width <= right:
			if unicode.IsControl(r) {
				r = '?'
			}
			s.SetContent(x, y, r, nil, style)
		}

		cells += width
		col++
		if left+cells-c.scrollx >= right {
			break
		}
	}
}

// SetFocused sets whether the CodeView is focused. When focused, the cursor is set visible
// and its position is updated on every event.
func (c *CodeView) SetFocused(v bool) {
	c.focused = v
	if v {
		c.updateCursorVisibility()
	} else if c.screen != nil {
		(*c.screen).HideCursor()
	}
}

// nextToken moves the cursor to the start of the token after the one under it.
func (c *CodeView) nextToken() buffer.Cursor {
	if tok, ok := c.TokenAtCursor(); ok {
		return c.cursor.SetPos(tok.End)
	}
	return c.cursor
}

// prevToken moves the cursor to the start of the token before it.
func (c *CodeView) prevToken() buffer.Cursor {
	c.Highlight()
	if pos := c.cursor.Pos(); pos > 0 {
		if tok, ok := c.Highlighter.TokenAt(pos - 1); ok {
			return c.cursor.SetPos(tok.Start)
		}
	}
	return c.cursor
}

// HandleEvent allows the CodeView to handle `event` if it chooses, returns
// whether the CodeView handled the event.
func (c *CodeView) HandleEvent(event tcell.Event) bool {
	switch ev := event.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		// Cursor movement
		case tcell.KeyUp:
			c.SetCursor(c.cursor.Up())
		case tcell.KeyDown:
			c.SetCursor(c.cursor.Down())
		case tcell.KeyLeft:
			if ev.Modifiers()&tcell.ModCtrl != 0 {
				c.SetCursor(c.prevToken())
			} else {
				c.SetCursor(c.cursor.Left())
			}
		case tcell.KeyRight:
			if ev.Modifiers()&tcell.ModCtrl != 0 {
				c.SetCursor(c.nextToken())
			} else {
				c.SetCursor(c.cursor.Right())
			}
		case tcell.KeyHome:
			c.SetCursor(c.cursor.Home())
		case tcell.KeyEnd:
			c.SetCursor(c.cursor.End())
		case tcell.KeyPgUp:
			line, col := c.cursor.GetLineCol()
			c.SetCursor(c.cursor.SetLineCol(line-c.height, col)) // Go a page up
		case tcell.KeyPgDn:
			line, col := c.cursor.GetLineCol()
			c.SetCursor(c.cursor.SetLineCol(line+c.height, col)) // Go a page down
		default:
			return false
		}
		return true
	}
	return false
}
