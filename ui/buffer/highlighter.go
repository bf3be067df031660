package buffer

import (
	"sort"

	"github.com/fivemoreminix/qview/pkg/lexer"
	"github.com/gdamore/tcell/v2"
)

type Colorscheme map[Syntax]tcell.Style

// Gets the tcell.Style from the Colorscheme map for the given Syntax.
// If the Syntax cannot be found in the map, either the `Default` Syntax
// is used, or `tcell.DefaultStyle` is returned if the Default is not assigned.
func (c *Colorscheme) GetStyle(s Syntax) tcell.Style {
	if c != nil {
		if val, ok := (*c)[s]; ok {
			return val // Try to return the requested value
		} else if s != Default {
			if val, ok := (*c)[Default]; ok {
				return val // Use default colorscheme value, instead
			}
		}
	}

	return tcell.StyleDefault // No value for Default; use default style.
}

// A Match is the part of a token that lies on one line. Tokens spanning
// several lines produce one Match per line.
type Match struct {
	Col    int // Inclusive
	EndCol int // Inclusive
	Syntax Syntax
	Class  lexer.Class
}

// A Highlighter can answer how to color any part of a provided Buffer. It does
// so by running the Language's grammar over the whole buffer; the resulting
// tokens are kept for lookups by position.
type Highlighter struct {
	Buffer      Buffer
	Language    *Language
	Colorscheme *Colorscheme

	MaxDepth int               // Passed to every scan; zero means lexer.DefaultMaxDepth
	Observe  func(lexer.Token) // Optional; called with every token scanned

	lineMatches [][]Match
	tokens      []lexer.Token
	err         error
	valid       bool
}

func NewHighlighter(buffer Buffer, lang *Language, colorscheme *Colorscheme) *Highlighter {
	return &Highlighter{
		Buffer:      buffer,
		Language:    lang,
		Colorscheme: colorscheme,
		lineMatches: make([][]Match, buffer.Lines()),
	}
}

// Update scans the whole buffer again. If the scan fails, the tokens found
// before the error are kept and the rest of the buffer is left plain. The
// error is returned and remembered for Err.
func (h *Highlighter) Update() error {
	h.lineMatches = make([][]Match, h.Buffer.Lines())
	h.tokens = h.tokens[:0]
	h.err = nil
	h.valid = true

	if h.Language == nil || h.Language.Grammar == nil {
		return nil // Plain text
	}

	src := string(h.Buffer.Bytes())
	s := lexer.Tokenize(h.Language.Grammar, src)
	s.MaxDepth = h.MaxDepth

	var line, col, pos int
	for s.Next() {
		tok := s.Token()
		if h.Observe != nil {
			h.Observe(tok)
		}
		h.tokens = append(h.tokens, tok)

		line, col = advance(src[pos:tok.Start], line, col)
		h.addMatches(tok, line, col)
		line, col = advance(tok.Text, line, col)
		pos = tok.End
	}

	h.err = s.Err()
	return h.err
}

// advance returns the line and column reached after text, starting at line, col.
func advance(text string, line, col int) (int, int) {
	for _, r := range text {
		if r == '\n' {
			line, col = line+1, 0
		} else {
			col++
		}
	}
	return line, col
}

func (h *Highlighter) addMatches(tok lexer.Token, line, col int) {
	syntax := h.Language.SyntaxOf(tok.Class)
	if syntax == Default {
		return // Nothing to color
	}

	start := col
	for _, r := range tok.Text {
		if r == '\n' {
			h.addMatch(line, Match{start, col - 1, syntax, tok.Class})
			line, col, start = line+1, 0, 0
			continue
		}
		col++
	}
	h.addMatch(line, Match{start, col - 1, syntax, tok.Class})
}

func (h *Highlighter) addMatch(line int, m Match) {
	if m.EndCol < m.Col || line >= len(h.lineMatches) {
		return // Empty, like the part of a token after its last newline
	}
	h.lineMatches[line] = append(h.lineMatches[line], m)
}

// Invalidate marks the highlighting as stale, so the next call to
// UpdateInvalidated scans the buffer again.
func (h *Highlighter) Invalidate() {
	h.valid = false
}

// UpdateInvalidated calls Update only if the highlighting was invalidated or
// never computed.
func (h *Highlighter) UpdateInvalidated() error {
	if h.valid {
		return h.err
	}
	return h.Update()
}

// Err returns the error of the last scan, if any.
func (h *Highlighter) Err() error {
	return h.err
}

// GetLineMatches returns the matches of a line, sorted by column.
func (h *Highlighter) GetLineMatches(line int) []Match {
	if line < 0 || line >= len(h.lineMatches) {
		return nil
	}
	return h.lineMatches[line]
}

// MatchAt returns the match covering line, col.
func (h *Highlighter) MatchAt(line, col int) (Match, bool) {
	matches := h.GetLineMatches(line)
	i := sort.Search(len(matches), func(i int) bool { return matches[i].EndCol >= col })
	if i < len(matches) && matches[i].Col <= col {
		return matches[i], true
	}
	return Match{}, false
}

// TokenAt returns the token containing the byte offset pos.
func (h *Highlighter) TokenAt(pos int) (lexer.Token, bool) {
	i := sort.Search(len(h.tokens), func(i int) bool { return h.tokens[i].End > pos })
	if i < len(h.tokens) && h.tokens[i].Start <= pos {
		return h.tokens[i], true
	}
	return lexer.Token{}, false
}

func (h *Highlighter) GetStyle(match Match) tcell.Style {
	return h.Colorscheme.GetStyle(match.Syntax)
}
