package lexer

import (
	"context"
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
)

// A Scanner produces the tokens of one input, one at a time. Successive calls
// to Next step through the tokens; scanning stops at the end of the input or
// at the first error, which Err then reports.
//
//	s := lexer.Tokenize(g, src)
//	for s.Next() {
//		tok := s.Token()
//		...
//	}
//	if err := s.Err(); err != nil {
//		...
//	}
//
// Characters no rule matches do not stop the scan: they come out as Unknown
// tokens one character long, or as part of the mode's class inside a mode
// that absorbs unmatched text.
type Scanner struct {
	// MaxDepth limits how deeply modes may nest. Zero means DefaultMaxDepth.
	// It must be set before the first call to Next.
	MaxDepth int

	grammar *CompiledGrammar
	ctx     context.Context
	input   string
	runes   []rune
	offsets []int // Byte offset of every rune, followed by len(input)

	stack   *modeStack
	pos     int // Rune offset of the next character to scan
	tok     Token
	err     error
	started bool
	done    bool
}

// Tokenize returns a Scanner over input. Every call starts a new, independent
// scan, so the same grammar and input always produce the same tokens.
func Tokenize(g *CompiledGrammar, input string) *Scanner {
	return TokenizeContext(context.Background(), g, input)
}

// TokenizeContext is like Tokenize, but the scan stops with ctx.Err() once
// ctx is done. The context is checked between tokens.
func TokenizeContext(ctx context.Context, g *CompiledGrammar, input string) *Scanner {
	return &Scanner{grammar: g, ctx: ctx, input: input}
}

// All scans the whole input and returns its tokens. On error, the tokens
// produced before the error are returned with it.
func All(g *CompiledGrammar, input string) ([]Token, error) {
	var toks []Token
	s := Tokenize(g, input)
	for s.Next() {
		toks = append(toks, s.Token())
	}
	return toks, s.Err()
}

// Next advances to the next token, which is then available through Token.
// It returns false when the input is exhausted or an error occurred.
func (s *Scanner) Next() bool {
	if s.done {
		return false
	}
	if !s.started {
		s.started = true
		if err := s.start(); err != nil {
			return s.stop(err)
		}
	}

	for s.pos < len(s.runes) {
		if err := s.ctx.Err(); err != nil {
			return s.stop(err)
		}
		tok, ok, err := s.step()
		if err != nil {
			return s.stop(err)
		}
		if ok {
			s.tok = tok
			return true
		}
	}
	return s.stop(nil) // Modes still open are closed implicitly
}

// Token returns the token produced by the last call to Next.
func (s *Scanner) Token() Token {
	return s.tok
}

// Err returns the error that stopped the scan, if any.
func (s *Scanner) Err() error {
	return s.err
}

// Depth returns how many modes are open above the top-level mode.
func (s *Scanner) Depth() int {
	if s.stack == nil {
		return 0
	}
	return s.stack.depth()
}

func (s *Scanner) start() error {
	s.runes = []rune(s.input)
	s.offsets = make([]int, 0, len(s.runes)+1)
	for i := range s.input { // One iteration per rune, or per invalid byte
		s.offsets = append(s.offsets, i)
	}
	s.offsets = append(s.offsets, len(s.input))

	s.stack = newModeStack(s.grammar.root, s.MaxDepth)
	return s.checkIllegal(s.stack.top())
}

func (s *Scanner) stop(err error) bool {
	s.done = true
	s.err = err
	s.tok = Token{}
	return false
}

// step scans at the current position. It either consumes input, returning
// the token for it, or closes a mode without consuming anything.
func (s *Scanner) step() (Token, bool, error) {
	m := s.stack.top()

	if m.parent != nil {
		n, err := s.match(m.rule.end, s.pos)
		if err != nil {
			return Token{}, false, err
		}
		if n >= 0 {
			return s.closeMode(m, n)
		}
		if m.rule.endsWithParent {
			ended, err := s.parentEnds(m, s.pos)
			if err != nil {
				return Token{}, false, err
			}
			if ended {
				return Token{}, false, s.stack.pop()
			}
		}
	}

	c, ok, err := s.candidate(m, s.pos)
	if err != nil {
		return Token{}, false, err
	}
	if !ok {
		return s.unmatched(m)
	}

	start := s.pos
	s.pos += c.length

	if c.rule != nil && c.rule.mode {
		inner, err := s.stack.push(c.rule, s.pos, s.offsets[start])
		if err != nil {
			return Token{}, false, err
		}
		if err := s.checkIllegal(inner); err != nil {
			return Token{}, false, err
		}
		return s.token(c.rule.beginClass, start, s.pos), true, nil
	}

	tok := s.token(c.class, start, s.pos)
	if c.rule != nil && c.rule.endsParent {
		if err := s.stack.pop(); err != nil {
			return Token{}, false, err
		}
	}
	return tok, true, nil
}

// closeMode closes m, whose end pattern matched n runes at the current
// position.
func (s *Scanner) closeMode(m *mode, n int) (Token, bool, error) {
	r := m.rule
	if err := s.stack.pop(); err != nil {
		return Token{}, false, err
	}
	if r.endsParent {
		if err := s.stack.pop(); err != nil {
			return Token{}, false, err
		}
	}

	if n == 0 || r.returnEnd {
		return Token{}, false, nil
	}

	start := s.pos
	s.pos += n
	class := r.class
	if r.excludeEnd {
		class = Punctuation
	}
	return s.token(class, start, s.pos), true, nil
}

// parentEnds reports whether m should close because an enclosing mode ends
// at pos. The search goes up for as long as the modes end with their parent.
func (s *Scanner) parentEnds(m *mode, pos int) (bool, error) {
	for p := m.parent; p != nil && p.parent != nil; p = p.parent {
		n, err := s.match(p.rule.end, pos)
		if err != nil {
			return false, err
		}
		if n >= 0 {
			return true, nil
		}
		if !p.rule.endsWithParent {
			break
		}
	}
	return false, nil
}

type candidate struct {
	rule   *rule // Nil for word category and identifier matches
	class  Class
	length int // In runes
	rank   int // Lower wins between candidates of equal length
}

// candidate selects the match at pos in the innermost mode m. Literal and
// keyword rules and word categories compete by length. Of the pattern rules
// only the first that matches takes part. A tie goes to the lower rank:
// categories rank in declaration order, a literal rule ranks with the
// category of its class or after all of them, and pattern rules come last.
// A generic identifier has to be strictly longer than anything else to win.
func (s *Scanner) candidate(m *mode, pos int) (candidate, bool, error) {
	g := s.grammar
	var best candidate
	var found bool
	consider := func(c candidate) {
		if !found || c.length > best.length || c.length == best.length && c.rank < best.rank {
			best, found = c, true
		}
	}

	patternSeen := false
	for _, r := range s.stack.currentRules() {
		if !r.literal && patternSeen {
			continue
		}
		n, err := s.match(r.begin, pos)
		if err != nil {
			return candidate{}, false, err
		}
		if n <= 0 { // Empty begin matches would never advance
			continue
		}
		c := candidate{rule: r, class: r.class, length: n, rank: len(g.categories) + 1}
		if r.literal {
			c.rank = g.rank(r.class)
		} else {
			patternSeen = true
		}
		consider(c)
	}

	if !m.categories {
		return best, found, nil
	}

	for i, cat := range g.categories {
		n, err := s.match(cat.re, pos)
		if err != nil {
			return candidate{}, false, err
		}
		if n > 0 {
			consider(candidate{class: cat.class, length: n, rank: i})
		}
	}

	n, err := s.match(g.name, pos)
	if err != nil {
		return candidate{}, false, err
	}
	if n > 0 && (!found || n > best.length) {
		best = candidate{class: Identifier, length: n}
		found = true
	}

	if found && best.rule == nil {
		best.class = g.Classify(string(s.runes[pos:pos+best.length]), best.class)
	}
	return best, found, nil
}

// unmatched handles a position where nothing matches. One character is
// emitted as Unknown, unless the mode absorbs unmatched text: then the run up
// to the next position where something does match gets the mode's class.
// Stray characters are Unknown even there.
func (s *Scanner) unmatched(m *mode) (Token, bool, error) {
	start := s.pos
	if !m.rule.absorb || stray(s.runes[start]) {
		s.pos++
		return s.token(Unknown, start, s.pos), true, nil
	}

	end := start + 1
	for end < len(s.runes) && !stray(s.runes[end]) {
		stop, err := s.matchesAt(m, end)
		if err != nil {
			return Token{}, false, err
		}
		if stop {
			break
		}
		end++
	}
	s.pos = end
	return s.token(m.rule.class, start, end), true, nil
}

// stray reports whether r is a control character other than white space, or
// a byte that is not valid UTF-8.
func stray(r rune) bool {
	return r == utf8.RuneError || unicode.IsControl(r) && !unicode.IsSpace(r)
}

// matchesAt reports whether anything would happen at pos in mode m: the mode
// ending, or any candidate matching.
func (s *Scanner) matchesAt(m *mode, pos int) (bool, error) {
	n, err := s.match(m.rule.end, pos)
	if err != nil || n >= 0 {
		return n >= 0, err
	}
	if m.rule.endsWithParent {
		if ended, err := s.parentEnds(m, pos); err != nil || ended {
			return ended, err
		}
	}
	_, found, err := s.candidate(m, pos)
	return found, err
}

func (s *Scanner) checkIllegal(m *mode) error {
	n, err := s.match(m.rule.illegal, s.pos)
	if err != nil {
		return err
	}
	if n < 0 {
		return nil
	}
	return &IllegalModeEntryError{
		Class:  m.rule.class,
		Offset: s.offsets[s.pos],
		Text:   string(s.runes[s.pos : s.pos+n]),
	}
}

// match returns the length in runes of the match of re at pos, or -1 if re is
// nil or does not match there.
func (s *Scanner) match(re *regexp2.Regexp, pos int) (int, error) {
	if re == nil {
		return -1, nil
	}
	m, err := re.FindRunesMatchStartingAt(s.runes, pos)
	if err != nil {
		return -1, fmt.Errorf("matching at offset %d: %w", s.offsets[pos], err)
	}
	if m == nil {
		return -1, nil
	}
	return m.Length, nil
}

func (s *Scanner) token(class Class, start, end int) Token {
	from, to := s.offsets[start], s.offsets[end]
	return Token{Class: class, Start: from, End: to, Text: s.input[from:to]}
}
