package lexer

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
)

// A CompiledGrammar is the immutable, matchable form of a Grammar. It may be
// shared by any number of concurrent scans.
type CompiledGrammar struct {
	Name      string
	Aliases   []string
	Filetypes []string

	root       *rule
	categories []*category
	name       *regexp2.Regexp // Generic identifier, anchored at the scan position
	nameExact  *regexp2.Regexp // Generic identifier, whole lexeme
}

// rule is the compiled form of a Rule. The top-level mode is a synthetic rule
// with no begin pattern.
type rule struct {
	id         int
	path       string
	class      Class
	beginClass Class
	source     string // Begin pattern before anchoring; used to detect ambiguity
	begin      *regexp2.Regexp
	literal    bool // Begins with a Literal or Keywords, so it competes by length

	mode           bool
	end            *regexp2.Regexp
	endsWithParent bool
	excludeEnd     bool
	returnEnd      bool
	endsParent     bool
	noInherit      bool
	useCategories  bool
	absorb         bool
	illegal        *regexp2.Regexp
	contains       []*rule
}

type category struct {
	class Class
	words map[string]struct{}
	re    *regexp2.Regexp
}

func (c *category) has(word string) bool {
	_, ok := c.words[word]
	return ok
}

// byLength implements sort.Interface for []string, longest first.
type byLength []string

func (s byLength) Len() int      { return len(s) }
func (s byLength) Swap(i, j int) { s[i], s[j] = s[j], s[i] }
func (s byLength) Less(i, j int) bool {
	return utf8.RuneCountInString(s[i]) > utf8.RuneCountInString(s[j])
}

// MustCompile is like Compile but panics if the grammar is invalid. It is
// meant for grammars declared as package variables.
func MustCompile(g *Grammar) *CompiledGrammar {
	cg, err := Compile(g)
	if err != nil {
		panic(err)
	}
	return cg
}

// Compile checks a Grammar and builds its patterns. All problems with the
// grammar are reported here as an *InvalidGrammarError, so a scan never
// fails because of a malformed or ambiguous grammar.
func Compile(g *Grammar) (*CompiledGrammar, error) {
	c := &compiler{grammar: g.Name, timeout: g.MatchTimeout}
	if g.Name == "" {
		return nil, c.fail("", "grammar has no name", nil)
	}

	cg := &CompiledGrammar{
		Name:      g.Name,
		Aliases:   append([]string(nil), g.Aliases...),
		Filetypes: append([]string(nil), g.Filetypes...),
	}

	classes := make(map[Class]bool, len(g.Categories))
	for i, cat := range g.Categories {
		path := fmt.Sprintf("categories[%d]", i)
		if cat.Class == "" {
			return nil, c.fail(path, "category has no class", nil)
		}
		if classes[cat.Class] {
			return nil, c.fail(path, fmt.Sprintf("category %q is declared twice", cat.Class), nil)
		}
		classes[cat.Class] = true

		words, err := c.words(cat.Words, path)
		if err != nil {
			return nil, err
		}
		re, err := c.anchored(wordsPattern(cat.Words), path)
		if err != nil {
			return nil, err
		}
		cg.categories = append(cg.categories, &category{class: cat.Class, words: words, re: re})
	}

	namePattern := g.NamePattern
	if namePattern == "" {
		namePattern = DefaultNamePattern
	}
	var err error
	if cg.name, err = c.anchored(namePattern, "namePattern"); err != nil {
		return nil, err
	}
	if cg.nameExact, err = c.compile(`\A(?:`+namePattern+`)\z`, "namePattern"); err != nil {
		return nil, err
	}

	root := &rule{mode: true, useCategories: true}
	if g.Illegal != "" {
		if root.illegal, err = c.anchored(g.Illegal, "illegal"); err != nil {
			return nil, err
		}
	}
	if root.contains, err = c.rules(g.Rules, "rules", true); err != nil {
		return nil, err
	}
	if err := c.checkModes(root); err != nil {
		return nil, err
	}
	cg.root = root

	return cg, nil
}

type compiler struct {
	grammar string
	timeout time.Duration
	lastID  int
}

func (c *compiler) fail(path, reason string, err error) error {
	return &InvalidGrammarError{Grammar: c.grammar, Path: path, Reason: reason, Err: err}
}

// compile builds a multiline regular expression from the grammar.
func (c *compiler) compile(pattern, path string) (*regexp2.Regexp, error) {
	re, err := regexp2.Compile(pattern, regexp2.Multiline)
	if err != nil {
		return nil, c.fail(path, fmt.Sprintf("bad pattern %q", pattern), err)
	}
	if c.timeout > 0 {
		re.MatchTimeout = c.timeout
	}
	return re, nil
}

// anchored compiles a pattern that only matches at the position the search
// starts from. The whole input stays visible to the pattern, so \b, ^ and
// lookbehind behave as they would on the full text.
func (c *compiler) anchored(pattern, path string) (*regexp2.Regexp, error) {
	if pattern == "" {
		return nil, c.fail(path, "empty pattern", nil)
	}
	return c.compile(`\G(?:`+pattern+`)`, path)
}

func (c *compiler) words(words []string, path string) (map[string]struct{}, error) {
	if len(words) == 0 {
		return nil, c.fail(path, "no words", nil)
	}
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		if w == "" {
			return nil, c.fail(path, "empty word", nil)
		}
		if _, ok := set[w]; ok {
			return nil, c.fail(path, fmt.Sprintf("word %q is listed twice", w), nil)
		}
		set[w] = struct{}{}
	}
	return set, nil
}

func (c *compiler) rules(rs []Rule, path string, top bool) ([]*rule, error) {
	out := make([]*rule, 0, len(rs))
	for i := range rs {
		r, err := c.rule(&rs[i], fmt.Sprintf("%s[%d]", path, i), top)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// checkModes follows every mode a scan can enter, including modes opened by
// rules inherited from an enclosing mode, and fails if two rules visible in
// one mode share a pattern but not a class.
func (c *compiler) checkModes(root *rule) error {
	seen := make(map[string]bool)

	var visit func(m *rule, visible []*rule) error
	visit = func(m *rule, visible []*rule) error {
		visible = uniqueRules(visible)
		key := modeKey(m, visible)
		if seen[key] {
			return nil
		}
		seen[key] = true

		classes := make(map[string]*rule, len(visible))
		for _, r := range visible {
			if prev, ok := classes[r.source]; ok && prev.class != r.class {
				return c.fail(r.path, fmt.Sprintf("pattern %q is classified both %q (%s) and %q", r.source, prev.class, prev.path, r.class), nil)
			}
			classes[r.source] = r
		}

		for _, r := range visible {
			if !r.mode {
				continue
			}
			inner := r.contains
			if !r.noInherit {
				inner = append(append([]*rule(nil), r.contains...), visible...)
			}
			if err := visit(r, inner); err != nil {
				return err
			}
		}
		return nil
	}
	return visit(root, root.contains)
}

// uniqueRules drops repeated rules, keeping the first of each.
func uniqueRules(rs []*rule) []*rule {
	seen := make(map[*rule]bool, len(rs))
	out := make([]*rule, 0, len(rs))
	for _, r := range rs {
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	return out
}

// modeKey identifies a mode by its rule and the set of rules visible in it.
func modeKey(m *rule, visible []*rule) string {
	ids := make([]int, len(visible))
	for i, r := range visible {
		ids[i] = r.id
	}
	sort.Ints(ids)
	return fmt.Sprint(m.id, ids)
}

func (c *compiler) rule(rd *Rule, path string, top bool) (*rule, error) {
	if rd.Class == "" {
		return nil, c.fail(path, "rule has no class", nil)
	}

	var forms int
	for _, set := range []bool{rd.Pattern != "", rd.Literal != "", rd.Keywords != nil} {
		if set {
			forms++
		}
	}
	if forms != 1 {
		return nil, c.fail(path, "rule needs exactly one of Pattern, Literal and Keywords", nil)
	}

	c.lastID++
	r := &rule{
		id:         c.lastID,
		path:       path,
		class:      rd.Class,
		beginClass: rd.BeginClass,
		endsParent: rd.EndsParent,
		literal:    rd.Pattern == "",
	}
	switch {
	case rd.Pattern != "":
		r.source = rd.Pattern
	case rd.Literal != "":
		r.source = regexp2.Escape(rd.Literal)
	default:
		if _, err := c.words(rd.Keywords, path); err != nil {
			return nil, err
		}
		r.source = wordsPattern(rd.Keywords)
		if r.beginClass == "" {
			r.beginClass = Keyword
		}
	}
	if r.beginClass == "" {
		r.beginClass = r.class
	}

	var err error
	if r.begin, err = c.anchored(r.source, path); err != nil {
		return nil, err
	}

	if top && rd.EndsParent {
		return nil, c.fail(path, "a top-level rule has no parent to end", nil)
	}

	if !rd.opensMode() {
		if rd.ExcludeEnd || rd.ReturnEnd || rd.NoInherit || rd.UseCategories || rd.AbsorbUnmatched || rd.Illegal != "" {
			return nil, c.fail(path, "mode attributes on a rule that opens no mode", nil)
		}
		return r, nil
	}

	if (rd.End != "") == rd.EndsWithParent {
		return nil, c.fail(path, "a mode needs exactly one end condition: End or EndsWithParent", nil)
	}
	if rd.ExcludeEnd && rd.ReturnEnd {
		return nil, c.fail(path, "ExcludeEnd and ReturnEnd cannot both be set", nil)
	}

	r.mode = true
	r.endsWithParent = rd.EndsWithParent
	r.excludeEnd = rd.ExcludeEnd
	r.returnEnd = rd.ReturnEnd
	r.noInherit = rd.NoInherit
	r.useCategories = rd.UseCategories
	r.absorb = rd.AbsorbUnmatched

	if rd.End != "" {
		// An end pattern may legitimately match nothing, like "$".
		if r.end, err = c.compile(`\G(?:`+rd.End+`)`, path+".end"); err != nil {
			return nil, err
		}
	}
	if rd.Illegal != "" {
		if r.illegal, err = c.anchored(rd.Illegal, path+".illegal"); err != nil {
			return nil, err
		}
	}
	if r.contains, err = c.rules(rd.Contains, path+".contains", false); err != nil {
		return nil, err
	}

	return r, nil
}

// wordsPattern builds one alternation out of a word list. Longer words come
// first so that "noinline" is preferred over "inline" at the same position.
// Word boundaries are only added next to word characters, so words like
// "@import" or "<=" still match.
func wordsPattern(words []string) string {
	sorted := append([]string(nil), words...)
	sort.Stable(byLength(sorted))

	alts := make([]string, len(sorted))
	for i, w := range sorted {
		alt := regexp2.Escape(w)
		if first, _ := utf8.DecodeRuneInString(w); isWordRune(first) {
			alt = `\b` + alt
		}
		if last, _ := utf8.DecodeLastRuneInString(w); isWordRune(last) {
			alt += `\b`
		}
		alts[i] = alt
	}
	return "(?:" + strings.Join(alts, "|") + ")"
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
