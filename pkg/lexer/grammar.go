package lexer

import "time"

// A Class is the classification assigned to a span of text. Grammars may use
// any label; the constants below are the ones the engine itself produces or
// gives meaning to.
type Class string

const (
	Keyword     Class = "keyword"
	BuiltIn     Class = "built_in"
	Type        Class = "type"
	Literal     Class = "literal"
	Operator    Class = "operator"
	Identifier  Class = "identifier"
	Number      Class = "number"
	String      Class = "string"
	Comment     Class = "comment"
	Macro       Class = "macro"
	Title       Class = "title"
	Punctuation Class = "punctuation" // Also used for delimiters excluded by ExcludeEnd
	Whitespace  Class = "whitespace"
	Unknown     Class = "unknown" // A single unmatched character
)

// DefaultNamePattern matches the generic identifiers that fall back to the
// Identifier class when they are not found in any word category.
const DefaultNamePattern = `[A-Za-z_][A-Za-z0-9_]*`

// A Category is a set of literal words sharing one classification, such as
// the keywords or the built-in types of a language.
type Category struct {
	Class Class
	Words []string
}

// A Grammar describes the lexical rules of a language. It is plain data: it
// is checked and turned into matchable patterns by Compile.
type Grammar struct {
	Name      string
	Aliases   []string
	Filetypes []string // Globs like "*.zig", used by registries

	// Categories are tried longest-match first. When two categories match the
	// same length, the one declared first wins.
	Categories []Category

	// Rules made of Literal or Keywords compete by length. Of the Pattern
	// rules, only the first one that matches is a candidate.
	Rules []Rule

	// Illegal is checked once, at offset zero of the input. A match fails the
	// scan with an IllegalModeEntryError.
	Illegal string

	NamePattern  string        // Defaults to DefaultNamePattern
	MatchTimeout time.Duration // Zero means no timeout
}

// A Rule matches a span of input and classifies it. A Rule with Contains,
// End or EndsWithParent opens a mode: the text after its begin match is
// scanned with the rules of that mode until the end condition is met.
type Rule struct {
	Class Class

	// BeginClass classifies the begin match of a mode rule. It defaults to
	// Keyword for Keywords rules and to Class otherwise.
	BeginClass Class

	// Exactly one of Pattern, Literal and Keywords must be set.
	Pattern  string   // Regular expression
	Literal  string   // Literal prefix
	Keywords []string // Any of these whole words

	End            string // End pattern of the mode
	EndsWithParent bool   // The mode ends where an enclosing mode ends
	ExcludeEnd     bool   // The end delimiter is not classified as part of the mode
	ReturnEnd      bool   // The end delimiter is left for the enclosing mode to scan
	EndsParent     bool   // Closing this mode (or matching this rule) also closes the enclosing mode

	Contains      []Rule
	NoInherit     bool   // Do not fall back to the rules of the enclosing mode
	UseCategories bool   // Word categories and identifiers are candidates inside the mode
	Illegal       string // Checked once, where the mode is entered

	// AbsorbUnmatched gives text no rule matches inside the mode the mode's
	// class, like the body of a string or a comment. Otherwise every such
	// character is an Unknown token, as it is in the top-level mode.
	AbsorbUnmatched bool
}

// opensMode reports whether the rule starts a nested mode when it matches.
func (r *Rule) opensMode() bool {
	return r.Contains != nil || r.End != "" || r.EndsWithParent
}

// A Token is one classified span of the input. Start and End are byte
// offsets; End is exclusive, so Text == input[Start:End].
type Token struct {
	Class Class
	Start int
	End   int
	Text  string
}
