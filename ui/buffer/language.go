package buffer

import (
	"github.com/fivemoreminix/qview/pkg/grammars"
	"github.com/fivemoreminix/qview/pkg/lexer"
)

type Syntax uint8

const (
	Default Syntax = iota
	Column // Not necessarily a Syntax; useful for Colorscheming editor column
	Keyword
	String
	Special
	Type
	Number
	Builtin
	Comment
	DocComment
	Operator
	Title
	Unknown
)

// DefaultSyntaxes maps the classes every grammar shares, and those of the
// bundled grammars, to a Syntax. Classes missing here are drawn as Default.
var DefaultSyntaxes = map[lexer.Class]Syntax{
	lexer.Keyword:  Keyword,
	lexer.BuiltIn:  Builtin,
	lexer.Type:     Type,
	lexer.Literal:  Special,
	lexer.Operator: Operator,
	lexer.Number:   Number,
	lexer.String:   String,
	lexer.Comment:  Comment,
	lexer.Macro:    Builtin,
	lexer.Title:    Title,
	lexer.Unknown:  Unknown,

	grammars.Escape: Special,
	"comment-todo":  DocComment,
	"errorhandling": Special,
	"meta-event":    Special,
	"function-call": Title,
	"multiline":     String,
	"symbol":        Special,
}

type Language struct {
	Name      string
	Filetypes []string // *.go, *.c, etc.
	Grammar   *lexer.CompiledGrammar
	Syntaxes  map[lexer.Class]Syntax // Overrides DefaultSyntaxes
}

func NewLanguage(g *lexer.CompiledGrammar) *Language {
	return &Language{
		Name:      g.Name,
		Filetypes: g.Filetypes,
		Grammar:   g,
	}
}

// LanguageFor returns the Language registered for the file at path. The error
// wraps grammars.ErrNotFound when no grammar claims it.
func LanguageFor(path string) (*Language, error) {
	g, err := grammars.Match(path)
	if err != nil {
		return nil, err
	}
	return NewLanguage(g), nil
}

// SyntaxOf returns the Syntax used to draw tokens of class c.
func (l *Language) SyntaxOf(c lexer.Class) Syntax {
	if l != nil {
		if s, ok := l.Syntaxes[c]; ok {
			return s
		}
	}
	if s, ok := DefaultSyntaxes[c]; ok {
		return s
	}
	return Default
}
