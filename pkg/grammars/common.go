package grammars

import "github.com/fivemoreminix/qview/pkg/lexer"

// Escape classifies backslash escapes inside strings.
const Escape lexer.Class = "escape"

// Building blocks shared by C-like grammars.
var (
	WhitespaceRule = lexer.Rule{Class: lexer.Whitespace, Pattern: `\s+`}

	BackslashEscape = lexer.Rule{Class: Escape, Pattern: `\\[\s\S]`}

	QuoteString = lexer.Rule{
		Class:     lexer.String,
		Literal:   `"`,
		End:       `"`,
		NoInherit: true,
		Contains:  []lexer.Rule{BackslashEscape},

		AbsorbUnmatched: true,
	}

	AposString = lexer.Rule{
		Class:     lexer.String,
		Literal:   `'`,
		End:       `'`,
		NoInherit: true,
		Contains:  []lexer.Rule{BackslashEscape},

		AbsorbUnmatched: true,
	}

	// CNumber matches hexadecimal, decimal and floating point numbers.
	CNumber = lexer.Rule{
		Class:   lexer.Number,
		Pattern: `-?(\b0[xX][a-fA-F0-9]+|(\b\d+(\.\d*)?|\.\d+)([eE][-+]?\d+)?)`,
	}
)

// LineComment returns a rule for comments that start with marker and run to
// the end of the line.
func LineComment(marker string) lexer.Rule {
	return lexer.Rule{
		Class:           lexer.Comment,
		Literal:         marker,
		End:             `$`,
		NoInherit:       true,
		AbsorbUnmatched: true,
	}
}
