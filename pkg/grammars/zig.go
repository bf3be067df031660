package grammars

import "github.com/fivemoreminix/qview/pkg/lexer"

var zigKeywords = []string{
	"inline", "while", "for", "extern", "packed", "export", "pub", "noalias",
	"comptime", "volatile", "align", "linksection", "threadlocal", "allowzero",
	"noinline", "callconv", "struct", "enum", "const", "union", "opaque", "asm",
	"unreachable", "break", "return", "continue", "defer", "errdefer", "await",
	"resume", "suspend", "async", "nosuspend", "try", "catch", "if", "else",
	"switch", "orelse", "usingnamespace", "test", "and", "or", "bool", "void",
	"type", "blk", "var",
}

var zigBuiltins = []string{"@This", "@import", "@as"}

var zigTypes = []string{
	"Allocator", "Token", "anytype", "noreturn", "error", "anyerror",
	"anyframe", "anyopaque",
	"i8", "i16", "i32", "i64", "i128",
	"u1", "u2", "u3", "u4", "u5", "u6", "u7", "u8", "u16", "u32", "u64", "u128",
	"f16", "f32", "f64", "usize", "uword", "isize",
	"c_short", "c_int", "c_long", "c_longlong", "c_ushort", "c_uint",
	"c_ulong", "c_ulonglong", "c_float", "c_double", "c_void",
}

var zigLiterals = []string{"true", "false", "null", "undefined"}

var zigOperators = []string{"+", "-", "*", "/", "%", "==", "!=", "<", ">", "<=", ">="}

var zigBuiltinCall = lexer.Rule{Class: lexer.BuiltIn, Pattern: `@[a-zA-Z_]\w*`}

// Zig highlights Zig source. Block comments do not exist in Zig, so a file
// starting with one is rejected.
var Zig = Register(&lexer.Grammar{
	Name:      "zig",
	Aliases:   []string{"ziglang"},
	Filetypes: []string{"*.zig", "*.zon"},
	Categories: []lexer.Category{
		{Class: lexer.Keyword, Words: zigKeywords},
		{Class: lexer.BuiltIn, Words: zigBuiltins},
		{Class: lexer.Type, Words: zigTypes},
		{Class: lexer.Literal, Words: zigLiterals},
		{Class: lexer.Operator, Words: zigOperators},
	},
	Illegal: `/\*`,
	Rules: []lexer.Rule{
		WhitespaceRule,

		{Class: lexer.Number, Pattern: `\b0b[01_]+`},
		{Class: lexer.Number, Pattern: `\b0x[0-9a-fA-F_]+`},
		{Class: lexer.Number, Pattern: `\b0o[0-7_]+`},
		{Class: lexer.Number, Pattern: `\b[0-9][0-9_]*\.[0-9_]+([eE][-+]?[0-9]+)?`},
		{Class: lexer.Number, Pattern: `\b[0-9]+\b`},

		{Class: lexer.BuiltIn, Pattern: `\bmem\.Copy\b`},
		{Class: "meta-event", Pattern: `\|[a-zA-Z_]+\|`},
		{Class: "comment-todo", Pattern: `//\s*TODO:.*$`},
		{Class: lexer.Comment, Pattern: `//[^\n]*`},
		{Class: "errorhandling", Pattern: `!(?=\w+)`},
		{Class: lexer.Operator, Pattern: `[-}{+%/*=<>!]=?|&&|\|\||<<=?|>>=?|\*\*|\+\+|--|\->|\.\.+`},
		{Class: "property", Pattern: `\.\w+`},
		QuoteString,
		{Class: "symbol", Pattern: `'[a-zA-Z_][a-zA-Z0-9_]*'`},
		AposString,
		CNumber,
		zigBuiltinCall,
		{Class: lexer.Literal, Pattern: `\\[xuU][a-fA-F0-9]+`},

		{
			Class:      "function",
			Keywords:   []string{"fn"},
			End:        `\{`,
			ExcludeEnd: true,
			Contains: []lexer.Rule{
				{Class: lexer.Title, Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
				{
					Class:         "params",
					Literal:       "(",
					End:           `\)`,
					EndsParent:    true,
					NoInherit:     true,
					UseCategories: true,
					Contains: []lexer.Rule{
						WhitespaceRule,
						LineComment("//"),
						{Class: lexer.Number, Pattern: `\b[0-9]+\b`},
						zigBuiltinCall,
						{Class: lexer.Operator, Pattern: `:|\(`},
						{Class: lexer.Punctuation, Pattern: `,`},
					},
				},
			},
		},

		{
			Class:         "function-call",
			Pattern:       `[a-zA-Z_][a-zA-Z0-9_]*\(`,
			End:           `\)`,
			ExcludeEnd:    true,
			UseCategories: true,
			Contains: []lexer.Rule{
				zigBuiltinCall,
				{Class: lexer.Number, Pattern: `\b[0-9]+\b`},
				QuoteString,
				{Class: lexer.Number, Pattern: `\b0x[0-9a-fA-F_]+`},
			},
		},

		{
			Class:           "multiline",
			Pattern:         `\\`,
			End:             `$`,
			NoInherit:       true,
			AbsorbUnmatched: true,
			Contains: []lexer.Rule{
				{Class: "multiline", Pattern: `\\`, End: `$`, AbsorbUnmatched: true},
			},
		},

		{Class: lexer.Operator, Pattern: `[&|^~?]=?`},
		{Class: lexer.Punctuation, Pattern: `[()\[\];,.:]`},
	},
})
