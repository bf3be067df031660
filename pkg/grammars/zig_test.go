package grammars

import (
	"errors"
	"strings"
	"testing"

	"github.com/fivemoreminix/qview/pkg/lexer"
)

const zigSample = `const std = @import("std");

// TODO: handle overflow
pub fn add(a: u8, b: u8) u8 {
    return a + b;
}

test "add" {
    const x = add(0x1F, 2);
    if (x == 33 and !ready) mem.Copy(0b1010, 0o17, 3.14);
    const s = \\raw text
    ;
    _ = |err| noinline;
    _ = .{ 'tag', 'c' };
}
`

func tokenize(t *testing.T, src string) []lexer.Token {
	t.Helper()
	g, err := Get("zig")
	if err != nil {
		t.Fatalf("Could not get the zig grammar: %v", err)
	}
	toks, err := lexer.All(g, src)
	if err != nil {
		t.Fatalf("Scanning failed: %v", err)
	}
	return toks
}

// classOf returns the class of the first token with the given text.
func classOf(toks []lexer.Token, text string) lexer.Class {
	for _, tok := range toks {
		if tok.Text == text {
			return tok.Class
		}
	}
	return ""
}

func TestZigSample(t *testing.T) {
	toks := tokenize(t, zigSample)

	tests := []struct {
		text string
		want lexer.Class
	}{
		{"const", lexer.Keyword},
		{"std", lexer.Identifier},
		{"=", lexer.Operator},
		{"@import", lexer.BuiltIn},
		{"// TODO: handle overflow", "comment-todo"},
		{"pub", lexer.Keyword},
		{"fn", lexer.Keyword},
		{"add", lexer.Title},
		{"u8", lexer.Type},
		{"return", lexer.Keyword},
		{"add(", "function-call"},
		{"0x1F", lexer.Number},
		{"and", lexer.Keyword},
		{"!", "errorhandling"},
		{"mem.Copy", lexer.BuiltIn},
		{"0b1010", lexer.Number},
		{"0o17", lexer.Number},
		{"3.14", lexer.Number},
		{`\`, "multiline"},
		{"|err|", "meta-event"},
		{"noinline", lexer.Keyword},
		{";", lexer.Punctuation},
		{"'tag'", "symbol"},
	}
	for _, test := range tests {
		if got := classOf(toks, test.text); got != test.want {
			t.Errorf("Expected %q to be %q, got %q", test.text, test.want, got)
		}
	}

	var rebuilt strings.Builder
	for _, tok := range toks {
		if tok.Class == lexer.Unknown {
			t.Errorf("Unexpected unknown token %q at %d", tok.Text, tok.Start)
		}
		rebuilt.WriteString(tok.Text)
	}
	if rebuilt.String() != zigSample {
		t.Errorf("Expected the tokens to cover the whole input")
	}
}

func TestZigFunctionHeader(t *testing.T) {
	toks := tokenize(t, "fn f(a: u8) void {")

	var got []string
	for _, tok := range toks {
		if tok.Class != lexer.Whitespace {
			got = append(got, string(tok.Class)+":"+tok.Text)
		}
	}
	want := []string{
		"keyword:fn", "title:f", "params:(", "identifier:a", "operator::",
		"type:u8", "params:)", "keyword:void", "operator:{",
	}
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Errorf("Expected\n\t%v\ngot\n\t%v", want, got)
	}
}

func TestZigParams(t *testing.T) {
	toks := tokenize(t, "fn f(a: u8, \x01b: u8) void {")

	var got []string
	for _, tok := range toks {
		if tok.Class != lexer.Whitespace {
			got = append(got, string(tok.Class)+":"+tok.Text)
		}
	}
	want := []string{
		"keyword:fn", "title:f", "params:(", "identifier:a", "operator::",
		"type:u8", "punctuation:,", "unknown:\x01", "identifier:b", "operator::",
		"type:u8", "params:)", "keyword:void", "operator:{",
	}
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Errorf("Expected\n\t%v\ngot\n\t%v", want, got)
	}
}

func TestZigStrings(t *testing.T) {
	toks := tokenize(t, `"a\n"`)
	want := []lexer.Token{
		{Class: lexer.String, Start: 0, End: 1, Text: `"`},
		{Class: lexer.String, Start: 1, End: 2, Text: `a`},
		{Class: Escape, Start: 2, End: 4, Text: `\n`},
		{Class: lexer.String, Start: 4, End: 5, Text: `"`},
	}
	if len(toks) != len(want) {
		t.Fatalf("Expected %d tokens, got %v", len(want), toks)
	}
	for i := range want {
		if toks[i] != want[i] {
			t.Errorf("Token %d: expected %v, got %v", i, want[i], toks[i])
		}
	}
}

func TestZigRejectsLeadingBlockComment(t *testing.T) {
	g, err := Get("zig")
	if err != nil {
		t.Fatal(err)
	}
	_, err = lexer.All(g, "/* not zig */")
	var illegal *lexer.IllegalModeEntryError
	if !errors.As(err, &illegal) {
		t.Errorf("Expected IllegalModeEntryError, got %v", err)
	}
}
