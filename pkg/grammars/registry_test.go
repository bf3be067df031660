package grammars

import (
	"errors"
	"testing"

	"github.com/fivemoreminix/qview/pkg/lexer"
)

func TestLookup(t *testing.T) {
	byName, err := Get("ZIG")
	if err != nil {
		t.Fatalf("Expected to find zig by name: %v", err)
	}
	byAlias, err := Get("ziglang")
	if err != nil {
		t.Fatalf("Expected to find zig by alias: %v", err)
	}
	byFile, err := Match("src/main.zig")
	if err != nil {
		t.Fatalf("Expected to find zig by file name: %v", err)
	}
	if byName != byAlias || byName != byFile {
		t.Errorf("Expected every lookup to return the same compiled grammar")
	}

	if _, err := Get("cobol"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if _, err := Match("main.go"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestRegister(t *testing.T) {
	Register(&lexer.Grammar{Name: "test-ini", Filetypes: []string{"*.ini"}})
	replaced := Register(&lexer.Grammar{
		Name:      "Test-INI",
		Filetypes: []string{"*.ini"},
		Rules:     []lexer.Rule{{Class: lexer.Comment, Pattern: `;.*`}},
	})

	var count int
	for _, name := range Names() {
		if name == "test-ini" || name == "Test-INI" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("Expected one test-ini grammar after replacing it, found %d", count)
	}

	g, err := Match("settings.ini")
	if err != nil {
		t.Fatal(err)
	}
	if g.Name != replaced.Name {
		t.Errorf("Expected the replacement grammar, got %q", g.Name)
	}
}

func TestInvalidRegisteredGrammar(t *testing.T) {
	Register(&lexer.Grammar{Name: "test-broken", Rules: []lexer.Rule{{Class: lexer.Number}}})

	_, err := Get("test-broken")
	var invalid *lexer.InvalidGrammarError
	if !errors.As(err, &invalid) {
		t.Errorf("Expected InvalidGrammarError, got %v", err)
	}
}
