package lexer

import (
	"errors"
	"testing"
)

func TestModeStack(t *testing.T) {
	g := mustCompile(t, &Grammar{
		Name: "stack",
		Rules: []Rule{
			{Class: Number, Pattern: `[0-9]+`},
			{
				Class:   "outer",
				Literal: "(",
				End:     `\)`,
				Contains: []Rule{
					{Class: "inner", Literal: "[", End: `\]`, NoInherit: true},
				},
			},
		},
	})
	root := g.root
	outer := root.contains[1]
	inner := outer.contains[0]

	s := newModeStack(root, 2)
	if s.depth() != 0 || !s.atRoot() {
		t.Fatalf("Expected a fresh stack at the top-level mode, depth %d", s.depth())
	}
	if got := len(s.currentRules()); got != 2 {
		t.Errorf("Expected 2 top-level rules, got %d", got)
	}

	if _, err := s.push(outer, 1, 1); err != nil {
		t.Fatalf("Unexpected push error: %v", err)
	}
	// Own rule first, then the two inherited from the top-level mode.
	rules := s.currentRules()
	if len(rules) != 3 || rules[0] != inner || rules[1] != root.contains[0] {
		t.Errorf("Expected own rules followed by the parent's, got %d rules", len(rules))
	}
	if !s.top().categories {
		t.Errorf("Expected categories to be inherited from the top-level mode")
	}

	if _, err := s.push(inner, 2, 2); err != nil {
		t.Fatalf("Unexpected push error: %v", err)
	}
	if got := len(s.currentRules()); got != 0 {
		t.Errorf("Expected no rules in a mode that does not inherit, got %d", got)
	}
	if s.top().categories {
		t.Errorf("Expected no categories in a mode that does not inherit")
	}

	_, err := s.push(inner, 3, 3)
	var depthErr *ModeDepthExceededError
	if !errors.As(err, &depthErr) || depthErr.Class != "inner" {
		t.Errorf("Expected ModeDepthExceededError for \"inner\", got %v", err)
	}

	if err := s.pop(); err != nil {
		t.Errorf("Unexpected pop error: %v", err)
	}
	if err := s.pop(); err != nil {
		t.Errorf("Unexpected pop error: %v", err)
	}
	var invariant *EngineInvariantError
	if err := s.pop(); !errors.As(err, &invariant) {
		t.Errorf("Expected EngineInvariantError popping the top-level mode, got %v", err)
	}
	if s.depth() != 0 {
		t.Errorf("Expected the top-level mode to remain, depth %d", s.depth())
	}
}

func TestModeStackDefaultDepth(t *testing.T) {
	g := mustCompile(t, &Grammar{Name: "deep", Rules: []Rule{{Class: "p", Literal: "(", End: `\)`}}})
	s := newModeStack(g.root, 0)
	for i := 0; i < DefaultMaxDepth; i++ {
		if _, err := s.push(g.root.contains[0], i, i); err != nil {
			t.Fatalf("Unexpected error at depth %d: %v", i, err)
		}
	}
	if _, err := s.push(g.root.contains[0], 0, 0); err == nil {
		t.Errorf("Expected an error past DefaultMaxDepth")
	}
}
