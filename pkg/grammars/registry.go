// Package grammars holds the Grammar Descriptors known to qview and compiles
// them on first use.
package grammars

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fivemoreminix/qview/pkg/lexer"
)

// ErrNotFound is returned when no registered grammar matches a lookup.
var ErrNotFound = errors.New("grammar not found")

type entry struct {
	grammar *lexer.Grammar

	once     sync.Once
	compiled *lexer.CompiledGrammar
	err      error
}

func (e *entry) compile() (*lexer.CompiledGrammar, error) {
	e.once.Do(func() {
		e.compiled, e.err = lexer.Compile(e.grammar)
	})
	return e.compiled, e.err
}

var (
	mu      sync.Mutex
	entries []*entry // In registration order
)

// Register adds g to the registry and returns it, so grammars can be
// declared as package variables. A grammar registered under a name that is
// already taken replaces the old one.
func Register(g *lexer.Grammar) *lexer.Grammar {
	mu.Lock()
	defer mu.Unlock()

	for i, e := range entries {
		if strings.EqualFold(e.grammar.Name, g.Name) {
			entries[i] = &entry{grammar: g}
			return g
		}
	}
	entries = append(entries, &entry{grammar: g})
	return g
}

// Names returns the names of all registered grammars, sorted.
func Names() []string {
	mu.Lock()
	defer mu.Unlock()

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.grammar.Name
	}
	sort.Strings(names)
	return names
}

// Get returns the compiled grammar with the given name or alias. Names are
// not case-sensitive.
func Get(name string) (*lexer.CompiledGrammar, error) {
	e := find(func(g *lexer.Grammar) bool {
		if strings.EqualFold(g.Name, name) {
			return true
		}
		for _, alias := range g.Aliases {
			if strings.EqualFold(alias, name) {
				return true
			}
		}
		return false
	})
	if e == nil {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return e.compile()
}

// Match returns the compiled grammar whose Filetypes match the base name of
// path. The first registered grammar that matches wins.
func Match(path string) (*lexer.CompiledGrammar, error) {
	base := filepath.Base(path)
	e := find(func(g *lexer.Grammar) bool {
		for _, glob := range g.Filetypes {
			if ok, _ := filepath.Match(glob, base); ok {
				return true
			}
		}
		return false
	})
	if e == nil {
		return nil, fmt.Errorf("%w for file %q", ErrNotFound, base)
	}
	return e.compile()
}

func find(pred func(*lexer.Grammar) bool) *entry {
	mu.Lock()
	defer mu.Unlock()

	for _, e := range entries {
		if pred(e.grammar) {
			return e
		}
	}
	return nil
}
