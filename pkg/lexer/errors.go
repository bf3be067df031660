package lexer

import "fmt"

// InvalidGrammarError reports an ambiguous or malformed Grammar. It is only
// returned by Compile, before any input is scanned.
type InvalidGrammarError struct {
	Grammar string
	Path    string // Location of the offending rule, like "rules[3].contains[0]"
	Reason  string
	Err     error // Underlying pattern error, if any
}

func (e *InvalidGrammarError) Error() string {
	msg := fmt.Sprintf("invalid grammar %q", e.Grammar)
	if e.Path != "" {
		msg += " at " + e.Path
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *InvalidGrammarError) Unwrap() error {
	return e.Err
}

// ModeDepthExceededError is returned when entering a mode would nest deeper
// than the Scanner's MaxDepth. This usually means a grammar whose modes
// re-enter themselves through inherited rules.
type ModeDepthExceededError struct {
	Max    int
	Offset int   // Byte offset of the begin match that tried to enter the mode
	Class  Class // Class of the rule that opened the mode
}

func (e *ModeDepthExceededError) Error() string {
	return fmt.Sprintf("mode %q at offset %d exceeds maximum depth %d", e.Class, e.Offset, e.Max)
}

// IllegalModeEntryError is returned when the content at the entry point of a
// mode matches the mode's Illegal pattern.
type IllegalModeEntryError struct {
	Class  Class // Empty for the top-level mode
	Offset int
	Text   string
}

func (e *IllegalModeEntryError) Error() string {
	if e.Class == "" {
		return fmt.Sprintf("illegal %q at offset %d", e.Text, e.Offset)
	}
	return fmt.Sprintf("illegal %q entering mode %q at offset %d", e.Text, e.Class, e.Offset)
}

// EngineInvariantError means the engine reached a state it must never be in,
// such as popping the top-level mode.
type EngineInvariantError struct {
	Reason string
}

func (e *EngineInvariantError) Error() string {
	return "lexer invariant violated: " + e.Reason
}
