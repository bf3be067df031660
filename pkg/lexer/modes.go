package lexer

// DefaultMaxDepth is the nesting limit used when a Scanner's MaxDepth is zero.
const DefaultMaxDepth = 64

// mode is a rule's sub-grammar while it is being scanned.
type mode struct {
	rule   *rule
	parent *mode
	start  int // Rune offset just past the begin match

	// visible is the rule's own list followed, unless the rule says
	// otherwise, by everything visible in the parent.
	visible    []*rule
	categories bool
}

// modeStack tracks the active modes of one scan. The top-level mode is pushed
// on construction and is never popped.
type modeStack struct {
	modes []*mode
	max   int
}

func newModeStack(root *rule, max int) *modeStack {
	if max <= 0 {
		max = DefaultMaxDepth
	}
	m := &mode{rule: root, visible: root.contains, categories: root.useCategories}
	return &modeStack{modes: []*mode{m}, max: max}
}

// push enters the mode of r, whose begin match ended at rune offset at.
// offset is the byte offset of the begin match and is only used for errors.
func (s *modeStack) push(r *rule, at, offset int) (*mode, error) {
	if s.depth() >= s.max {
		return nil, &ModeDepthExceededError{Max: s.max, Offset: offset, Class: r.class}
	}

	parent := s.top()
	m := &mode{rule: r, parent: parent, start: at, categories: r.useCategories}
	if r.noInherit {
		m.visible = r.contains
	} else {
		m.visible = make([]*rule, 0, len(r.contains)+len(parent.visible))
		m.visible = append(m.visible, r.contains...)
		m.visible = append(m.visible, parent.visible...)
		m.categories = m.categories || parent.categories
	}

	s.modes = append(s.modes, m)
	return m, nil
}

// pop leaves the innermost mode and returns control to its parent.
func (s *modeStack) pop() error {
	if len(s.modes) <= 1 {
		return &EngineInvariantError{Reason: "pop of the top-level mode"}
	}
	s.modes[len(s.modes)-1] = nil
	s.modes = s.modes[:len(s.modes)-1]
	return nil
}

func (s *modeStack) top() *mode {
	return s.modes[len(s.modes)-1]
}

// currentRules returns the rules that may match in the innermost mode.
func (s *modeStack) currentRules() []*rule {
	return s.top().visible
}

// depth is the number of modes above the top-level mode.
func (s *modeStack) depth() int {
	return len(s.modes) - 1
}

// atRoot reports whether only the top-level mode is open.
func (s *modeStack) atRoot() bool {
	return len(s.modes) == 1
}
