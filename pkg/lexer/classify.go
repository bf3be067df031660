package lexer

// Classify returns the classification of lexeme. Word categories are looked
// up by exact match, the hinted category first and then every category in
// declaration order, so "in" is never taken for "inline". A lexeme found in
// no category is an Identifier if it looks like a name; otherwise the hint
// is returned, or Unknown if there is none.
func (g *CompiledGrammar) Classify(lexeme string, hint Class) Class {
	if hint != "" {
		if cat := g.category(hint); cat != nil && cat.has(lexeme) {
			return hint
		}
	}
	for _, cat := range g.categories {
		if cat.has(lexeme) {
			return cat.class
		}
	}
	if g.isName(lexeme) {
		return Identifier
	}
	if hint != "" {
		return hint
	}
	return Unknown
}

// Categories returns the word categories in priority order.
func (g *CompiledGrammar) Categories() []Class {
	classes := make([]Class, len(g.categories))
	for i, cat := range g.categories {
		classes[i] = cat.class
	}
	return classes
}

func (g *CompiledGrammar) category(class Class) *category {
	for _, cat := range g.categories {
		if cat.class == class {
			return cat
		}
	}
	return nil
}

func (g *CompiledGrammar) isName(lexeme string) bool {
	ok, err := g.nameExact.MatchString(lexeme)
	return err == nil && ok
}

// rank is the priority of class among the word categories, or
// len(g.categories) if no category has that class.
func (g *CompiledGrammar) rank(class Class) int {
	for i, cat := range g.categories {
		if cat.class == class {
			return i
		}
	}
	return len(g.categories)
}
