package ir

import (
	"fmt"

	"github.com/emirpasic/gods/lists/arraylist"

	"github.com/project-yggdrasil/yggdrasil"
)

// Identifier is a name together with the grammar-source span it was
// written at, so build diagnostics can point back at the author's text.
type Identifier struct {
	Name string
	Span yggdrasil.Span
}

// GrammarInfo is the root of the IR for a single grammar file (spec.md §3).
// Rules are kept in an ordered map: a plain Go map for O(1) lookup plus an
// arraylist.List recording declaration order, since emitters must walk
// rules "in declaration order" (spec.md §6, emitter contract) while passes
// still need name-keyed lookup for RuleRef resolution.
type GrammarInfo struct {
	Name       Identifier
	URL        string
	IsGrammar  bool
	Extensions []string

	Ignores   map[string]bool
	Imports   map[string][]string // url -> aliases
	TokenSets map[string][]string // group name -> member rule names

	// Entries lists the rules a driver designates as parse entry points.
	// When empty, DeadCodeEliminator falls back to treating every rule
	// whose name doesn't start with "_" as an entry (ir/optimize).
	Entries []string

	RulePrefix string
	RuleSuffix string

	rules     map[string]*GrammarRule
	ruleOrder *arraylist.List // of string
}

// NewGrammarInfo builds an empty GrammarInfo ready to receive rules in
// declaration order via AddRule.
func NewGrammarInfo(name Identifier) *GrammarInfo {
	return &GrammarInfo{
		Name:      name,
		Ignores:   make(map[string]bool),
		Imports:   make(map[string][]string),
		TokenSets: make(map[string][]string),
		rules:     make(map[string]*GrammarRule),
		ruleOrder: arraylist.New(),
	}
}

// AddRule inserts rule, keyed by rule.Name.Name, recording its declaration
// position. A later rule with the same name overwrites the map entry but
// keeps the original declaration position. AddRule reports nothing on
// redeclaration, and ir/builder does not check for it either.
func (g *GrammarInfo) AddRule(rule *GrammarRule) {
	name := rule.Name.Name
	if _, exists := g.rules[name]; !exists {
		g.ruleOrder.Add(name)
	}
	g.rules[name] = rule
	tracer().Debugf("added rule %s (%d total)", name, g.ruleOrder.Size())
}

// Rule looks up a rule by name.
func (g *GrammarInfo) Rule(name string) (*GrammarRule, bool) {
	r, ok := g.rules[name]
	return r, ok
}

// RemoveRule deletes a rule by name, used by DeadCodeEliminator.
func (g *GrammarInfo) RemoveRule(name string) {
	if _, ok := g.rules[name]; !ok {
		return
	}
	delete(g.rules, name)
	idx := g.ruleOrder.IndexOf(name)
	if idx >= 0 {
		g.ruleOrder.Remove(idx)
	}
}

// Rules returns the grammar's rules in declaration order.
func (g *GrammarInfo) Rules() []*GrammarRule {
	out := make([]*GrammarRule, 0, g.ruleOrder.Size())
	g.ruleOrder.Each(func(_ int, value interface{}) {
		name := value.(string)
		if r, ok := g.rules[name]; ok {
			out = append(out, r)
		}
	})
	return out
}

// RuleNames returns the declared rule names in declaration order.
func (g *GrammarInfo) RuleNames() []string {
	out := make([]string, 0, g.ruleOrder.Size())
	g.ruleOrder.Each(func(_ int, value interface{}) {
		out = append(out, value.(string))
	})
	return out
}

// NumRules reports how many rules the grammar currently holds.
func (g *GrammarInfo) NumRules() int { return g.ruleOrder.Size() }

// String renders a short summary, useful in test failure messages and
// trace output rather than as a stable serialisation format.
func (g *GrammarInfo) String() string {
	return fmt.Sprintf("grammar %s (%d rules)", g.Name.Name, g.NumRules())
}
