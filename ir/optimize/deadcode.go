package optimize

import (
	"fmt"

	"github.com/emirpasic/gods/sets/hashset"

	"github.com/project-yggdrasil/yggdrasil/ir"
)

// DeadCodeEliminator computes reachability from the grammar's entry rules
// plus its ignore set and extensions, over RuleRef edges, and drops
// whatever isn't reached (spec.md §4.6, pass 4). Reachability uses a
// hashset.Set as the frontier/visited structure, mirroring gorgo's own use
// of set-based fixpoint computation for LALR item closures.
func DeadCodeEliminator(g *ir.GrammarInfo) (*ir.GrammarInfo, []FieldDescriptor, []Diagnostic) {
	roots := entryRules(g)

	reached := hashset.New()
	var frontier []string
	for _, name := range roots {
		if !reached.Contains(name) {
			reached.Add(name)
			frontier = append(frontier, name)
		}
	}
	for len(frontier) > 0 {
		name := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]
		rule, ok := g.Rule(name)
		if !ok {
			continue
		}
		for _, ref := range bodyRuleRefs(rule.Body) {
			if !reached.Contains(ref) {
				reached.Add(ref)
				frontier = append(frontier, ref)
			}
		}
	}

	var diags []Diagnostic
	for _, name := range g.RuleNames() {
		if reached.Contains(name) {
			continue
		}
		rule, _ := g.Rule(name)
		diags = append(diags, Diagnostic{
			Severity: SeverityWarning,
			Pass:     "DeadCodeEliminator",
			Rule:     name,
			Message:  fmt.Sprintf("rule %q is unreachable from any entry rule and was removed", name),
			Span:     rule.Span,
		})
		g.RemoveRule(name)
	}
	return g, nil, diags
}

// entryRules returns the grammar's designated entry points, falling back
// to every non-underscore-prefixed rule (the grammar DSL's convention for
// "public" rules) when none were explicitly designated, plus the ignore
// set and declared extensions, both of which a driver may invoke directly
// regardless of whether any public rule reaches them.
func entryRules(g *ir.GrammarInfo) []string {
	var roots []string
	if len(g.Entries) > 0 {
		roots = append(roots, g.Entries...)
	} else {
		for _, name := range g.RuleNames() {
			if len(name) == 0 || name[0] != '_' {
				roots = append(roots, name)
			}
		}
	}
	for name := range g.Ignores {
		roots = append(roots, name)
	}
	roots = append(roots, g.Extensions...)
	return roots
}

func bodyRuleRefs(b ir.GrammarBody) []string {
	var out []string
	switch b.Kind {
	case ir.BodyClass:
		out = append(out, exprRuleRefs(b.Term)...)
	case ir.BodyUnion:
		for _, br := range b.Branches {
			out = append(out, exprRuleRefs(br.Expr)...)
		}
	case ir.BodyClimb:
		out = append(out, b.Operand)
		for _, op := range b.Operators {
			out = append(out, op.RuleRef)
		}
	}
	return out
}

func exprRuleRefs(e ir.Expression) []string {
	switch e.K.Kind {
	case ir.KindRuleRef:
		return []string{e.K.RefPath}
	case ir.KindChoice:
		var out []string
		for _, b := range e.K.Branches {
			out = append(out, exprRuleRefs(b)...)
		}
		return out
	case ir.KindConcat:
		var out []string
		for _, t := range e.K.Terms {
			out = append(out, exprRuleRefs(t)...)
		}
		return out
	case ir.KindUnary:
		return exprRuleRefs(e.K.Base)
	case ir.KindFunction:
		var out []string
		for _, a := range e.K.FuncArgs {
			out = append(out, exprRuleRefs(a)...)
		}
		return out
	default:
		return nil
	}
}
