package optimize

import (
	"sort"

	"github.com/project-yggdrasil/yggdrasil/ir"
)

// InsertIgnore splices the grammar's ignore set as an implicit `(IGNORE)*`
// between consecutive terms of every Concat inside a non-atomic rule
// (spec.md §4.6, pass 5). Atomic rules are left untouched. The pass is
// idempotent: synthesised ignore terms are flagged so a second run
// recognises and skips them (spec.md §8).
func InsertIgnore(g *ir.GrammarInfo) (*ir.GrammarInfo, []FieldDescriptor, []Diagnostic) {
	if len(g.Ignores) == 0 {
		return g, nil, nil
	}
	names := make([]string, 0, len(g.Ignores))
	for name := range g.Ignores {
		names = append(names, name)
	}
	sort.Strings(names) // deterministic Choice branch order

	for _, rule := range g.Rules() {
		if rule.AtomicRule {
			continue
		}
		rule.Body = insertIgnoreBody(rule.Body, names)
	}
	return g, nil, nil
}

func ignoreExpr(names []string) ir.Expression {
	var base ir.Expression
	if len(names) == 1 {
		base = ir.RuleRef(names[0], false)
	} else {
		branches := make([]ir.Expression, len(names))
		for i, n := range names {
			branches[i] = ir.RuleRef(n, false)
		}
		base = ir.Choice(branches...)
	}
	e := ir.Unary(base, ir.OpApplication{Op: ir.OpRepeats})
	e.SyntheticIgnore = true
	return e
}

func insertIgnoreBody(b ir.GrammarBody, names []string) ir.GrammarBody {
	switch b.Kind {
	case ir.BodyClass:
		b.Term = insertIgnoreExpr(b.Term, names)
	case ir.BodyUnion:
		for i := range b.Branches {
			b.Branches[i].Expr = insertIgnoreExpr(b.Branches[i].Expr, names)
		}
	}
	return b
}

func insertIgnoreExpr(e ir.Expression, names []string) ir.Expression {
	switch e.K.Kind {
	case ir.KindConcat:
		var out []ir.Expression
		terms := e.K.Terms
		for i, t := range terms {
			out = append(out, insertIgnoreExpr(t, names))
			isLast := i == len(terms)-1
			nextAlreadyIgnore := !isLast && terms[i+1].SyntheticIgnore
			if t.SyntheticIgnore || isLast || nextAlreadyIgnore {
				continue
			}
			out = append(out, ignoreExpr(names))
		}
		e.K.Terms = out
		return e

	case ir.KindChoice:
		for i := range e.K.Branches {
			e.K.Branches[i] = insertIgnoreExpr(e.K.Branches[i], names)
		}
		return e

	case ir.KindUnary:
		e.K.Base = insertIgnoreExpr(e.K.Base, names)
		return e

	case ir.KindFunction:
		for i := range e.K.FuncArgs {
			e.K.FuncArgs[i] = insertIgnoreExpr(e.K.FuncArgs[i], names)
		}
		return e

	default:
		return e
	}
}
