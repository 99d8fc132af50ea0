package optimize

import (
	"fmt"

	"github.com/project-yggdrasil/yggdrasil/ir"
)

// RefineRules canonicalises every rule's expression tree (spec.md §4.6,
// pass 1): flattening nested Choice/Concat of the same kind, collapsing
// adjacent identical quantifier operators (*, ?, +), dropping empty branches, and
// hoisting single-element Choice/Concat down to their sole child. It also
// runs direct left-recursion detection (spec.md §8.5, §9) and reports a
// build error per offending rule without otherwise touching that rule's
// body — the grammar author, not this pass, must rewrite it.
func RefineRules(g *ir.GrammarInfo) (*ir.GrammarInfo, []FieldDescriptor, []Diagnostic) {
	for _, rule := range g.Rules() {
		rule.Body = refineBody(rule.Body)
	}
	diags := directLeftRecursion(g)
	return g, nil, diags
}

func refineBody(b ir.GrammarBody) ir.GrammarBody {
	switch b.Kind {
	case ir.BodyClass:
		b.Term = refine(b.Term)
	case ir.BodyUnion:
		for i := range b.Branches {
			b.Branches[i].Expr = refine(b.Branches[i].Expr)
		}
	}
	return b
}

// refine canonicalises a single expression, bottom-up.
func refine(e ir.Expression) ir.Expression {
	switch e.K.Kind {
	case ir.KindChoice:
		branches := refineList(e.K.Branches)
		branches = flattenChoice(branches)
		if len(branches) == 1 {
			return preserveTag(e, branches[0])
		}
		e.K.Branches = branches
		return e

	case ir.KindConcat:
		terms := refineList(e.K.Terms)
		terms = flattenConcat(terms)
		if len(terms) == 1 {
			return preserveTag(e, terms[0])
		}
		e.K.Terms = terms
		return e

	case ir.KindUnary:
		e.K.Base = refine(e.K.Base)
		e.K.Ops = collapseOps(e.K.Ops)
		return e

	case ir.KindFunction:
		e.K.FuncArgs = refineList(e.K.FuncArgs)
		return e

	default:
		return e
	}
}

func refineList(in []ir.Expression) []ir.Expression {
	out := make([]ir.Expression, 0, len(in))
	for _, e := range in {
		out = append(out, refine(e))
	}
	return dropEmpty(out)
}

// dropEmpty removes Concat/Choice terms that are themselves empty
// (zero-term Concat with no tag/remark of their own — a vacuous node a
// builder might have produced for a missing optional piece).
func dropEmpty(in []ir.Expression) []ir.Expression {
	out := in[:0]
	for _, e := range in {
		if e.K.Kind == ir.KindConcat && len(e.K.Terms) == 0 && e.Tag == "" && !e.Remark {
			continue
		}
		out = append(out, e)
	}
	return out
}

// preserveTag keeps the outer node's tag/remark when hoisting a
// single-element Choice/Concat down to its sole child, so that e.g. a
// tagged singleton choice `x:(a)` doesn't lose its tag.
func preserveTag(outer, inner ir.Expression) ir.Expression {
	if outer.Tag != "" && inner.Tag == "" {
		inner.Tag = outer.Tag
	}
	if outer.Remark {
		inner.Remark = true
	}
	return inner
}

func flattenChoice(branches []ir.Expression) []ir.Expression {
	var out []ir.Expression
	for _, b := range branches {
		if b.K.Kind == ir.KindChoice && b.Tag == "" && !b.Remark {
			out = append(out, b.K.Branches...)
			continue
		}
		out = append(out, b)
	}
	return out
}

func flattenConcat(terms []ir.Expression) []ir.Expression {
	var out []ir.Expression
	for _, t := range terms {
		if t.K.Kind == ir.KindConcat && t.Tag == "" && !t.Remark {
			out = append(out, t.K.Terms...)
			continue
		}
		out = append(out, t)
	}
	return out
}

// collapseOps merges runs of the same quantifier-like operator, e.g.
// `a**` -> `a*`, `a??` -> `a?` (spec.md §4.6, pass 1).
func collapseOps(ops []ir.OpApplication) []ir.OpApplication {
	out := make([]ir.OpApplication, 0, len(ops))
	for _, op := range ops {
		if n := len(out); n > 0 && out[n-1].Op == op.Op && isQuantifier(op.Op) {
			continue
		}
		out = append(out, op)
	}
	return out
}

func isQuantifier(op ir.Operator) bool {
	return op == ir.OpRepeats || op == ir.OpOptional || op == ir.OpRepeat1
}

// directLeftRecursion finds rules whose leftmost reachable symbol, through
// epsilon-only prefixes, is themselves (spec.md §9, "Left recursion").
func directLeftRecursion(g *ir.GrammarInfo) []Diagnostic {
	var diags []Diagnostic
	for _, rule := range g.Rules() {
		refs := bodyLeftmostRefs(rule.Body)
		visited := map[string]bool{rule.Name.Name: true}
		if reachesSelf(g, rule.Name.Name, refs, visited) {
			diags = append(diags, Diagnostic{
				Severity: SeverityError,
				Pass:     "RefineRules",
				Rule:     rule.Name.Name,
				Message:  fmt.Sprintf("rule %q is directly left-recursive", rule.Name.Name),
				Span:     rule.Span,
			})
		}
	}
	return diags
}

func bodyLeftmostRefs(b ir.GrammarBody) []string {
	switch b.Kind {
	case ir.BodyClass:
		return leftmostRuleRefs(b.Term)
	case ir.BodyUnion:
		var out []string
		for _, br := range b.Branches {
			out = append(out, leftmostRuleRefs(br.Expr)...)
		}
		return out
	default:
		return nil
	}
}

// leftmostRuleRefs returns the rule names reachable as e's leftmost
// symbol without first consuming input: the first term of a Concat, every
// branch of a Choice, and the base of a Unary (lookahead operators are
// zero-width; repeat/optional can match zero times, so conservatively
// both are treated as transparent for recursion detection).
func leftmostRuleRefs(e ir.Expression) []string {
	switch e.K.Kind {
	case ir.KindRuleRef:
		return []string{e.K.RefPath}
	case ir.KindConcat:
		if len(e.K.Terms) == 0 {
			return nil
		}
		return leftmostRuleRefs(e.K.Terms[0])
	case ir.KindChoice:
		var out []string
		for _, b := range e.K.Branches {
			out = append(out, leftmostRuleRefs(b)...)
		}
		return out
	case ir.KindUnary:
		return leftmostRuleRefs(e.K.Base)
	default:
		return nil
	}
}

func reachesSelf(g *ir.GrammarInfo, target string, refs []string, visited map[string]bool) bool {
	for _, r := range refs {
		if r == target {
			return true
		}
		if visited[r] {
			continue
		}
		visited[r] = true
		next, ok := g.Rule(r)
		if !ok {
			continue
		}
		if reachesSelf(g, target, bodyLeftmostRefs(next.Body), visited) {
			return true
		}
	}
	return false
}
