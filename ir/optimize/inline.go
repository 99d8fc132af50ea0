package optimize

import (
	"fmt"

	"github.com/project-yggdrasil/yggdrasil/ir"
)

// InlineRules substitutes the body of any rule flagged auto_inline (or
// name-prefixed "_") into each of its call sites (spec.md §4.6, pass 2).
// If substituting at some call site would introduce recursion through the
// rule being inlined, that occurrence is left out-of-line and a
// diagnostic is recorded instead of failing the pass.
func InlineRules(g *ir.GrammarInfo) (*ir.GrammarInfo, []FieldDescriptor, []Diagnostic) {
	candidates := make(map[string]*ir.GrammarRule)
	for _, r := range g.Rules() {
		if r.IsInlineCandidate() {
			candidates[r.Name.Name] = r
		}
	}
	var diags []Diagnostic
	for _, r := range g.Rules() {
		path := map[string]bool{r.Name.Name: true}
		r.Body = inlineBody(r.Body, candidates, path, r.Name.Name, &diags)
	}
	return g, nil, diags
}

func inlineBody(b ir.GrammarBody, candidates map[string]*ir.GrammarRule, path map[string]bool, owner string, diags *[]Diagnostic) ir.GrammarBody {
	switch b.Kind {
	case ir.BodyClass:
		b.Term = inlineExpr(b.Term, candidates, path, owner, diags)
	case ir.BodyUnion:
		for i := range b.Branches {
			b.Branches[i].Expr = inlineExpr(b.Branches[i].Expr, candidates, path, owner, diags)
		}
	}
	return b
}

func inlineExpr(e ir.Expression, candidates map[string]*ir.GrammarRule, path map[string]bool, owner string, diags *[]Diagnostic) ir.Expression {
	switch e.K.Kind {
	case ir.KindRuleRef:
		target, ok := candidates[e.K.RefPath]
		if !ok {
			return e
		}
		if path[e.K.RefPath] {
			*diags = append(*diags, Diagnostic{
				Severity: SeverityWarning,
				Pass:     "InlineRules",
				Rule:     owner,
				Message:  fmt.Sprintf("not inlining %q: substitution would introduce recursion", e.K.RefPath),
			})
			return e
		}
		if target.Body.Kind != ir.BodyClass {
			return e // Union/Climb bodies have no single Expression to splice in
		}
		path[e.K.RefPath] = true
		substituted := inlineExpr(target.Body.Term, candidates, path, owner, diags)
		delete(path, e.K.RefPath)
		return preserveTag(e, substituted)

	case ir.KindChoice:
		for i := range e.K.Branches {
			e.K.Branches[i] = inlineExpr(e.K.Branches[i], candidates, path, owner, diags)
		}
		return e

	case ir.KindConcat:
		for i := range e.K.Terms {
			e.K.Terms[i] = inlineExpr(e.K.Terms[i], candidates, path, owner, diags)
		}
		return e

	case ir.KindUnary:
		e.K.Base = inlineExpr(e.K.Base, candidates, path, owner, diags)
		return e

	case ir.KindFunction:
		for i := range e.K.FuncArgs {
			e.K.FuncArgs[i] = inlineExpr(e.K.FuncArgs[i], candidates, path, owner, diags)
		}
		return e

	default:
		return e
	}
}
