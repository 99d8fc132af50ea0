package optimize

import "github.com/project-yggdrasil/yggdrasil/ir"

// RemarkTags strips tags according to a rule's elimination flags
// (spec.md §4.6, pass 6): eliminate_unmarked strips the tag from any
// sub-expression not explicitly remarked with `^`; eliminate_unnamed
// additionally strips tags from anonymous Data literals (string, regex,
// integer) regardless of remark.
func RemarkTags(g *ir.GrammarInfo) (*ir.GrammarInfo, []FieldDescriptor, []Diagnostic) {
	for _, rule := range g.Rules() {
		if !rule.EliminateUnmarked && !rule.EliminateUnnamed {
			continue
		}
		rule.Body = remarkBody(rule.Body, rule.EliminateUnmarked, rule.EliminateUnnamed)
	}
	return g, nil, nil
}

func remarkBody(b ir.GrammarBody, unmarked, unnamed bool) ir.GrammarBody {
	switch b.Kind {
	case ir.BodyClass:
		b.Term = remarkExpr(b.Term, unmarked, unnamed)
	case ir.BodyUnion:
		for i := range b.Branches {
			b.Branches[i].Expr = remarkExpr(b.Branches[i].Expr, unmarked, unnamed)
		}
	}
	return b
}

func remarkExpr(e ir.Expression, unmarked, unnamed bool) ir.Expression {
	if unmarked && !e.Remark {
		e.Tag = ""
	}
	if unnamed && isAnonymousData(e) {
		e.Tag = ""
	}
	switch e.K.Kind {
	case ir.KindChoice:
		for i := range e.K.Branches {
			e.K.Branches[i] = remarkExpr(e.K.Branches[i], unmarked, unnamed)
		}
	case ir.KindConcat:
		for i := range e.K.Terms {
			e.K.Terms[i] = remarkExpr(e.K.Terms[i], unmarked, unnamed)
		}
	case ir.KindUnary:
		e.K.Base = remarkExpr(e.K.Base, unmarked, unnamed)
	case ir.KindFunction:
		for i := range e.K.FuncArgs {
			e.K.FuncArgs[i] = remarkExpr(e.K.FuncArgs[i], unmarked, unnamed)
		}
	}
	return e
}

func isAnonymousData(e ir.Expression) bool {
	if e.K.Kind != ir.KindData {
		return false
	}
	switch e.K.DataVal.Kind {
	case ir.DataText, ir.DataRegex, ir.DataInteger:
		return true
	default:
		return false
	}
}
