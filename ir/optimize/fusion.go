package optimize

import "github.com/project-yggdrasil/yggdrasil/ir"

// FusionRules merges adjacent literal terms and redundant quantifier
// stacks produced by earlier passes or by the grammar author directly
// (spec.md §4.6, pass 3): adjacent untagged string literals inside a
// Concat fuse into one; touching/overlapping untagged character ranges
// inside a Choice fuse into one range; `x*?` / `x?*` collapse to `x*`.
func FusionRules(g *ir.GrammarInfo) (*ir.GrammarInfo, []FieldDescriptor, []Diagnostic) {
	for _, rule := range g.Rules() {
		rule.Body = fuseBody(rule.Body)
	}
	return g, nil, nil
}

func fuseBody(b ir.GrammarBody) ir.GrammarBody {
	switch b.Kind {
	case ir.BodyClass:
		b.Term = fuse(b.Term)
	case ir.BodyUnion:
		for i := range b.Branches {
			b.Branches[i].Expr = fuse(b.Branches[i].Expr)
		}
	}
	return b
}

func fuse(e ir.Expression) ir.Expression {
	switch e.K.Kind {
	case ir.KindConcat:
		for i := range e.K.Terms {
			e.K.Terms[i] = fuse(e.K.Terms[i])
		}
		e.K.Terms = fuseLiteralRuns(e.K.Terms)
		return e

	case ir.KindChoice:
		for i := range e.K.Branches {
			e.K.Branches[i] = fuse(e.K.Branches[i])
		}
		e.K.Branches = fuseCharacterRanges(e.K.Branches)
		return e

	case ir.KindUnary:
		e.K.Base = fuse(e.K.Base)
		e.K.Ops = fuseOps(e.K.Ops)
		return e

	case ir.KindFunction:
		for i := range e.K.FuncArgs {
			e.K.FuncArgs[i] = fuse(e.K.FuncArgs[i])
		}
		return e

	default:
		return e
	}
}

// fuseLiteralRuns merges runs of untagged, unremarked DataText terms.
func fuseLiteralRuns(terms []ir.Expression) []ir.Expression {
	out := make([]ir.Expression, 0, len(terms))
	for _, t := range terms {
		if n := len(out); n > 0 && isPlainText(out[n-1]) && isPlainText(t) {
			out[n-1].K.DataVal.Text += t.K.DataVal.Text
			continue
		}
		out = append(out, t)
	}
	return out
}

func isPlainText(e ir.Expression) bool {
	return e.K.Kind == ir.KindData && e.K.DataVal.Kind == ir.DataText && e.Tag == "" && !e.Remark
}

// fuseCharacterRanges merges touching or overlapping untagged character
// ranges appearing as Choice branches into a single range.
func fuseCharacterRanges(branches []ir.Expression) []ir.Expression {
	out := make([]ir.Expression, 0, len(branches))
	for _, b := range branches {
		if n := len(out); n > 0 && isPlainRange(out[n-1]) && isPlainRange(b) {
			prev := &out[n-1].K.DataVal
			next := b.K.DataVal
			if rangesTouch(prev.RangeLo, prev.RangeHi, next.RangeLo, next.RangeHi) {
				if next.RangeLo < prev.RangeLo {
					prev.RangeLo = next.RangeLo
				}
				if next.RangeHi > prev.RangeHi {
					prev.RangeHi = next.RangeHi
				}
				continue
			}
		}
		out = append(out, b)
	}
	return out
}

func isPlainRange(e ir.Expression) bool {
	return e.K.Kind == ir.KindData && e.K.DataVal.Kind == ir.DataCharacterRange && e.Tag == "" && !e.Remark
}

func rangesTouch(lo1, hi1, lo2, hi2 rune) bool {
	return lo1 <= hi2+1 && lo2 <= hi1+1
}

// fuseOps collapses a quantifier immediately following a complementary
// quantifier: Optional(Repeats x) and Repeats(Optional x) both reduce to
// Repeats x, since `*` already accepts zero occurrences.
func fuseOps(ops []ir.OpApplication) []ir.OpApplication {
	out := make([]ir.OpApplication, 0, len(ops))
	for _, op := range ops {
		if n := len(out); n > 0 {
			prev := out[n-1]
			if (prev.Op == ir.OpRepeats && op.Op == ir.OpOptional) ||
				(prev.Op == ir.OpOptional && op.Op == ir.OpRepeats) {
				out[n-1] = ir.OpApplication{Op: ir.OpRepeats}
				continue
			}
			if prev.Op == ir.OpOptional && op.Op == ir.OpOptional {
				continue
			}
		}
		out = append(out, op)
	}
	return out
}
