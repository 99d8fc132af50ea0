/*
Package irbuilder lowers a bast.Node bootstrap-parse-tree into
ir.GrammarInfo (spec.md §4.5). It dispatches purely on bast.Kind; it does
not parse grammar source text itself (the bootstrap parser that would
produce a bast.Node tree from text is explicitly out of scope, spec.md
§1) — callers assemble the tree by hand, from a future DSL parser, or
from tests, the same way original_source/ygg-core builds ir::Node
straight from a pest-generated Pair tree without re-deriving pest's own
grammar.
*/
package irbuilder

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"

	"github.com/project-yggdrasil/yggdrasil/bast"
	"github.com/project-yggdrasil/yggdrasil/diag"
	"github.com/project-yggdrasil/yggdrasil/ir"
)

// tracer traces with key 'yggdrasil.ir.builder'.
func tracer() tracing.Trace {
	return tracing.Select("yggdrasil.ir.builder")
}

// Build lowers doc (a KindDocument node) into a GrammarInfo. It collects
// every error it can rather than stopping at the first one, the way a
// single bad rule in a large grammar shouldn't hide errors in the rest
// of the file.
func Build(doc *bast.Node, source string) (*ir.GrammarInfo, []error) {
	if doc.Kind != bast.KindDocument {
		return nil, []error{diag.NewInvalidNode("document", source, doc.Span.Start().Offset(), doc.Span.End().Offset())}
	}
	var errs []error
	g := ir.NewGrammarInfo(ir.Identifier{Name: doc.Attr("name"), Span: doc.Span})
	g.URL = doc.Attr("url")
	g.RulePrefix = doc.Attr("rule_prefix")
	g.RuleSuffix = doc.Attr("rule_suffix")

	for _, child := range doc.Children {
		switch child.Kind {
		case bast.KindAnnotation:
			applyAnnotation(g, child)
		case bast.KindRuleDecl:
			rule, err := buildRule(child, source)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			g.AddRule(rule)
		default:
			errs = append(errs, diag.NewInvalidNode("rule_decl or annotation", source, child.Span.Start().Offset(), child.Span.End().Offset()))
		}
	}
	tracer().Debugf("built grammar %q with %d rules, %d errors", g.Name.Name, g.NumRules(), len(errs))
	return g, errs
}

func applyAnnotation(g *ir.GrammarInfo, node *bast.Node) {
	switch node.Attr("name") {
	case "ignore":
		for _, c := range node.Children {
			g.Ignores[c.Attr("name")] = true
		}
	case "entry":
		for _, c := range node.Children {
			g.Entries = append(g.Entries, c.Attr("name"))
		}
	case "extension":
		for _, c := range node.Children {
			g.Extensions = append(g.Extensions, c.Attr("name"))
		}
	case "import":
		from := node.Attr("from")
		for _, c := range node.Children {
			g.Imports[from] = append(g.Imports[from], c.Attr("name"))
		}
	case "token_set":
		name := node.Attr("set_name")
		for _, c := range node.Children {
			g.TokenSets[name] = append(g.TokenSets[name], c.Attr("name"))
		}
	}
}

func buildRule(node *bast.Node, source string) (*ir.GrammarRule, error) {
	rule := &ir.GrammarRule{
		Name:              ir.Identifier{Name: node.Attr("name"), Span: node.Span},
		ReturnedType:      node.Attr("return_type"),
		Doc:               node.Attr("doc"),
		Derive:            parseDerive(node.Attr("derive")),
		AutoInline:        node.Attr("auto_inline") == "true",
		AutoBoxed:         node.Attr("auto_boxed") == "true",
		AutoCapture:       node.Attr("auto_capture") == "true",
		AtomicRule:        node.Attr("atomic") == "true",
		EliminateUnmarked: node.Attr("eliminate_unmarked") == "true",
		EliminateUnnamed:  node.Attr("eliminate_unnamed") == "true",
		Span:              node.Span,
	}

	switch node.Attr("body_kind") {
	case "union":
		branches, err := buildUnionBranches(node, source)
		if err != nil {
			return nil, err
		}
		rule.Body = ir.UnionBody(branches)
	case "climb":
		ops, err := buildClimbOperators(node, source)
		if err != nil {
			return nil, err
		}
		rule.Body = ir.ClimbBody(node.Attr("operand"), ops)
	default: // "class", or unspecified
		if len(node.Children) != 1 {
			return nil, diag.NewInvalidNode("exactly one body expression", source, node.Span.Start().Offset(), node.Span.End().Offset())
		}
		term, err := buildExpr(node.Children[0], source)
		if err != nil {
			return nil, err
		}
		rule.Body = ir.ClassBody(term)
	}
	return rule, nil
}

func buildUnionBranches(node *bast.Node, source string) ([]ir.Branch, error) {
	branches := make([]ir.Branch, 0, len(node.Children))
	for _, c := range node.Children {
		if len(c.Children) != 1 {
			return nil, diag.NewInvalidNode("exactly one branch expression", source, c.Span.Start().Offset(), c.Span.End().Offset())
		}
		expr, err := buildExpr(c.Children[0], source)
		if err != nil {
			return nil, err
		}
		branches = append(branches, ir.Branch{Tag: c.Attr("tag"), Expr: expr})
	}
	return branches, nil
}

func buildClimbOperators(node *bast.Node, source string) ([]ir.ClimbOperator, error) {
	ops := make([]ir.ClimbOperator, 0, len(node.Children))
	for _, c := range node.Children {
		if c.Kind != bast.KindRuleRef {
			return nil, diag.NewInvalidNode("rule_ref climb operator", source, c.Span.Start().Offset(), c.Span.End().Offset())
		}
		ops = append(ops, ir.ClimbOperator{
			RuleRef:    c.Attr("name"),
			RightAssoc: c.Attr("right_assoc") == "true",
		})
	}
	return ops, nil
}

func parseDerive(spec string) ir.DeriveFlags {
	var flags ir.DeriveFlags
	names := map[string]ir.DeriveFlags{
		"eq":      ir.DeriveEq,
		"ord":     ir.DeriveOrd,
		"hash":    ir.DeriveHash,
		"debug":   ir.DeriveDebug,
		"display": ir.DeriveDisplay,
		"parser":  ir.DeriveParser,
	}
	start := 0
	for i := 0; i <= len(spec); i++ {
		if i == len(spec) || spec[i] == ',' {
			if i > start {
				if f, ok := names[spec[start:i]]; ok {
					flags |= f
				}
			}
			start = i + 1
		}
	}
	return flags
}

// buildExpr lowers a single expression node, dispatching on bast.Kind
// exactly onto ir's ExprKind union (spec.md §4.5), then re-applying a
// generic tag/remark wrapping that's independent of Kind.
func buildExpr(node *bast.Node, source string) (ir.Expression, error) {
	expr, err := buildExprKind(node, source)
	if err != nil {
		return ir.Expression{}, err
	}
	if tag := node.Attr("tag"); tag != "" {
		expr = expr.WithTag(tag)
	}
	if node.Attr("remark") == "true" {
		expr = expr.WithRemark()
	}
	return expr, nil
}

func buildExprKind(node *bast.Node, source string) (ir.Expression, error) {
	switch node.Kind {
	case bast.KindFunctionCall:
		args := make([]ir.Expression, 0, len(node.Children))
		for _, c := range node.Children {
			a, err := buildExpr(c, source)
			if err != nil {
				return ir.Expression{}, err
			}
			args = append(args, a)
		}
		return ir.Function(node.Attr("name"), args...), nil

	case bast.KindChoice:
		branches, err := buildExprList(node, source)
		if err != nil {
			return ir.Expression{}, err
		}
		return ir.Choice(branches...), nil

	case bast.KindConcat:
		terms, err := buildExprList(node, source)
		if err != nil {
			return ir.Expression{}, err
		}
		return ir.Concat(terms...), nil

	case bast.KindUnary:
		return buildUnaryChain(node, source)

	case bast.KindRuleRef:
		return ir.RuleRef(node.Attr("name"), node.Attr("boxed") == "true"), nil

	case bast.KindTextLiteral:
		return ir.DataExpr(ir.Data{Kind: ir.DataText, Text: node.Attr("text")}), nil

	case bast.KindRegexLiteral:
		raw := node.Attr("pattern")
		compiled, err := ir.CompileRegex(raw, node.Span)
		if err != nil {
			return ir.Expression{}, diag.NewCustomError(fmt.Sprintf("invalid regex literal %q: %v", raw, err), source, node.Span.Start().Offset(), node.Span.End().Offset())
		}
		return ir.DataExpr(ir.Data{Kind: ir.DataRegex, Text: raw, Regex: compiled}), nil

	case bast.KindIntLiteral:
		var n int64
		for _, r := range node.Attr("value") {
			if r < '0' || r > '9' {
				return ir.Expression{}, diag.NewInvalidNode("integer literal", source, node.Span.Start().Offset(), node.Span.End().Offset())
			}
			n = n*10 + int64(r-'0')
		}
		return ir.DataExpr(ir.Data{Kind: ir.DataInteger, Integer: n}), nil

	case bast.KindBoolLiteral:
		return ir.DataExpr(ir.Data{Kind: ir.DataBoolean, Boolean: node.Attr("value") == "true"}), nil

	case bast.KindCharLiteral:
		r := firstRune(node.Attr("value"))
		return ir.DataExpr(ir.Data{Kind: ir.DataCharacter, Char: r}), nil

	case bast.KindCharRange:
		return ir.DataExpr(ir.Data{
			Kind:    ir.DataCharacterRange,
			RangeLo: firstRune(node.Attr("lo")),
			RangeHi: firstRune(node.Attr("hi")),
		}), nil

	default:
		return ir.Expression{}, diag.NewInvalidNode("expression node", source, node.Span.Start().Offset(), node.Span.End().Offset())
	}
}

func buildExprList(node *bast.Node, source string) ([]ir.Expression, error) {
	out := make([]ir.Expression, 0, len(node.Children))
	for _, c := range node.Children {
		e, err := buildExpr(c, source)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// buildUnaryChain flattens a run of nested KindUnary nodes into a single
// ir.Unary call, reversing outer-to-inner bast nesting into the
// innermost-first Ops order ir.Unary expects.
func buildUnaryChain(node *bast.Node, source string) (ir.Expression, error) {
	var ops []ir.OpApplication
	cur := node
	for cur.Kind == bast.KindUnary {
		op, err := parseOpApplication(cur, source)
		if err != nil {
			return ir.Expression{}, err
		}
		ops = append(ops, op)
		if len(cur.Children) != 1 {
			return ir.Expression{}, diag.NewInvalidNode("exactly one unary operand", source, cur.Span.Start().Offset(), cur.Span.End().Offset())
		}
		cur = cur.Children[0]
	}
	for i, j := 0, len(ops)-1; i < j; i, j = i+1, j-1 {
		ops[i], ops[j] = ops[j], ops[i]
	}
	base, err := buildExpr(cur, source)
	if err != nil {
		return ir.Expression{}, err
	}
	return ir.Unary(base, ops...), nil
}

var opNames = map[string]ir.Operator{
	"negative":        ir.OpNegative,
	"positive":        ir.OpPositive,
	"optional":        ir.OpOptional,
	"repeats":         ir.OpRepeats,
	"repeat1":         ir.OpRepeat1,
	"boxing":          ir.OpBoxing,
	"repeats_between": ir.OpRepeatsBetween,
	"remark":          ir.OpRemark,
	"recursive":       ir.OpRecursive,
}

func parseOpApplication(node *bast.Node, source string) (ir.OpApplication, error) {
	op, ok := opNames[node.Attr("op")]
	if !ok {
		return ir.OpApplication{}, diag.NewInvalidNode("known unary operator", source, node.Span.Start().Offset(), node.Span.End().Offset())
	}
	app := ir.OpApplication{Op: op, Max: -1}
	if op == ir.OpRepeatsBetween {
		app.Min = atoiOrZero(node.Attr("min"))
		if max := node.Attr("max"); max != "" {
			app.Max = atoiOrZero(max)
		}
	}
	return app, nil
}

func atoiOrZero(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}
