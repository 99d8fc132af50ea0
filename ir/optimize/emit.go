package optimize

import (
	"fmt"

	"github.com/project-yggdrasil/yggdrasil/ir"
)

// builtinFunctions is the fixed registry EmitFunction consults (spec.md
// §4.6, pass 7). Each entry lowers a Function{name,args} node into a
// concrete rule body built from existing IR nodes:
//
//   - ANY/SOI/EOI become references to reserved "@"-prefixed pseudo-rule
//     names that the parser runtime recognises as primitive matchers
//     (spec.md §4.1's match_char_by/start_of_input/end_of_input) rather
//     than grammar-defined rules — this keeps the registry's output
//     representable purely in terms of the existing ExpressionKind union
//     instead of adding a new ad hoc node kind.
//   - the ASCII_* and NEWLINE helpers lower to Data/Choice nodes directly.
var builtinFunctions = map[string]func(args []ir.Expression) (ir.Expression, error){
	"ANY": func(args []ir.Expression) (ir.Expression, error) {
		if len(args) != 0 {
			return ir.Expression{}, fmt.Errorf("ANY takes no arguments, got %d", len(args))
		}
		return ir.RuleRef("@any", false), nil
	},
	"SOI": func(args []ir.Expression) (ir.Expression, error) {
		if len(args) != 0 {
			return ir.Expression{}, fmt.Errorf("SOI takes no arguments, got %d", len(args))
		}
		return ir.RuleRef("@soi", false), nil
	},
	"EOI": func(args []ir.Expression) (ir.Expression, error) {
		if len(args) != 0 {
			return ir.Expression{}, fmt.Errorf("EOI takes no arguments, got %d", len(args))
		}
		return ir.RuleRef("@eoi", false), nil
	},
	"ASCII_DIGIT": func(args []ir.Expression) (ir.Expression, error) {
		return ir.DataExpr(ir.Data{Kind: ir.DataCharacterRange, RangeLo: '0', RangeHi: '9'}), nil
	},
	"ASCII_ALPHA": func(args []ir.Expression) (ir.Expression, error) {
		return ir.Choice(
			ir.DataExpr(ir.Data{Kind: ir.DataCharacterRange, RangeLo: 'a', RangeHi: 'z'}),
			ir.DataExpr(ir.Data{Kind: ir.DataCharacterRange, RangeLo: 'A', RangeHi: 'Z'}),
		), nil
	},
	"ASCII_ALPHANUMERIC": func(args []ir.Expression) (ir.Expression, error) {
		return ir.Choice(
			ir.DataExpr(ir.Data{Kind: ir.DataCharacterRange, RangeLo: 'a', RangeHi: 'z'}),
			ir.DataExpr(ir.Data{Kind: ir.DataCharacterRange, RangeLo: 'A', RangeHi: 'Z'}),
			ir.DataExpr(ir.Data{Kind: ir.DataCharacterRange, RangeLo: '0', RangeHi: '9'}),
		), nil
	},
	"NEWLINE": func(args []ir.Expression) (ir.Expression, error) {
		return ir.Choice(
			ir.DataExpr(ir.Data{Kind: ir.DataText, Text: "\r\n"}),
			ir.DataExpr(ir.Data{Kind: ir.DataText, Text: "\n"}),
			ir.DataExpr(ir.Data{Kind: ir.DataText, Text: "\r"}),
		), nil
	},
}

// EmitFunction lowers remaining Function nodes via builtinFunctions
// (spec.md §4.6, pass 7). An unknown function name, or a builtin given the
// wrong number of arguments, is a fatal diagnostic (spec.md §7); the offending node is
// left as a placeholder empty Concat so the tree stays well-formed for
// any later pass or pretty-printer.
func EmitFunction(g *ir.GrammarInfo) (*ir.GrammarInfo, []FieldDescriptor, []Diagnostic) {
	var diags []Diagnostic
	for _, rule := range g.Rules() {
		rule.Body = emitBody(rule.Body, rule.Name.Name, &diags)
	}
	return g, nil, diags
}

func emitBody(b ir.GrammarBody, owner string, diags *[]Diagnostic) ir.GrammarBody {
	switch b.Kind {
	case ir.BodyClass:
		b.Term = emitExpr(b.Term, owner, diags)
	case ir.BodyUnion:
		for i := range b.Branches {
			b.Branches[i].Expr = emitExpr(b.Branches[i].Expr, owner, diags)
		}
	}
	return b
}

func emitExpr(e ir.Expression, owner string, diags *[]Diagnostic) ir.Expression {
	switch e.K.Kind {
	case ir.KindFunction:
		for i := range e.K.FuncArgs {
			e.K.FuncArgs[i] = emitExpr(e.K.FuncArgs[i], owner, diags)
		}
		fn, ok := builtinFunctions[e.K.FuncName]
		if !ok {
			*diags = append(*diags, Diagnostic{
				Severity: SeverityError,
				Pass:     "EmitFunction",
				Rule:     owner,
				Message:  fmt.Sprintf("unknown built-in function %q", e.K.FuncName),
			})
			return ir.Concat() // placeholder, keeps the tree well-formed
		}
		lowered, err := fn(e.K.FuncArgs)
		if err != nil {
			*diags = append(*diags, Diagnostic{
				Severity: SeverityError,
				Pass:     "EmitFunction",
				Rule:     owner,
				Message:  err.Error(),
			})
			return ir.Concat()
		}
		return preserveTag(e, lowered)

	case ir.KindChoice:
		for i := range e.K.Branches {
			e.K.Branches[i] = emitExpr(e.K.Branches[i], owner, diags)
		}
		return e

	case ir.KindConcat:
		for i := range e.K.Terms {
			e.K.Terms[i] = emitExpr(e.K.Terms[i], owner, diags)
		}
		return e

	case ir.KindUnary:
		e.K.Base = emitExpr(e.K.Base, owner, diags)
		return e

	default:
		return e
	}
}
