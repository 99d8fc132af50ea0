// Package bast defines the bootstrap AST: a minimal, weakly-typed tree
// shape that a grammar-DSL source file parses into before ir/builder
// lowers it to ir.GrammarInfo (spec.md §4.5). Producing this tree from
// DSL source text (a recursive-descent "bootstrap parser") is explicitly
// out of scope (spec.md §1); bast only fixes the contract both a future
// parser and ir/builder agree on, the way gorgo's lr package fixes a
// Token/TokType contract between its scanner and its LR tables without
// either side needing to know the other's concrete type.
package bast

import yggdrasil "github.com/project-yggdrasil/yggdrasil"

// Kind names the syntactic role of a Node. The bootstrap grammar is
// small enough that a string tag is clearer than a large enum (spec.md
// §9: prefer a tagged variant over a deep trait hierarchy).
type Kind string

const (
	// KindDocument is the root: one grammar file.
	KindDocument Kind = "document"
	// KindRuleDecl is a single `Name = body` or `Name { branches }`
	// declaration, with a RuleDecl-specific Attrs shape (see below).
	KindRuleDecl Kind = "rule_decl"
	// KindAnnotation is an `@ignore`, `@entry`, `@extension`, or similar
	// grammar-level or rule-level annotation.
	KindAnnotation Kind = "annotation"

	// Expression-level kinds, mirroring ir.ExprKind (spec.md §4.5):
	KindFunctionCall Kind = "function_call"
	KindChoice       Kind = "choice"
	KindConcat       Kind = "concat"
	KindUnary        Kind = "unary"
	KindRuleRef      Kind = "rule_ref"
	KindTextLiteral  Kind = "text_literal"
	KindRegexLiteral Kind = "regex_literal"
	KindIntLiteral   Kind = "int_literal"
	KindBoolLiteral  Kind = "bool_literal"
	KindCharLiteral  Kind = "char_literal"
	KindCharRange    Kind = "char_range"
)

// Node is one bootstrap-AST node. Attrs carries kind-specific leaf data
// (a rule name, an operator symbol, a literal's text) as strings so the
// type stays uniform across the whole tree; ir/builder interprets Attrs
// according to Kind the same way a DOM consumer interprets element
// attributes according to tag name.
type Node struct {
	Kind     Kind
	Span     yggdrasil.Span
	Attrs    map[string]string
	Children []*Node
}

// Attr returns Attrs[key], or "" if absent or Attrs is nil.
func (n *Node) Attr(key string) string {
	if n == nil || n.Attrs == nil {
		return ""
	}
	return n.Attrs[key]
}

// WithAttr returns a shallow copy of n with key set to value. Nodes
// built by a hand-written test or an eventual parser are typically
// assembled via chained WithAttr/WithChildren calls rather than struct
// literals with a bare map, since zero-value nil maps panic on
// assignment.
func (n *Node) WithAttr(key, value string) *Node {
	attrs := make(map[string]string, len(n.Attrs)+1)
	for k, v := range n.Attrs {
		attrs[k] = v
	}
	attrs[key] = value
	return &Node{Kind: n.Kind, Span: n.Span, Attrs: attrs, Children: n.Children}
}

// WithChildren returns a shallow copy of n with Children replaced.
func (n *Node) WithChildren(children ...*Node) *Node {
	return &Node{Kind: n.Kind, Span: n.Span, Attrs: n.Attrs, Children: children}
}

// New builds a leaf Node of the given kind and span.
func New(kind Kind, span yggdrasil.Span) *Node {
	return &Node{Kind: kind, Span: span}
}
