package ir

import "github.com/project-yggdrasil/yggdrasil"

// DeriveFlags mirrors the Rust bootstrap grammar's #derive(...) annotation
// (spec.md §6) as a bitset. No Go emitter generates Rust #[derive(...)]
// attributes itself, but a Rust-targeting emitter (external, spec.md §1)
// reads these straight off the IR, and a Go-targeting emitter maps them
// onto whether to generate String()/Equal()/ordering methods.
type DeriveFlags uint8

const (
	DeriveEq DeriveFlags = 1 << iota
	DeriveOrd
	DeriveHash
	DeriveDebug
	DeriveDisplay
	DeriveParser
)

// Has reports whether all bits in want are set.
func (f DeriveFlags) Has(want DeriveFlags) bool { return f&want == want }

// BodyKind discriminates the three shapes a rule's body can take
// (spec.md §3).
type BodyKind int

const (
	BodyClass BodyKind = iota
	BodyUnion
	BodyClimb
)

func (k BodyKind) String() string {
	switch k {
	case BodyClass:
		return "Class"
	case BodyUnion:
		return "Union"
	case BodyClimb:
		return "Climb"
	default:
		return "UnknownBody"
	}
}

// Branch is one alternative of a Union body: an optional tag plus the
// expression it guards (spec.md §4.5, union_stmt).
type Branch struct {
	Tag  string // empty if the branch has no explicit #Tag
	Expr Expression
}

// ClimbOperator is one precedence level of a Climb (operator-precedence)
// body, carrying the operator rule reference and its associativity.
// Climb bodies are not produced by the informal EBNF in spec.md §6, but
// the data model in §3 names them alongside Class/Union; they fall out of
// naturally chaining Unary/Choice the same way a hand-written
// precedence-climbing parser would, and exist so an IR builder fed a
// richer bootstrap grammar has somewhere to put precedence levels without
// a data-model change.
type ClimbOperator struct {
	RuleRef    string
	RightAssoc bool
}

// GrammarBody is the tagged union of a rule's body shape.
type GrammarBody struct {
	Kind BodyKind

	// BodyClass
	Term Expression

	// BodyUnion
	Branches []Branch

	// BodyClimb
	Operand   string
	Operators []ClimbOperator
}

// ClassBody builds a Class-bodied GrammarBody.
func ClassBody(term Expression) GrammarBody {
	return GrammarBody{Kind: BodyClass, Term: term}
}

// UnionBody builds a Union-bodied GrammarBody.
func UnionBody(branches []Branch) GrammarBody {
	return GrammarBody{Kind: BodyUnion, Branches: branches}
}

// ClimbBody builds a Climb-bodied GrammarBody.
func ClimbBody(operand string, ops []ClimbOperator) GrammarBody {
	return GrammarBody{Kind: BodyClimb, Operand: operand, Operators: ops}
}

// GrammarRule is one named production (spec.md §3).
type GrammarRule struct {
	Name Identifier

	// ReturnedType is the semantic type an emitter should attach to this
	// rule's generated AST node, left empty when the grammar author didn't
	// specify one.
	ReturnedType string
	Doc          string
	Derive       DeriveFlags

	AutoInline        bool
	AutoBoxed         bool
	AutoCapture       bool
	AtomicRule        bool
	EliminateUnmarked bool
	EliminateUnnamed  bool

	Body GrammarBody

	Span yggdrasil.Span
}

// IsInlineCandidate reports whether the rule is eligible for InlineRules:
// either explicitly flagged #inline, or named with the conventional
// leading-underscore "silent rule" prefix (spec.md §4.6).
func (r *GrammarRule) IsInlineCandidate() bool {
	if r.AutoInline {
		return true
	}
	return len(r.Name.Name) > 0 && r.Name.Name[0] == '_'
}
