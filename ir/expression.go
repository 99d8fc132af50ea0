package ir

// ExprKind discriminates the shape of an ExpressionKind (spec.md §3).
type ExprKind int

const (
	KindFunction ExprKind = iota
	KindChoice
	KindConcat
	KindUnary
	KindRuleRef
	KindData
)

func (k ExprKind) String() string {
	switch k {
	case KindFunction:
		return "Function"
	case KindChoice:
		return "Choice"
	case KindConcat:
		return "Concat"
	case KindUnary:
		return "Unary"
	case KindRuleRef:
		return "RuleRef"
	case KindData:
		return "Data"
	default:
		return "UnknownKind"
	}
}

// Operator is one of the prefix/suffix unary operators applicable to a
// term (spec.md §3, §4.5).
type Operator int

const (
	OpNegative Operator = iota // ! — negative lookahead
	OpPositive                 // & — positive lookahead
	OpOptional                 // ? — zero or one
	OpRepeats                  // * — zero or more
	OpRepeat1                  // + — one or more
	OpBoxing                   // marks the field as heap-boxed for an emitter; no parsing effect
	OpRepeatsBetween           // {m,n}
	OpRemark                   // ^ — force inclusion under eliminate_unmarked
	OpRecursive                // marks a RuleRef that closes a left-recursive cycle, for diagnostics
)

func (o Operator) String() string {
	switch o {
	case OpNegative:
		return "!"
	case OpPositive:
		return "&"
	case OpOptional:
		return "?"
	case OpRepeats:
		return "*"
	case OpRepeat1:
		return "+"
	case OpBoxing:
		return "box"
	case OpRepeatsBetween:
		return "{m,n}"
	case OpRemark:
		return "^"
	case OpRecursive:
		return "recursive"
	default:
		return "?op"
	}
}

// OpApplication pairs an Operator with its {m,n} bounds, used only when
// Op == OpRepeatsBetween; Min/Max are ignored otherwise.
type OpApplication struct {
	Op  Operator
	Min int
	Max int // -1 means unbounded
}

// DataKind discriminates the literal data an Expression of kind KindData
// carries (spec.md §3).
type DataKind int

const (
	DataText DataKind = iota
	DataRegex
	DataInteger
	DataBoolean
	DataCharacter
	DataCharacterRange
)

func (k DataKind) String() string {
	switch k {
	case DataText:
		return "Text"
	case DataRegex:
		return "Regex"
	case DataInteger:
		return "Integer"
	case DataBoolean:
		return "Boolean"
	case DataCharacter:
		return "Character"
	case DataCharacterRange:
		return "CharacterRange"
	default:
		return "UnknownData"
	}
}

// Data is the payload of a KindData expression; exactly one of the fields
// below is meaningful, selected by Kind.
type Data struct {
	Kind DataKind

	Text    string // DataText: literal string with quotes already stripped
	Regex   *YggdrasilRegex
	Integer int64
	Boolean bool
	Char    rune
	RangeLo rune
	RangeHi rune
}

// ExpressionKind is the tagged union of an expression's node shape
// (spec.md §3). Only one field group is meaningful, selected by Kind —
// the Rust trait-object hierarchy collapsed into a single Go struct per
// spec.md §9 ("deep trait hierarchies... replace with tagged variants").
type ExpressionKind struct {
	Kind ExprKind

	// KindFunction
	FuncName string
	FuncArgs []Expression

	// KindChoice
	Branches []Expression

	// KindConcat
	Terms []Expression

	// KindUnary
	Base Expression
	Ops  []OpApplication

	// KindRuleRef
	RefPath string
	Boxed   bool

	// KindData
	DataVal Data
}

// Expression is a node of the grammar's term tree (spec.md §3): a kind
// plus an optional tag (empty string means untagged) and the remark flag
// that survives RemarkTags under eliminate_unmarked.
type Expression struct {
	K      ExpressionKind
	Tag    string
	Remark bool

	// SyntheticIgnore marks an expression synthesised by the optimiser's
	// InsertIgnore pass (an implicit `(IGNORE)*` splice) so a second run
	// of the pass recognises it and doesn't splice another copy next to
	// it — required for the pipeline's idempotence invariant (spec.md §8).
	SyntheticIgnore bool
}

// Function builds a KindFunction expression.
func Function(name string, args ...Expression) Expression {
	return Expression{K: ExpressionKind{Kind: KindFunction, FuncName: name, FuncArgs: args}}
}

// Choice builds a KindChoice expression.
func Choice(branches ...Expression) Expression {
	return Expression{K: ExpressionKind{Kind: KindChoice, Branches: branches}}
}

// Concat builds a KindConcat expression.
func Concat(terms ...Expression) Expression {
	return Expression{K: ExpressionKind{Kind: KindConcat, Terms: terms}}
}

// Unary builds a KindUnary expression wrapping base with ops, applied
// innermost-first (Ops[0] is closest to base).
func Unary(base Expression, ops ...OpApplication) Expression {
	return Expression{K: ExpressionKind{Kind: KindUnary, Base: base, Ops: ops}}
}

// RuleRef builds a KindRuleRef expression.
func RuleRef(path string, boxed bool) Expression {
	return Expression{K: ExpressionKind{Kind: KindRuleRef, RefPath: path, Boxed: boxed}}
}

// DataExpr builds a KindData expression.
func DataExpr(d Data) Expression {
	return Expression{K: ExpressionKind{Kind: KindData, DataVal: d}}
}

// WithTag returns a copy of e tagged with name.
func (e Expression) WithTag(name string) Expression {
	e.Tag = name
	return e
}

// WithRemark returns a copy of e with the remark flag set, forcing its
// survival under an enclosing rule's eliminate_unmarked (spec.md glossary,
// "Remark").
func (e Expression) WithRemark() Expression {
	e.Remark = true
	return e
}

// IsTagged reports whether e carries an explicit (non-empty) tag.
func (e Expression) IsTagged() bool { return e.Tag != "" }
