package ir

import (
	"github.com/project-yggdrasil/yggdrasil"
	"github.com/project-yggdrasil/yggdrasil/regex"
)

// YggdrasilRegex is a regex literal as it appears in the IR (spec.md §3):
// the raw source and its grammar-source span, plus the compiled DFA
// wrapped by the regex package. Equality and hashing are delegated to the
// compiled tables, never to Raw — spec.md §3 invariant (v): "Two
// YggdrasilRegex values are equal iff their compiled tables are equal."
type YggdrasilRegex struct {
	Raw      string
	Span     yggdrasil.Span
	Compiled *regex.Regex
}

// CompileRegex anchors and compiles raw into a YggdrasilRegex (spec.md
// §4.4, step 1: "rewrite the raw source to an anchored form").
func CompileRegex(raw string, span yggdrasil.Span) (*YggdrasilRegex, error) {
	compiled, err := regex.Compile(raw)
	if err != nil {
		return nil, err
	}
	return &YggdrasilRegex{Raw: raw, Span: span, Compiled: compiled}, nil
}

// Equal implements spec.md §3 invariant (v): structural equality over
// compiled bytes, ignoring Raw and Span.
func (r *YggdrasilRegex) Equal(other *YggdrasilRegex) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.Compiled.Equal(other.Compiled)
}

// ConstantName returns the REGEX_<HEX> identifier an emitter binds this
// regex's tables to (spec.md §6).
func (r *YggdrasilRegex) ConstantName() (string, error) {
	return r.Compiled.ConstantName()
}
