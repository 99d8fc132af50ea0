/*
Package scanner tokenizes grammar-DSL source text ahead of whatever
assembles bast.Node trees from it (spec.md §4.5, §6). Two
implementations are provided, mirroring gorgo's lr/scanner split: a thin
wrapper over the Go standard library's text/scanner for quick
experimentation, and a lexmachine-backed scanner in sub-package lexmach
for the DSL's real token grammar (string/regex literals, operators,
annotations).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package scanner

import (
	"fmt"
	"io"
	stdscanner "text/scanner"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'yggdrasil.bast.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("yggdrasil.bast.scanner")
}

// TokType categorizes a Token. Values below EOF mirror text/scanner's
// built-in categories; DSL-specific categories (operators, annotations)
// start at firstDSLToken so both scanners in this package share one
// numbering space.
type TokType int

const (
	EOF       TokType = TokType(stdscanner.EOF)
	Ident     TokType = TokType(stdscanner.Ident)
	Int       TokType = TokType(stdscanner.Int)
	Float     TokType = TokType(stdscanner.Float)
	Char      TokType = TokType(stdscanner.Char)
	String    TokType = TokType(stdscanner.String)
	RawString TokType = TokType(stdscanner.RawString)
	Comment   TokType = TokType(stdscanner.Comment)
)

// firstDSLToken is where lexmach's DSL-specific token categories begin,
// chosen comfortably below text/scanner's negative built-in constants.
const firstDSLToken = -100

// Token is the scanner's output unit.
type Token interface {
	TokType() TokType
	Lexeme() string
	Offset() int
}

// Tokenizer is implemented by every scanner in this package and its
// lexmach sub-package.
type Tokenizer interface {
	NextToken() Token
	SetErrorHandler(func(error))
}

// SimpleToken is a minimal Token implementation shared by both
// scanners.
type SimpleToken struct {
	Kind   TokType
	Text   string
	Value  interface{}
	AtByte int
}

func (t SimpleToken) TokType() TokType { return t.Kind }
func (t SimpleToken) Lexeme() string   { return t.Text }
func (t SimpleToken) Offset() int      { return t.AtByte }

// DefaultTokenizer wraps text/scanner.Scanner, useful for exercising
// ir/builder against hand-crafted fixtures without standing up the
// DSL's real lexmachine grammar.
type DefaultTokenizer struct {
	stdscanner.Scanner
	Error        func(error)
	unifyStrings bool
}

var _ Tokenizer = (*DefaultTokenizer)(nil)

func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// GoTokenizer creates a DefaultTokenizer reading from input.
func GoTokenizer(sourceID string, input io.Reader, opts ...Option) *DefaultTokenizer {
	t := &DefaultTokenizer{Error: logError}
	t.Init(input)
	t.Filename = sourceID
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SetErrorHandler implements Tokenizer.
func (t *DefaultTokenizer) SetErrorHandler(h func(error)) {
	if h == nil {
		t.Error = logError
		return
	}
	t.Error = h
}

// NextToken implements Tokenizer.
func (t *DefaultTokenizer) NextToken() Token {
	kind := t.Scan()
	if kind == stdscanner.EOF {
		tracer().Debugf("DefaultTokenizer reached end of input")
	}
	if t.unifyStrings && (kind == stdscanner.RawString || kind == stdscanner.Char) {
		kind = stdscanner.String
	}
	return SimpleToken{Kind: TokType(kind), Text: t.TokenText(), AtByte: t.Position.Offset}
}

// Option configures a DefaultTokenizer.
type Option func(t *DefaultTokenizer)

// UnifyStrings treats raw strings and single chars as regular strings.
func UnifyStrings(b bool) Option {
	return func(t *DefaultTokenizer) { t.unifyStrings = b }
}

// SkipComments toggles whether comments are returned as tokens.
func SkipComments(b bool) Option {
	return func(t *DefaultTokenizer) {
		if b {
			t.Mode |= stdscanner.SkipComments
		} else {
			t.Mode &^= stdscanner.SkipComments
		}
	}
}

// Lexeme stringifies a scanned value, for diagnostics.
func Lexeme(v interface{}) string {
	switch x := v.(type) {
	case string:
		return x
	case []byte:
		return string(x)
	default:
		return fmt.Sprintf("%v", x)
	}
}
