/*
Package lexmach adapts timtadh/lexmachine as a Tokenizer for the
grammar-DSL's real token grammar (spec.md §6): rule names, string and
regex literals, PEG operators, and `@annotation` markers. It follows the
same adapter shape as gorgo's lr/scanner/lexmach, translating lexmachine
matches into bast/scanner.Token values instead of gorgo's.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package lexmach

import (
	"github.com/npillmayer/schuko/tracing"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"

	"github.com/project-yggdrasil/yggdrasil/bast/scanner"
)

// tracer traces with key 'yggdrasil.bast.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("yggdrasil.bast.scanner")
}

// DSL token categories, occupying scanner.firstDSLToken and below.
const (
	TokIdent scanner.TokType = -100 - iota
	TokTextLiteral
	TokRegexLiteral
	TokIntLiteral
	TokAnnotation // @name
	TokPipe       // |
	TokTilde      // ~ (climbing-rule operator marker)
	TokQuestion   // ?
	TokStar       // *
	TokPlus       // +
	TokBang       // !
	TokAmp        // &
	TokCaret      // ^ (remark)
	TokLParen
	TokRParen
	TokLBrace
	TokRBrace
	TokEquals
	TokComma
	TokDotDot // .. (RepeatsBetween bound separator)
)

// DSLAdapter wraps a compiled lexmachine.Lexer for the grammar DSL.
type DSLAdapter struct {
	Lexer *lexmachine.Lexer
}

// NewDSLAdapter builds and compiles the lexer for the grammar DSL's
// fixed token grammar (spec.md §6's EBNF literals and operators).
func NewDSLAdapter() (*DSLAdapter, error) {
	lexer := lexmachine.NewLexer()

	literal := func(pattern string, kind scanner.TokType) {
		lexer.Add([]byte(pattern), makeToken(kind))
	}

	lexer.Add([]byte(`@[A-Za-z_][A-Za-z0-9_]*`), makeToken(TokAnnotation))
	lexer.Add([]byte(`[A-Za-z_][A-Za-z0-9_]*`), makeToken(TokIdent))
	lexer.Add([]byte(`"([^"\\]|\\.)*"`), makeToken(TokTextLiteral))
	lexer.Add([]byte(`/([^/\\]|\\.)*/`), makeToken(TokRegexLiteral))
	lexer.Add([]byte(`[0-9]+`), makeToken(TokIntLiteral))
	lexer.Add([]byte(`\.\.`), makeToken(TokDotDot))
	literal(`\|`, TokPipe)
	literal(`~`, TokTilde)
	literal(`\?`, TokQuestion)
	literal(`\*`, TokStar)
	literal(`\+`, TokPlus)
	literal(`!`, TokBang)
	literal(`&`, TokAmp)
	literal(`\^`, TokCaret)
	literal(`\(`, TokLParen)
	literal(`\)`, TokRParen)
	literal(`\{`, TokLBrace)
	literal(`\}`, TokRBrace)
	literal(`=`, TokEquals)
	literal(`,`, TokComma)

	lexer.Add([]byte(`( |\t|\n|\r)+`), skip)
	lexer.Add([]byte(`//[^\n]*`), skip)

	if err := lexer.Compile(); err != nil {
		tracer().Errorf("error compiling DSL lexer DFA: %v", err)
		return nil, err
	}
	return &DSLAdapter{Lexer: lexer}, nil
}

// Scanner creates a Tokenizer over input.
func (a *DSLAdapter) Scanner(input string) (*DSLScanner, error) {
	s, err := a.Lexer.Scanner([]byte(input))
	if err != nil {
		return nil, err
	}
	return &DSLScanner{scanner: s, Error: logError}, nil
}

// DSLScanner is the Tokenizer produced by DSLAdapter.Scanner.
type DSLScanner struct {
	scanner *lexmachine.Scanner
	Error   func(error)
}

var _ scanner.Tokenizer = (*DSLScanner)(nil)

// SetErrorHandler implements scanner.Tokenizer.
func (s *DSLScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		s.Error = logError
		return
	}
	s.Error = h
}

func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// NextToken implements scanner.Tokenizer.
func (s *DSLScanner) NextToken() scanner.Token {
	tok, err, eof := s.scanner.Next()
	for err != nil {
		s.Error(err)
		if ui, is := err.(*machines.UnconsumedInput); is {
			s.scanner.TC = ui.FailTC
		}
		tok, err, eof = s.scanner.Next()
	}
	if eof {
		return scanner.SimpleToken{Kind: scanner.EOF}
	}
	token := tok.(*lexmachine.Token)
	return scanner.SimpleToken{
		Kind:   scanner.TokType(token.Type),
		Text:   string(token.Lexeme),
		AtByte: token.TC,
	}
}

// skip discards whitespace and line comments.
func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

func makeToken(kind scanner.TokType) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(int(kind), string(m.Bytes), m), nil
	}
}
