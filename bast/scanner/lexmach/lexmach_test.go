package lexmach

import (
	"testing"

	"github.com/project-yggdrasil/yggdrasil/bast/scanner"
)

func TestDSLAdapterTokenizesRuleDeclaration(t *testing.T) {
	adapter, err := NewDSLAdapter()
	if err != nil {
		t.Fatalf("NewDSLAdapter failed: %v", err)
	}
	s, err := adapter.Scanner(`Greeting = "hi" ~ Name`)
	if err != nil {
		t.Fatalf("Scanner failed: %v", err)
	}

	var kinds []scanner.TokType
	for {
		tok := s.NextToken()
		if tok.TokType() == scanner.EOF {
			break
		}
		kinds = append(kinds, tok.TokType())
	}
	want := []scanner.TokType{TokIdent, TokEquals, TokTextLiteral, TokTilde, TokIdent}
	if len(kinds) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(kinds), kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("token %d: expected %v, got %v", i, want[i], kinds[i])
		}
	}
}
