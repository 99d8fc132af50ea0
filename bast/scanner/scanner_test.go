package scanner

import (
	"strings"
	"testing"
)

func TestDefaultTokenizerScansIdentifier(t *testing.T) {
	tok := GoTokenizer("test", strings.NewReader("Rule"))
	got := tok.NextToken()
	if got.TokType() != Ident || got.Lexeme() != "Rule" {
		t.Fatalf("expected Ident 'Rule', got %v %q", got.TokType(), got.Lexeme())
	}
}

func TestUnifyStringsOption(t *testing.T) {
	tok := GoTokenizer("test", strings.NewReader("'a'"), UnifyStrings(true))
	got := tok.NextToken()
	if got.TokType() != String {
		t.Fatalf("expected a char literal to be unified into String, got %v", got.TokType())
	}
}
