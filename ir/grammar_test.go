package ir

import (
	"testing"

	"github.com/project-yggdrasil/yggdrasil"
)

func ident(name string) Identifier {
	input := name
	return Identifier{Name: name, Span: yggdrasil.StartPosition(input).Span(yggdrasil.NewPosition(input, len(input)))}
}

func TestGrammarInfoPreservesDeclarationOrder(t *testing.T) {
	g := NewGrammarInfo(ident("g"))
	g.AddRule(&GrammarRule{Name: ident("A"), Body: ClassBody(DataExpr(Data{Kind: DataText, Text: "x"}))})
	g.AddRule(&GrammarRule{Name: ident("B"), Body: ClassBody(DataExpr(Data{Kind: DataText, Text: "y"}))})
	g.AddRule(&GrammarRule{Name: ident("C"), Body: ClassBody(DataExpr(Data{Kind: DataText, Text: "z"}))})

	names := g.RuleNames()
	want := []string{"A", "B", "C"}
	for i, n := range want {
		if names[i] != n {
			t.Fatalf("expected order %v, got %v", want, names)
		}
	}
}

func TestGrammarInfoRemoveRule(t *testing.T) {
	g := NewGrammarInfo(ident("g"))
	g.AddRule(&GrammarRule{Name: ident("A")})
	g.AddRule(&GrammarRule{Name: ident("B")})
	g.RemoveRule("A")

	if _, ok := g.Rule("A"); ok {
		t.Fatalf("expected A to be removed")
	}
	if g.NumRules() != 1 {
		t.Fatalf("expected 1 remaining rule, got %d", g.NumRules())
	}
	if names := g.RuleNames(); len(names) != 1 || names[0] != "B" {
		t.Fatalf("expected only B to remain, got %v", names)
	}
}

func TestInlineCandidateDetection(t *testing.T) {
	explicit := &GrammarRule{Name: ident("Foo"), AutoInline: true}
	if !explicit.IsInlineCandidate() {
		t.Fatalf("expected explicitly-flagged rule to be an inline candidate")
	}
	silent := &GrammarRule{Name: ident("_ws")}
	if !silent.IsInlineCandidate() {
		t.Fatalf("expected underscore-prefixed rule to be an inline candidate")
	}
	normal := &GrammarRule{Name: ident("Bar")}
	if normal.IsInlineCandidate() {
		t.Fatalf("expected ordinary rule not to be an inline candidate")
	}
}
