package ir

import "testing"

func TestExpressionBuildersSetKind(t *testing.T) {
	e := Choice(
		DataExpr(Data{Kind: DataText, Text: "a"}),
		DataExpr(Data{Kind: DataText, Text: "b"}),
	)
	if e.K.Kind != KindChoice {
		t.Fatalf("expected KindChoice, got %v", e.K.Kind)
	}
	if len(e.K.Branches) != 2 {
		t.Fatalf("expected 2 branches, got %d", len(e.K.Branches))
	}
}

func TestUnaryOperatorOrderIsInnermostFirst(t *testing.T) {
	base := RuleRef("digit", false)
	e := Unary(base, OpApplication{Op: OpRepeats}, OpApplication{Op: OpOptional})
	if len(e.K.Ops) != 2 {
		t.Fatalf("expected 2 ops, got %d", len(e.K.Ops))
	}
	if e.K.Ops[0].Op != OpRepeats || e.K.Ops[1].Op != OpOptional {
		t.Fatalf("expected ops in declared order, got %v", e.K.Ops)
	}
}

func TestWithTagAndRemarkAreImmutableCopies(t *testing.T) {
	base := RuleRef("x", false)
	tagged := base.WithTag("num")
	if base.IsTagged() {
		t.Fatalf("expected original expression to remain untagged")
	}
	if !tagged.IsTagged() || tagged.Tag != "num" {
		t.Fatalf("expected tagged copy to carry tag 'num', got %q", tagged.Tag)
	}
	remarked := base.WithRemark()
	if base.Remark {
		t.Fatalf("expected original expression's remark flag to remain false")
	}
	if !remarked.Remark {
		t.Fatalf("expected copy's remark flag to be set")
	}
}

func TestYggdrasilRegexEqualityIgnoresRawText(t *testing.T) {
	a, err := CompileRegex("a|a", Identifier{}.Span)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	b, err := CompileRegex("a", Identifier{}.Span)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if !a.Equal(b) {
		t.Fatalf("expected equivalent regexes to compare equal regardless of raw source")
	}
	c, err := CompileRegex("b", Identifier{}.Span)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if a.Equal(c) {
		t.Fatalf("expected different regexes to compare unequal")
	}
}
