package optimize

import (
	"reflect"
	"runtime"
	"strings"
	"testing"

	"github.com/project-yggdrasil/yggdrasil/ir"
)

func name(n string) ir.Identifier { return ir.Identifier{Name: n} }

func text(s string) ir.Expression {
	return ir.DataExpr(ir.Data{Kind: ir.DataText, Text: s})
}

func TestPipelineOrderMatchesSpec(t *testing.T) {
	want := []string{"RefineRules", "InlineRules", "FusionRules", "DeadCodeEliminator", "InsertIgnore", "RemarkTags", "EmitFunction"}
	if len(Pipeline) != len(want) {
		t.Fatalf("expected %d passes, got %d", len(want), len(Pipeline))
	}
	for i, pass := range Pipeline {
		got := runtime.FuncForPC(reflect.ValueOf(pass).Pointer()).Name()
		if !strings.HasSuffix(got, "."+want[i]) {
			t.Fatalf("pass %d: expected %s, got %s", i, want[i], got)
		}
	}
}

func TestRefineRulesFlattensNestedChoice(t *testing.T) {
	g := ir.NewGrammarInfo(name("g"))
	nested := ir.Choice(text("a"), ir.Choice(text("b"), text("c")))
	g.AddRule(&ir.GrammarRule{Name: name("R"), Body: ir.ClassBody(nested)})

	g, _, _ = RefineRules(g)
	r, _ := g.Rule("R")
	if len(r.Body.Term.K.Branches) != 3 {
		t.Fatalf("expected nested choice to flatten to 3 branches, got %d", len(r.Body.Term.K.Branches))
	}
}

func TestRefineRulesCollapsesRepeatedOperators(t *testing.T) {
	g := ir.NewGrammarInfo(name("g"))
	e := ir.Unary(text("a"), ir.OpApplication{Op: ir.OpRepeats}, ir.OpApplication{Op: ir.OpRepeats})
	g.AddRule(&ir.GrammarRule{Name: name("R"), Body: ir.ClassBody(e)})

	g, _, _ = RefineRules(g)
	r, _ := g.Rule("R")
	if len(r.Body.Term.K.Ops) != 1 {
		t.Fatalf("expected a** to collapse to a single operator, got %d", len(r.Body.Term.K.Ops))
	}
}

func TestRefineRulesDetectsDirectLeftRecursion(t *testing.T) {
	g := ir.NewGrammarInfo(name("g"))
	// E = E '+' E | INT   (direct left recursion through the first Choice branch)
	e := ir.Choice(
		ir.Concat(ir.RuleRef("E", false), text("+"), ir.RuleRef("E", false)),
		ir.RuleRef("INT", false),
	)
	g.AddRule(&ir.GrammarRule{Name: name("E"), Body: ir.ClassBody(e)})
	g.AddRule(&ir.GrammarRule{Name: name("INT"), Body: ir.ClassBody(text("0"))})

	_, _, diags := RefineRules(g)
	found := false
	for _, d := range diags {
		if d.Rule == "E" && d.Severity == SeverityError {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a left-recursion diagnostic for rule E, got %v", diags)
	}
}

func TestInlineRulesSubstitutesSilentRule(t *testing.T) {
	g := ir.NewGrammarInfo(name("g"))
	g.AddRule(&ir.GrammarRule{Name: name("_ws"), Body: ir.ClassBody(text(" "))})
	g.AddRule(&ir.GrammarRule{Name: name("P"), Body: ir.ClassBody(ir.Concat(text("a"), ir.RuleRef("_ws", false), text("b")))})

	g, _, _ = InlineRules(g)
	r, _ := g.Rule("P")
	for _, term := range r.Body.Term.K.Terms {
		if term.K.Kind == ir.KindRuleRef && term.K.RefPath == "_ws" {
			t.Fatalf("expected _ws reference to be inlined away")
		}
	}
}

func TestInlineRulesAvoidsIntroducingRecursion(t *testing.T) {
	g := ir.NewGrammarInfo(name("g"))
	g.AddRule(&ir.GrammarRule{
		Name:       name("_loop"),
		AutoInline: true,
		Body:       ir.ClassBody(ir.Concat(ir.RuleRef("_loop", false), text("x"))),
	})
	_, _, diags := InlineRules(g)
	if len(diags) == 0 {
		t.Fatalf("expected a diagnostic warning about avoided recursive inlining")
	}
}

func TestFusionRulesMergesAdjacentLiterals(t *testing.T) {
	g := ir.NewGrammarInfo(name("g"))
	g.AddRule(&ir.GrammarRule{Name: name("R"), Body: ir.ClassBody(ir.Concat(text("foo"), text("bar")))})
	g, _, _ = FusionRules(g)
	r, _ := g.Rule("R")
	if len(r.Body.Term.K.Terms) != 1 || r.Body.Term.K.Terms[0].K.DataVal.Text != "foobar" {
		t.Fatalf("expected merged literal 'foobar', got %+v", r.Body.Term.K.Terms)
	}
}

func TestFusionRulesCollapsesOptionalRepeats(t *testing.T) {
	e := ir.Unary(text("a"), ir.OpApplication{Op: ir.OpRepeats}, ir.OpApplication{Op: ir.OpOptional})
	fused := fuse(e)
	if len(fused.K.Ops) != 1 || fused.K.Ops[0].Op != ir.OpRepeats {
		t.Fatalf("expected a*? to collapse to a*, got %v", fused.K.Ops)
	}
}

func TestDeadCodeEliminatorRemovesOrphans(t *testing.T) {
	g := ir.NewGrammarInfo(name("g"))
	g.Entries = []string{"Start"}
	g.AddRule(&ir.GrammarRule{Name: name("Start"), Body: ir.ClassBody(text("a"))})
	g.AddRule(&ir.GrammarRule{Name: name("Orphan"), Body: ir.ClassBody(text("b"))})

	g, _, diags := DeadCodeEliminator(g)
	if _, ok := g.Rule("Orphan"); ok {
		t.Fatalf("expected Orphan to be removed")
	}
	if _, ok := g.Rule("Start"); !ok {
		t.Fatalf("expected Start (an entry rule) to survive")
	}
	if len(diags) != 1 || diags[0].Rule != "Orphan" {
		t.Fatalf("expected one unused_rule diagnostic for Orphan, got %v", diags)
	}
}

func TestInsertIgnoreSplicesBetweenConcatTerms(t *testing.T) {
	g := ir.NewGrammarInfo(name("g"))
	g.Ignores["_WS"] = true
	g.AddRule(&ir.GrammarRule{Name: name("_WS"), Body: ir.ClassBody(text(" "))})
	g.AddRule(&ir.GrammarRule{Name: name("P"), Body: ir.ClassBody(ir.Concat(text("a"), text("b")))})

	g, _, _ = InsertIgnore(g)
	r, _ := g.Rule("P")
	if len(r.Body.Term.K.Terms) != 3 {
		t.Fatalf("expected 3 terms (a, ignore, b), got %d", len(r.Body.Term.K.Terms))
	}
	if !r.Body.Term.K.Terms[1].SyntheticIgnore {
		t.Fatalf("expected the middle term to be the synthesised ignore")
	}
}

func TestInsertIgnoreIsIdempotent(t *testing.T) {
	g := ir.NewGrammarInfo(name("g"))
	g.Ignores["_WS"] = true
	g.AddRule(&ir.GrammarRule{Name: name("_WS"), Body: ir.ClassBody(text(" "))})
	g.AddRule(&ir.GrammarRule{Name: name("P"), Body: ir.ClassBody(ir.Concat(text("a"), text("b")))})

	g, _, _ = InsertIgnore(g)
	g, _, _ = InsertIgnore(g)
	r, _ := g.Rule("P")
	if len(r.Body.Term.K.Terms) != 3 {
		t.Fatalf("expected a second pass to not insert another ignore, got %d terms", len(r.Body.Term.K.Terms))
	}
}

func TestInsertIgnoreSkipsAtomicRules(t *testing.T) {
	g := ir.NewGrammarInfo(name("g"))
	g.Ignores["_WS"] = true
	g.AddRule(&ir.GrammarRule{Name: name("_WS"), Body: ir.ClassBody(text(" "))})
	g.AddRule(&ir.GrammarRule{Name: name("P"), AtomicRule: true, Body: ir.ClassBody(ir.Concat(text("a"), text("b")))})

	g, _, _ = InsertIgnore(g)
	r, _ := g.Rule("P")
	if len(r.Body.Term.K.Terms) != 2 {
		t.Fatalf("expected atomic rule to be untouched, got %d terms", len(r.Body.Term.K.Terms))
	}
}

func TestRemarkTagsStripsUnmarked(t *testing.T) {
	g := ir.NewGrammarInfo(name("g"))
	tagged := text("a").WithTag("num")
	remarked := text("b").WithTag("kept").WithRemark()
	g.AddRule(&ir.GrammarRule{Name: name("R"), EliminateUnmarked: true, Body: ir.ClassBody(ir.Concat(tagged, remarked))})

	g, _, _ = RemarkTags(g)
	r, _ := g.Rule("R")
	if r.Body.Term.K.Terms[0].Tag != "" {
		t.Fatalf("expected unmarked tag to be stripped")
	}
	if r.Body.Term.K.Terms[1].Tag != "kept" {
		t.Fatalf("expected remarked tag to survive")
	}
}

func TestEmitFunctionLowersKnownBuiltin(t *testing.T) {
	g := ir.NewGrammarInfo(name("g"))
	g.AddRule(&ir.GrammarRule{Name: name("R"), Body: ir.ClassBody(ir.Function("ASCII_DIGIT"))})

	g, _, diags := EmitFunction(g)
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics for a known builtin, got %v", diags)
	}
	r, _ := g.Rule("R")
	if r.Body.Term.K.Kind != ir.KindData || r.Body.Term.K.DataVal.Kind != ir.DataCharacterRange {
		t.Fatalf("expected ASCII_DIGIT to lower to a character range, got %+v", r.Body.Term)
	}
}

func TestEmitFunctionReportsUnknownBuiltin(t *testing.T) {
	g := ir.NewGrammarInfo(name("g"))
	g.AddRule(&ir.GrammarRule{Name: name("R"), Body: ir.ClassBody(ir.Function("NOT_A_REAL_FUNCTION"))})

	_, _, diags := EmitFunction(g)
	if len(diags) != 1 || diags[0].Severity != SeverityError {
		t.Fatalf("expected one fatal diagnostic, got %v", diags)
	}
	if !HasFatal(diags) {
		t.Fatalf("expected HasFatal to report true")
	}
}
