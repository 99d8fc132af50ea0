package cst

import (
	"testing"

	"github.com/project-yggdrasil/yggdrasil/runtime"
)

// buildTree parses "a+b" with a tiny hand-wired grammar: Sum = Digit '+' Digit.
func buildTree(t *testing.T) (*Tree, runtime.State) {
	t.Helper()
	digit := runtime.Rule("Digit", runtime.MatchCharBy(func(r rune) bool { return r == 'a' || r == 'b' }))
	sum := runtime.Rule("Sum", runtime.Sequence(digit, runtime.MatchString("+"), digit))

	s := runtime.NewState("a+b")
	next, ok := sum(s)
	if !ok {
		t.Fatalf("expected grammar to match")
	}
	return New(next.Queue(), "a+b"), next
}

func TestRootSpansWholeInput(t *testing.T) {
	tree, _ := buildTree(t)
	root := tree.Root()
	if root.Rule() != "Sum" || root.Start() != 0 || root.End() != 3 {
		t.Fatalf("unexpected root: rule=%s start=%d end=%d", root.Rule(), root.Start(), root.End())
	}
	if root.Text() != "a+b" {
		t.Fatalf("expected root text 'a+b', got %q", root.Text())
	}
}

func TestChildrenAreDirectOnly(t *testing.T) {
	tree, _ := buildTree(t)
	kids := tree.Root().Children()
	if len(kids) != 2 {
		t.Fatalf("expected 2 Digit children, got %d", len(kids))
	}
	if kids[0].Rule() != "Digit" || kids[0].Text() != "a" {
		t.Fatalf("unexpected first child: %+v", kids[0])
	}
	if kids[1].Rule() != "Digit" || kids[1].Text() != "b" {
		t.Fatalf("unexpected second child: %+v", kids[1])
	}
	if !kids[0].IsLeaf() {
		t.Fatalf("expected Digit to be a leaf")
	}
}

func TestRuleOrdinalIsStableByFirstOccurrence(t *testing.T) {
	tree, _ := buildTree(t)
	root := tree.Root()
	kids := root.Children()
	if root.RuleOrdinal() != 0 {
		t.Fatalf("expected Sum (first Start entry) to get ordinal 0, got %d", root.RuleOrdinal())
	}
	if kids[0].RuleOrdinal() != 1 || kids[1].RuleOrdinal() != 1 {
		t.Fatalf("expected both Digit occurrences to share ordinal 1, got %d and %d", kids[0].RuleOrdinal(), kids[1].RuleOrdinal())
	}
}

func TestTokensReturnsFlatEntryStream(t *testing.T) {
	tree, _ := buildTree(t)
	root := tree.Root()
	tokens := root.Tokens()
	// Start Sum, Start Digit, End Digit, Start Digit, End Digit, End Sum.
	if len(tokens) != 6 {
		t.Fatalf("expected 6 flat entries for the whole pair, got %d", len(tokens))
	}
	if tokens[0].Kind != runtime.StartEntry || tokens[0].Rule != "Sum" {
		t.Fatalf("expected first token to be Sum's Start entry, got %+v", tokens[0])
	}
	if tokens[len(tokens)-1].Kind != runtime.EndEntry || tokens[len(tokens)-1].Rule != "Sum" {
		t.Fatalf("expected last token to be Sum's End entry, got %+v", tokens[len(tokens)-1])
	}

	kids := root.Children()
	leafTokens := kids[0].Tokens()
	if len(leafTokens) != 2 {
		t.Fatalf("expected a leaf Digit pair to span exactly its own Start/End, got %d", len(leafTokens))
	}
	if leafTokens[0].Kind != runtime.StartEntry || leafTokens[1].Kind != runtime.EndEntry {
		t.Fatalf("expected [Start, End] for a leaf pair, got %+v", leafTokens)
	}
}

func TestWalkVisitsPreorder(t *testing.T) {
	tree, _ := buildTree(t)
	var seen []string
	tree.Root().Walk(func(p TokenPair) { seen = append(seen, p.Rule()) })
	if len(seen) != 3 || seen[0] != "Sum" || seen[1] != "Digit" || seen[2] != "Digit" {
		t.Fatalf("unexpected preorder sequence: %v", seen)
	}
}
