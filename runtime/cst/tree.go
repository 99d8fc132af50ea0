// Package cst provides a read-only concrete-syntax-tree view over a
// frozen runtime.TokenQueue (spec.md §3's TokenPair entry, §4.3). The
// view borrows from the underlying queue instead of copying it into a
// parallel tree: a TokenPair is just an index into the queue, and
// Children/Walk discover descendants by scanning the queue slice lazily,
// which is how gorgo's shared packed-parse-forest view (lr/sppf) avoids
// materializing one node struct per match — adapted here to a PEG-shaped
// Start/End token stream rather than a GLR packed forest, since this
// grammar supports no ambiguity merging (spec.md §1 non-goals).
package cst

import "github.com/project-yggdrasil/yggdrasil/runtime"

// Tree is an immutable view over a completed parse: the frozen queue it
// was built from, plus the input text the offsets index into.
type Tree struct {
	queue    *runtime.TokenQueue
	input    string
	ordinals map[string]int
}

// New wraps queue (freezing it if it wasn't already) together with the
// input string it was parsed from.
func New(queue *runtime.TokenQueue, input string) *Tree {
	if !queue.Frozen() {
		queue.Freeze()
	}
	return &Tree{queue: queue, input: input}
}

// Root returns the outermost TokenPair, spanning the entire successful
// parse. It panics if the queue is empty, which only happens if New was
// called on a queue from a parse that never opened a single rule.
func (t *Tree) Root() TokenPair {
	if len(t.queue.Entries) == 0 {
		panic("cst: empty token queue has no root")
	}
	return TokenPair{tree: t, startIndex: 0}
}

// Input returns the full source text this tree was parsed from.
func (t *Tree) Input() string { return t.input }

func (t *Tree) ordinalOf(rule string) int {
	if t.ordinals == nil {
		t.ordinals = map[string]int{}
		for _, e := range t.queue.Entries {
			if e.Kind == runtime.StartEntry {
				if _, seen := t.ordinals[e.Rule]; !seen {
					t.ordinals[e.Rule] = len(t.ordinals)
				}
			}
		}
	}
	return t.ordinals[rule]
}

// TokenPair is a borrowed view over one matched Start/End pair. Copying
// a TokenPair is cheap (tree pointer + int index) and never allocates.
type TokenPair struct {
	tree       *Tree
	startIndex int
}

func (p TokenPair) entry() runtime.Entry    { return p.tree.queue.Entries[p.startIndex] }
func (p TokenPair) endEntry() runtime.Entry { return p.tree.queue.Entries[p.entry().EndIndex] }

// Rule returns the grammar rule name that produced this pair.
func (p TokenPair) Rule() string { return p.entry().Rule }

// Tag returns the tag an enclosing Tag combinator attached, or "" if
// none was pending when this pair closed.
func (p TokenPair) Tag() string { return p.endEntry().Tag }

// Start and End return the byte offsets p spans in the tree's input.
func (p TokenPair) Start() int { return p.entry().InputOffset }
func (p TokenPair) End() int   { return p.endEntry().InputOffset }

// Text returns the exact substring p matched.
func (p TokenPair) Text() string { return p.tree.input[p.Start():p.End()] }

// RuleOrdinal returns a small integer identifying Rule() within this
// tree, assigned by first-occurrence order across the whole parse. It
// lets a consumer switch on an int rather than a string without the
// driver maintaining a separate rule-name registry.
func (p TokenPair) RuleOrdinal() int { return p.tree.ordinalOf(p.Rule()) }

// Children returns p's immediate children in document order.
// Grandchildren are reached by calling Children again on each result —
// no subtree beneath p is scanned until it's asked for.
func (p TokenPair) Children() []TokenPair {
	entries := p.tree.queue.Entries
	limit := p.entry().EndIndex
	var kids []TokenPair
	for i := p.startIndex + 1; i < limit; {
		e := entries[i]
		if e.Kind != runtime.StartEntry {
			i++
			continue
		}
		kids = append(kids, TokenPair{tree: p.tree, startIndex: i})
		i = e.EndIndex + 1
	}
	return kids
}

// Tokens returns the flat Start/End entry stream p spans, including p's
// own bounding pair, in queue order. Unlike Children, this does not
// skip into nested pairs' interiors — it's the linear view a consumer
// wants when walking every token boundary inside p rather than just its
// direct structure.
func (p TokenPair) Tokens() []runtime.Entry {
	entries := p.tree.queue.Entries
	end := p.entry().EndIndex
	tokens := make([]runtime.Entry, end-p.startIndex+1)
	copy(tokens, entries[p.startIndex:end+1])
	return tokens
}

// IsLeaf reports whether p has no children.
func (p TokenPair) IsLeaf() bool { return len(p.Children()) == 0 }

// Walk visits p and every descendant in preorder.
func (p TokenPair) Walk(visit func(TokenPair)) {
	visit(p)
	for _, c := range p.Children() {
		c.Walk(visit)
	}
}
