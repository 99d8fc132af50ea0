/*
Package regex compiles the regular-expression literals that appear inside
a grammar (spec.md §4.4) into serialised DFA byte tables used for
constant-time token matching at parse time.

The pipeline is: anchor the raw source, parse it with the standard
library's regexp/syntax (the only library in the corpus that produces a
regex AST at all — gorgo never goes further than running a scanner, see
lr/scanner/lexmach), lower that AST into a byte-level Thompson NFA, run
subset construction to get a DFA, and serialise the DFA's transition table
in both byte orders, forward and reverse.
*/
package regex

import (
	"fmt"
	"regexp/syntax"
	"unicode/utf8"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'yggdrasil.regex'.
func tracer() tracing.Trace {
	return tracing.Select("yggdrasil.regex")
}

// nfaState is a single state of a byte-level Thompson NFA. Epsilon
// transitions point at up to two successor states (out, out1); a byte
// transition consumes a single byte in [lo,hi] and moves to out.
type nfaState struct {
	lo, hi byte // byte-range transition; hi < lo means "no byte transition"
	out    int
	out1   int // second epsilon successor, -1 if unused
	accept bool
}

// nfa is a Thompson construction: states[0] need not be the start state —
// start/accept are tracked explicitly so fragments can be composed.
type nfa struct {
	states []*nfaState
	start  int
}

func newNFA() *nfa {
	return &nfa{}
}

func (n *nfa) addState(s nfaState) int {
	if s.out1 == 0 && !s.accept {
		s.out1 = -1
	}
	n.states = append(n.states, &s)
	return len(n.states) - 1
}

// frag is a partial NFA fragment with a single entry state and a set of
// "dangling" exit states to be patched to whatever comes next.
type frag struct {
	start int
	out   []*int // pointers into n.states[...].out / out1 fields awaiting a target
}

func patch(outs []*int, target int) {
	for _, o := range outs {
		*o = target
	}
}

// compileToNFA lowers a parsed, simplified regexp/syntax.Regexp AST into a
// byte-level NFA. Only the operators reachable from the grammar DSL's
// regex literals are handled; capture groups are transparent (we only
// care about matching, never about extracted groups).
func compileToNFA(re *syntax.Regexp) (*nfa, error) {
	n := newNFA()
	f, err := compileNode(n, re)
	if err != nil {
		return nil, err
	}
	accept := n.addState(nfaState{hi: 0, lo: 1, accept: true})
	patch(f.out, accept)
	n.start = f.start
	return n, nil
}

func compileNode(n *nfa, re *syntax.Regexp) (frag, error) {
	switch re.Op {
	case syntax.OpEmptyMatch, syntax.OpBeginLine, syntax.OpEndLine, syntax.OpBeginText, syntax.OpEndText,
		syntax.OpWordBoundary, syntax.OpNoWordBoundary:
		// Assertions are treated as zero-width no-ops: the DSL's regex
		// literals are always pre-anchored by the caller (Compile),
		// and variable-width lookaround is explicitly a non-goal (spec.md §1).
		s := n.addState(nfaState{hi: 0, lo: 1})
		return frag{start: s, out: []*int{&n.states[s].out}}, nil

	case syntax.OpLiteral:
		return compileLiteral(n, re.Rune)

	case syntax.OpCharClass:
		return compileCharClass(n, re.Rune)

	case syntax.OpAnyChar:
		return compileByteRange(n, 0x00, 0xFF)

	case syntax.OpAnyCharNotNL:
		return compileExcludingNewline(n)

	case syntax.OpCapture:
		return compileNode(n, re.Sub[0])

	case syntax.OpStar:
		return compileStar(n, re.Sub[0])

	case syntax.OpPlus:
		return compilePlus(n, re.Sub[0])

	case syntax.OpQuest:
		return compileQuest(n, re.Sub[0])

	case syntax.OpRepeat:
		return compileRepeat(n, re.Sub[0], re.Min, re.Max)

	case syntax.OpConcat:
		return compileConcat(n, re.Sub)

	case syntax.OpAlternate:
		return compileAlternate(n, re.Sub)

	case syntax.OpNoMatch:
		s := n.addState(nfaState{hi: 0, lo: 1})
		return frag{start: s, out: nil}, nil

	default:
		return frag{}, fmt.Errorf("regex: unsupported construct %v", re.Op)
	}
}

// compileLiteral lowers a run of literal runes into a chain of byte-range
// transitions, one per byte of each rune's UTF-8 encoding.
func compileLiteral(n *nfa, runes []rune) (frag, error) {
	var buf [utf8.UTFMax]byte
	first := true
	var result frag
	for _, r := range runes {
		w := utf8.EncodeRune(buf[:], r)
		for i := 0; i < w; i++ {
			s := n.addState(nfaState{lo: buf[i], hi: buf[i]})
			f := frag{start: s, out: []*int{&n.states[s].out}}
			if first {
				result = f
				first = false
			} else {
				patch(result.out, f.start)
				result.out = f.out
			}
		}
	}
	if first { // empty literal ("")
		s := n.addState(nfaState{hi: 0, lo: 1})
		return frag{start: s, out: []*int{&n.states[s].out}}, nil
	}
	return result, nil
}

// compileCharClass lowers a rune-range char class into an alternation of
// byte-range fragments. A range lying wholly in ASCII becomes one byte
// range; any range reaching past ASCII is expanded rune by rune into an
// alternation of each rune's UTF-8 encoding (see compileRuneRange).
func compileCharClass(n *nfa, ranges []rune) (frag, error) {
	if len(ranges) == 0 {
		s := n.addState(nfaState{hi: 0, lo: 1})
		return frag{start: s, out: nil}, nil // never matches
	}
	var frags []frag
	for i := 0; i+1 < len(ranges); i += 2 {
		lo, hi := ranges[i], ranges[i+1]
		f, err := compileRuneRange(n, lo, hi)
		if err != nil {
			return frag{}, err
		}
		frags = append(frags, f)
	}
	return joinAlternatives(n, frags), nil
}

func compileRuneRange(n *nfa, lo, hi rune) (frag, error) {
	if lo <= 0x7F && hi <= 0x7F {
		return compileByteRange(n, byte(lo), byte(hi))
	}
	// Multi-byte range: fall back to per-rune literal alternation. Grammar
	// regex literals overwhelmingly target ASCII token classes; this keeps
	// the construction correct (if not maximally compact) for the rest.
	var frags []frag
	for r := lo; r <= hi; r++ {
		f, err := compileLiteral(n, []rune{r})
		if err != nil {
			return frag{}, err
		}
		frags = append(frags, f)
		if r == hi { // guard against rune overflow on hi == utf8.MaxRune
			break
		}
	}
	return joinAlternatives(n, frags), nil
}

func compileByteRange(n *nfa, lo, hi byte) (frag, error) {
	s := n.addState(nfaState{lo: lo, hi: hi})
	return frag{start: s, out: []*int{&n.states[s].out}}, nil
}

// compileExcludingNewline builds two byte-range alternatives: 0x00-0x09 and
// 0x0B-0xFF (everything except '\n').
func compileExcludingNewline(n *nfa) (frag, error) {
	a, _ := compileByteRange(n, 0x00, 0x09)
	b, _ := compileByteRange(n, 0x0B, 0xFF)
	return joinAlternatives(n, []frag{a, b}), nil
}

func joinAlternatives(n *nfa, frags []frag) frag {
	if len(frags) == 0 {
		s := n.addState(nfaState{hi: 0, lo: 1})
		return frag{start: s, out: nil}
	}
	if len(frags) == 1 {
		return frags[0]
	}
	split := n.addState(nfaState{hi: 0, lo: 1, out: frags[0].start, out1: -1})
	n.states[split].out1 = frags[1].start
	outs := append([]*int{}, frags[0].out...)
	outs = append(outs, frags[1].out...)
	for _, f := range frags[2:] {
		prevSplit := n.addState(nfaState{hi: 0, lo: 1})
		n.states[prevSplit].out = split
		n.states[prevSplit].out1 = f.start
		outs = append(outs, f.out...)
		split = prevSplit
	}
	return frag{start: split, out: outs}
}

func compileConcat(n *nfa, subs []*syntax.Regexp) (frag, error) {
	if len(subs) == 0 {
		s := n.addState(nfaState{hi: 0, lo: 1})
		return frag{start: s, out: []*int{&n.states[s].out}}, nil
	}
	result, err := compileNode(n, subs[0])
	if err != nil {
		return frag{}, err
	}
	for _, sub := range subs[1:] {
		next, err := compileNode(n, sub)
		if err != nil {
			return frag{}, err
		}
		patch(result.out, next.start)
		result.out = next.out
	}
	return result, nil
}

func compileAlternate(n *nfa, subs []*syntax.Regexp) (frag, error) {
	frags := make([]frag, 0, len(subs))
	for _, sub := range subs {
		f, err := compileNode(n, sub)
		if err != nil {
			return frag{}, err
		}
		frags = append(frags, f)
	}
	return joinAlternatives(n, frags), nil
}

func compileStar(n *nfa, sub *syntax.Regexp) (frag, error) {
	inner, err := compileNode(n, sub)
	if err != nil {
		return frag{}, err
	}
	split := n.addState(nfaState{hi: 0, lo: 1, out: inner.start})
	patch(inner.out, split)
	return frag{start: split, out: []*int{&n.states[split].out1}}, nil
}

func compilePlus(n *nfa, sub *syntax.Regexp) (frag, error) {
	inner, err := compileNode(n, sub)
	if err != nil {
		return frag{}, err
	}
	split := n.addState(nfaState{hi: 0, lo: 1, out: inner.start})
	patch(inner.out, split)
	return frag{start: inner.start, out: []*int{&n.states[split].out1}}, nil
}

func compileQuest(n *nfa, sub *syntax.Regexp) (frag, error) {
	inner, err := compileNode(n, sub)
	if err != nil {
		return frag{}, err
	}
	split := n.addState(nfaState{hi: 0, lo: 1, out: inner.start})
	outs := append([]*int{}, inner.out...)
	outs = append(outs, &n.states[split].out1)
	return frag{start: split, out: outs}, nil
}

func compileRepeat(n *nfa, sub *syntax.Regexp, min, max int) (frag, error) {
	if max == -1 {
		// {min,} == min copies followed by a star.
		var result frag
		first := true
		for i := 0; i < min; i++ {
			f, err := compileNode(n, sub)
			if err != nil {
				return frag{}, err
			}
			if first {
				result, first = f, false
			} else {
				patch(result.out, f.start)
				result.out = f.out
			}
		}
		star, err := compileStar(n, sub)
		if err != nil {
			return frag{}, err
		}
		if first {
			return star, nil
		}
		patch(result.out, star.start)
		result.out = star.out
		return result, nil
	}
	var frags []frag
	for i := 0; i < max; i++ {
		f, err := compileNode(n, sub)
		if err != nil {
			return frag{}, err
		}
		frags = append(frags, f)
	}
	// Chain required copies, then make the optional tail copies skippable.
	var result frag
	for i, f := range frags {
		if i == 0 {
			result = f
			continue
		}
		if i < min {
			patch(result.out, f.start)
			result.out = f.out
			continue
		}
		// optional copy i: splice in a bypass
		split := n.addState(nfaState{hi: 0, lo: 1, out: f.start})
		patch(result.out, split)
		result.out = append(append([]*int{}, f.out...), &n.states[split].out1)
	}
	if len(frags) == 0 {
		s := n.addState(nfaState{hi: 0, lo: 1})
		return frag{start: s, out: []*int{&n.states[s].out}}, nil
	}
	return result, nil
}
