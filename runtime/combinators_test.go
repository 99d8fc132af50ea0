package runtime

import "testing"

func TestSequenceAndChoice(t *testing.T) {
	grammar := Choice(
		Sequence(MatchString("foo"), MatchString("bar")),
		MatchString("baz"),
	)

	s := NewState("baz")
	next, ok := grammar(s)
	if !ok || next.Position().Offset() != 3 {
		t.Fatalf("expected baz alternative to match fully, got ok=%v offset=%d", ok, next.Position().Offset())
	}

	s2 := NewState("foobar")
	next2, ok2 := grammar(s2)
	if !ok2 || next2.Position().Offset() != 6 {
		t.Fatalf("expected foobar sequence to match fully, got ok=%v offset=%d", ok2, next2.Position().Offset())
	}
}

func TestRuleEmitsTokenPair(t *testing.T) {
	digit := Rule("Digit", MatchCharBy(func(r rune) bool { return r >= '0' && r <= '9' }))
	s := NewState("7")
	next, ok := digit(s)
	if !ok {
		t.Fatalf("expected digit to match")
	}
	if next.Queue().Len() != 2 {
		t.Fatalf("expected a Start/End pair, got %d entries", next.Queue().Len())
	}
	start, end := next.Queue().Entries[0], next.Queue().Entries[1]
	if start.Kind != StartEntry || start.Rule != "Digit" || start.EndIndex != 1 {
		t.Fatalf("unexpected start entry: %+v", start)
	}
	if end.Kind != EndEntry || end.Rule != "Digit" {
		t.Fatalf("unexpected end entry: %+v", end)
	}
}

func TestRuleFailureDiscardsQueueAndRecordsFurthestFailure(t *testing.T) {
	grammar := Choice(
		Rule("Alpha", MatchString("a")),
		Rule("Beta", MatchString("b")),
	)
	s := NewState("c")
	next, ok := grammar(s)
	if ok {
		t.Fatalf("expected no alternative to match")
	}
	if next.Queue().Len() != 0 {
		t.Fatalf("expected no surviving queue entries on total failure, got %d", next.Queue().Len())
	}
	if next.Failure().Offset() != 0 {
		t.Fatalf("expected furthest failure offset 0, got %d", next.Failure().Offset())
	}
	positives := next.Failure().Positives()
	if len(positives) != 2 || positives[0] != "Alpha" || positives[1] != "Beta" {
		t.Fatalf("expected both Alpha and Beta recorded as positives, got %v", positives)
	}
}

func TestRuleFailureInsideLookaheadDoesNotPolluteFurthestFailure(t *testing.T) {
	// Outside lookahead, Gamma's failure at offset 0 would normally land
	// in Positives(). Wrapped in Lookahead, it must not.
	probe := Lookahead(true, Rule("Gamma", MatchString("z")))
	s := NewState("c")
	_, ok := probe(s)
	if ok {
		t.Fatalf("expected the lookahead probe to fail (no 'z' present)")
	}
	if s.Failure().Offset() != 0 || len(s.Failure().Positives()) != 0 {
		t.Fatalf("expected no furthest-failure recording from a failure inside lookahead, got offset=%d positives=%v",
			s.Failure().Offset(), s.Failure().Positives())
	}
}

func TestOptionalNeverFails(t *testing.T) {
	f := Optional(MatchString("x"))
	s := NewState("y")
	next, ok := f(s)
	if !ok || next.Position().Offset() != 0 {
		t.Fatalf("expected optional to succeed without consuming, got ok=%v offset=%d", ok, next.Position().Offset())
	}
}

func TestRepeatStopsOnZeroWidthMatch(t *testing.T) {
	zeroWidth := Optional(MatchString("never-matches-but-always-succeeds-as-optional"))
	f := Repeat(zeroWidth)
	s := NewState("abc")
	next, ok := f(s)
	if !ok || next.Position().Offset() != 0 {
		t.Fatalf("expected repeat over a zero-width body to terminate immediately, got ok=%v offset=%d", ok, next.Position().Offset())
	}
}

func TestRepeatMinMaxEnforcesBounds(t *testing.T) {
	digit := MatchCharBy(func(r rune) bool { return r >= '0' && r <= '9' })
	f := RepeatMinMax(2, 3, digit)

	if _, ok := f(NewState("1")); ok {
		t.Fatalf("expected a single digit to fail the min-2 bound")
	}
	next, ok := f(NewState("12345"))
	if !ok || next.Position().Offset() != 3 {
		t.Fatalf("expected exactly 3 digits to be consumed (max bound), got ok=%v offset=%d", ok, next.Position().Offset())
	}
}

func TestLookaheadNeverConsumes(t *testing.T) {
	pos := Lookahead(true, MatchString("abc"))
	neg := Lookahead(false, MatchString("xyz"))
	s := NewState("abc")

	next, ok := pos(s)
	if !ok || next.Position().Offset() != 0 {
		t.Fatalf("expected positive lookahead to succeed without consuming, got ok=%v offset=%d", ok, next.Position().Offset())
	}
	next2, ok2 := neg(s)
	if !ok2 || next2.Position().Offset() != 0 {
		t.Fatalf("expected negative lookahead to succeed (xyz absent) without consuming, got ok=%v offset=%d", ok2, next2.Position().Offset())
	}
}

func TestAtomicSuppressesIgnoreInsertion(t *testing.T) {
	ignore := MatchString(" ")
	plain := Concat(ignore, MatchString("a"), MatchString("b"))
	atomicBody := Atomic(ModeAtomic, Concat(ignore, MatchString("a"), MatchString("b")))

	if _, ok := plain(NewState("a b")); !ok {
		t.Fatalf("expected ignore-aware concat to skip the space between a and b")
	}
	if _, ok := atomicBody(NewState("a b")); ok {
		t.Fatalf("expected atomic concat to NOT skip the space between a and b")
	}
	if next, ok := atomicBody(NewState("ab")); !ok || next.Position().Offset() != 2 {
		t.Fatalf("expected atomic concat to match adjacent a and b, got ok=%v", ok)
	}
}

func TestCompoundAtomicSuppressesChildMarkers(t *testing.T) {
	inner := Rule("Letter", MatchCharBy(func(r rune) bool { return true }))
	word := Rule("Word", Atomic(ModeCompoundAtomic, Sequence(inner, inner, inner)))

	next, ok := word(NewState("abc"))
	if !ok {
		t.Fatalf("expected word to match")
	}
	if next.Queue().Len() != 2 {
		t.Fatalf("expected only the outer Word Start/End pair, got %d entries", next.Queue().Len())
	}
}

func TestTagAttachesToNextRuleEnd(t *testing.T) {
	f := Tag("value", Rule("Number", MatchString("42")))
	next, ok := f(NewState("42"))
	if !ok {
		t.Fatalf("expected match")
	}
	end := next.Queue().Entries[1]
	if end.Tag != "value" {
		t.Fatalf("expected tag 'value' on the End marker, got %q", end.Tag)
	}
}

func TestBuiltinPseudoRules(t *testing.T) {
	any, _ := Builtin(BuiltinAny)
	if next, ok := any(NewState("x")); !ok || next.Position().Offset() != 1 {
		t.Fatalf("expected @any to consume one rune")
	}
	soi, _ := Builtin(BuiltinSOI)
	if _, ok := soi(NewState("x")); !ok {
		t.Fatalf("expected @soi to succeed at the start of input")
	}
	eoi, _ := Builtin(BuiltinEOI)
	if _, ok := eoi(NewState("")); !ok {
		t.Fatalf("expected @eoi to succeed on empty input")
	}
	if _, ok := Builtin("NOT_A_BUILTIN"); ok {
		t.Fatalf("expected unknown pseudo-rule name to report ok=false")
	}
}
