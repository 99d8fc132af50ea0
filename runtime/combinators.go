package runtime

// ParseFunc attempts to advance a State. On success it returns the
// resulting State and true; on failure it returns false together with the
// State it was given, its queue truncated back — furthest-failure information
// is recorded as a side effect on the shared FailureSet instead of being
// threaded back through the return value (spec.md §4.2).
type ParseFunc func(s State) (State, bool)

// Rule wraps body with a named Start/End pair in the TokenQueue. On
// failure it truncates away anything body wrote and records id into the
// furthest-failure set at the offset where the attempt began. On
// success it closes the End marker, attaching whatever tag was pending
// from an enclosing Tag combinator.
func Rule(id string, body ParseFunc) ParseFunc {
	return func(s State) (State, bool) {
		tag := s.tag
		inner := s
		inner.tag = ""
		startLen := s.queue.Len()
		startOffset := s.pos.Offset()
		startIdx := s.queue.openStart(id, startOffset)

		next, ok := body(inner)
		if !ok {
			s.queue.truncate(startLen)
			if !s.InLookahead() {
				s.failure.recordPositive(id, startOffset)
			}
			return s, false
		}
		next.queue.closeEnd(startIdx, id, next.pos.Offset(), tag)
		next.tag = ""
		return next, true
	}
}

// RuleNeg behaves like Rule but records id as a Negative on failure
// instead of a Positive — for wrapping a negative lookahead so furthest-
// failure diagnostics can report "X is forbidden here" rather than "X
// was expected here".
func RuleNeg(id string, body ParseFunc) ParseFunc {
	return func(s State) (State, bool) {
		tag := s.tag
		inner := s
		inner.tag = ""
		startLen := s.queue.Len()
		startOffset := s.pos.Offset()
		startIdx := s.queue.openStart(id, startOffset)

		next, ok := body(inner)
		if !ok {
			s.queue.truncate(startLen)
			if !s.InLookahead() {
				s.failure.recordNegative(id, startOffset)
			}
			return s, false
		}
		next.queue.closeEnd(startIdx, id, next.pos.Offset(), tag)
		next.tag = ""
		return next, true
	}
}

// Sequence chains terms, succeeding only if every term succeeds in
// order. On failure it discards whatever the partially matched prefix
// wrote to the queue and returns the caller's original state unchanged.
func Sequence(terms ...ParseFunc) ParseFunc {
	return func(s State) (State, bool) {
		startLen := s.queue.Len()
		cur := s
		for _, f := range terms {
			next, ok := f(cur)
			if !ok {
				s.queue.truncate(startLen)
				return s, false
			}
			cur = next
		}
		return cur, true
	}
}

// Concat is Sequence augmented with automatic ignore-rule insertion: in
// ModeNormal, repeat(ignore) is spliced between consecutive terms before
// each one is attempted. In ModeAtomic or ModeCompoundAtomic, ignore is
// never consulted (spec.md §4.2). Pass a nil ignore to behave exactly
// like Sequence.
func Concat(ignore ParseFunc, terms ...ParseFunc) ParseFunc {
	return func(s State) (State, bool) {
		startLen := s.queue.Len()
		cur := s
		for i, f := range terms {
			if i > 0 && ignore != nil && cur.mode() == ModeNormal {
				if next, ok := Repeat(ignore)(cur); ok {
					cur = next
				}
			}
			next, ok := f(cur)
			if !ok {
				s.queue.truncate(startLen)
				return s, false
			}
			cur = next
		}
		return cur, true
	}
}

// Choice tries each alternative in order against the same starting
// state and commits to the first success (PEG ordered choice, not
// longest match). Failed alternatives have their queue writes discarded
// before the next one is tried.
func Choice(alternatives ...ParseFunc) ParseFunc {
	return func(s State) (State, bool) {
		startLen := s.queue.Len()
		for _, f := range alternatives {
			if next, ok := f(s); ok {
				return next, true
			}
			s.queue.truncate(startLen)
		}
		return s, false
	}
}

// Optional never fails: it succeeds with body's result if body succeeds,
// or with the unchanged input state otherwise.
func Optional(body ParseFunc) ParseFunc {
	return func(s State) (State, bool) {
		startLen := s.queue.Len()
		if next, ok := body(s); ok {
			return next, true
		}
		s.queue.truncate(startLen)
		return s, true
	}
}

// Repeat matches body zero or more times, greedily, and never fails.
// It stops as soon as body fails, or as soon as body succeeds without
// consuming any input — the latter guards against an infinite loop on a
// body capable of a zero-width match (spec.md §5, §8).
func Repeat(body ParseFunc) ParseFunc {
	return func(s State) (State, bool) {
		cur := s
		for {
			before := cur.pos.Offset()
			next, ok := body(cur)
			if !ok {
				break
			}
			cur = next
			if cur.pos.Offset() == before {
				break
			}
		}
		return cur, true
	}
}

// RepeatMinMax matches body greedily, succeeding iff the number of
// matches falls within [min, max]. A negative max means unbounded.
func RepeatMinMax(min, max int, body ParseFunc) ParseFunc {
	return func(s State) (State, bool) {
		startLen := s.queue.Len()
		cur := s
		count := 0
		for max < 0 || count < max {
			before := cur.pos.Offset()
			next, ok := body(cur)
			if !ok {
				break
			}
			cur = next
			count++
			if cur.pos.Offset() == before {
				break
			}
		}
		if count < min {
			s.queue.truncate(startLen)
			return s, false
		}
		return cur, true
	}
}

// Atomic runs body with mode pushed onto the mode stack, restoring the
// caller's stack afterward regardless of outcome. When mode is
// ModeCompoundAtomic, any queue entries body wrote are discarded on
// success too, so the whole region surfaces as a single token emitted
// by whichever enclosing Rule call wraps this Atomic (spec.md §4.2).
func Atomic(mode Mode, body ParseFunc) ParseFunc {
	return func(s State) (State, bool) {
		inner := s
		inner.modes = append(append([]Mode{}, s.modes...), mode)
		startLen := s.queue.Len()

		next, ok := body(inner)
		if !ok {
			s.queue.truncate(startLen)
			return s, false
		}
		if mode == ModeCompoundAtomic {
			next.queue.truncate(startLen)
		}
		next.modes = s.modes
		return next, true
	}
}

// Lookahead runs body without consuming input: the position is always
// restored and any queue writes are always discarded. It succeeds when
// body's outcome matches positive (true for `&body`, false for `!body`).
func Lookahead(positive bool, body ParseFunc) ParseFunc {
	return func(s State) (State, bool) {
		inner := s
		inner.lookahead = s.lookahead + 1
		startLen := s.queue.Len()

		_, ok := body(inner)
		s.queue.truncate(startLen)
		return s, ok == positive
	}
}

// Tag sets the pending tag before running body; the next Rule call
// inside body to close consumes it and attaches it to the End marker
// (spec.md §4.2).
func Tag(name string, body ParseFunc) ParseFunc {
	return func(s State) (State, bool) {
		s.tag = name
		return body(s)
	}
}

// MatchString matches literal text exactly.
func MatchString(text string) ParseFunc {
	return func(s State) (State, bool) {
		next, ok := s.pos.MatchString(text)
		if !ok {
			return s, false
		}
		s.pos = next
		s.failure.noteSuccess(next.Offset())
		return s, true
	}
}

// MatchChar matches a single rune.
func MatchChar(c rune) ParseFunc {
	return func(s State) (State, bool) {
		next, ok := s.pos.MatchChar(c)
		if !ok {
			return s, false
		}
		s.pos = next
		s.failure.noteSuccess(next.Offset())
		return s, true
	}
}

// MatchCharBy matches a single rune satisfying predicate.
func MatchCharBy(predicate func(rune) bool) ParseFunc {
	return func(s State) (State, bool) {
		next, ok := s.pos.MatchCharBy(predicate)
		if !ok {
			return s, false
		}
		s.pos = next
		s.failure.noteSuccess(next.Offset())
		return s, true
	}
}

// EndOfInput succeeds, consuming nothing, iff the cursor is at the end
// of the input.
func EndOfInput() ParseFunc {
	return func(s State) (State, bool) {
		return s, s.pos.AtEnd()
	}
}

// StartOfInput succeeds, consuming nothing, iff the cursor is at the
// start of the input.
func StartOfInput() ParseFunc {
	return func(s State) (State, bool) {
		return s, s.pos.AtStart()
	}
}

// builtinRuleIDs names the reserved pseudo-rules optimize.EmitFunction
// lowers ANY/SOI/EOI to. A driver wiring an IR-lowered grammar to this
// runtime recognizes these instead of looking them up as grammar rules.
const (
	BuiltinAny = "@any"
	BuiltinSOI = "@soi"
	BuiltinEOI = "@eoi"
)

// Builtin resolves one of the reserved pseudo-rule names to its
// ParseFunc, or returns ok=false if name isn't one of them.
func Builtin(name string) (ParseFunc, bool) {
	switch name {
	case BuiltinAny:
		return MatchCharBy(func(r rune) bool { return true }), true
	case BuiltinSOI:
		return StartOfInput(), true
	case BuiltinEOI:
		return EndOfInput(), true
	default:
		return nil, false
	}
}
