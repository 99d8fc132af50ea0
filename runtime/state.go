package runtime

import (
	"sort"

	yggdrasil "github.com/project-yggdrasil/yggdrasil"
)

// Mode is the current atomicity mode of the parser (spec.md §4.2).
type Mode int

const (
	// ModeNormal is the default mode: ignore rules are auto-inserted
	// between Concat terms and nested rule calls emit their own
	// Start/End markers.
	ModeNormal Mode = iota
	// ModeAtomic suppresses auto-insertion of ignore rules but still lets
	// nested rule calls emit their own markers.
	ModeAtomic
	// ModeCompoundAtomic additionally suppresses markers emitted by
	// nested rule calls, so the whole region surfaces as a single token.
	ModeCompoundAtomic
)

// FailureSet is the furthest-failure record threaded through a parse
// (spec.md §4.2): the offset of the furthest position any primitive
// match reached, plus the set of rule names that were attempted there
// (Positives for ordinary rule calls, Negatives for failed negative
// lookaheads). It is held by pointer and shared across every copy of a
// State, so it survives backtracking even though Position does not.
type FailureSet struct {
	offset    int
	positives map[string]bool
	negatives map[string]bool
}

func newFailureSet() *FailureSet {
	return &FailureSet{positives: map[string]bool{}, negatives: map[string]bool{}}
}

func (fs *FailureSet) record(rule string, offset int, positive bool) {
	if offset > fs.offset {
		fs.offset = offset
		fs.positives = map[string]bool{}
		fs.negatives = map[string]bool{}
	}
	if offset < fs.offset {
		return
	}
	if positive {
		fs.positives[rule] = true
	} else {
		fs.negatives[rule] = true
	}
}

func (fs *FailureSet) recordPositive(rule string, offset int) { fs.record(rule, offset, true) }
func (fs *FailureSet) recordNegative(rule string, offset int) { fs.record(rule, offset, false) }

// noteSuccess clears the accumulated rule sets whenever a successful,
// consuming match advances past the furthest-failure offset — failures
// at or before an offset the parse has since moved past are no longer
// useful for diagnostics (spec.md §4.2).
func (fs *FailureSet) noteSuccess(offset int) {
	if offset > fs.offset {
		fs.offset = offset
		fs.positives = map[string]bool{}
		fs.negatives = map[string]bool{}
	}
}

// Offset returns the furthest byte offset reached by any attempt.
func (fs *FailureSet) Offset() int { return fs.offset }

// Positives returns, in sorted order, the rule names attempted (and
// failed) at Offset.
func (fs *FailureSet) Positives() []string { return sortedKeys(fs.positives) }

// Negatives returns, in sorted order, the rule names whose negative
// lookahead failed at Offset (i.e. the forbidden input was present).
func (fs *FailureSet) Negatives() []string { return sortedKeys(fs.negatives) }

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// State is the value threaded through every combinator (spec.md §4.2).
// pos and tag are genuinely per-branch and are copied by value; queue and
// failure are shared by pointer across every copy so writes to the
// queue and furthest-failure bookkeeping are visible regardless of which
// branch eventually wins.
type State struct {
	pos       yggdrasil.Position
	modes     []Mode
	lookahead int
	queue     *TokenQueue
	failure   *FailureSet
	tag       string
}

// NewState creates the initial State for parsing input, backed by a
// fresh, empty TokenQueue.
func NewState(input string) State {
	return State{
		pos:     yggdrasil.StartPosition(input),
		queue:   NewTokenQueue(),
		failure: newFailureSet(),
	}
}

// Position returns the current cursor.
func (s State) Position() yggdrasil.Position { return s.pos }

// Queue returns the TokenQueue this state is writing to. Callers should
// treat it as read-only except through the combinators in this package.
func (s State) Queue() *TokenQueue { return s.queue }

// Failure returns the furthest-failure record accumulated so far.
func (s State) Failure() *FailureSet { return s.failure }

// mode reports the active atomicity mode, ModeNormal when the stack is
// empty.
func (s State) mode() Mode {
	if len(s.modes) == 0 {
		return ModeNormal
	}
	return s.modes[len(s.modes)-1]
}

// InLookahead reports whether s is nested inside a Lookahead combinator.
// Rule and RuleNeg consult this to skip furthest-failure recording for a
// failure inside an exploratory lookahead probe — Lookahead discards the
// probe's outcome either way, so recording it would only add noise to
// the diagnostic that eventually surfaces.
func (s State) InLookahead() bool { return s.lookahead > 0 }
