package regex

import (
	"encoding/binary"
	"fmt"
	"regexp/syntax"
	"strings"

	"github.com/cnf/structhash"
)

// Regex is a compiled regex literal (spec.md §4.4): the raw source plus
// four serialised DFA byte tables, one per (direction, byte order) pair.
// Equality and hashing are defined over the compiled bytes rather than the
// raw source, so that two syntactically different patterns compiling to
// the same automaton collapse to a single constant, the way the IR's
// rule deduplication expects.
type Regex struct {
	Raw string

	ForwardLE []byte
	ForwardBE []byte
	ReverseLE []byte
	ReverseBE []byte

	forward  *dfa
	backward *dfa
}

// Compile anchors raw (so that matches must start at the given offset,
// never drift forward looking for one) and compiles it into a Regex.
func Compile(raw string) (*Regex, error) {
	anchored := "^(?:" + raw + ")"
	re, err := syntax.Parse(anchored, syntax.Perl)
	if err != nil {
		return nil, fmt.Errorf("regex: invalid pattern %q: %w", raw, err)
	}
	re = re.Simplify()

	n, err := compileToNFA(re)
	if err != nil {
		return nil, fmt.Errorf("regex: %q: %w", raw, err)
	}
	fwd := buildDFA(n)
	rev := buildDFA(reverseNFA(n))

	r := &Regex{
		Raw:       raw,
		ForwardLE: serializeDFA(fwd, binary.LittleEndian),
		ForwardBE: serializeDFA(fwd, binary.BigEndian),
		ReverseLE: serializeDFA(rev, binary.LittleEndian),
		ReverseBE: serializeDFA(rev, binary.BigEndian),
		forward:   fwd,
		backward:  rev,
	}
	tracer().Debugf("compiled regex %q: %d forward states, %d reverse states",
		raw, len(fwd.states), len(rev.states))
	return r, nil
}

// FromTables reconstructs a Regex purely from its four serialised tables,
// the form an emitted parser would load at startup rather than recompile.
func FromTables(raw string, forwardLE, forwardBE, reverseLE, reverseBE []byte) (*Regex, error) {
	fwd, err := deserializeDFA(forwardLE, binary.LittleEndian)
	if err != nil {
		return nil, fmt.Errorf("regex: corrupt forward table: %w", err)
	}
	rev, err := deserializeDFA(reverseLE, binary.LittleEndian)
	if err != nil {
		return nil, fmt.Errorf("regex: corrupt reverse table: %w", err)
	}
	return &Regex{
		Raw:       raw,
		ForwardLE: forwardLE,
		ForwardBE: forwardBE,
		ReverseLE: reverseLE,
		ReverseBE: reverseBE,
		forward:   fwd,
		backward:  rev,
	}, nil
}

// MatchAt runs the forward DFA against input starting at offset, returning
// the length in bytes of the longest match (PEG regex literals are
// greedy-longest, matching Pest's char-by-char regex adapter) and whether
// any match was found at all.
func (r *Regex) MatchAt(input string, offset int) (length int, ok bool) {
	return runForward(r.forward, input, offset)
}

// MatchEndingAt runs the reverse DFA backward from offset, returning the
// length of the longest match that ends exactly at offset.
func (r *Regex) MatchEndingAt(input string, offset int) (length int, ok bool) {
	return runBackward(r.backward, input, offset)
}

func runForward(d *dfa, input string, offset int) (int, bool) {
	state := d.start
	best := -1
	if d.states[state].accept {
		best = 0
	}
	for i := offset; i < len(input); i++ {
		next := d.states[state].trans[input[i]]
		if next <= 0 {
			break
		}
		state = next
		if d.states[state].accept {
			best = i + 1 - offset
		}
	}
	if best < 0 {
		return 0, false
	}
	return best, true
}

func runBackward(d *dfa, input string, offset int) (int, bool) {
	state := d.start
	best := -1
	if d.states[state].accept {
		best = 0
	}
	for i := offset - 1; i >= 0; i-- {
		next := d.states[state].trans[input[i]]
		if next <= 0 {
			break
		}
		state = next
		if d.states[state].accept {
			best = offset - i
		}
	}
	if best < 0 {
		return 0, false
	}
	return best, true
}

// tablesDigest is the structure hashed to derive a Regex's constant name;
// it intentionally excludes Raw, since two different source patterns that
// happen to compile to the same automaton must hash identically.
type tablesDigest struct {
	ForwardLE []byte
	ForwardBE []byte
	ReverseLE []byte
	ReverseBE []byte
}

// Hash returns a hex digest of the compiled tables, suitable for the
// REGEX_<HEX> constant names an emitter assigns (spec.md §4.4).
func (r *Regex) Hash() (string, error) {
	digest := tablesDigest{r.ForwardLE, r.ForwardBE, r.ReverseLE, r.ReverseBE}
	h, err := structhash.Hash(digest, 1)
	if err != nil {
		return "", fmt.Errorf("regex: hashing compiled tables: %w", err)
	}
	// structhash.Hash returns "v1_<hex>"; strip the version prefix, we
	// already pin the version by calling with 1 explicitly.
	if idx := strings.IndexByte(h, '_'); idx >= 0 {
		h = h[idx+1:]
	}
	return h, nil
}

// ConstantName returns the REGEX_<HEX> identifier an emitter would bind
// this Regex's tables to.
func (r *Regex) ConstantName() (string, error) {
	h, err := r.Hash()
	if err != nil {
		return "", err
	}
	return "REGEX_" + strings.ToUpper(h), nil
}

// Equal reports whether r and other compile to byte-identical automatons,
// regardless of whether their raw sources are textually equal.
func (r *Regex) Equal(other *Regex) bool {
	if other == nil {
		return false
	}
	return bytes32Equal(r.ForwardLE, other.ForwardLE) &&
		bytes32Equal(r.ReverseLE, other.ReverseLE)
}

func bytes32Equal(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
