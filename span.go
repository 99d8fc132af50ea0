package yggdrasil

import "strings"

// Span is a pair of positions over the same input, with start <= end, both
// on code-point boundaries. It plays the same role gorgo.Span plays for LR
// token runs (see gorgo.go), generalised to code-point-safe slicing of
// arbitrary UTF-8 input rather than a [from,to) pair of uint64s.
type Span struct {
	start, end Position
}

// NewSpan builds a Span, panicking if start and end don't share an input or
// start is after end — both are programmer errors, never a consequence of
// malformed input.
func NewSpan(start, end Position) Span {
	if start.input != end.input {
		panic("yggdrasil: span start and end reference different inputs")
	}
	if start.offset > end.offset {
		panic("yggdrasil: span start after end")
	}
	return Span{start: start, end: end}
}

// Start returns the span's start position.
func (s Span) Start() Position { return s.start }

// End returns the span's end position.
func (s Span) End() Position { return s.end }

// Len returns the span's length in bytes.
func (s Span) Len() int { return s.end.offset - s.start.offset }

// AsStr returns the slice of input covered by s.
func (s Span) AsStr() string {
	return s.start.input[s.start.offset:s.end.offset]
}

// Split returns the span's two endpoints.
func (s Span) Split() (start, end Position) {
	return s.start, s.end
}

// Lines returns the substrings of the input's lines that s covers, with
// partial first/last lines — mirroring TextSpan::lines() in the Rust
// original (original_source/projects/ygg-rt/src/errors/mod.rs uses exactly
// this to build error context lines).
func (s Span) Lines() []string {
	text := s.AsStr()
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// Extend grows s to cover other as well, taking the min of the starts and
// the max of the ends.
func (s Span) Extend(other Span) Span {
	start := s.start
	if other.start.offset < start.offset {
		start = other.start
	}
	end := s.end
	if other.end.offset > end.offset {
		end = other.end
	}
	return Span{start: start, end: end}
}

// IsEmpty reports whether the span covers zero bytes.
func (s Span) IsEmpty() bool { return s.start.offset == s.end.offset }
