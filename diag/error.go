/*
Package diag carries structured parse and build errors for the grammar
toolchain (spec.md §4.7, §7).

Two independent error families are modeled:

  - a parse error, raised by the parser runtime at the furthest point any
    alternative was attempted, carrying the aggregated sets of rules that
    were tried and either succeeded-if-present (positive) or
    succeeded-if-absent (negative);
  - a build error, raised while lowering grammar source into the IR or
    while optimising it, carrying a span into the *grammar* source rather
    than the parsed input.

Both are modeled by YError, translated from
original_source/projects/ygg-rt/src/errors/mod.rs into idiomatic Go: a
struct implementing error, rather than a generic-parameterized Rust enum.
*/
package diag

import (
	"fmt"
	"strings"

	"github.com/npillmayer/schuko/tracing"

	"github.com/project-yggdrasil/yggdrasil"
)

// tracer traces with key 'yggdrasil.diag'.
func tracer() tracing.Trace {
	return tracing.Select("yggdrasil.diag")
}

// Kind discriminates the variants of an error (spec.md §4.7).
type Kind int

const (
	// ParsingError is a recoverable failure of a parse alternative,
	// carrying the furthest-failure attempt sets.
	ParsingError Kind = iota
	// InvalidNode means a node had the wrong child shape while being
	// lowered from the bootstrap parse tree.
	InvalidNode
	// InvalidTag means a tag was unknown or misplaced.
	InvalidTag
	// CustomError is a pass-specific message.
	CustomError
)

func (k Kind) String() string {
	switch k {
	case ParsingError:
		return "ParsingError"
	case InvalidNode:
		return "InvalidNode"
	case InvalidTag:
		return "InvalidTag"
	case CustomError:
		return "CustomError"
	default:
		return "UnknownErrorKind"
	}
}

// Location is where a YError occurred: either a single offset, or a span.
type Location struct {
	isSpan     bool
	pos        int
	start, end int
}

// Pos builds a point Location.
func Pos(offset int) Location { return Location{pos: offset} }

// SpanLoc builds a ranged Location.
func SpanLoc(start, end int) Location { return Location{isSpan: true, start: start, end: end} }

func (l Location) String() string {
	if l.isSpan {
		return fmt.Sprintf("%d..%d", l.start, l.end)
	}
	return fmt.Sprintf("%d", l.pos)
}

// YError is the structured error type shared by the parser runtime and the
// IR builder/optimiser.
type YError struct {
	Kind      Kind
	Location  Location
	Positives []string // rule names attempted positively
	Negatives []string // rule names attempted negatively (negated lookahead)
	Expect    string   // for InvalidNode / InvalidTag
	Custom    string   // for CustomError, and the rewritten text of renamed ParsingErrors

	path          string
	line          string
	continuedLine string
}

// NewParsingError builds a ParsingError at a byte offset, with the
// aggregated furthest-failure attempt sets (spec.md §4.2).
func NewParsingError(input string, offset int, positives, negatives []string) *YError {
	pos := yggdrasil.NewPosition(input, offset)
	e := &YError{
		Kind:      ParsingError,
		Location:  Pos(offset),
		Positives: positives,
		Negatives: negatives,
	}
	line := pos.LineOf()
	visualizeWS := line == "" && hasEOL(pos)
	if visualizeWS {
		// LineOf strips the terminator; keep it so it can be shown.
		line = input[offset:]
		if nl := strings.IndexByte(line, '\n'); nl >= 0 {
			line = line[:nl+1]
		}
	}
	e.fillContext(line, visualizeWS)
	tracer().Debugf("parsing error at %d: +%v -%v", offset, positives, negatives)
	return e
}

func hasEOL(p yggdrasil.Position) bool {
	_, nl := p.MatchChar('\n')
	if nl {
		return true
	}
	_, cr := p.MatchChar('\r')
	return cr
}

// NewInvalidNode builds an InvalidNode build error over a grammar-source
// span.
func NewInvalidNode(expect string, input string, start, end int) *YError {
	e := &YError{Kind: InvalidNode, Location: SpanLoc(start, end), Expect: expect}
	e.fillSpanContext(input, start, end)
	return e
}

// NewInvalidTag builds an InvalidTag build error.
func NewInvalidTag(expect string, input string, start, end int) *YError {
	e := &YError{Kind: InvalidTag, Location: SpanLoc(start, end), Expect: expect}
	e.fillSpanContext(input, start, end)
	return e
}

// NewCustomError builds a pass-specific message error over a grammar-source
// span.
func NewCustomError(message string, input string, start, end int) *YError {
	e := &YError{Kind: CustomError, Location: SpanLoc(start, end), Custom: message}
	e.fillSpanContext(input, start, end)
	return e
}

func (e *YError) fillContext(line string, visualizeWS bool) {
	if visualizeWS {
		line = visualizeWhitespace(line)
	} else {
		line = strings.NewReplacer("\r", "", "\n", "").Replace(line)
	}
	e.line = line
}

func (e *YError) fillSpanContext(input string, start, end int) {
	startPos := yggdrasil.NewPosition(input, start)
	endPos := yggdrasil.NewPosition(input, end)
	span := startPos.Span(endPos)
	lines := span.Lines()
	visualizeWS := strings.HasPrefix(span.AsStr(), "\n") || strings.HasPrefix(span.AsStr(), "\r") ||
		strings.HasSuffix(span.AsStr(), "\n") || strings.HasSuffix(span.AsStr(), "\r")
	var sl, ll string
	if len(lines) > 0 {
		sl = lines[0]
	}
	if len(lines) > 1 {
		ll = lines[len(lines)-1]
	}
	if visualizeWS {
		e.line = visualizeWhitespace(sl)
		if ll != "" {
			cl := visualizeWhitespace(ll)
			e.continuedLine = cl
		}
	} else {
		e.line = strings.NewReplacer("\r", "", "\n", "").Replace(sl)
		if len(lines) > 1 {
			cl := strings.NewReplacer("\r", "", "\n", "").Replace(ll)
			e.continuedLine = cl
		}
	}
}

func visualizeWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\r", "␍")
	s = strings.ReplaceAll(s, "\n", "␊")
	return s
}

// WithPath attaches a source path to the error, shown when formatted.
func (e *YError) WithPath(path string) *YError {
	e.path = path
	return e
}

// Path returns the path set by WithPath, if any.
func (e *YError) Path() string { return e.path }

// Line returns the failing line (or the start line of a span), with
// whitespace visualized if the failing line is itself a line terminator.
func (e *YError) Line() string { return e.line }

// ContinuedLine returns the last line of a multi-line span, if any.
func (e *YError) ContinuedLine() string { return e.continuedLine }

// RenamedRules rewrites a ParsingError into a CustomError whose message
// enumerates f(rule) for positives and negatives, following the exact
// branching of original_source's YggdrasilError::parsing_error_message.
func (e *YError) RenamedRules(f func(rule string) string) *YError {
	if e.Kind != ParsingError {
		return e
	}
	msg := parsingErrorMessage(e.Positives, e.Negatives, f)
	return &YError{
		Kind:          CustomError,
		Location:      e.Location,
		Custom:        msg,
		path:          e.path,
		line:          e.line,
		continuedLine: e.continuedLine,
	}
}

func parsingErrorMessage(positives, negatives []string, f func(string) string) string {
	switch {
	case len(negatives) > 0 && len(positives) > 0:
		return fmt.Sprintf("unexpected %s; expected %s", enumerate(negatives, f), enumerate(positives, f))
	case len(negatives) > 0:
		return fmt.Sprintf("unexpected %s", enumerate(negatives, f))
	case len(positives) > 0:
		return fmt.Sprintf("expected %s", enumerate(positives, f))
	default:
		return "unknown parsing error"
	}
}

func enumerate(rules []string, f func(string) string) string {
	switch len(rules) {
	case 0:
		return ""
	case 1:
		return f(rules[0])
	case 2:
		return fmt.Sprintf("%s or %s", f(rules[0]), f(rules[1]))
	default:
		names := make([]string, len(rules))
		for i, r := range rules {
			names[i] = f(r)
		}
		last := names[len(names)-1]
		head := strings.Join(names[:len(names)-1], ", ")
		return fmt.Sprintf("%s, or %s", head, last)
	}
}

// Message renders the human-readable message for e, independent of Kind.
func (e *YError) Message() string {
	switch e.Kind {
	case ParsingError:
		return parsingErrorMessage(e.Positives, e.Negatives, func(r string) string { return r })
	case CustomError:
		return e.Custom
	case InvalidNode:
		return fmt.Sprintf("invalid node, expected node %s", e.Expect)
	case InvalidTag:
		return fmt.Sprintf("invalid tag, expected %s", e.Expect)
	default:
		return "unknown error"
	}
}

// Error implements the error interface.
func (e *YError) Error() string {
	var b strings.Builder
	if e.path != "" {
		fmt.Fprintf(&b, "%s: ", e.path)
	}
	switch e.Kind {
	case ParsingError:
		fmt.Fprintf(&b, "parsing error: %s", e.Message())
	default:
		b.WriteString(e.Message())
	}
	fmt.Fprintf(&b, " (at %s)", e.Location)
	return b.String()
}
