package optimize

import (
	"fmt"

	"github.com/project-yggdrasil/yggdrasil"
	"github.com/project-yggdrasil/yggdrasil/ir"
)

// Severity classifies a Diagnostic.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Diagnostic is a pass-reported problem that doesn't necessarily abort the
// pipeline — only EmitFunction's errors (an unknown function, or a builtin
// given the wrong number of arguments) are fatal (spec.md §4.6, §7).
type Diagnostic struct {
	Severity Severity
	Pass     string
	Rule     string
	Message  string
	Span     yggdrasil.Span
}

func (d Diagnostic) String() string {
	if d.Rule != "" {
		return fmt.Sprintf("%s: [%s] %s: %s", d.Severity, d.Pass, d.Rule, d.Message)
	}
	return fmt.Sprintf("%s: [%s] %s", d.Severity, d.Pass, d.Message)
}

// FieldDescriptor describes one semantic field an emitter should generate
// for a rule's associated node type (spec.md §4.6's CodeOptimizer
// signature names these as pipeline output; the shape mirrors the emitter
// contract's "per-expression tags" in spec.md §6). No pass in Pipeline
// returns any descriptors, so the field list Run returns is always empty.
type FieldDescriptor struct {
	Rule     string
	Name     string // from an Expression.Tag
	Repeated bool   // under Operator.Repeats / Repeat1
	Optional bool   // under Operator.Optional
}

// CodeOptimizer is a single pass: GrammarInfo -> (GrammarInfo, fields,
// diagnostics). Passes mutate g in place and return it for chaining
// convenience; they never fail outright (spec.md §4.6, "each pass is
// total").
type CodeOptimizer func(g *ir.GrammarInfo) (*ir.GrammarInfo, []FieldDescriptor, []Diagnostic)

// Pipeline is the fixed pass order the driver runs (spec.md §4.6). Order
// matters: InsertIgnore must run after InlineRules so inlined bodies
// inherit the call site's ignores; DeadCodeEliminator must run after
// InlineRules so an inlined rule's now-orphaned definition can be dropped.
var Pipeline = []CodeOptimizer{
	RefineRules,
	InlineRules,
	FusionRules,
	DeadCodeEliminator,
	InsertIgnore,
	RemarkTags,
	EmitFunction,
}

// Run executes Pipeline in order over g, accumulating field descriptors
// and diagnostics across all passes. A fatal diagnostic (currently only
// ever produced by EmitFunction) does not stop earlier passes from having
// run, matching spec.md §7's "only EmitFunction and a fully failed parse
// are fatal" — fatality here means the caller should refuse to emit, not
// that the pipeline aborts mid-flight.
func Run(g *ir.GrammarInfo) (*ir.GrammarInfo, []FieldDescriptor, []Diagnostic) {
	var allFields []FieldDescriptor
	var allDiags []Diagnostic
	for _, pass := range Pipeline {
		var fields []FieldDescriptor
		var diags []Diagnostic
		g, fields, diags = pass(g)
		allFields = append(allFields, fields...)
		allDiags = append(allDiags, diags...)
	}
	tracer().Infof("optimiser pipeline finished: %d rules, %d diagnostics", g.NumRules(), len(allDiags))
	return g, allFields, allDiags
}

// HasFatal reports whether diags contains an error-severity diagnostic
// from EmitFunction, the only fatal case the pipeline can produce.
func HasFatal(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityError && d.Pass == "EmitFunction" {
			return true
		}
	}
	return false
}
