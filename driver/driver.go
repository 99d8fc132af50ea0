/*
Package driver is the single entry point wiring the IR builder to the
optimiser pipeline (spec.md §2's "driver" component budget): given a
bootstrap-parsed grammar, it lowers it to IR, runs the fixed seven-pass
pipeline, and reports every build error and optimiser diagnostic it
collected along the way rather than stopping at the first.
*/
package driver

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"

	"github.com/project-yggdrasil/yggdrasil/bast"
	"github.com/project-yggdrasil/yggdrasil/ir"
	irbuilder "github.com/project-yggdrasil/yggdrasil/ir/builder"
	"github.com/project-yggdrasil/yggdrasil/ir/optimize"
)

// tracer traces with key 'yggdrasil.driver'.
func tracer() tracing.Trace {
	return tracing.Select("yggdrasil.driver")
}

// Result bundles every artifact a caller (a future emitter, or a test)
// needs from a compile: the optimised GrammarInfo, the field descriptors
// the passes returned (none of the current passes returns any, so Fields
// is empty), and every diagnostic raised along the way, successful or not.
type Result struct {
	Grammar     *ir.GrammarInfo
	Fields      []optimize.FieldDescriptor
	Diagnostics []optimize.Diagnostic
	BuildErrors []error
}

// Compile lowers doc into IR and runs it through the optimiser pipeline.
// source is the original grammar text, used only to build diagnostics
// with source context; it does not have to equal the text that produced
// doc if doc was built programmatically (e.g. by a test).
func Compile(doc *bast.Node, source string) (*Result, error) {
	g, errs := irbuilder.Build(doc, source)
	if len(errs) > 0 {
		tracer().Errorf("grammar %q failed to build: %d error(s)", doc.Attr("name"), len(errs))
		return &Result{BuildErrors: errs}, fmt.Errorf("%d build error(s), first: %w", len(errs), errs[0])
	}

	optimised, fields, diags := optimize.Run(g)
	result := &Result{Grammar: optimised, Fields: fields, Diagnostics: diags}
	if optimize.HasFatal(diags) {
		tracer().Errorf("grammar %q failed optimisation", doc.Attr("name"))
		return result, fmt.Errorf("optimiser reported a fatal diagnostic, see Diagnostics")
	}
	tracer().Infof("grammar %q compiled: %d rule(s), %d diagnostic(s)", doc.Attr("name"), optimised.NumRules(), len(diags))
	return result, nil
}
