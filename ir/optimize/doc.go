/*
Package optimize implements the grammar optimiser pipeline (spec.md §4.6):
a fixed-order sequence of total, idempotent passes that rewrite a
*ir.GrammarInfo in place, each returning field descriptors for whatever an
emitter should generate and a list of diagnostics.

Grounded on original_source/projects/ygg-core/src/optimize/mod.rs, which
names the same seven passes in the same order; the Go rewrite keeps the
pass list and ordering invariant but expresses each pass as a plain
function over *ir.GrammarInfo rather than a trait object, per spec.md §9.
*/
package optimize

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'yggdrasil.ir.optimize'.
func tracer() tracing.Trace {
	return tracing.Select("yggdrasil.ir.optimize")
}
