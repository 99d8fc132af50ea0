/*
Package ir defines the grammar intermediate representation (spec.md §3):
GrammarInfo, GrammarRule, Expression, ExpressionKind, Operator, DataKind and
the compiled-regex wrapper YggdrasilRegex.

The IR is produced by ir/builder lowering a bootstrap parse tree, rewritten
in place by the ordered passes in ir/optimize, and finally handed, read-only,
to an external emitter. Rule cross-references are always by name — an
ordered map from rule name to *GrammarRule — never by pointer, so that
mutual recursion, diagnostics, and pass rewrites all stay simple (spec.md
§9, "cyclic rule graphs").

Grounded on original_source/projects/ygg-ir/src/nodes/mod.rs and
ygg-core/src/ygg/mod.rs, translated from Rust's trait-object node hierarchy
into Go's idiom of explicit tagged-union structs (spec.md §9, "deep trait
hierarchies in the source").
*/
package ir

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'yggdrasil.ir'.
func tracer() tracing.Trace {
	return tracing.Select("yggdrasil.ir")
}
