/*
Package yggdrasil is a parser-generator toolchain for a PEG-flavoured
grammar DSL.

A grammar author writes declarative rules (classes, unions, groups,
atomics) and the system produces an intermediate representation suitable
for optimisation and emission, plus a matching parser runtime that
consumes source text and produces a concrete syntax tree with tagged,
named children. Package structure is as follows:

■ ir: Package ir holds the grammar intermediate representation — rules,
expressions, operators, annotations — with structural equality and
algebraic combinators.

■ ir/optimize: Package optimize runs a fixed-order pipeline of semantic
passes over an ir.GrammarInfo.

■ regex: Package regex compiles in-grammar regular expressions into
serialised DFA byte tables.

■ runtime: Package runtime implements the backtracking PEG parser driver:
parser state, combinators, and a token queue.

■ runtime/cst: Package cst reifies a frozen token queue into an immutable
concrete syntax tree.

■ diag: Package diag carries structured parse and build errors.

■ bast: Package bast defines the bootstrap AST a grammar-DSL source file
parses into, and ir/builder lowers into ir.GrammarInfo.

■ bast/scanner (+ lexmach): Package scanner tokenizes grammar-DSL source
text, with a lexmachine-backed implementation in sub-package lexmach.

■ driver: Package driver exposes the single embedding entry point from
grammar source to optimised IR.

■ external: Package external fixes the CLI/config/emitter contract
shapes a tool built against this module would exchange with it.

The base package contains data types used throughout all the other
packages: byte-offset positions and spans over the input.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package yggdrasil
