/*
Package external fixes the shapes a CLI, config loader, or code-gen
emitter would exchange with this module (spec.md §6). None of those three
things are implemented here — spec.md §1 lists the CLI and emitters as
explicitly out of scope — but driver.Compile's inputs and outputs need a
stable contract so an out-of-tree tool can be built against this module
without reaching into ir/optimize internals.
*/
package external

import (
	"strings"

	"github.com/project-yggdrasil/yggdrasil/ir"
	"github.com/project-yggdrasil/yggdrasil/ir/optimize"
)

// Subcommand names the two operations the excluded CLI exposes.
type Subcommand string

const (
	// SubcommandBuild emits target source for a grammar.
	SubcommandBuild Subcommand = "build"
	// SubcommandCheck runs the optimiser and prints diagnostics only.
	SubcommandCheck Subcommand = "check"
)

// Invocation is the parsed shape of `yggdrasil build <grammar>` / `yggdrasil
// check <grammar>`; building this from os.Args is out of scope here.
type Invocation struct {
	Subcommand Subcommand
	Grammar    string // path to the grammar source file
}

// ExitCode mirrors the three exit codes a CLI built against this module
// must return.
type ExitCode int

const (
	// ExitSuccess is returned when build/check completes with no errors.
	ExitSuccess ExitCode = 0
	// ExitParseOrIRError is returned on a parse error or a build/optimiser error.
	ExitParseOrIRError ExitCode = 1
	// ExitConfigError is returned when Yggdrasil.json5 itself is invalid.
	ExitConfigError ExitCode = 2
)

// Config is what a CLI or config file would populate before calling
// driver.Compile; parsing Yggdrasil.json5 into this shape is out of scope
// here. Field names and defaults follow the recognised Yggdrasil.json5 keys.
type Config struct {
	Language string   // enum, initial value "rust"
	Export   []string
	Includes []string
	Excludes []string
}

// EmitterRequest is everything a code generator needs once a grammar has
// cleared the optimiser pipeline: the optimised IR, the field
// descriptors the passes returned (none of the current passes returns
// any), and every diagnostic raised along the way.
type EmitterRequest struct {
	Grammar     *ir.GrammarInfo
	Fields      []optimize.FieldDescriptor
	Diagnostics []optimize.Diagnostic
}

// RegexConstantName renders the emitter-contract naming rule for a
// compiled regex's generated constant (spec.md §6): REGEX_ followed by
// the uppercase hex digest. ir.YggdrasilRegex.ConstantName already
// applies this; it's re-exported here so an emitter can depend on
// external instead of reaching into ir directly for a pure naming rule.
func RegexConstantName(hash string) string {
	return "REGEX_" + strings.ToUpper(hash)
}
