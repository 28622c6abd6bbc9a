// Package stdlib registers the builtin function packages (math, list,
// option, io, value) into the global scope the evaluator runs programs
// against, mirroring the Rust original's stdlib::lib::stdlib() package list
// (io, binary_operator, math, list, option, value) and its per-function
// LibFunction::name()/LibFunction::call() contract.
package stdlib

import (
	"github.com/nois-lang/noisc/pkg/ast"
	"github.com/nois-lang/noisc/pkg/interp"
)

// entry is one builtin registered under one or more names (e.g. add/+ are
// the same function), matching LibFunction::name() returning a Vec<String>.
type entry struct {
	names []ast.Identifier
	fn    interp.BuiltinFunc
}

func def(fn interp.BuiltinFunc, names ...string) entry {
	ids := make([]ast.Identifier, len(names))
	for i, n := range names {
		ids[i] = ast.Identifier(n)
	}
	return entry{names: ids, fn: fn}
}

// Global builds the root scope every program's top-level block runs in.
func Global() *interp.Scope {
	scope := interp.NewScope("global")
	for _, pkg := range [][]entry{ioPackage(), mathPackage(), listPackage(), optionPackage(), valuePackage()} {
		for _, e := range pkg {
			for _, name := range e.names {
				scope.Define(name, interp.SystemDef{Fn: e.fn})
			}
		}
	}
	return scope
}
