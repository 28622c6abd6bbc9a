package stdlib

import "github.com/nois-lang/noisc/pkg/interp"

// optionPackage mirrors stdlib::option::package(): Nois has no dedicated
// option type, so `some`/`none` build the same single-or-zero-element list
// convention the rest of the language already uses for "maybe a value".
func optionPackage() []entry {
	return []entry{
		def(some_, "some"),
		def(none_, "none"),
	}
}

func some_(args []interp.Value, ctx *interp.Context) (interp.Value, error) {
	if len(args) != 1 {
		return nil, argError("(*)", args)
	}
	return interp.List{Items: []interp.Value{args[0]}}, nil
}

func none_(args []interp.Value, ctx *interp.Context) (interp.Value, error) {
	if len(args) != 0 {
		return nil, argError("()", args)
	}
	return interp.List{}, nil
}
