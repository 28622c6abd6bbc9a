package stdlib

import "github.com/nois-lang/noisc/pkg/interp"

// valuePackage mirrors stdlib::value::package(): type() surfaces
// interp.ValueTypeOf as a callable builtin.
func valuePackage() []entry {
	return []entry{def(type_, "type")}
}

func type_(args []interp.Value, ctx *interp.Context) (interp.Value, error) {
	if len(args) != 1 {
		return nil, argError("(*)", args)
	}
	return interp.ValueTypeOf(args[0]), nil
}
