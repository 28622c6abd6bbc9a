package stdlib

import (
	"strings"

	"github.com/nois-lang/noisc/pkg/interp"
)

// argError mirrors stdlib::lib::arg_error: it reports the expected call
// shape against the actual argument types received.
func argError(expected string, args []interp.Value) error {
	types := make([]string, len(args))
	for i, a := range args {
		types[i] = interp.ValueTypeOf(a).Display()
	}
	return interp.NewError(interp.ArityOrTypeError, "expected %s, found (%s)", expected, strings.Join(types, ", "))
}

func wantList(v interp.Value) (interp.List, bool) {
	l, ok := v.(interp.List)
	return l, ok
}

func wantInt(v interp.Value) (int64, bool) {
	i, ok := v.(interp.Int)
	return i.V, ok
}

func wantBool(v interp.Value) (bool, bool) {
	b, ok := v.(interp.Bool)
	return b.V, ok
}

// fromRelativeIndex resolves a possibly-negative index against a length,
// ported from stdlib::list::from_relative_index.
func fromRelativeIndex(i int64, length int) (int, bool) {
	if i >= 0 {
		if i < int64(length) {
			return int(i), true
		}
		return 0, false
	}
	ni := int64(length) + i
	if ni >= 0 {
		return int(ni), true
	}
	return 0, false
}
