package stdlib

import "github.com/nois-lang/noisc/pkg/interp"

// mathPackage mirrors stdlib::math::package(): each operator is registered
// under both its word name (add, sub, ...) and its symbolic BuiltinName (+,
// -, ...), since the evaluator looks binary/unary operators up by symbol
// while user code can also call them by name directly.
func mathPackage() []entry {
	return []entry{
		def(binary(interp.Add), "add", "+"),
		def(binarySubOrNeg, "sub", "-"),
		def(binary(interp.Mul), "mul", "*"),
		def(binary(interp.Div), "div", "/"),
		def(binary(interp.Exp), "exp", "^"),
		def(binary(interp.Rem), "rem", "%"),
		def(eq, "eq", "=="),
		def(ne, "ne", "!="),
		def(cmp(func(c int) bool { return c > 0 }), "gt", ">"),
		def(cmp(func(c int) bool { return c >= 0 }), "ge", ">="),
		def(cmp(func(c int) bool { return c < 0 }), "lt", "<"),
		def(cmp(func(c int) bool { return c <= 0 }), "le", "<="),
		def(not_, "not", "!"),
		def(binary(interp.And), "and", "&&"),
		def(binary(interp.Or), "or", "||"),
	}
}

func binary(op func(a, b interp.Value) (interp.Value, error)) interp.BuiltinFunc {
	return func(args []interp.Value, ctx *interp.Context) (interp.Value, error) {
		if len(args) != 2 {
			return nil, argError("(*, *)", args)
		}
		return op(args[0], args[1])
	}
}

// binarySubOrNeg implements `-`'s dual role as both subtraction and unary
// negation (the unary `-` desugars to a one-argument call of this symbol).
func binarySubOrNeg(args []interp.Value, ctx *interp.Context) (interp.Value, error) {
	switch len(args) {
	case 2:
		return interp.Sub(args[0], args[1])
	case 1:
		return interp.Sub(interp.Int{V: 0}, args[0])
	default:
		return nil, argError("(*, *?)", args)
	}
}

func eq(args []interp.Value, ctx *interp.Context) (interp.Value, error) {
	if len(args) != 2 {
		return nil, argError("(*, *)", args)
	}
	return interp.Bool{V: interp.Equal(args[0], args[1])}, nil
}

func ne(args []interp.Value, ctx *interp.Context) (interp.Value, error) {
	if len(args) != 2 {
		return nil, argError("(*, *)", args)
	}
	return interp.Bool{V: !interp.Equal(args[0], args[1])}, nil
}

func cmp(pred func(c int) bool) interp.BuiltinFunc {
	return func(args []interp.Value, ctx *interp.Context) (interp.Value, error) {
		if len(args) != 2 {
			return nil, argError("(*, *)", args)
		}
		c, ok := interp.Compare(args[0], args[1])
		if !ok {
			return nil, argError("comparable operands", args)
		}
		return interp.Bool{V: pred(c)}, nil
	}
}

func not_(args []interp.Value, ctx *interp.Context) (interp.Value, error) {
	if len(args) != 1 {
		return nil, argError("(B)", args)
	}
	return interp.Not(args[0])
}
