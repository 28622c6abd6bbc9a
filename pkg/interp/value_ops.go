package interp

import (
	"fmt"
	"math"

	"github.com/nois-lang/noisc/pkg/ast"
)

// asFloat widens an Int/Float pair to a common f64 view; ok is false for any
// other combination.
func asFloat(v Value) (float64, bool) {
	switch t := v.(type) {
	case Int:
		return float64(t.V), true
	case Float:
		return t.V, true
	default:
		return 0, false
	}
}

func bothInt(a, b Value) (int64, int64, bool) {
	ai, ok1 := a.(Int)
	bi, ok2 := b.(Int)
	return ai.V, bi.V, ok1 && ok2
}

func numeric(a, b Value) (af, bf float64, bothFloat bool, ok bool) {
	fa, oka := asFloat(a)
	fb, okb := asFloat(b)
	if !oka || !okb {
		return 0, 0, false, false
	}
	_, aIsFloat := a.(Float)
	_, bIsFloat := b.(Float)
	return fa, fb, aIsFloat || bIsFloat, true
}

// Add implements `+`: integer/float arithmetic (promoting to float when
// either side is a Float) and list/string concatenation.
func Add(a, b Value) (Value, error) {
	if al, ok := a.(List); ok {
		if bl, ok := b.(List); ok {
			items := make([]Value, 0, len(al.Items)+len(bl.Items))
			items = append(items, al.Items...)
			items = append(items, bl.Items...)
			return List{Items: items}, nil
		}
	}
	if i1, i2, ok := bothInt(a, b); ok {
		return Int{V: i1 + i2}, nil
	}
	if f1, f2, isFloat, ok := numeric(a, b); ok && isFloat {
		return Float{V: f1 + f2}, nil
	}
	return nil, typeErrorf("incompatible operands for '+': [%s, %s]", ValueTypeOf(a).Display(), ValueTypeOf(b).Display())
}

func Sub(a, b Value) (Value, error) {
	if i1, i2, ok := bothInt(a, b); ok {
		return Int{V: i1 - i2}, nil
	}
	if f1, f2, isFloat, ok := numeric(a, b); ok && isFloat {
		return Float{V: f1 - f2}, nil
	}
	return nil, typeErrorf("incompatible operands for '-': [%s, %s]", ValueTypeOf(a).Display(), ValueTypeOf(b).Display())
}

func Mul(a, b Value) (Value, error) {
	if i1, i2, ok := bothInt(a, b); ok {
		return Int{V: i1 * i2}, nil
	}
	if f1, f2, isFloat, ok := numeric(a, b); ok && isFloat {
		return Float{V: f1 * f2}, nil
	}
	return nil, typeErrorf("incompatible operands for '*': [%s, %s]", ValueTypeOf(a).Display(), ValueTypeOf(b).Display())
}

func Div(a, b Value) (Value, error) {
	if i1, i2, ok := bothInt(a, b); ok {
		if i2 == 0 {
			return nil, arithmeticErrorf("division by zero")
		}
		return Int{V: i1 / i2}, nil // Go truncates toward zero, matching the spec
	}
	if f1, f2, isFloat, ok := numeric(a, b); ok && isFloat {
		if f2 == 0 {
			return nil, arithmeticErrorf("division by zero")
		}
		return Float{V: f1 / f2}, nil
	}
	return nil, typeErrorf("incompatible operands for '/': [%s, %s]", ValueTypeOf(a).Display(), ValueTypeOf(b).Display())
}

func Rem(a, b Value) (Value, error) {
	if i1, i2, ok := bothInt(a, b); ok {
		if i2 == 0 {
			return nil, arithmeticErrorf("remainder by zero")
		}
		return Int{V: i1 % i2}, nil // Go's % already matches the sign of the dividend
	}
	if f1, f2, isFloat, ok := numeric(a, b); ok && isFloat {
		if f2 == 0 {
			return nil, arithmeticErrorf("remainder by zero")
		}
		return Float{V: math.Mod(f1, f2)}, nil
	}
	return nil, typeErrorf("incompatible operands for '%%': [%s, %s]", ValueTypeOf(a).Display(), ValueTypeOf(b).Display())
}

// Exp implements `^`. Policy decision (spec §9 open question): a negative
// integer exponent produces a Float rather than failing, since `2 ^ -1`
// reads naturally as `0.5` to a caller who never declared a type.
func Exp(a, b Value) (Value, error) {
	if i1, i2, ok := bothInt(a, b); ok {
		if i2 >= 0 {
			return Int{V: intPow(i1, i2)}, nil
		}
		return Float{V: math.Pow(float64(i1), float64(i2))}, nil
	}
	if f1, f2, _, ok := numeric(a, b); ok {
		return Float{V: math.Pow(f1, f2)}, nil
	}
	return nil, typeErrorf("incompatible operands for '^': [%s, %s]", ValueTypeOf(a).Display(), ValueTypeOf(b).Display())
}

func intPow(base, exp int64) int64 {
	result := int64(1)
	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}
		base *= base
		exp >>= 1
	}
	return result
}

// Not is defined only on Bool.
func Not(a Value) (Value, error) {
	b, ok := a.(Bool)
	if !ok {
		return nil, typeErrorf("'!' requires B, found %s", ValueTypeOf(a).Display())
	}
	return Bool{V: !b.V}, nil
}

// And/Or require both sides to be Bool; short-circuiting itself is the
// evaluator's job (see eval.go), not this operation's.
func And(a, b Value) (Value, error) {
	ab, ok1 := a.(Bool)
	bb, ok2 := b.(Bool)
	if !ok1 || !ok2 {
		return nil, typeErrorf("'&&' requires B operands, found [%s, %s]", ValueTypeOf(a).Display(), ValueTypeOf(b).Display())
	}
	return Bool{V: ab.V && bb.V}, nil
}

func Or(a, b Value) (Value, error) {
	ab, ok1 := a.(Bool)
	bb, ok2 := b.(Bool)
	if !ok1 || !ok2 {
		return nil, typeErrorf("'||' requires B operands, found [%s, %s]", ValueTypeOf(a).Display(), ValueTypeOf(b).Display())
	}
	return Bool{V: ab.V || bb.V}, nil
}

// Equal is structural and deep: List compares elementwise, Fn/Closure
// compare by identity, Type::Any is a wildcard that compares equal to any
// value at all — not only other Type values — since a value_type() result
// can itself be List-shaped (e.g. `[I]`, the type of a non-empty integer
// list), and `[I] == *` must hold exactly as `I == *` does.
func Equal(a, b Value) bool {
	if isAnyType(a) || isAnyType(b) {
		return true
	}
	switch av := a.(type) {
	case Unit:
		_, ok := b.(Unit)
		return ok
	case Int:
		if bv, ok := b.(Int); ok {
			return av.V == bv.V
		}
		return false
	case Float:
		if bv, ok := b.(Float); ok {
			return av.V == bv.V
		}
		return false
	case Char:
		if bv, ok := b.(Char); ok {
			return av.V == bv.V
		}
		return false
	case Bool:
		if bv, ok := b.(Bool); ok {
			return av.V == bv.V
		}
		return false
	case List:
		bv, ok := b.(List)
		if !ok || len(av.Items) != len(bv.Items) {
			return false
		}
		for i := range av.Items {
			if !Equal(av.Items[i], bv.Items[i]) {
				return false
			}
		}
		return true
	case Fn:
		bv, ok := b.(Fn)
		return ok && av.Init == bv.Init
	case Closure:
		bv, ok := b.(Closure)
		return ok && av.Init == bv.Init && sameCaptures(av.Captured, bv.Captured)
	case System:
		bv, ok := b.(System)
		return ok && av.Name == bv.Name
	case Type:
		bv, ok := b.(Type)
		return ok && typeTagEqual(av.Tag, bv.Tag)
	default:
		return false
	}
}

func typeTagEqual(a, b ast.ValueType) bool {
	return a == ast.TypeAny || b == ast.TypeAny || a == b
}

// isAnyType reports whether v is the bare wildcard type value (the `*`
// ValueType operand, or the result of type()-ing something whose type is
// Any). It deliberately does not look inside a List: `[*]` is the type of
// an empty list, a specific (if unconstraining) shape, not the wildcard
// itself — only a bare Type{TypeAny} short-circuits Equal.
func isAnyType(v Value) bool {
	t, ok := v.(Type)
	return ok && t.Tag == ast.TypeAny
}

func sameCaptures(a, b map[ast.Identifier]Definition) bool {
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		bv, ok := b[k]
		if !ok || !definitionsEqual(av, bv) {
			return false
		}
	}
	return true
}

// Compare implements the total order over (I,I), (F,F), mixed I/F, (C,C),
// (B,B) and lexicographic List-of-orderables; ok is false when the pair is
// incomparable, which callers surface as a TypeError.
func Compare(a, b Value) (cmp int, ok bool) {
	if i1, i2, isInt := bothInt(a, b); isInt {
		return sign(i1 - i2), true
	}
	if f1, f2, _, isNum := numeric(a, b); isNum {
		switch {
		case f1 < f2:
			return -1, true
		case f1 > f2:
			return 1, true
		default:
			return 0, true
		}
	}
	if c1, ok1 := a.(Char); ok1 {
		if c2, ok2 := b.(Char); ok2 {
			return sign(int64(c1.V) - int64(c2.V)), true
		}
	}
	if bo1, ok1 := a.(Bool); ok1 {
		if bo2, ok2 := b.(Bool); ok2 {
			return sign(boolToInt(bo1.V) - boolToInt(bo2.V)), true
		}
	}
	if l1, ok1 := a.(List); ok1 {
		if l2, ok2 := b.(List); ok2 {
			for i := 0; i < len(l1.Items) && i < len(l2.Items); i++ {
				c, ok := Compare(l1.Items[i], l2.Items[i])
				if !ok {
					return 0, false
				}
				if c != 0 {
					return c, true
				}
			}
			return sign(int64(len(l1.Items) - len(l2.Items))), true
		}
	}
	return 0, false
}

func sign(n int64) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func typeErrorf(format string, args ...any) error {
	return &EvalError{Kind: TypeError, Message: fmt.Sprintf(format, args...)}
}

func arithmeticErrorf(format string, args ...any) error {
	return &EvalError{Kind: ArithmeticError, Message: fmt.Sprintf(format, args...)}
}
