// Package interp is the evaluation engine: the runtime Value representation,
// the lexical Scope/Context stack, the destructurer, the pattern matcher and
// the tree-walking Evaluator. It mirrors the role played by pkg/jack's
// lowering+scopes+evaluation trio in the nand2tetris compiler this codebase
// is descended from, generalized from a single-pass Hack-VM compiler to a
// recursive evaluator that produces runtime values directly.
package interp

import (
	"fmt"
	"strings"

	"github.com/nois-lang/noisc/pkg/ast"
)

// Value is the closed set of runtime value kinds (§4.1 of the data model).
// Strings have no dedicated kind: they are lists of Char, exactly as the
// source language defines them.
type Value interface {
	isValue()
	// Display renders the value the way println/eprintln/string
	// interpolation would; it is NOT Go's fmt verb, since character lists
	// must print as bare text.
	Display() string
}

type Unit struct{}
type Int struct{ V int64 }
type Float struct{ V float64 }
type Char struct{ V rune }
type Bool struct{ V bool }

// List holds a reference to a shared, ordered sequence of values. Spread is
// a transient marker set only by the `..` unary operator and by
// spread(list); spread lists never escape as a value returned from user
// code (the evaluator inlines them when building a ListInit, see eval.go).
type List struct {
	Items  []Value
	Spread bool
}

// Fn is a function value with no captured bindings.
type Fn struct{ Init *ast.FunctionInit }

// Closure retains exactly the bindings present when it was created, for the
// identifiers listed in Init.CapturedIds.
type Closure struct {
	Init     *ast.FunctionInit
	Captured map[ast.Identifier]Definition
}

// BuiltinFunc is the signature every stdlib entry implements.
type BuiltinFunc func(args []Value, ctx *Context) (Value, error)

// System wraps a builtin. Name is used for error messages and for identity
// comparison (two System values from the same registry entry are equal).
type System struct {
	Name ast.Identifier
	Fn   BuiltinFunc
}

type Type struct{ Tag ast.ValueType }

func (Unit) isValue()    {}
func (Int) isValue()     {}
func (Float) isValue()   {}
func (Char) isValue()    {}
func (Bool) isValue()    {}
func (List) isValue()    {}
func (Fn) isValue()      {}
func (Closure) isValue() {}
func (System) isValue()  {}
func (Type) isValue()    {}

func (Unit) Display() string  { return "()" }
func (v Int) Display() string { return fmt.Sprintf("%d", v.V) }
func (v Float) Display() string {
	s := fmt.Sprintf("%g", v.V)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
func (v Char) Display() string { return string(v.V) }
func (v Bool) Display() string {
	if v.V {
		return "True"
	}
	return "False"
}

func (v List) Display() string {
	if IsString(v) && len(v.Items) > 0 {
		var sb strings.Builder
		for _, it := range v.Items {
			sb.WriteString(it.Display())
		}
		return sb.String()
	}
	parts := make([]string, len(v.Items))
	for i, it := range v.Items {
		parts[i] = it.Display()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (Fn) Display() string      { return "<fn>" }
func (Closure) Display() string { return "<fn>" }
func (System) Display() string  { return "<fn>" }
func (v Type) Display() string  { return v.Tag.String() }

// IsString reports whether l prints as bare text: non-empty and every
// element is a Char.
func IsString(l List) bool {
	if len(l.Items) == 0 {
		return false
	}
	for _, it := range l.Items {
		if _, ok := it.(Char); !ok {
			return false
		}
	}
	return true
}

// NewString builds the list-of-Char representation of a Go string.
func NewString(s string) List {
	items := make([]Value, 0, len(s))
	for _, r := range s {
		items = append(items, Char{V: r})
	}
	return List{Items: items}
}

// IsCallable is true for Fn, Closure and System (§4.1).
func IsCallable(v Value) bool {
	switch v.(type) {
	case Fn, Closure, System:
		return true
	default:
		return false
	}
}

// ValueTypeOf computes the value_type() tag, recursing into List exactly as
// specified: an empty list has type List[Any]; a nonempty list's type is the
// (recursively computed) type of its first item, wrapped back into a
// single-element list so `type([1,2,3]) == [I]` holds.
func ValueTypeOf(v Value) Value {
	switch t := v.(type) {
	case Unit:
		return Type{Tag: ast.TypeUnit}
	case Int:
		return Type{Tag: ast.TypeInteger}
	case Float:
		return Type{Tag: ast.TypeFloat}
	case Char:
		return Type{Tag: ast.TypeChar}
	case Bool:
		return Type{Tag: ast.TypeBoolean}
	case Fn, Closure, System:
		return Type{Tag: ast.TypeFunction}
	case Type:
		return Type{Tag: ast.TypeType}
	case List:
		if len(t.Items) == 0 {
			return List{Items: []Value{Type{Tag: ast.TypeAny}}}
		}
		return List{Items: []Value{ValueTypeOf(t.Items[0])}}
	default:
		return Type{Tag: ast.TypeAny}
	}
}
