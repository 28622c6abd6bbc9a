package ast

// ValueType tags the runtime value lattice. Any compares equal to every
// other tag; this is handled in pkg/interp, not here, since it is a property
// of value equality rather than of the AST.
type ValueType int

const (
	TypeUnit ValueType = iota
	TypeInteger
	TypeFloat
	TypeChar
	TypeBoolean
	TypeFunction
	TypeAny
	TypeType
)

func (t ValueType) String() string {
	switch t {
	case TypeUnit:
		return "()"
	case TypeInteger:
		return "I"
	case TypeFloat:
		return "F"
	case TypeChar:
		return "C"
	case TypeBoolean:
		return "B"
	case TypeFunction:
		return "Fn"
	case TypeAny:
		return "*"
	case TypeType:
		return "T"
	default:
		return "?"
	}
}

// ValueTypeByName resolves the concrete lexical tokens recognized for a
// value_type operand (see pkg/parse grammar).
func ValueTypeByName(name string) (ValueType, bool) {
	switch name {
	case "()":
		return TypeUnit, true
	case "I":
		return TypeInteger, true
	case "F":
		return TypeFloat, true
	case "C":
		return TypeChar, true
	case "B":
		return TypeBoolean, true
	case "Fn":
		return TypeFunction, true
	case "*":
		return TypeAny, true
	case "T":
		return TypeType, true
	default:
		return TypeUnit, false
	}
}
