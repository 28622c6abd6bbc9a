package interp

import "github.com/nois-lang/noisc/pkg/ast"

// Binding is one (identifier, definition) pair produced by destructuring.
type Binding struct {
	Name Identifier
	Def  Definition
}

// AssignStatement implements destructuring for a source-level `assignee =
// expression` statement (§4.4). expr is evaluated once, at the assignment:
// a bare identifier binds the resulting Value as a ValueDef (so `a = a + 1`
// reads the previous `a`, and a closure built here captures the bindings
// present now); a destructure list distributes the list Value's elements.
func AssignStatement(ctx *Context, assignee ast.Node[ast.Assignee], expr ast.Node[ast.Expression]) (bindings []Binding, destructured bool, err error) {
	switch a := assignee.Val.(type) {
	case ast.HoleAssignee:
		return nil, true, nil
	case ast.IdentifierAssignee:
		v, err := Eval(ctx, expr)
		if err != nil {
			return nil, false, err
		}
		return []Binding{{Name: a.Name, Def: ValueDef{Val: v}}}, false, nil
	case ast.DestructureListAssignee:
		v, err := Eval(ctx, expr)
		if err != nil {
			return nil, true, err
		}
		bs, err := destructureList(ctx, a.Items, v, assignee.Span)
		return bs, true, err
	default:
		return nil, false, newErr(TypeError, assignee.Span, "unknown assignee kind %T", a)
	}
}

// BindParameter implements destructuring for function-argument binding: the
// value is already evaluated, so a bare identifier binds directly as a
// ValueDef.
func BindParameter(ctx *Context, assignee ast.Node[ast.Assignee], v Value) (bindings []Binding, destructured bool, err error) {
	switch a := assignee.Val.(type) {
	case ast.HoleAssignee:
		return nil, true, nil
	case ast.IdentifierAssignee:
		return []Binding{{Name: a.Name, Def: ValueDef{Val: v}}}, false, nil
	case ast.DestructureListAssignee:
		bs, err := destructureList(ctx, a.Items, v, assignee.Span)
		return bs, true, err
	default:
		return nil, false, newErr(TypeError, assignee.Span, "unknown assignee kind %T", a)
	}
}

func destructureList(ctx *Context, items []ast.Node[ast.DestructureItem], v Value, span ast.Span) ([]Binding, error) {
	list, ok := v.(List)
	if !ok {
		return nil, newErr(TypeError, span, "expected [*] to deconstruct, got %s", ValueTypeOf(v).Display())
	}
	vs := list.Items

	spreadIdx := -1
	spreadCount := 0
	for i, it := range items {
		switch it.Val.(type) {
		case ast.SpreadHoleItem:
			spreadCount++
			spreadIdx = i
		case ast.IdentifierItem:
			if it.Val.(ast.IdentifierItem).Spread {
				spreadCount++
				spreadIdx = i
			}
		}
	}
	if spreadCount > 1 {
		return nil, newErr(AmbiguousSpread, span, "ambiguous spreading logic: single spread identifier allowed")
	}

	if spreadCount == 0 {
		if len(items) != len(vs) {
			return nil, newErr(ShapeError, span, "incompatible deconstruction length: expected %d, got %d", len(items), len(vs))
		}
		var out []Binding
		for i, it := range items {
			bs, err := destructureItem(ctx, it, vs[i])
			if err != nil {
				return nil, err
			}
			out = append(out, bs...)
		}
		return out, nil
	}

	if len(vs) < len(items)-1 {
		return nil, newErr(ShapeError, span, "incompatible deconstruction length: expected at least %d, got %d", len(items)-1, len(vs))
	}

	var out []Binding
	for i := 0; i < spreadIdx; i++ {
		bs, err := destructureItem(ctx, items[i], vs[i])
		if err != nil {
			return nil, err
		}
		out = append(out, bs...)
	}

	spreadCount2 := len(vs) - (len(items) - 1)
	spreadValues := append([]Value{}, vs[spreadIdx:spreadIdx+spreadCount2]...)
	spreadName := Identifier("_")
	if idItem, ok := items[spreadIdx].Val.(ast.IdentifierItem); ok {
		spreadName = idItem.Name
	}
	out = append(out, Binding{Name: spreadName, Def: ValueDef{Val: List{Items: spreadValues}}})

	for i := spreadIdx + 1; i < len(items); i++ {
		vIdx := spreadCount2 + i - 1
		bs, err := destructureItem(ctx, items[i], vs[vIdx])
		if err != nil {
			return nil, err
		}
		out = append(out, bs...)
	}
	return out, nil
}

func destructureItem(ctx *Context, item ast.Node[ast.DestructureItem], v Value) ([]Binding, error) {
	switch it := item.Val.(type) {
	case ast.HoleItem, ast.SpreadHoleItem:
		return nil, nil
	case ast.IdentifierItem:
		return []Binding{{Name: it.Name, Def: ValueDef{Val: v}}}, nil
	case ast.NestedListItem:
		return destructureList(ctx, it.List.Items, v, item.Span)
	default:
		return nil, newErr(TypeError, item.Span, "unknown destructure item kind %T", it)
	}
}
