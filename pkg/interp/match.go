package interp

import "github.com/nois-lang/noisc/pkg/ast"

// Match implements the pattern matcher (§4.5): it reports whether pattern
// matches v and, only on success, the bindings it introduces. On failure
// bindings is always nil -- nothing is committed to the enclosing scope
// until the whole clause's pattern has matched.
func Match(ctx *Context, pattern ast.Node[ast.PatternItem], v Value) ([]Binding, bool, error) {
	switch p := pattern.Val.(type) {
	case ast.HolePattern:
		return nil, true, nil
	case ast.SpreadHolePattern:
		return nil, true, nil
	case ast.IntegerPattern:
		iv, ok := v.(Int)
		return nil, ok && iv.V == p.Value, nil
	case ast.FloatPattern:
		fv, ok := v.(Float)
		return nil, ok && fv.V == p.Value, nil
	case ast.BooleanPattern:
		bv, ok := v.(Bool)
		return nil, ok && bv.V == p.Value, nil
	case ast.StringPattern:
		lv, ok := v.(List)
		return nil, ok && Equal(lv, NewString(p.Value)), nil
	case ast.IdentifierPattern:
		if p.Spread {
			return nil, false, newErr(SpreadOutsideList, pattern.Span, "'..%s' is only allowed inside a list pattern", p.Name)
		}
		return []Binding{{Name: p.Name, Def: ValueDef{Val: v}}}, true, nil
	case ast.ListPattern:
		return matchList(ctx, p.Items, v, pattern.Span)
	default:
		return nil, false, newErr(TypeError, pattern.Span, "unknown pattern kind %T", p)
	}
}

func matchList(ctx *Context, items []ast.Node[ast.PatternItem], v Value, span ast.Span) ([]Binding, bool, error) {
	list, ok := v.(List)
	if !ok {
		return nil, false, nil
	}
	vs := list.Items

	spreadIdx := -1
	spreadCount := 0
	for i, it := range items {
		switch pit := it.Val.(type) {
		case ast.SpreadHolePattern:
			spreadCount++
			spreadIdx = i
		case ast.IdentifierPattern:
			if pit.Spread {
				spreadCount++
				spreadIdx = i
			}
		}
	}
	if spreadCount > 1 {
		return nil, false, newErr(AmbiguousSpread, span, "ambiguous spreading logic: single spread identifier allowed")
	}

	if spreadCount == 0 {
		if len(items) != len(vs) {
			return nil, false, nil
		}
		var out []Binding
		for i, it := range items {
			bs, ok, err := Match(ctx, it, vs[i])
			if err != nil {
				return nil, false, err
			}
			if !ok {
				return nil, false, nil
			}
			out = append(out, bs...)
		}
		return out, true, nil
	}

	if len(vs) < len(items)-1 {
		return nil, false, nil
	}

	var out []Binding
	for i := 0; i < spreadIdx; i++ {
		bs, ok, err := Match(ctx, items[i], vs[i])
		if err != nil {
			return nil, false, err
		}
		if !ok {
			return nil, false, nil
		}
		out = append(out, bs...)
	}

	spreadCount2 := len(vs) - (len(items) - 1)
	spreadValues := append([]Value{}, vs[spreadIdx:spreadIdx+spreadCount2]...)
	if idPat, ok := items[spreadIdx].Val.(ast.IdentifierPattern); ok {
		out = append(out, Binding{Name: idPat.Name, Def: ValueDef{Val: List{Items: spreadValues}}})
	}

	for i := spreadIdx + 1; i < len(items); i++ {
		vIdx := spreadCount2 + i - 1
		bs, ok, err := Match(ctx, items[i], vs[vIdx])
		if err != nil {
			return nil, false, err
		}
		if !ok {
			return nil, false, nil
		}
		out = append(out, bs...)
	}
	return out, true, nil
}
