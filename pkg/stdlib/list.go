package stdlib

import (
	"sort"

	"github.com/nois-lang/noisc/pkg/ast"
	"github.com/nois-lang/noisc/pkg/interp"
)

// listPackage mirrors stdlib::list::package().
func listPackage() []entry {
	return []entry{
		def(spread_, "spread"),
		def(range_, "range"),
		def(len_, "len"),
		def(map_, "map"),
		def(filter_, "filter"),
		def(reduce_, "reduce"),
		def(at_, "at"),
		def(slice_, "slice"),
		def(join_, "join"),
		def(split_, "split"),
		def(flat_, "flat"),
		def(reverse_, "reverse"),
		def(sort_, "sort"),
	}
}

func spread_(args []interp.Value, ctx *interp.Context) (interp.Value, error) {
	if len(args) != 1 {
		return nil, argError("([*])", args)
	}
	l, ok := wantList(args[0])
	if !ok {
		return nil, argError("([*])", args)
	}
	if l.Spread {
		return nil, interp.NewError(interp.TypeError, "list is already spread %s", l.Display())
	}
	return interp.List{Items: l.Items, Spread: true}, nil
}

func range_(args []interp.Value, ctx *interp.Context) (interp.Value, error) {
	var from, to int64
	switch len(args) {
	case 1:
		end, ok := wantInt(args[0])
		if !ok {
			return nil, argError("(I, I?)", args)
		}
		from, to = 0, end
	case 2:
		s, ok1 := wantInt(args[0])
		e, ok2 := wantInt(args[1])
		if !ok1 || !ok2 {
			return nil, argError("(I, I?)", args)
		}
		from, to = s, e
	default:
		return nil, argError("(I, I?)", args)
	}
	var items []interp.Value
	for i := from; i < to; i++ {
		items = append(items, interp.Int{V: i})
	}
	return interp.List{Items: items}, nil
}

func len_(args []interp.Value, ctx *interp.Context) (interp.Value, error) {
	if len(args) != 1 {
		return nil, argError("([*])", args)
	}
	l, ok := wantList(args[0])
	if !ok {
		return nil, argError("([*])", args)
	}
	return interp.Int{V: int64(len(l.Items))}, nil
}

func map_(args []interp.Value, ctx *interp.Context) (interp.Value, error) {
	if len(args) != 2 {
		return nil, argError("([*], (*, I) -> *)", args)
	}
	l, ok := wantList(args[0])
	if !ok || !interp.IsCallable(args[1]) {
		return nil, argError("([*], (*, I) -> *)", args)
	}
	out := make([]interp.Value, len(l.Items))
	for i, item := range l.Items {
		v, err := interp.Call(ctx, "map", args[1], []interp.Value{item, interp.Int{V: int64(i)}}, ast.Span{})
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return interp.List{Items: out}, nil
}

func filter_(args []interp.Value, ctx *interp.Context) (interp.Value, error) {
	if len(args) != 2 {
		return nil, argError("([*], (*, I) -> B)", args)
	}
	l, ok := wantList(args[0])
	if !ok || !interp.IsCallable(args[1]) {
		return nil, argError("([*], (*, I) -> B)", args)
	}
	var out []interp.Value
	for i, item := range l.Items {
		v, err := interp.Call(ctx, "filter", args[1], []interp.Value{item, interp.Int{V: int64(i)}}, ast.Span{})
		if err != nil {
			return nil, err
		}
		keep, ok := wantBool(v)
		if !ok {
			return nil, interp.NewError(interp.TypeError, "expected B, found %s", interp.ValueTypeOf(v).Display())
		}
		if keep {
			out = append(out, item)
		}
	}
	return interp.List{Items: out}, nil
}

func reduce_(args []interp.Value, ctx *interp.Context) (interp.Value, error) {
	if len(args) != 3 {
		return nil, argError("([a], b, (b, a, I) -> b)", args)
	}
	l, ok := wantList(args[0])
	if !ok || !interp.IsCallable(args[2]) {
		return nil, argError("([a], b, (b, a, I) -> b)", args)
	}
	acc := args[1]
	for i, item := range l.Items {
		v, err := interp.Call(ctx, "reduce", args[2], []interp.Value{acc, item, interp.Int{V: int64(i)}}, ast.Span{})
		if err != nil {
			return nil, err
		}
		acc = v
	}
	return acc, nil
}

func at_(args []interp.Value, ctx *interp.Context) (interp.Value, error) {
	if len(args) != 2 {
		return nil, argError("([*], I)", args)
	}
	l, ok1 := wantList(args[0])
	i, ok2 := wantInt(args[1])
	if !ok1 || !ok2 {
		return nil, argError("([*], I)", args)
	}
	idx, ok := fromRelativeIndex(i, len(l.Items))
	if !ok {
		return nil, interp.NewError(interp.IndexError, "index out of bounds: %d, size is %d", i, len(l.Items))
	}
	return l.Items[idx], nil
}

func slice_(args []interp.Value, ctx *interp.Context) (interp.Value, error) {
	if len(args) != 3 {
		return nil, argError("([*], I, I)", args)
	}
	l, ok1 := wantList(args[0])
	from, ok2 := wantInt(args[1])
	to, ok3 := wantInt(args[2])
	if !ok1 || !ok2 || !ok3 {
		return nil, argError("([*], I, I)", args)
	}
	f, ok := fromRelativeIndex(from, len(l.Items))
	if !ok {
		return nil, interp.NewError(interp.IndexError, "index out of bounds: %d, size is %d", from, len(l.Items))
	}
	t, ok := fromRelativeIndex(to, len(l.Items))
	if !ok {
		return nil, interp.NewError(interp.IndexError, "index out of bounds: %d, size is %d", to, len(l.Items))
	}
	if f <= t {
		return interp.List{Items: append([]interp.Value{}, l.Items[f:t+1]...)}, nil
	}
	out := make([]interp.Value, 0, f-t+1)
	for i := f; i >= t; i-- {
		out = append(out, l.Items[i])
	}
	return interp.List{Items: out}, nil
}

func join_(args []interp.Value, ctx *interp.Context) (interp.Value, error) {
	l, ok := wantList(args[0])
	if !ok {
		return nil, argError("([*], *?)", args)
	}
	if len(args) == 1 {
		return interp.List{Items: append([]interp.Value{}, l.Items...)}, nil
	}
	if len(args) != 2 {
		return nil, argError("([*], *?)", args)
	}
	sep := args[1]
	var out []interp.Value
	for i, item := range l.Items {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, item)
	}
	return interp.List{Items: out}, nil
}

func split_(args []interp.Value, ctx *interp.Context) (interp.Value, error) {
	if len(args) != 2 {
		return nil, argError("([*], *)", args)
	}
	l, ok := wantList(args[0])
	if !ok {
		return nil, argError("([*], *)", args)
	}
	sep := args[1]
	var chunks []interp.Value
	var cur []interp.Value
	for _, item := range l.Items {
		if interp.Equal(item, sep) {
			chunks = append(chunks, interp.List{Items: cur})
			cur = nil
			continue
		}
		cur = append(cur, item)
	}
	chunks = append(chunks, interp.List{Items: cur})
	return interp.List{Items: chunks}, nil
}

func flat_(args []interp.Value, ctx *interp.Context) (interp.Value, error) {
	if len(args) != 1 {
		return nil, argError("([[*]])", args)
	}
	l, ok := wantList(args[0])
	if !ok {
		return nil, argError("([[*]])", args)
	}
	var out []interp.Value
	for _, item := range l.Items {
		inner, ok := wantList(item)
		if !ok {
			return nil, argError("([[*]])", args)
		}
		out = append(out, inner.Items...)
	}
	return interp.List{Items: out}, nil
}

func reverse_(args []interp.Value, ctx *interp.Context) (interp.Value, error) {
	if len(args) != 1 {
		return nil, argError("([*])", args)
	}
	l, ok := wantList(args[0])
	if !ok {
		return nil, argError("([*])", args)
	}
	out := make([]interp.Value, len(l.Items))
	for i, item := range l.Items {
		out[len(out)-1-i] = item
	}
	return interp.List{Items: out}, nil
}

func sort_(args []interp.Value, ctx *interp.Context) (interp.Value, error) {
	if len(args) != 1 {
		return nil, argError("([*])", args)
	}
	l, ok := wantList(args[0])
	if !ok {
		return nil, argError("([*])", args)
	}
	out := append([]interp.Value{}, l.Items...)
	var sortErr error
	sort.SliceStable(out, func(i, j int) bool {
		c, ok := interp.Compare(out[i], out[j])
		if !ok && sortErr == nil {
			sortErr = interp.NewError(interp.TypeError, "values are not comparable: %s, %s",
				interp.ValueTypeOf(out[i]).Display(), interp.ValueTypeOf(out[j]).Display())
		}
		return c < 0
	})
	if sortErr != nil {
		return nil, sortErr
	}
	return interp.List{Items: out}, nil
}
