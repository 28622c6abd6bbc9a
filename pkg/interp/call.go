package interp

import "github.com/nois-lang/noisc/pkg/ast"

// doCall evaluates a call expression `callee(args...)` (§4.6.1). A bare
// identifier callee is resolved without evaluating it as a value first,
// since that is the one path through which a User definition's underlying
// function literal is looked up directly rather than forced through
// evalIdentifier's memoization; any other callee expression is evaluated to
// a Value and must already be callable.
func doCall(ctx *Context, calleeNode ast.Node[ast.Expression], argNodes []ast.Node[ast.Expression], span ast.Span) (Value, error) {
	var prefix []Value
	if recv, ok := ctx.Top().ConsumeMethodCallee(); ok {
		prefix = []Value{recv}
	}

	argVals, err := evalArgList(ctx, argNodes)
	if err != nil {
		return nil, err
	}
	args := append(prefix, argVals...)

	if id, ok := ast.AsIdentifier(calleeNode.Val); ok {
		def, found := ctx.FindDefinition(id)
		if !found {
			return nil, newErr(NameError, span, "undefined identifier '%s'", id)
		}
		return invokeDefinition(ctx, string(id), def, args, span)
	}

	calleeVal, err := Eval(ctx, calleeNode)
	if err != nil {
		return nil, err
	}
	return invokeValue(ctx, "<anonymous>", calleeVal, args, span)
}

// evalArgList evaluates a call's argument expressions left to right,
// inlining any `..`-spread list exactly as a list literal would.
func evalArgList(ctx *Context, argNodes []ast.Node[ast.Expression]) ([]Value, error) {
	var out []Value
	for _, arg := range argNodes {
		v, err := Eval(ctx, arg)
		if err != nil {
			return nil, err
		}
		if l, ok := v.(List); ok && l.Spread {
			out = append(out, l.Items...)
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

// invokeDefinition dispatches a resolved scope Definition as a call target:
// a User definition is first evaluated to the Value it names (its callee
// expression is typically a function literal), then dispatched the same as
// any other value.
func invokeDefinition(ctx *Context, name string, def Definition, args []Value, span ast.Span) (Value, error) {
	switch d := def.(type) {
	case SystemDef:
		return invokeBuiltin(ctx, name, d.Fn, args, span)
	case ValueDef:
		return invokeValue(ctx, name, d.Val, args, span)
	case UserDef:
		v, err := Eval(ctx, d.Expr)
		if err != nil {
			return nil, err
		}
		return invokeValue(ctx, name, v, args, span)
	default:
		return nil, newErr(TypeError, span, "unknown definition kind %T", d)
	}
}

// Call invokes an already-resolved callable Value with args, exactly as a
// source-level call would. It is exported for stdlib functions that take a
// callback argument (list.map, list.filter, list.reduce).
func Call(ctx *Context, name string, v Value, args []Value, span ast.Span) (Value, error) {
	return invokeValue(ctx, name, v, args, span)
}

func invokeValue(ctx *Context, name string, v Value, args []Value, span ast.Span) (Value, error) {
	switch fv := v.(type) {
	case System:
		return invokeBuiltin(ctx, name, fv.Fn, args, span)
	case Fn:
		return invokeUserFunc(ctx, name, fv.Init, nil, args, span)
	case Closure:
		return invokeUserFunc(ctx, name, fv.Init, fv.Captured, args, span)
	default:
		return nil, newErr(NotCallable, span, "'%s' is not callable, found %s", name, ValueTypeOf(v).Display())
	}
}

func invokeBuiltin(ctx *Context, name string, fn BuiltinFunc, args []Value, span ast.Span) (Value, error) {
	v, err := fn(args, ctx)
	if err != nil {
		return nil, WithCause(err, name, span)
	}
	return v, nil
}

// invokeUserFunc pushes a fresh call scope seeded with captured bindings
// (for a Closure) and the bound parameters, evaluates the body, and
// translates an unwound returnSignal back into an ordinary result (§4.6.1).
// Arguments beyond the declared parameters are ignored, so a one-parameter
// callback can be given to map/filter, which pass (item, index).
func invokeUserFunc(ctx *Context, name string, init *ast.FunctionInit, captured map[ast.Identifier]Definition, args []Value, span ast.Span) (Value, error) {
	if len(args) < len(init.Parameters) {
		return nil, newErr(ArityOrTypeError, span, "'%s' expected %d argument(s), got %d", name, len(init.Parameters), len(args))
	}

	scope := NewScope(name)
	scope.Callee = &span
	for id, d := range captured {
		scope.Define(id, d)
	}
	for i, param := range init.Parameters {
		bindings, _, err := BindParameter(ctx, param, args[i])
		if err != nil {
			return nil, WithCause(err, name, span)
		}
		for _, b := range bindings {
			scope.Define(b.Name, b.Def)
		}
	}

	ctx.PushScope(scope)
	v, err := EvalBlock(ctx, init.Body)
	ctx.PopScope()

	if err != nil {
		if rs, ok := err.(*returnSignal); ok {
			return rs.Value, nil
		}
		return nil, WithCause(err, name, span)
	}
	return v, nil
}
