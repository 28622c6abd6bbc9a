package interp

import "github.com/nois-lang/noisc/pkg/ast"

// returnSignal unwinds a `return` statement up through nested blocks and
// match clauses to the enclosing function call, which is the only place it
// is caught (see invokeUserFunc in call.go). A bare top-level `return` in a
// script unwinds to EvalProgram instead.
type returnSignal struct{ Value Value }

func (r *returnSignal) Error() string { return "return outside of function" }

// EvalProgram runs a whole program's top-level block in the given context,
// treating a stray top-level `return` the same way a function body would.
func EvalProgram(ctx *Context, prog ast.Program) (Value, error) {
	v, err := EvalBlock(ctx, prog.Block)
	if err != nil {
		if rs, ok := err.(*returnSignal); ok {
			return rs.Value, nil
		}
		return nil, err
	}
	return v, nil
}

// EvalBlock evaluates statements in order; the block's value is its last
// statement's value, or Unit for an empty block (§ tail-expression rule).
func EvalBlock(ctx *Context, block ast.Block) (Value, error) {
	var result Value = Unit{}
	for _, stmt := range block.Statements {
		v, err := EvalStatement(ctx, stmt)
		if err != nil {
			return nil, err
		}
		result = v
	}
	return result, nil
}

func EvalStatement(ctx *Context, stmt ast.Node[ast.Statement]) (Value, error) {
	switch s := stmt.Val.(type) {
	case ast.ExpressionStmt:
		return Eval(ctx, s.Expr)
	case ast.AssignmentStmt:
		bindings, _, err := AssignStatement(ctx, s.Assignee, s.Expression)
		if err != nil {
			return nil, err
		}
		for _, b := range bindings {
			ctx.Top().Define(b.Name, b.Def)
		}
		return Unit{}, nil
	case ast.ReturnStmt:
		v := Value(Unit{})
		if s.Expr != nil {
			var err error
			v, err = Eval(ctx, *s.Expr)
			if err != nil {
				return nil, err
			}
		}
		return nil, &returnSignal{Value: v}
	default:
		return nil, newErr(TypeError, stmt.Span, "unknown statement kind %T", s)
	}
}

// Eval evaluates a single expression node (§4.6).
func Eval(ctx *Context, expr ast.Node[ast.Expression]) (Value, error) {
	switch e := expr.Val.(type) {
	case ast.OperandExpr:
		return EvalOperand(ctx, e.Operand)
	case ast.UnaryExpr:
		return evalUnary(ctx, e, expr.Span)
	case ast.BinaryExpr:
		return evalBinary(ctx, e, expr.Span)
	case ast.MatchExpr:
		return evalMatch(ctx, e, expr.Span)
	case ast.BlockExpr:
		return evalBlockExpr(ctx, e)
	default:
		return nil, newErr(TypeError, expr.Span, "unknown expression kind %T", e)
	}
}

func evalUnary(ctx *Context, e ast.UnaryExpr, span ast.Span) (Value, error) {
	switch e.Operator.Val.Kind {
	case ast.UnaryArgumentList:
		return doCall(ctx, e.Operand, e.Operator.Val.Args, span)
	case ast.UnarySpread:
		v, err := Eval(ctx, e.Operand)
		if err != nil {
			return nil, err
		}
		list, ok := v.(List)
		if !ok {
			return nil, newErr(SpreadOutsideList, span, "'..' requires [*], found %s", ValueTypeOf(v).Display())
		}
		list.Spread = true
		return list, nil
	default:
		v, err := Eval(ctx, e.Operand)
		if err != nil {
			return nil, err
		}
		return invokeOperator(ctx, e.Operator.Val.Kind.BuiltinName(), []Value{v}, span)
	}
}

func evalBinary(ctx *Context, e ast.BinaryExpr, span ast.Span) (Value, error) {
	if e.Operator.Val == ast.Accessor {
		return evalAccessor(ctx, e, span)
	}

	l, err := Eval(ctx, e.Left)
	if err != nil {
		return nil, err
	}

	if shortCircuit, isShortCircuit := e.Operator.Val.ShortCircuitValue(); isShortCircuit {
		lb, ok := l.(Bool)
		if !ok {
			return nil, newErr(TypeError, e.Left.Span, "'%s' requires B, found %s", e.Operator.Val, ValueTypeOf(l).Display())
		}
		if lb.V == shortCircuit {
			return lb, nil
		}
		r, err := Eval(ctx, e.Right)
		if err != nil {
			return nil, err
		}
		rb, ok := r.(Bool)
		if !ok {
			return nil, newErr(TypeError, e.Right.Span, "'%s' requires B, found %s", e.Operator.Val, ValueTypeOf(r).Display())
		}
		return rb, nil
	}

	r, err := Eval(ctx, e.Right)
	if err != nil {
		return nil, err
	}
	return invokeOperator(ctx, e.Operator.Val.BuiltinName(), []Value{l, r}, span)
}

// evalAccessor implements method-call sugar: `recv.name(args)` desugars to
// `name(recv, args)` by stashing recv on the method_callee channel and then
// evaluating the right-hand side as an ordinary call or identifier lookup,
// which consumes it as the first argument (§4.6.1).
func evalAccessor(ctx *Context, e ast.BinaryExpr, span ast.Span) (Value, error) {
	recv, err := Eval(ctx, e.Left)
	if err != nil {
		return nil, err
	}
	ctx.Top().MethodCallee = recv
	ctx.Top().HasMethod = true
	return Eval(ctx, e.Right)
}

func invokeOperator(ctx *Context, name Identifier, args []Value, span ast.Span) (Value, error) {
	def, ok := ctx.FindDefinition(name)
	if !ok {
		return nil, newErr(NameError, span, "undefined operator '%s'", name)
	}
	return invokeDefinition(ctx, string(name), def, args, span)
}

func evalMatch(ctx *Context, e ast.MatchExpr, span ast.Span) (Value, error) {
	cond, err := Eval(ctx, e.Condition)
	if err != nil {
		return nil, err
	}
	for _, clause := range e.Clauses {
		bindings, ok, err := Match(ctx, clause.Val.Pattern, cond)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		scope := NewScope("match")
		for _, b := range bindings {
			scope.Define(b.Name, b.Def)
		}
		ctx.PushScope(scope)
		v, err := EvalBlock(ctx, clause.Val.Body)
		ctx.PopScope()
		return v, err
	}
	return nil, newErr(ShapeError, span, "no match clause satisfied by %s", cond.Display())
}

// evalBlockExpr runs a bare `{ ... }` expression in its own child scope, so
// that bindings made inside it never leak into the scope it was written in.
func evalBlockExpr(ctx *Context, e ast.BlockExpr) (Value, error) {
	ctx.PushScope(NewScope("block"))
	v, err := EvalBlock(ctx, e.Block)
	ctx.PopScope()
	return v, err
}

// EvalOperand evaluates a leaf operand. Identifier is the one operand that
// also serves as the zero-argument form of method-call sugar: if a
// method_callee is pending it is consumed here and the identifier is
// resolved and invoked with the receiver as sole argument.
func EvalOperand(ctx *Context, operand ast.Node[ast.Operand]) (Value, error) {
	switch o := operand.Val.(type) {
	case ast.HoleOperand:
		return Unit{}, nil
	case ast.IntegerOperand:
		return Int{V: o.Value}, nil
	case ast.FloatOperand:
		return Float{V: o.Value}, nil
	case ast.BooleanOperand:
		return Bool{V: o.Value}, nil
	case ast.StringOperand:
		return NewString(o.Value), nil
	case ast.ListInitOperand:
		return evalListInit(ctx, o.Items)
	case ast.StructDefinitionOperand:
		return Unit{}, nil
	case ast.EnumDefinitionOperand:
		return Unit{}, nil
	case ast.FunctionInitOperand:
		if len(o.Init.CapturedIds) == 0 {
			return Fn{Init: o.Init}, nil
		}
		captured := make(map[ast.Identifier]Definition, len(o.Init.CapturedIds))
		for _, id := range o.Init.CapturedIds {
			if d, ok := ctx.FindDefinition(id); ok {
				captured[id] = d
			}
		}
		return Closure{Init: o.Init, Captured: captured}, nil
	case ast.IdentifierOperand:
		if recv, ok := ctx.Top().ConsumeMethodCallee(); ok {
			return invokeOperator(ctx, o.Name, []Value{recv}, operand.Span)
		}
		return evalIdentifier(ctx, o.Name, operand.Span)
	case ast.ValueTypeOperand:
		return Type{Tag: o.Tag}, nil
	default:
		return nil, newErr(TypeError, operand.Span, "unknown operand kind %T", o)
	}
}

// evalIdentifier resolves a bare identifier. A User definition is
// re-evaluated and the result memoized back into the scope it was found in,
// so a given binding is evaluated at most once and closures taken after the
// fact observe the same Value (§4.3, §4.6).
func evalIdentifier(ctx *Context, name Identifier, span ast.Span) (Value, error) {
	def, ok := ctx.FindDefinition(name)
	if !ok {
		return nil, newErr(NameError, span, "undefined identifier '%s'", name)
	}
	switch d := def.(type) {
	case ValueDef:
		return d.Val, nil
	case SystemDef:
		return System{Name: name, Fn: d.Fn}, nil
	case UserDef:
		v, err := Eval(ctx, d.Expr)
		if err != nil {
			return nil, err
		}
		ctx.SetDefinition(name, ValueDef{Val: v})
		return v, nil
	default:
		return nil, newErr(TypeError, span, "unknown definition kind %T", d)
	}
}

// evalListInit builds a list literal, inlining any `..`-spread element
// in place (§4.2/§4.4's single-spread rule extended to list literals).
func evalListInit(ctx *Context, items []ast.Node[ast.Expression]) (Value, error) {
	var out []Value
	for _, item := range items {
		v, err := Eval(ctx, item)
		if err != nil {
			return nil, err
		}
		if l, ok := v.(List); ok && l.Spread {
			out = append(out, l.Items...)
			continue
		}
		out = append(out, v)
	}
	return List{Items: out}, nil
}
