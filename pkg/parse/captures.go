package parse

import "github.com/nois-lang/noisc/pkg/ast"

// computeCaptures implements the "usages minus definitions" rule for
// function literal closures: a name is captured iff it is read somewhere in
// the body without having been bound, by that point, by a parameter or by
// an earlier statement in an enclosing block of the same literal. Nested
// function literals have already had their own CapturedIds computed
// bottom-up by the time their enclosing literal is built (parsing produces
// the innermost literal first), so their free names are folded in directly
// as usages of the enclosing scope.
func computeCaptures(params []ast.Node[ast.Assignee], body ast.Block) []ast.Identifier {
	bound := map[ast.Identifier]bool{}
	for _, p := range params {
		collectAssigneeNames(p.Val, bound)
	}
	var used []ast.Identifier
	seen := map[ast.Identifier]bool{}
	add := func(id ast.Identifier) {
		if !bound[id] && !seen[id] {
			seen[id] = true
			used = append(used, id)
		}
	}
	walkBlock(body, cloneSet(bound), add)
	return used
}

func cloneSet(m map[ast.Identifier]bool) map[ast.Identifier]bool {
	out := make(map[ast.Identifier]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func collectAssigneeNames(a ast.Assignee, into map[ast.Identifier]bool) {
	switch v := a.(type) {
	case ast.IdentifierAssignee:
		into[v.Name] = true
	case ast.DestructureListAssignee:
		for _, item := range v.Items {
			collectDestructureItemNames(item.Val, into)
		}
	}
}

func collectDestructureItemNames(item ast.DestructureItem, into map[ast.Identifier]bool) {
	switch v := item.(type) {
	case ast.IdentifierItem:
		into[v.Name] = true
	case ast.NestedListItem:
		for _, item := range v.List.Items {
			collectDestructureItemNames(item.Val, into)
		}
	}
}

func collectPatternNames(p ast.PatternItem, into map[ast.Identifier]bool) {
	switch v := p.(type) {
	case ast.IdentifierPattern:
		into[v.Name] = true
	case ast.ListPattern:
		for _, item := range v.Items {
			collectPatternNames(item.Val, into)
		}
	}
}

// walkBlock walks statements in sequence, growing bound as assignments are
// encountered (their targets are in scope for the rest of the block), and
// reports every free-identifier usage it finds via add.
func walkBlock(block ast.Block, bound map[ast.Identifier]bool, add func(ast.Identifier)) {
	for _, stmt := range block.Statements {
		switch s := stmt.Val.(type) {
		case ast.ExpressionStmt:
			walkExpr(s.Expr.Val, bound, add)
		case ast.AssignmentStmt:
			walkExpr(s.Expression.Val, bound, add)
			collectAssigneeNames(s.Assignee.Val, bound)
		case ast.ReturnStmt:
			if s.Expr != nil {
				walkExpr(s.Expr.Val, bound, add)
			}
		}
	}
}

func walkExpr(e ast.Expression, bound map[ast.Identifier]bool, add func(ast.Identifier)) {
	switch v := e.(type) {
	case ast.OperandExpr:
		walkOperand(v.Operand.Val, bound, add)
	case ast.UnaryExpr:
		for _, a := range v.Operator.Val.Args {
			walkExpr(a.Val, bound, add)
		}
		walkExpr(v.Operand.Val, bound, add)
	case ast.BinaryExpr:
		walkExpr(v.Left.Val, bound, add)
		walkExpr(v.Right.Val, bound, add)
	case ast.MatchExpr:
		walkExpr(v.Condition.Val, bound, add)
		for _, clause := range v.Clauses {
			clauseBound := cloneSet(bound)
			collectPatternNames(clause.Val.Pattern.Val, clauseBound)
			walkBlock(clause.Val.Body, clauseBound, add)
		}
	case ast.BlockExpr:
		walkBlock(v.Block, cloneSet(bound), add)
	}
}

func walkOperand(o ast.Operand, bound map[ast.Identifier]bool, add func(ast.Identifier)) {
	switch v := o.(type) {
	case ast.IdentifierOperand:
		add(v.Name)
	case ast.ListInitOperand:
		for _, item := range v.Items {
			walkExpr(item.Val, bound, add)
		}
	case ast.FunctionInitOperand:
		for _, id := range v.Init.CapturedIds {
			add(id)
		}
	}
}
