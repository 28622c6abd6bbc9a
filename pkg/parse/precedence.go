package parse

import (
	"github.com/nois-lang/noisc/pkg/ast"
	"github.com/nois-lang/noisc/pkg/interp"
)

// opOperand is one `operator primary` pair following the first primary in a
// flat infix sequence, e.g. in `a + b * c` the sequence is
// (a, [{+, b}, {*, c}]).
type opOperand struct {
	Op      ast.Node[ast.BinaryOperator]
	Operand ast.Node[ast.Expression]
}

// checkChaining rejects two adjacent non-associative operators appearing in
// the same un-parenthesized infix sequence, e.g. `a == b <= c`: Eq and Le
// sit at different precedence tiers, but neither is associative, so there is
// no well-defined grouping for the pair without an explicit paren. A
// parenthesized comparison never reaches this check: `a == (b <= c)` folds
// `b <= c` into a single operand before it is ever added to rest.
func checkChaining(rest []opOperand) error {
	for i := 0; i+1 < len(rest); i++ {
		a, b := rest[i].Op.Val, rest[i+1].Op.Val
		if a.Associativity() == ast.AssocNone && b.Associativity() == ast.AssocNone {
			return interp.NewError(interp.ChainError, "'%s' cannot be chained with '%s' without parentheses", a, b)
		}
	}
	return nil
}

// climb turns a flat (first, rest) infix sequence into a precedence-shaped
// binary expression tree, following the table in pkg/ast/operator.go. This
// is precedence climbing (operator-precedence parsing): repeatedly fold the
// highest-bound-first operator pair into a BinaryExpr, recursing on the
// right-hand side whenever the next operator binds tighter than the current
// one.
func climb(first ast.Node[ast.Expression], rest []opOperand, minPrec int) (ast.Node[ast.Expression], []opOperand) {
	left := first
	for len(rest) > 0 && rest[0].Op.Val.Precedence() >= minPrec {
		op := rest[0].Op
		right := rest[0].Operand
		rest = rest[1:]
		nextMin := op.Val.Precedence() + 1
		if op.Val.Associativity() == ast.AssocRight {
			nextMin = op.Val.Precedence()
		}
		right, rest = climb(right, rest, nextMin)
		span := ast.Join(left.Span, right.Span)
		left = ast.At(span, ast.Expression(ast.BinaryExpr{Left: left, Operator: op, Right: right}))
	}
	return left, rest
}

// climbAll folds a full flat sequence, returning the single resulting
// expression node, or a ChainError if it contains two adjacent
// non-associative operators.
func climbAll(first ast.Node[ast.Expression], rest []opOperand) (ast.Node[ast.Expression], error) {
	if err := checkChaining(rest); err != nil {
		return ast.Node[ast.Expression]{}, err
	}
	result, _ := climb(first, rest, 0)
	return result, nil
}
