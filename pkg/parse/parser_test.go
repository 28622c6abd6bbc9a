package parse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nois-lang/noisc/pkg/ast"
	"github.com/nois-lang/noisc/pkg/interp"
	"github.com/nois-lang/noisc/pkg/parse"
)

func parseOne(t *testing.T, source string) ast.Node[ast.Statement] {
	t.Helper()
	prog, err := parse.NewParser().ParseString(source)
	require.NoError(t, err)
	require.Len(t, prog.Block.Statements, 1)
	return prog.Block.Statements[0]
}

func TestParseArithmeticPrecedence(t *testing.T) {
	stmt := parseOne(t, "1 + 2 * 3")
	expr, ok := stmt.Val.(ast.ExpressionStmt)
	require.True(t, ok)
	bin, ok := expr.Expr.Val.(ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.Add, bin.Operator.Val)
	rhs, ok := bin.Right.Val.(ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.Mul, rhs.Operator.Val)
}

func TestParseExponentIsRightAssociative(t *testing.T) {
	stmt := parseOne(t, "2 ^ 3 ^ 2")
	expr := stmt.Val.(ast.ExpressionStmt)
	bin, ok := expr.Expr.Val.(ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.Exp, bin.Operator.Val)
	_, rightIsExp := bin.Right.Val.(ast.BinaryExpr)
	assert.True(t, rightIsExp, "2^3^2 must group as 2^(3^2)")
}

func TestParseChainedNonAssociativeComparisonErrors(t *testing.T) {
	_, err := parse.NewParser().ParseString("a == b <= c")
	require.Error(t, err)
	var evalErr *interp.EvalError
	require.ErrorAs(t, err, &evalErr)
	assert.Equal(t, interp.ChainError, evalErr.Kind)
}

func TestParseComparisonAcrossDifferentPrecedenceStillChains(t *testing.T) {
	_, err := parse.NewParser().ParseString("a + b == c <= d")
	require.Error(t, err)
	var evalErr *interp.EvalError
	require.ErrorAs(t, err, &evalErr)
	assert.Equal(t, interp.ChainError, evalErr.Kind)
}

func TestParseParenthesizedComparisonDoesNotChain(t *testing.T) {
	stmt := parseOne(t, "a == (b <= c)")
	expr := stmt.Val.(ast.ExpressionStmt)
	bin, ok := expr.Expr.Val.(ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.Eq, bin.Operator.Val)
}

func TestParseMethodCallSugarIsAccessorWithArgumentList(t *testing.T) {
	stmt := parseOne(t, "xs.map(f)")
	expr := stmt.Val.(ast.ExpressionStmt)
	bin, ok := expr.Expr.Val.(ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.Accessor, bin.Operator.Val)
	unary, ok := bin.Right.Val.(ast.UnaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.UnaryArgumentList, unary.Operator.Val.Kind)
}

func TestParseDestructureAssignmentWithSpread(t *testing.T) {
	stmt := parseOne(t, "[a, ..r] = [1, 2, 3]")
	assign, ok := stmt.Val.(ast.AssignmentStmt)
	require.True(t, ok)
	list, ok := assign.Assignee.Val.(ast.DestructureListAssignee)
	require.True(t, ok)
	require.Len(t, list.Items, 2)
	first, ok := list.Items[0].Val.(ast.IdentifierItem)
	require.True(t, ok)
	assert.Equal(t, ast.Identifier("a"), first.Name)
	assert.False(t, first.Spread)
	rest, ok := list.Items[1].Val.(ast.IdentifierItem)
	require.True(t, ok)
	assert.Equal(t, ast.Identifier("r"), rest.Name)
	assert.True(t, rest.Spread)
}

func TestParseMatchWithSpreadTailPattern(t *testing.T) {
	stmt := parseOne(t, "match xs { [_, .., a] => a }")
	expr := stmt.Val.(ast.ExpressionStmt)
	match, ok := expr.Expr.Val.(ast.MatchExpr)
	require.True(t, ok)
	require.Len(t, match.Clauses, 1)
	pattern, ok := match.Clauses[0].Val.Pattern.Val.(ast.ListPattern)
	require.True(t, ok)
	require.Len(t, pattern.Items, 3)
	_, isHole := pattern.Items[0].Val.(ast.HolePattern)
	assert.True(t, isHole)
	_, isSpreadHole := pattern.Items[1].Val.(ast.SpreadHolePattern)
	assert.True(t, isSpreadHole)
	last, ok := pattern.Items[2].Val.(ast.IdentifierPattern)
	require.True(t, ok)
	assert.Equal(t, ast.Identifier("a"), last.Name)
}

func TestParseBlockExpressionAsAssignmentRhs(t *testing.T) {
	stmt := parseOne(t, "f = { a = 20; a }")
	assign, ok := stmt.Val.(ast.AssignmentStmt)
	require.True(t, ok)
	_, ok = assign.Expression.Val.(ast.BlockExpr)
	assert.True(t, ok)
}

func TestParseFunctionLiteralCapturesFreeIdentifiers(t *testing.T) {
	stmt := parseOne(t, "f = x -> x + y")
	assign := stmt.Val.(ast.AssignmentStmt)
	operand, ok := assign.Expression.Val.(ast.OperandExpr)
	require.True(t, ok)
	fn, ok := operand.Operand.Val.(ast.FunctionInitOperand)
	require.True(t, ok)
	assert.Equal(t, []ast.Identifier{"y"}, fn.Init.CapturedIds)
}

func TestParseNestedFunctionLiteralCapturesBubbleUp(t *testing.T) {
	stmt := parseOne(t, "f = x -> (y -> x + y)")
	assign := stmt.Val.(ast.AssignmentStmt)
	outer := assign.Expression.Val.(ast.OperandExpr).Operand.Val.(ast.FunctionInitOperand)
	assert.Equal(t, []ast.Identifier{}, filterOutParam(outer.Init.CapturedIds, "x"))
}

// filterOutParam drops exclude from ids, so the nested-capture test states
// the expected set apart from the outer literal's own parameter.
func filterOutParam(ids []ast.Identifier, exclude ast.Identifier) []ast.Identifier {
	out := []ast.Identifier{}
	for _, id := range ids {
		if id != exclude {
			out = append(out, id)
		}
	}
	return out
}

func TestParseStringLiteralEscapes(t *testing.T) {
	stmt := parseOne(t, `"a\nb\tc"`)
	expr := stmt.Val.(ast.ExpressionStmt)
	operand := expr.Expr.Val.(ast.OperandExpr).Operand.Val.(ast.StringOperand)
	assert.Equal(t, "a\nb\tc", operand.Value)
}

func TestParseValueTypeOperands(t *testing.T) {
	cases := map[string]ast.ValueType{
		"I":  ast.TypeInteger,
		"F":  ast.TypeFloat,
		"C":  ast.TypeChar,
		"B":  ast.TypeBoolean,
		"Fn": ast.TypeFunction,
		"*":  ast.TypeAny,
		"T":  ast.TypeType,
	}
	for src, want := range cases {
		stmt := parseOne(t, src)
		expr := stmt.Val.(ast.ExpressionStmt)
		operand := expr.Expr.Val.(ast.OperandExpr).Operand.Val.(ast.ValueTypeOperand)
		assert.Equal(t, want, operand.Tag)
	}
}
