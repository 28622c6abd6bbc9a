package parse

import (
	pc "github.com/prataprc/goparsec"

	"github.com/nois-lang/noisc/pkg/ast"
)

// grammar wires the token parsers in tokens.go into the concrete Nois
// surface syntax via goparsec combinators, following the same
// ast.And/OrdChoice/Kleene/pc.Maybe vocabulary pkg/jack/parsing.go uses to
// build the nand2tetris Jack grammar. Every rule's nodify callback builds
// the corresponding pkg/ast node directly rather than leaving a generic
// parse tree to walk afterward: pkg/jack/parsing.go's own FromAST step was
// never finished by its authors (Parser.Parse there is a stub), so there is
// no working traversal of goparsec's generic AST to imitate. Building typed
// nodes inline, combinator by combinator, sidesteps that gap entirely.
//
// Source positions are not threaded through: every node gets the zero Span.
// Diagnostics from a running program still carry real spans (pkg/interp
// attaches them at each evaluation step), but a syntax error is reported
// without a precise byte offset. A future pass could recover offsets from
// the scanner consumed at each token if goparsec's Terminal exposes them.
type grammar struct {
	ga      *pc.AST
	Program pc.Parser
}

func identity(ns []pc.ParsecNode) pc.ParsecNode { return ns[0] }

func passthrough(ns []pc.ParsecNode) pc.ParsecNode { return ns }

func node[T any](v T) ast.Node[T] { return ast.Node[T]{Span: ast.Span{}, Val: v} }

func extractExprList(n pc.ParsecNode) []ast.Node[ast.Expression] {
	raw, _ := n.([]pc.ParsecNode)
	out := make([]ast.Node[ast.Expression], len(raw))
	for i, r := range raw {
		out[i] = r.(ast.Node[ast.Expression])
	}
	return out
}

func extractAssigneeList(n pc.ParsecNode) []ast.Node[ast.Assignee] {
	raw, _ := n.([]pc.ParsecNode)
	out := make([]ast.Node[ast.Assignee], len(raw))
	for i, r := range raw {
		out[i] = r.(ast.Node[ast.Assignee])
	}
	return out
}

func extractDestructureItems(n pc.ParsecNode) []ast.Node[ast.DestructureItem] {
	raw, _ := n.([]pc.ParsecNode)
	out := make([]ast.Node[ast.DestructureItem], len(raw))
	for i, r := range raw {
		out[i] = r.(ast.Node[ast.DestructureItem])
	}
	return out
}

func extractIdentNodes(n pc.ParsecNode) []ast.Node[ast.Identifier] {
	raw, _ := n.([]pc.ParsecNode)
	out := make([]ast.Node[ast.Identifier], len(raw))
	for i, r := range raw {
		term := r.(*pc.Terminal)
		out[i] = node[ast.Identifier](ast.Identifier(term.Value))
	}
	return out
}

func unaryKindFromTerminal(t *pc.Terminal) ast.UnaryKind {
	switch t.Value {
	case "-":
		return ast.UnaryMinus
	case "!":
		return ast.UnaryNot
	case "..":
		return ast.UnarySpread
	default:
		return ast.UnaryPlus
	}
}

func binaryOperatorFromTerminal(t *pc.Terminal) ast.BinaryOperator {
	switch t.Value {
	case "-":
		return ast.Sub
	case "*":
		return ast.Mul
	case "/":
		return ast.Div
	case "^":
		return ast.Exp
	case "%":
		return ast.Rem
	case ".":
		return ast.Accessor
	case "==":
		return ast.Eq
	case "!=":
		return ast.Ne
	case ">":
		return ast.Gt
	case ">=":
		return ast.Ge
	case "<":
		return ast.Lt
	case "<=":
		return ast.Le
	case "&&":
		return ast.And
	case "||":
		return ast.Or
	default:
		return ast.Add
	}
}

func newGrammar() *grammar {
	ga := pc.NewAST("nois", 1024)
	g := &grammar{ga: ga}

	// Forward-declared recursive rules: expression, block, destructure_item
	// (self-recursive via nested lists) and pattern_item (self-recursive via
	// nested list patterns) are all referenced by rules built before they
	// themselves exist, so route through a thunk that reads the local
	// variable once it is assigned further down in this function.
	var pExpr, pBlock, pDestructureItem, pPatternItem pc.Parser
	exprRef := pc.Parser(func(s pc.Scanner) (pc.ParsecNode, pc.Scanner) { return pExpr(s) })
	blockRef := pc.Parser(func(s pc.Scanner) (pc.ParsecNode, pc.Scanner) { return pBlock(s) })
	destructureItemRef := pc.Parser(func(s pc.Scanner) (pc.ParsecNode, pc.Scanner) { return pDestructureItem(s) })
	patternItemRef := pc.Parser(func(s pc.Scanner) (pc.ParsecNode, pc.Scanner) { return pPatternItem(s) })

	// ---- operand literals ----

	pHoleOperand := ga.And("hole_operand", func(ns []pc.ParsecNode) pc.ParsecNode {
		return node[ast.Operand](ast.HoleOperand{})
	}, tHole)

	pFloatOperand := ga.And("float_operand", func(ns []pc.ParsecNode) pc.ParsecNode {
		v, err := parseFloatLiteral(ns[0].(*pc.Terminal).Value)
		if err != nil {
			return nil
		}
		return node[ast.Operand](ast.FloatOperand{Value: v})
	}, tFloat)

	pIntOperand := ga.And("int_operand", func(ns []pc.ParsecNode) pc.ParsecNode {
		v, err := parseIntLiteral(ns[0].(*pc.Terminal).Value)
		if err != nil {
			return nil
		}
		return node[ast.Operand](ast.IntegerOperand{Value: v})
	}, tInt)

	pBoolOperand := ga.OrdChoice("bool_operand", func(ns []pc.ParsecNode) pc.ParsecNode {
		return node[ast.Operand](ast.BooleanOperand{Value: ns[0].(*pc.Terminal).Name == "TRUE"})
	}, tTrue, tFalse)

	pStringOperand := ga.And("string_operand", func(ns []pc.ParsecNode) pc.ParsecNode {
		s, err := unquote(ns[0].(*pc.Terminal).Value)
		if err != nil {
			return nil
		}
		return node[ast.Operand](ast.StringOperand{Value: s})
	}, tStr)

	pValueTypeOperand := ga.OrdChoice("value_type_operand", func(ns []pc.ParsecNode) pc.ParsecNode {
		tag, _ := ast.ValueTypeByName(ns[0].(*pc.Terminal).Value)
		return node[ast.Operand](ast.ValueTypeOperand{Tag: tag})
	}, tUnitType, tFnType, tIntType, tFltType, tChrType, tBolType, tAnyType, tTypType)

	pListInitOperand := ga.And("list_init", func(ns []pc.ParsecNode) pc.ParsecNode {
		return node[ast.Operand](ast.ListInitOperand{Items: extractExprList(ns[1])})
	}, tLBrack, ga.Kleene("list_items", passthrough, exprRef, tComma), tRBrack)

	pStructDefine := ga.And("struct_define", func(ns []pc.ParsecNode) pc.ParsecNode {
		return node[ast.Operand](ast.StructDefinitionOperand{Fields: extractIdentNodes(ns[2])})
	}, tStruct, tLBrace, ga.Kleene("struct_fields", passthrough, tIdent, tComma), tRBrace)

	pEnumDefine := ga.And("enum_define", func(ns []pc.ParsecNode) pc.ParsecNode {
		return node[ast.Operand](ast.EnumDefinitionOperand{Values: extractIdentNodes(ns[2])})
	}, tEnum, tLBrace, ga.Kleene("enum_values", passthrough, tIdent, tComma), tRBrace)

	pIdentOperand := ga.And("ident_operand", func(ns []pc.ParsecNode) pc.ParsecNode {
		return node[ast.Operand](ast.IdentifierOperand{Name: ast.Identifier(ns[0].(*pc.Terminal).Value)})
	}, tIdent)

	// ---- assignee / destructuring ----

	pHoleAssignee := ga.And("hole_assignee", func(ns []pc.ParsecNode) pc.ParsecNode {
		return node[ast.Assignee](ast.HoleAssignee{})
	}, tHole)

	pIdentAssignee := ga.And("ident_assignee", func(ns []pc.ParsecNode) pc.ParsecNode {
		return node[ast.Assignee](ast.IdentifierAssignee{Name: ast.Identifier(ns[0].(*pc.Terminal).Value)})
	}, tIdent)

	pDestructureHoleItem := ga.And("destructure_hole_item", func(ns []pc.ParsecNode) pc.ParsecNode {
		return node[ast.DestructureItem](ast.HoleItem{})
	}, tHole)

	pDestructureSpreadIdentItem := ga.And("destructure_spread_ident_item", func(ns []pc.ParsecNode) pc.ParsecNode {
		return node[ast.DestructureItem](ast.IdentifierItem{Name: ast.Identifier(ns[1].(*pc.Terminal).Value), Spread: true})
	}, tSpread, tIdent)

	pDestructureSpreadHoleItem := ga.And("destructure_spread_hole_item", func(ns []pc.ParsecNode) pc.ParsecNode {
		return node[ast.DestructureItem](ast.SpreadHoleItem{})
	}, tSpread)

	pDestructureIdentItem := ga.And("destructure_ident_item", func(ns []pc.ParsecNode) pc.ParsecNode {
		return node[ast.DestructureItem](ast.IdentifierItem{Name: ast.Identifier(ns[0].(*pc.Terminal).Value), Spread: false})
	}, tIdent)

	pDestructureNestedItem := ga.And("destructure_nested_item", func(ns []pc.ParsecNode) pc.ParsecNode {
		items := extractDestructureItems(ns[1])
		return node[ast.DestructureItem](ast.NestedListItem{List: ast.DestructureListAssignee{Items: items}})
	}, tLBrack, ga.Kleene("nested_destructure_items", passthrough, destructureItemRef, tComma), tRBrack)

	pDestructureItem = ga.OrdChoice("destructure_item", identity,
		pDestructureHoleItem, pDestructureSpreadIdentItem, pDestructureSpreadHoleItem,
		pDestructureIdentItem, pDestructureNestedItem)

	pDestructureListAssignee := ga.And("destructure_list_assignee", func(ns []pc.ParsecNode) pc.ParsecNode {
		return node[ast.Assignee](ast.DestructureListAssignee{Items: extractDestructureItems(ns[1])})
	}, tLBrack, ga.Kleene("destructure_items", passthrough, destructureItemRef, tComma), tRBrack)

	pAssignee := ga.OrdChoice("assignee", identity, pHoleAssignee, pDestructureListAssignee, pIdentAssignee)

	// ---- pattern_item ----

	pPatternHole := ga.And("pattern_hole", func(ns []pc.ParsecNode) pc.ParsecNode {
		return node[ast.PatternItem](ast.HolePattern{})
	}, tHole)

	pPatternSpreadIdent := ga.And("pattern_spread_ident", func(ns []pc.ParsecNode) pc.ParsecNode {
		return node[ast.PatternItem](ast.IdentifierPattern{Name: ast.Identifier(ns[1].(*pc.Terminal).Value), Spread: true})
	}, tSpread, tIdent)

	pPatternSpreadHole := ga.And("pattern_spread_hole", func(ns []pc.ParsecNode) pc.ParsecNode {
		return node[ast.PatternItem](ast.SpreadHolePattern{})
	}, tSpread)

	pPatternFloat := ga.And("pattern_float", func(ns []pc.ParsecNode) pc.ParsecNode {
		v, err := parseFloatLiteral(ns[0].(*pc.Terminal).Value)
		if err != nil {
			return nil
		}
		return node[ast.PatternItem](ast.FloatPattern{Value: v})
	}, tFloat)

	pPatternInt := ga.And("pattern_int", func(ns []pc.ParsecNode) pc.ParsecNode {
		v, err := parseIntLiteral(ns[0].(*pc.Terminal).Value)
		if err != nil {
			return nil
		}
		return node[ast.PatternItem](ast.IntegerPattern{Value: v})
	}, tInt)

	pPatternBool := ga.OrdChoice("pattern_bool", func(ns []pc.ParsecNode) pc.ParsecNode {
		return node[ast.PatternItem](ast.BooleanPattern{Value: ns[0].(*pc.Terminal).Name == "TRUE"})
	}, tTrue, tFalse)

	pPatternString := ga.And("pattern_string", func(ns []pc.ParsecNode) pc.ParsecNode {
		s, err := unquote(ns[0].(*pc.Terminal).Value)
		if err != nil {
			return nil
		}
		return node[ast.PatternItem](ast.StringPattern{Value: s})
	}, tStr)

	pPatternIdent := ga.And("pattern_ident", func(ns []pc.ParsecNode) pc.ParsecNode {
		return node[ast.PatternItem](ast.IdentifierPattern{Name: ast.Identifier(ns[0].(*pc.Terminal).Value), Spread: false})
	}, tIdent)

	pPatternListRule := ga.And("pattern_list", func(ns []pc.ParsecNode) pc.ParsecNode {
		raw, _ := ns[1].([]pc.ParsecNode)
		items := make([]ast.Node[ast.PatternItem], len(raw))
		for i, r := range raw {
			items[i] = r.(ast.Node[ast.PatternItem])
		}
		return node[ast.PatternItem](ast.ListPattern{Items: items})
	}, tLBrack, ga.Kleene("pattern_items", passthrough, patternItemRef, tComma), tRBrack)

	pPatternItem = ga.OrdChoice("pattern_item", identity,
		pPatternHole, pPatternSpreadIdent, pPatternSpreadHole,
		pPatternFloat, pPatternInt, pPatternBool, pPatternString,
		pPatternIdent, pPatternListRule)

	// ---- function literals, match expressions ----

	pExprAsBlock := ga.And("expr_as_block", func(ns []pc.ParsecNode) pc.ParsecNode {
		e := ns[0].(ast.Node[ast.Expression])
		return ast.Block{Statements: []ast.Node[ast.Statement]{node[ast.Statement](ast.ExpressionStmt{Expr: e})}}
	}, exprRef)

	pFnBody := ga.OrdChoice("fn_body", identity, blockRef, pExprAsBlock)

	pFnParamsParen := ga.And("fn_params_paren", func(ns []pc.ParsecNode) pc.ParsecNode {
		return extractAssigneeList(ns[1])
	}, tLParen, ga.Kleene("fn_params", passthrough, pAssignee, tComma), tRParen)

	pFunctionInitParen := ga.And("function_init_paren", func(ns []pc.ParsecNode) pc.ParsecNode {
		params := ns[0].([]ast.Node[ast.Assignee])
		body := ns[2].(ast.Block)
		init := &ast.FunctionInit{Parameters: params, Body: body}
		init.CapturedIds = computeCaptures(params, body)
		return node[ast.Operand](ast.FunctionInitOperand{Init: init})
	}, pFnParamsParen, tArrow, pFnBody)

	pFunctionInitBare := ga.And("function_init_bare", func(ns []pc.ParsecNode) pc.ParsecNode {
		param := node[ast.Assignee](ast.IdentifierAssignee{Name: ast.Identifier(ns[0].(*pc.Terminal).Value)})
		params := []ast.Node[ast.Assignee]{param}
		body := ns[2].(ast.Block)
		init := &ast.FunctionInit{Parameters: params, Body: body}
		init.CapturedIds = computeCaptures(params, body)
		return node[ast.Operand](ast.FunctionInitOperand{Init: init})
	}, tIdent, tArrow, pFnBody)

	pFunctionInitOperand := ga.OrdChoice("function_init", identity, pFunctionInitParen, pFunctionInitBare)

	pOperand := ga.OrdChoice("operand", identity,
		pFunctionInitOperand, pHoleOperand, pBoolOperand, pValueTypeOperand,
		pFloatOperand, pIntOperand, pStringOperand, pListInitOperand,
		pStructDefine, pEnumDefine, pIdentOperand)

	pMatchClause := ga.And("match_clause", func(ns []pc.ParsecNode) pc.ParsecNode {
		pattern := ns[0].(ast.Node[ast.PatternItem])
		body := ns[2].(ast.Block)
		return node[ast.MatchClause](ast.MatchClause{Pattern: pattern, Body: body})
	}, patternItemRef, tFatRow, pFnBody)

	pMatchExpr := ga.And("match_expr", func(ns []pc.ParsecNode) pc.ParsecNode {
		cond := ns[1].(ast.Node[ast.Expression])
		raw, _ := ns[3].([]pc.ParsecNode)
		clauses := make([]ast.Node[ast.MatchClause], len(raw))
		for i, r := range raw {
			clauses[i] = r.(ast.Node[ast.MatchClause])
		}
		return node[ast.Expression](ast.MatchExpr{Condition: cond, Clauses: clauses})
	}, tMatch, exprRef, tLBrace, ga.Kleene("match_clauses", passthrough, pMatchClause, tComma), tRBrace)

	// ---- primary: operand / group / match, plus postfix call chains ----

	pOperandExpr := ga.And("operand_expr", func(ns []pc.ParsecNode) pc.ParsecNode {
		return node[ast.Expression](ast.OperandExpr{Operand: ns[0].(ast.Node[ast.Operand])})
	}, pOperand)

	pGroupExpr := ga.And("group_expr", func(ns []pc.ParsecNode) pc.ParsecNode {
		return ns[1]
	}, tLParen, exprRef, tRParen)

	// A bare `{ ... }` used where an expression is expected runs immediately
	// in its own child scope (see ast.BlockExpr), distinct from a `{ ... }`
	// consumed as a function or match-clause body (pFnBody, pMatchClause),
	// which is a different grammar position and never competes with this one.
	pBlockExpr := ga.And("block_expr", func(ns []pc.ParsecNode) pc.ParsecNode {
		return node[ast.Expression](ast.BlockExpr{Block: ns[0].(ast.Block)})
	}, blockRef)

	// Operand (including the paren-params function literal) is tried before
	// a bare grouping paren: `(x, y) -> ...` and `(a + b)` both open with
	// "(", so the function-literal alternative gets first refusal and a
	// plain grouped expression is the fallback once it fails to find `->`.
	pPrimaryLeaf := ga.OrdChoice("primary_leaf", identity, pMatchExpr, pBlockExpr, pOperandExpr, pGroupExpr)

	pCallSuffix := ga.And("call_suffix", func(ns []pc.ParsecNode) pc.ParsecNode {
		return extractExprList(ns[1])
	}, tLParen, ga.Kleene("call_args", passthrough, exprRef, tComma), tRParen)

	pPrimaryBase := ga.And("primary_base", func(ns []pc.ParsecNode) pc.ParsecNode {
		base := ns[0].(ast.Node[ast.Expression])
		raw, _ := ns[1].([]pc.ParsecNode)
		for _, r := range raw {
			args := r.([]ast.Node[ast.Expression])
			base = node[ast.Expression](ast.UnaryExpr{
				Operator: node[ast.UnaryOperator](ast.UnaryOperator{Kind: ast.UnaryArgumentList, Args: args}),
				Operand:  base,
			})
		}
		return base
	}, pPrimaryLeaf, ga.Kleene("call_suffixes", passthrough, pCallSuffix))

	pUnaryPrefixOp := ga.OrdChoice("unary_prefix_op", identity, tAdd, tSub, tNot, tSpread)

	pPrimary := ga.And("primary", func(ns []pc.ParsecNode) pc.ParsecNode {
		raw, _ := ns[0].([]pc.ParsecNode)
		result := ns[1].(ast.Node[ast.Expression])
		for i := len(raw) - 1; i >= 0; i-- {
			kind := unaryKindFromTerminal(raw[i].(*pc.Terminal))
			result = node[ast.Expression](ast.UnaryExpr{Operator: node[ast.UnaryOperator](ast.UnaryOperator{Kind: kind}), Operand: result})
		}
		return result
	}, ga.Kleene("unary_prefixes", passthrough, pUnaryPrefixOp), pPrimaryBase)

	pInfixOp := ga.OrdChoice("infix_op", identity,
		tEq, tNe, tGe, tLe, tAnd, tOr, tGt, tLt, tAdd, tSub, tMul, tDiv, tExp, tRem, tDot)

	pOpOperand := ga.And("op_operand", func(ns []pc.ParsecNode) pc.ParsecNode {
		return opOperand{
			Op:      node[ast.BinaryOperator](binaryOperatorFromTerminal(ns[0].(*pc.Terminal))),
			Operand: ns[1].(ast.Node[ast.Expression]),
		}
	}, pInfixOp, pPrimary)

	pExpr = ga.And("expression", func(ns []pc.ParsecNode) pc.ParsecNode {
		first := ns[0].(ast.Node[ast.Expression])
		raw, _ := ns[1].([]pc.ParsecNode)
		rest := make([]opOperand, len(raw))
		for i, r := range raw {
			rest[i] = r.(opOperand)
		}
		result, err := climbAll(first, rest)
		if err != nil {
			// goparsec's nodify has no error channel; unwind through the
			// combinator recursion with a panic that Parser.Parse recovers
			// (see chainErrorPanic in parser.go).
			panic(chainErrorPanic{err})
		}
		return result
	}, pPrimary, ga.Kleene("expr_tail", passthrough, pOpOperand))

	// ---- statements and blocks ----

	pReturnStmt := ga.And("return_stmt", func(ns []pc.ParsecNode) pc.ParsecNode {
		raw, _ := ns[1].([]pc.ParsecNode)
		var exprPtr *ast.Node[ast.Expression]
		if len(raw) == 1 {
			e := raw[0].(ast.Node[ast.Expression])
			exprPtr = &e
		}
		return node[ast.Statement](ast.ReturnStmt{Expr: exprPtr})
	}, tReturn, pc.Maybe(passthrough, exprRef))

	pAssignmentStmt := ga.And("assignment_stmt", func(ns []pc.ParsecNode) pc.ParsecNode {
		return node[ast.Statement](ast.AssignmentStmt{
			Assignee:   ns[0].(ast.Node[ast.Assignee]),
			Expression: ns[2].(ast.Node[ast.Expression]),
		})
	}, pAssignee, tAssign, exprRef)

	pExpressionStmt := ga.And("expression_stmt", func(ns []pc.ParsecNode) pc.ParsecNode {
		return node[ast.Statement](ast.ExpressionStmt{Expr: ns[0].(ast.Node[ast.Expression])})
	}, exprRef)

	pStatement := ga.OrdChoice("statement", identity, pReturnStmt, pAssignmentStmt, pExpressionStmt)

	pNextStmt := ga.And("next_stmt", func(ns []pc.ParsecNode) pc.ParsecNode {
		return ns[1]
	}, tSemi, pStatement)

	pStatementSeq := ga.And("stmt_seq", func(ns []pc.ParsecNode) pc.ParsecNode {
		first := ns[0].(ast.Node[ast.Statement])
		raw, _ := ns[1].([]pc.ParsecNode)
		stmts := make([]ast.Node[ast.Statement], 0, len(raw)+1)
		stmts = append(stmts, first)
		for _, r := range raw {
			stmts = append(stmts, r.(ast.Node[ast.Statement]))
		}
		return stmts
	}, pStatement, ga.Kleene("more_stmts", passthrough, pNextStmt))

	stmtSeqOptFrom := func(n pc.ParsecNode) []ast.Node[ast.Statement] {
		raw, _ := n.([]pc.ParsecNode)
		if len(raw) != 1 {
			return nil
		}
		stmts, _ := raw[0].([]ast.Node[ast.Statement])
		return stmts
	}

	pBlock = ga.And("block", func(ns []pc.ParsecNode) pc.ParsecNode {
		return ast.Block{Statements: stmtSeqOptFrom(ns[1])}
	}, tLBrace, pc.Maybe(passthrough, pStatementSeq), pc.Maybe(passthrough, tSemi), tRBrace)

	g.Program = ga.And("program", func(ns []pc.ParsecNode) pc.ParsecNode {
		return ast.Program{Block: ast.Block{Statements: stmtSeqOptFrom(ns[0])}}
	}, pc.Maybe(passthrough, pStatementSeq), pc.Maybe(passthrough, tSemi))

	return g
}
