package parse

import pc "github.com/prataprc/goparsec"

// Lexical tokens. Grouped the way pkg/jack/parsing.go groups its token
// vars: punctuation/keywords first, literals second. In the infix-operator
// OrdChoice in grammar.go, longer operators are listed before their prefixes
// so `>=` isn't swallowed by `>` and `<=` isn't swallowed by `<`.
var (
	tLBrace = pc.Atom("{", "LBRACE")
	tRBrace = pc.Atom("}", "RBRACE")
	tLBrack = pc.Atom("[", "LBRACK")
	tRBrack = pc.Atom("]", "RBRACK")
	tLParen = pc.Atom("(", "LPAREN")
	tRParen = pc.Atom(")", "RPAREN")
	tComma  = pc.Atom(",", "COMMA")
	tSemi   = pc.Atom(";", "SEMI")
	tArrow  = pc.Atom("->", "ARROW")
	tFatRow = pc.Atom("=>", "FATARROW")
	tAssign = pc.Atom("=", "ASSIGN")
	tSpread = pc.Atom("..", "SPREAD")
	tHole   = pc.Atom("_", "HOLE")

	tStruct = pc.Atom("struct", "STRUCT")
	tEnum   = pc.Atom("enum", "ENUM")
	tMatch  = pc.Atom("match", "MATCH")
	tReturn = pc.Atom("return", "RETURN")
	tTrue   = pc.Token(`True\b`, "TRUE")
	tFalse  = pc.Token(`False\b`, "FALSE")

	tEq  = pc.Atom("==", "EQ")
	tNe  = pc.Atom("!=", "NE")
	tGe  = pc.Atom(">=", "GE")
	tLe  = pc.Atom("<=", "LE")
	tAnd = pc.Atom("&&", "AND")
	tOr  = pc.Atom("||", "OR")
	tGt  = pc.Atom(">", "GT")
	tLt  = pc.Atom("<", "LT")
	tAdd = pc.Atom("+", "ADD")
	tSub = pc.Atom("-", "SUB")
	tMul = pc.Atom("*", "MUL")
	tDiv = pc.Atom("/", "DIV")
	tExp = pc.Atom("^", "EXP")
	tRem = pc.Atom("%", "REM")
	tNot = pc.Atom("!", "NOT")
	tDot = pc.Atom(".", "DOT")

	tUnitType = pc.Atom("()", "UNIT_TYPE")
	tFnType   = pc.Token(`Fn\b`, "FN_TYPE")
	tIntType  = pc.Token(`I\b`, "INT_TYPE")
	tFltType  = pc.Token(`F\b`, "FLOAT_TYPE")
	tChrType  = pc.Token(`C\b`, "CHAR_TYPE")
	tBolType  = pc.Token(`B\b`, "BOOL_TYPE")
	tAnyType  = pc.Atom("*", "ANY_TYPE")
	tTypType  = pc.Token(`T\b`, "TYPE_TYPE")

	tIdent = pc.Token(`[a-zA-Z_][a-zA-Z0-9_]*`, "IDENT")
	tInt   = pc.Int()
	tFloat = pc.Float()
	tStr   = pc.Token(`(?:"(?:\\.|[^"\\])*"|'(?:\\.|[^'\\])*')`, "STRING")
)
