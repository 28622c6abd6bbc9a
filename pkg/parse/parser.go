// Package parse turns Nois source text into the typed pkg/ast tree the
// evaluator walks. The concrete grammar (this package) is a Go-native
// addition grounded in the teacher's goparsec combinator vocabulary;
// lowering to typed nodes happens inline in each rule's nodify callback
// rather than as a separate tree-walk, since pkg/jack/parsing.go never
// finished that second step for its own grammar.
package parse

import (
	"fmt"

	pc "github.com/prataprc/goparsec"

	"github.com/nois-lang/noisc/pkg/ast"
)

// ParseError reports a failure to derive a Program from source text.
type ParseError struct {
	Message string
	Remainder string
}

func (e *ParseError) Error() string {
	if e.Remainder == "" {
		return fmt.Sprintf("parse error: %s", e.Message)
	}
	return fmt.Sprintf("parse error: %s, near %q", e.Message, e.Remainder)
}

// Parser parses Nois source into an ast.Program. It is safe for concurrent
// use: the grammar it wraps holds no mutable state across calls.
type Parser struct {
	g *grammar
}

// NewParser builds a Parser, constructing the full goparsec grammar once.
func NewParser() *Parser {
	return &Parser{g: newGrammar()}
}

// chainErrorPanic unwinds the expression grammar's recursive nodify
// callbacks when precedence climbing finds two adjacent non-associative
// operators (e.g. `a == b <= c`); goparsec's Nodify signature has no error
// return, so this is the only path back out of the combinator recursion.
// Parse recovers it and turns it back into a plain error.
type chainErrorPanic struct{ err error }

// Parse derives an ast.Program from source.
func (p *Parser) Parse(source []byte) (prog ast.Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			cp, ok := r.(chainErrorPanic)
			if !ok {
				panic(r)
			}
			err = cp.err
		}
	}()

	scanner := pc.NewScanner(source)
	root, _ := p.g.ga.Parsewith(p.g.Program, scanner)
	if root == nil {
		return ast.Program{}, &ParseError{Message: "unable to derive a program from input"}
	}
	result, ok := root.(ast.Program)
	if !ok {
		return ast.Program{}, &ParseError{Message: "grammar root did not produce a program"}
	}
	return result, nil
}

// ParseString is a convenience wrapper over Parse for source held as a
// string (the common case from a REPL line).
func (p *Parser) ParseString(source string) (ast.Program, error) {
	return p.Parse([]byte(source))
}
