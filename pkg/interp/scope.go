package interp

import (
	"github.com/nois-lang/noisc/pkg/ast"
	"github.com/nois-lang/noisc/pkg/utils"
)

// Definition is the closed set of things an identifier can be bound to in a
// scope (§3).
type Definition interface{ isDefinition() }

// UserDef binds an identifier to an unevaluated expression: evaluating it
// means evaluating that expression again. Source-level assignments bind a
// ValueDef instead (see AssignStatement), and a Closure snapshots whatever
// definitions its captured names have at creation time.
type UserDef struct {
	Name Identifier
	Expr ast.Node[ast.Expression]
}

// ValueDef wraps an already-evaluated Value, e.g. a bound function
// parameter, a destructured binding or a memoized identifier dereference.
type ValueDef struct{ Val Value }

// SystemDef wraps a builtin implementation.
type SystemDef struct{ Fn BuiltinFunc }

func (UserDef) isDefinition()   {}
func (ValueDef) isDefinition()  {}
func (SystemDef) isDefinition() {}

// Identifier is a re-export of ast.Identifier for readability within this
// package's public surface (Definition, Scope, Context all key on it).
type Identifier = ast.Identifier

func definitionsEqual(a, b Definition) bool {
	switch av := a.(type) {
	case ValueDef:
		bv, ok := b.(ValueDef)
		return ok && Equal(av.Val, bv.Val)
	case UserDef:
		bv, ok := b.(UserDef)
		return ok && av.Name == bv.Name && av.Expr.Span == bv.Expr.Span
	case SystemDef:
		_, ok := b.(SystemDef)
		return ok
	default:
		return false
	}
}

// Scope is one frame of lexical scoping. Only the topmost scope on the
// stack may own MethodCallee, a single-shot channel the evaluator sets
// before dispatch and clears on first consumption (§3). Early return
// unwinds via a returnSignal error rather than a scope flag (see eval.go),
// and call arguments are bound straight into the new scope's Definitions by
// invokeUserFunc (see call.go) rather than staged through a scope channel
// first, so a Scope carries no separate arguments bookkeeping of its own.
type Scope struct {
	Name        string
	Definitions map[Identifier]Definition

	Callee       *ast.Span
	MethodCallee Value
	HasMethod    bool
}

func NewScope(name string) *Scope {
	return &Scope{Name: name, Definitions: map[Identifier]Definition{}}
}

func (s *Scope) Define(id Identifier, def Definition) { s.Definitions[id] = def }

// ConsumeMethodCallee returns the pending receiver and clears the channel.
func (s *Scope) ConsumeMethodCallee() (Value, bool) {
	if !s.HasMethod {
		return nil, false
	}
	v := s.MethodCallee
	s.MethodCallee = nil
	s.HasMethod = false
	return v, true
}

// Context is the full interpreter state: the source text (for span slicing
// in diagnostics) and the scope stack, global (stdlib) scope at the bottom.
// The stack itself is utils.Stack[*Scope] rather than a bare slice, so
// push/pop/top and the innermost-first search below all go through the one
// generic stack type shared with the rest of the toolchain.
type Context struct {
	ScopeStack utils.Stack[*Scope]
	Source     string
	// RunArgs are the command-line arguments exposed through args(); set
	// once at startup and read-only afterward (§5).
	RunArgs []string
}

// NewContext installs global as the bottom of the scope stack and returns
// the Context.
func NewContext(source string, global *Scope) *Context {
	return &Context{Source: source, ScopeStack: utils.NewStack(global)}
}

func (c *Context) Top() *Scope {
	s, err := c.ScopeStack.Top()
	if err != nil {
		panic("scope stack is empty: " + err.Error())
	}
	return s
}

func (c *Context) PushScope(s *Scope) { c.ScopeStack.Push(s) }

func (c *Context) PopScope() *Scope {
	s, err := c.ScopeStack.Pop()
	if err != nil {
		panic("scope stack is empty: " + err.Error())
	}
	return s
}

// FindDefinition searches scopes innermost-first, including the global
// scope at the bottom of the stack.
func (c *Context) FindDefinition(id Identifier) (Definition, bool) {
	for s := range c.ScopeStack.Iterator() {
		if d, ok := s.Definitions[id]; ok {
			return d, true
		}
	}
	return nil, false
}

// SetDefinition rewrites an existing binding in place, searching
// innermost-first; it reports whether a binding was found to rewrite. Used
// for reassignment and for identifier-dereference memoization (§4.3, §4.6).
func (c *Context) SetDefinition(id Identifier, def Definition) bool {
	for s := range c.ScopeStack.Iterator() {
		if _, ok := s.Definitions[id]; ok {
			s.Definitions[id] = def
			return true
		}
	}
	return false
}
