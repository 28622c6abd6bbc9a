package interp

import (
	"fmt"
	"strings"

	"github.com/nois-lang/noisc/pkg/ast"
)

// ErrorKind enumerates the taxonomy from the error-handling design (§7).
type ErrorKind int

const (
	ParseError ErrorKind = iota
	ChainError
	ArityOrTypeError
	TypeError
	ShapeError
	AmbiguousSpread
	SpreadOutsideList
	NameError
	NotCallable
	ArithmeticError
	IndexError
	UserPanic
)

func (k ErrorKind) String() string {
	switch k {
	case ParseError:
		return "ParseError"
	case ChainError:
		return "ChainError"
	case ArityOrTypeError:
		return "ArityOrTypeError"
	case TypeError:
		return "TypeError"
	case ShapeError:
		return "ShapeError"
	case AmbiguousSpread:
		return "AmbiguousSpread"
	case SpreadOutsideList:
		return "SpreadOutsideList"
	case NameError:
		return "NameError"
	case NotCallable:
		return "NotCallable"
	case ArithmeticError:
		return "ArithmeticError"
	case IndexError:
		return "IndexError"
	case UserPanic:
		return "UserPanic"
	default:
		return "Error"
	}
}

// EvalError is the error representation for the whole engine: every failure
// carries a message, a source span and an optional chain of causes, each
// annotated with the call site that wrapped it (§7's propagation rule).
type EvalError struct {
	Kind    ErrorKind
	Message string
	Span    ast.Span

	// Cause, when non-nil, is the error this one wraps; Location names the
	// callee whose evaluation produced Cause.
	Cause    *EvalError
	Location string
}

func (e *EvalError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s", e.Kind, e.Message)
	cur := e
	for cur.Cause != nil {
		fmt.Fprintf(&sb, "\n\t@ %-8s (%s)", cur.Location, cur.Span)
		cur = cur.Cause
	}
	return sb.String()
}

func (e *EvalError) Unwrap() error {
	if e.Cause == nil {
		return nil
	}
	return e.Cause
}

// WithCause wraps err (annotated with its failing span) as the cause of a
// new error raised at callee name/span, exactly as a failed call wraps the
// inner error with the callee's name and span (§7).
func WithCause(err error, name string, span ast.Span) *EvalError {
	inner := asEvalError(err)
	return &EvalError{
		Kind:     inner.Kind,
		Message:  inner.Message,
		Span:     span,
		Cause:    inner,
		Location: name,
	}
}

func asEvalError(err error) *EvalError {
	if ee, ok := err.(*EvalError); ok {
		return ee
	}
	return &EvalError{Kind: TypeError, Message: err.Error()}
}

func newErr(kind ErrorKind, span ast.Span, format string, args ...any) *EvalError {
	return &EvalError{Kind: kind, Message: fmt.Sprintf(format, args...), Span: span}
}

// NewError is newErr's exported form, for stdlib packages that need to raise
// an EvalError of a specific kind without a source span (builtins run below
// any single AST node, so they report at the zero span; the calling
// invokeBuiltin frame supplies the real span via WithCause).
func NewError(kind ErrorKind, format string, args ...any) *EvalError {
	return newErr(kind, ast.Span{}, format, args...)
}
